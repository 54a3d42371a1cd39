// Command coapws carries CoAP over WebSocket: it serves a WebSocket
// endpoint, decodes every inbound binary frame as one coapmsg.Message
// in the RFC 7252 message format (not RFC 8323's WebSocket message
// format), logs it, and answers Confirmable requests with an
// Acknowledgement. Like cmd/coapudp it is stateless across
// requests; no retransmission, no dedup, no HTTP proxy translation.
package main

import (
	"flag"
	"log"

	"github.com/lobaro/go-coapmsg/coapmsg"
	sckt "github.com/lobaro/go-coapmsg/socket"
)

func main() {
	port := flag.Int("port", 8081, "HTTP port to serve the WebSocket endpoint on")
	uri := flag.String("uri", "/coap", "path the WebSocket endpoint is served on")
	flag.Parse()

	rx := make(chan *sckt.Datagram, 16)
	socket, err := sckt.NewWSSocket(1, *uri, *port, rx)
	if err != nil {
		log.Fatal("coapws: ", err)
	}
	if err := socket.AsyncListenAndServe(); err != nil {
		log.Fatal("coapws: ", err)
	}

	log.Printf("coapws: serving ws://:%d%s\n", *port, *uri)

	for dg := range rx {
		req, err := coapmsg.Parse(dg.Data)
		if err != nil {
			log.Println("coapws: malformed frame from", dg.Origin, ":", err)
			continue
		}
		log.Println("coapws: received", req)

		if !req.IsConfirmable() {
			continue
		}

		resp := coapmsg.NewMessage()
		resp.SetType(coapmsg.Acknowledgement)
		resp.SetMsgID(uint32(req.GetMsgID()))
		resp.SetToken(req.GetToken())
		resp.SetCode(coapmsg.Content.Class(), coapmsg.Content.Detail())
		resp.SetPayload(req.GetPayload())

		out, err := coapmsg.Format(resp)
		if err != nil {
			log.Println("coapws: formatting response:", err)
			continue
		}
		if _, err := dg.Socket.Write(out, dg.Origin); err != nil {
			log.Println("coapws: write failed:", err)
		}
	}
}
