// Command coapudp is a stateless CoAP-over-UDP echo server: it parses
// every inbound datagram, and if it decodes to a Confirmable request
// answers with an Acknowledgement carrying response code 2.05
// (Content) and the same payload back. It does not retransmit, does
// not deduplicate, and keeps no per-client state across datagrams;
// those concerns belong to a transport layer this module deliberately
// does not implement.
package main

import (
	"flag"
	"log"
	"net"

	"github.com/lobaro/go-coapmsg/coapmsg"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5683", "UDP address to listen on")
	flag.Parse()

	udpAddr, err := net.ResolveUDPAddr("udp4", *addr)
	if err != nil {
		log.Fatal("coapudp: resolve address: ", err)
	}
	conn, err := net.ListenUDP("udp4", udpAddr)
	if err != nil {
		log.Fatal("coapudp: listen: ", err)
	}
	defer conn.Close()

	log.Println("coapudp: listening on", *addr)

	buf := make([]byte, 1500)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			log.Println("coapudp: read failed:", err)
			continue
		}
		handle(conn, from, buf[:n])
	}
}

func handle(conn *net.UDPConn, from *net.UDPAddr, data []byte) {
	req, err := coapmsg.Parse(data)
	if err != nil {
		log.Println("coapudp: dropping malformed datagram from", from, ":", err)
		return
	}
	if req.IsEmpty() || !req.IsConfirmable() {
		return
	}

	resp := coapmsg.NewMessage()
	resp.SetType(coapmsg.Acknowledgement)
	resp.SetMsgID(uint32(req.GetMsgID()))
	resp.SetToken(req.GetToken())
	resp.SetCode(coapmsg.Content.Class(), coapmsg.Content.Detail())
	resp.SetPayload(req.GetPayload())

	out, err := coapmsg.Format(resp)
	if err != nil {
		log.Println("coapudp: formatting response failed:", err)
		return
	}
	if _, err := conn.WriteToUDP(out, from); err != nil {
		log.Println("coapudp: write failed:", err)
	}
}
