// Command coapmcast sends a single CoAP GET for /.well-known/core to
// the IPv6 all-nodes multicast group on a chosen interface and prints
// every reply it receives within a short window. It demonstrates the
// sckt.Socket transport abstraction against golang.org/x/net/ipv6;
// it does not retry, does not deduplicate replies from the same
// origin, and exits once the window elapses.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/lobaro/go-coapmsg/coapmsg"
	sckt "github.com/lobaro/go-coapmsg/socket"
)

func main() {
	ifIndex := flag.Int("if", 0, "network interface index to join the multicast group on")
	window := flag.Duration("window", 2*time.Second, "how long to collect replies")
	flag.Parse()

	if *ifIndex == 0 {
		fmt.Fprintln(os.Stderr, "usage: coapmcast -if <interface index>")
		listInterfaces()
		os.Exit(2)
	}

	rx := make(chan *sckt.Datagram, 16)
	socket, err := sckt.NewUdp6Socket(1, *ifIndex, 5683, rx)
	if err != nil {
		log.Fatal("coapmcast: ", err)
	}
	if err := socket.AsyncListenAndServe(); err != nil {
		log.Fatal("coapmcast: ", err)
	}

	req := coapmsg.NewMessage()
	req.SetType(coapmsg.NonConfirmable)
	req.SetCode(coapmsg.GET.Class(), coapmsg.GET.Detail())
	req.SetMsgID(1)
	req.SetPathString("/.well-known/core")

	buf, err := coapmsg.Format(req)
	if err != nil {
		log.Fatal("coapmcast: formatting request: ", err)
	}

	dest := &net.UDPAddr{IP: net.ParseIP("ff02::1"), Port: 5683}
	if _, err := socket.Write(buf, dest); err != nil {
		log.Fatal("coapmcast: sending request: ", err)
	}

	deadline := time.After(*window)
	for {
		select {
		case dg := <-rx:
			resp, err := coapmsg.Parse(dg.Data)
			if err != nil {
				log.Println("coapmcast: malformed reply from", dg.Origin, ":", err)
				continue
			}
			fmt.Printf("%s -> %s\n", dg.Origin, resp)
		case <-deadline:
			return
		}
	}
}

func listInterfaces() {
	ifaces, _ := net.Interfaces()
	fmt.Fprintln(os.Stderr, "available interfaces:")
	for _, i := range ifaces {
		fmt.Fprintf(os.Stderr, "  %d: %s\n", i.Index, i.Name)
	}
}
