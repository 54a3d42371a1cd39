package sckt

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/net/ipv6"
)

// udp6socket is an IPv6 multicast UDP transport, joining the IPv6
// all-nodes multicast group (ff02::1) on the given interface so
// cmd/coapmcast can send a single GET and collect replies from every
// node that answers it.
type udp6socket struct {
	id   int
	onRx chan<- *Datagram

	netIf  *net.Interface
	port   int
	pktCon *ipv6.PacketConn

	localaddr net.Addr
}

func (sckt *udp6socket) Write(data []byte, dest net.Addr) (int, error) {
	return sckt.pktCon.WriteTo(data, nil, dest)
}

func (sckt *udp6socket) Close() error {
	return sckt.pktCon.Close()
}

func (sckt *udp6socket) SocketID() int {
	return sckt.id
}

func (sckt *udp6socket) ReceiveCh(newChan chan<- *Datagram) chan<- *Datagram {
	if newChan != nil {
		sckt.onRx = newChan
	}
	return sckt.onRx
}

func (sckt *udp6socket) Network() string {
	return sckt.localaddr.Network()
}

func (sckt *udp6socket) String() string {
	return sckt.localaddr.String()
}

func (sckt *udp6socket) LocalAddr() net.Addr {
	return sckt.localaddr
}

// AsyncListenAndServe starts the receive loop in a goroutine and
// returns immediately; the returned error is always nil. The loop
// stops at the first read error (including the socket being closed)
// without reporting it.
func (sckt *udp6socket) AsyncListenAndServe() error {
	go func() {
		buf := make([]byte, 1500)
		for {
			n, _, addr, err := sckt.pktCon.ReadFrom(buf)
			if err != nil {
				return
			}
			if sckt.onRx == nil {
				continue
			}
			cpy := make([]byte, n)
			copy(cpy, buf[:n])
			sckt.onRx <- &Datagram{Origin: addr, Data: cpy, Socket: sckt}
		}
	}()
	return nil
}

// NewUdp6Socket opens a UDP6 socket on port, joined to the IPv6
// all-nodes multicast group on the interface identified by
// netIfIndex. Incoming datagrams are delivered on chRx.
func NewUdp6Socket(socketID, netIfIndex, port int, chRx chan<- *Datagram) (Socket, error) {
	netIf, err := net.InterfaceByIndex(netIfIndex)
	if err != nil {
		return nil, fmt.Errorf("sckt: resolving interface %d: %w", netIfIndex, err)
	}

	conn, err := net.ListenPacket("udp6", "[::]:"+strconv.Itoa(port))
	if err != nil {
		return nil, fmt.Errorf("sckt: listening on port %d: %w", port, err)
	}

	pktCon := ipv6.NewPacketConn(conn)
	if err := pktCon.JoinGroup(netIf, &net.UDPAddr{IP: net.ParseIP("ff02::1")}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sckt: joining multicast group: %w", err)
	}

	return &udp6socket{
		id:        socketID,
		onRx:      chRx,
		netIf:     netIf,
		port:      port,
		pktCon:    pktCon,
		localaddr: conn.LocalAddr(),
	}, nil
}
