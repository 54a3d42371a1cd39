package sckt

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

// wsAddr wraps a remote WebSocket endpoint so it satisfies net.Addr
// for the purposes of Datagram.Origin and Socket.Write's dest lookup.
type wsAddr string

func (a wsAddr) Network() string { return "ws" }
func (a wsAddr) String() string  { return string(a) }

// wsSocket is a WebSocket transport: an HTTP server that upgrades
// every request on Uri to a WebSocket and forwards each binary frame
// as one Datagram. It adds no framing of its own; RFC 8323's message
// format is not implemented.
type wsSocket struct {
	id   int
	Port int
	Uri  string
	onRx chan<- *Datagram

	mu    sync.Mutex
	conns map[string]*websocket.Conn

	upgrader websocket.Upgrader
}

// NewWSSocket returns a Socket that serves WebSocket connections on
// http://:port/uri. AsyncListenAndServe starts the HTTP server.
func NewWSSocket(socketID int, uri string, port int, chRx chan<- *Datagram) (Socket, error) {
	return &wsSocket{
		id:    socketID,
		Port:  port,
		Uri:   uri,
		onRx:  chRx,
		conns: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

func (sckt *wsSocket) Write(data []byte, dest net.Addr) (int, error) {
	sckt.mu.Lock()
	conn := sckt.conns[dest.String()]
	sckt.mu.Unlock()

	if conn == nil {
		return 0, fmt.Errorf("sckt: no open WebSocket connection to %s", dest)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (sckt *wsSocket) Close() error {
	sckt.mu.Lock()
	defer sckt.mu.Unlock()
	for _, conn := range sckt.conns {
		conn.Close()
	}
	return nil
}

func (sckt *wsSocket) SocketID() int { return sckt.id }

func (sckt *wsSocket) ReceiveCh(newChan chan<- *Datagram) chan<- *Datagram {
	if newChan != nil {
		sckt.onRx = newChan
	}
	return sckt.onRx
}

func (sckt *wsSocket) Network() string { return "ws over TCP" }

func (sckt *wsSocket) String() string {
	return sckt.Uri + ":" + strconv.Itoa(sckt.Port)
}

func (sckt *wsSocket) LocalAddr() net.Addr {
	return wsAddr(sckt.Uri + ":" + strconv.Itoa(sckt.Port))
}

func (sckt *wsSocket) reqHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := sckt.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("sckt: upgrade failed:", err)
		return
	}
	remote := conn.RemoteAddr().String()

	sckt.mu.Lock()
	sckt.conns[remote] = conn
	sckt.mu.Unlock()

	defer func() {
		conn.Close()
		sckt.mu.Lock()
		delete(sckt.conns, remote)
		sckt.mu.Unlock()
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.BinaryMessage || sckt.onRx == nil {
			continue
		}
		cpy := make([]byte, len(data))
		copy(cpy, data)
		sckt.onRx <- &Datagram{Origin: wsAddr(remote), Data: cpy, Socket: sckt}
	}
}

// AsyncListenAndServe starts the HTTP server in a goroutine.
func (sckt *wsSocket) AsyncListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc(sckt.Uri, sckt.reqHandler)
	go func() {
		if err := http.ListenAndServe(":"+strconv.Itoa(sckt.Port), mux); err != nil {
			log.Println("sckt: websocket server stopped:", err)
		}
	}()
	return nil
}
