// Command coapserial carries CoAP messages over a serial line. The
// teacher's own UART transport frames messages with SLIP (see
// DESIGN.md); the SLIP fork it depends on is not publicly fetchable,
// so this bridge frames instead with a 2-byte big-endian length
// prefix directly over github.com/tarm/serial. It forwards each
// framed message to stdout via coapmsg.Parse for inspection; it does
// not retransmit or acknowledge on this side of the link.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/tarm/serial"

	"github.com/lobaro/go-coapmsg/coapmsg"
)

func main() {
	port := flag.String("port", "/dev/ttyUSB0", "serial device")
	baud := flag.Int("baud", 115200, "baud rate")
	flag.Parse()

	conn, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud})
	if err != nil {
		log.Fatal("coapserial: opening port: ", err)
	}
	defer conn.Close()

	log.Printf("coapserial: reading framed CoAP messages from %s at %d baud\n", *port, *baud)

	for {
		msg, err := readFrame(conn)
		if err != nil {
			if err == io.EOF {
				return
			}
			log.Println("coapserial: frame read failed:", err)
			continue
		}
		parsed, err := coapmsg.Parse(msg)
		if err != nil {
			log.Println("coapserial: malformed message:", err)
			continue
		}
		fmt.Println(parsed)
	}
}

// readFrame reads one 2-byte big-endian length prefix followed by
// that many message bytes.
func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeFrame writes msg with the same 2-byte big-endian length prefix
// readFrame expects. Nothing in this command calls it.
func writeFrame(w io.Writer, msg []byte) error {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(msg)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(msg)
	return err
}
