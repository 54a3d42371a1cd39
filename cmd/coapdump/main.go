// Command coapdump parses CoAP messages from hex text and prints their
// structure. It is a pure inspector: no networking, no retransmission,
// nothing but coapmsg.Parse and coapmsg.Message.String.
//
// Usage:
//
//	coapdump 40 00 12 34
//	echo "61 01 00 01 54 B1 61" | coapdump
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lobaro/go-coapmsg/coapmsg"
)

func main() {
	var fields []string
	if len(os.Args) > 1 {
		fields = os.Args[1:]
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields = append(fields, strings.Fields(scanner.Text())...)
		}
	}

	buf, err := parseHex(fields)
	if err != nil {
		fmt.Fprintln(os.Stderr, "coapdump:", err)
		os.Exit(1)
	}

	msg, err := coapmsg.Parse(buf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "coapdump: parse failed:", err)
		os.Exit(1)
	}

	fmt.Println(msg)
	for opt := msg.FirstOption(); opt != nil; opt = opt.Next() {
		fmt.Printf("  option %d: % x\n", opt.Num, opt.Value)
	}
	if n := msg.GetPayloadLen(); n > 0 {
		fmt.Printf("  payload (%d bytes): %q\n", n, msg.GetPayload())
	}
}

func parseHex(fields []string) ([]byte, error) {
	buf := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q: %w", f, err)
		}
		buf = append(buf, byte(v))
	}
	return buf, nil
}
