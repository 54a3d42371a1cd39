package coapmsg

import "encoding/binary"

// Extension forms for the option delta and length nibbles (RFC 7252
// §3.1).
const (
	extLiteralMax = 12
	extByteForm   = 13
	extByteAddend = 13
	extWordForm   = 14
	extWordAddend = 269
	extReserved   = 15
)

// readExt decodes one option delta/length nibble, consuming the
// extension bytes it needs from b. The signed-byte pitfall the C
// source this codec is grounded on has (comparing a byte to -1 to
// detect 0xFF) does not apply here: Go bytes are unsigned and every
// length check below happens before any indexing.
func readExt(nibble int, b []byte) (value int, rest []byte, err error) {
	switch {
	case nibble <= extLiteralMax:
		return nibble, b, nil
	case nibble == extByteForm:
		if len(b) < 1 {
			return 0, nil, badMessage("truncated 1-byte option extension")
		}
		return extByteAddend + int(b[0]), b[1:], nil
	case nibble == extWordForm:
		if len(b) < 2 {
			return 0, nil, badMessage("truncated 2-byte option extension")
		}
		return extWordAddend + int(binary.BigEndian.Uint16(b[:2])), b[2:], nil
	default: // extReserved
		return 0, nil, badMessage("reserved option nibble 15")
	}
}

// Parse decodes buf into a Message. It succeeds iff the entire buffer
// is consumed as a conforming CoAP message and the Validator accepts
// the result. On any failure, Parse returns a nil Message: there is
// never a partially built value for the caller to observe, which is
// the Go equivalent of the spec's "destroy the Message before
// returning on failure".
func Parse(buf []byte) (*Message, error) {
	if len(buf) < 4 {
		return nil, badMessage("message shorter than the 4-byte header (%d bytes)", len(buf))
	}

	ver := buf[0] >> 6
	if ver != 1 {
		return nil, invalidArgument("unsupported CoAP version %d", ver)
	}

	typ := COAPType((buf[0] >> 4) & 0x3)
	tokenLen := int(buf[0] & 0x0f)
	if tokenLen > maxTokenLen {
		return nil, badMessage("token length %d exceeds 8", tokenLen)
	}

	codeClass := buf[1] >> 5
	codeDetail := buf[1] & 0x1f
	if !validCodeClass(codeClass) {
		return nil, badMessage("unsupported code class %d", codeClass)
	}

	msgID := binary.BigEndian.Uint16(buf[2:4])

	rest := buf[4:]
	if len(rest) < tokenLen {
		return nil, badMessage("buffer truncated before %d-byte token", tokenLen)
	}
	token := rest[:tokenLen]
	rest = rest[tokenLen:]

	msg := NewMessage()
	msg.Type = typ
	msg.CodeClass = codeClass
	msg.CodeDetail = codeDetail
	msg.MsgID = msgID
	msg.tokenLen = tokenLen
	copy(msg.token[:], token)

	prev := OptionNumber(0)
	for len(rest) > 0 {
		if rest[0] == 0xff {
			rest = rest[1:]
			// Test len==0 before looking at another byte: reading
			// past the buffer's end to re-check the marker is the
			// undefined-behaviour trap the C source falls into.
			if len(rest) == 0 {
				return nil, badMessage("payload marker present with zero-length payload")
			}
			msg.Payload = append([]byte(nil), rest...)
			rest = nil
			break
		}

		deltaNibble := int(rest[0] >> 4)
		lengthNibble := int(rest[0] & 0x0f)
		rest = rest[1:]

		var delta, length int
		var err error
		delta, rest, err = readExt(deltaNibble, rest)
		if err != nil {
			return nil, err
		}
		length, rest, err = readExt(lengthNibble, rest)
		if err != nil {
			return nil, err
		}

		if len(rest) < length {
			return nil, badMessage("option value truncated (need %d, have %d)", length, len(rest))
		}

		num := prev + OptionNumber(delta)
		msg.Options.AppendLast(num, rest[:length])
		rest = rest[length:]
		prev = num
	}

	if err := validate(msg); err != nil {
		log.WithField("error", err).Debug("coapmsg: parsed message rejected by validator")
		return nil, err
	}

	log.WithField("msgID", msg.MsgID).Trace("coapmsg: parsed message")
	return msg, nil
}
