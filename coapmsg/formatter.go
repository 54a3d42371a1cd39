package coapmsg

// extForm picks the wire encoding form for a delta or length value
// and returns the nibble to place in the option header plus any
// extension bytes that must follow it.
//
// DESIGN.md Open Question 2: the length's extension form must be
// chosen from the option's own length, never from its number; this
// function is shared by both fields precisely so that mistake can't
// resurface by having two near-identical call sites drift apart.
func extForm(v int) (nibble int, extra []byte) {
	switch {
	case v <= extLiteralMax:
		return v, nil
	case v < extWordAddend:
		return extByteForm, []byte{byte(v - extByteAddend)}
	default:
		ev := v - extWordAddend
		return extWordForm, []byte{byte(ev >> 8), byte(ev)}
	}
}

// writer is a bounds-checked cursor over a caller-supplied buffer,
// used so FormatInto can fail with ErrNoSpace at the exact point the
// buffer runs out rather than over- or under-shooting.
type writer struct {
	buf []byte
	pos int
}

func (w *writer) writeByte(b byte) error {
	if w.pos >= len(w.buf) {
		return noSpace("no room for byte at offset %d", w.pos)
	}
	w.buf[w.pos] = b
	w.pos++
	return nil
}

func (w *writer) write(p []byte) error {
	if len(w.buf)-w.pos < len(p) {
		return noSpace("no room for %d bytes at offset %d", len(p), w.pos)
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return nil
}

func writeOptionHeader(w *writer, delta, length int) error {
	dn, dx := extForm(delta)
	ln, lx := extForm(length)
	if err := w.writeByte(byte(dn<<4) | byte(ln)); err != nil {
		return err
	}
	if err := w.write(dx); err != nil {
		return err
	}
	return w.write(lx)
}

// FormatInto runs the Validator, then writes msg into buf, returning
// the number of bytes written. It fails with ErrNoSpace, leaving buf
// partially written but msg untouched, the instant buf runs out of
// room at any stage.
func FormatInto(msg *Message, buf []byte) (int, error) {
	if err := validate(msg); err != nil {
		log.WithField("error", err).Debug("coapmsg: refusing to format invalid message")
		return 0, err
	}

	w := &writer{buf: buf}

	header := byte(1<<6) | (uint8(msg.Type)&0x3)<<4 | uint8(msg.tokenLen&0x0f)
	if err := w.writeByte(header); err != nil {
		return 0, err
	}
	if err := w.writeByte((msg.CodeClass&0x7)<<5 | (msg.CodeDetail & 0x1f)); err != nil {
		return 0, err
	}
	if err := w.write([]byte{byte(msg.MsgID >> 8), byte(msg.MsgID)}); err != nil {
		return 0, err
	}
	if err := w.write(msg.token[:msg.tokenLen]); err != nil {
		return 0, err
	}

	prev := OptionNumber(0)
	for opt := msg.Options.First(); opt != nil; opt = opt.Next() {
		if err := writeOptionHeader(w, int(opt.Num-prev), opt.Len()); err != nil {
			return 0, err
		}
		if err := w.write(opt.Value); err != nil {
			return 0, err
		}
		prev = opt.Num
	}

	if len(msg.Payload) > 0 {
		if err := w.writeByte(0xff); err != nil {
			return 0, err
		}
		if err := w.write(msg.Payload); err != nil {
			return 0, err
		}
	}

	return w.pos, nil
}

// EncodedLen returns the exact number of bytes Format would produce
// for msg, without validating or writing anything.
func EncodedLen(msg *Message) int {
	n := 4 + msg.tokenLen
	prev := OptionNumber(0)
	for opt := msg.Options.First(); opt != nil; opt = opt.Next() {
		n += 1 + extLen(int(opt.Num-prev)) + extLen(opt.Len()) + opt.Len()
		prev = opt.Num
	}
	if len(msg.Payload) > 0 {
		n += 1 + len(msg.Payload)
	}
	return n
}

func extLen(v int) int {
	switch {
	case v <= extLiteralMax:
		return 0
	case v < extWordAddend:
		return 1
	default:
		return 2
	}
}

// Format validates msg and returns its wire encoding as a freshly
// allocated slice sized to fit exactly.
func Format(msg *Message) ([]byte, error) {
	if err := validate(msg); err != nil {
		return nil, err
	}
	buf := make([]byte, EncodedLen(msg))
	n, err := FormatInto(msg, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
