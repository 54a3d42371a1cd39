package coapmsg

import "testing"

func sampleMessages() []*Message {
	var out []*Message

	m1 := NewMessage()
	m1.SetType(Confirmable)
	m1.SetMsgID(0x1234)
	out = append(out, m1)

	m2 := NewMessage()
	m2.SetType(Confirmable)
	m2.SetCode(0, 1)
	m2.SetMsgID(1)
	m2.SetToken([]byte{0x54})
	m2.AddOption(URIPath, []byte("a"))
	out = append(out, m2)

	m3 := NewMessage()
	m3.SetType(Acknowledgement)
	m3.SetCode(2, 5)
	m3.SetMsgID(0xBEEF)
	m3.SetPayload([]byte("hi"))
	out = append(out, m3)

	m4 := NewMessage()
	m4.SetType(Reset)
	out = append(out, m4)

	m5 := NewMessage()
	m5.SetType(Confirmable)
	m5.SetCode(0, 1)
	m5.SetMsgID(7)
	m5.AddOption(280, []byte{0xAA})
	out = append(out, m5)

	m6 := NewMessage()
	m6.SetType(Confirmable)
	m6.SetCode(0, 1)
	m6.SetMsgID(9)
	m6.AddOption(URIPath, []byte("a"))
	m6.AddOption(URIPath, []byte("b"))
	out = append(out, m6)

	return out
}

// Invariant 1: format-then-parse round trip.
func TestRoundTripFormatThenParse(t *testing.T) {
	for i, m := range sampleMessages() {
		buf, err := Format(m)
		if err != nil {
			t.Fatalf("case %d: Format failed: %v", i, err)
		}
		parsed, err := Parse(buf)
		if err != nil {
			t.Fatalf("case %d: Parse failed: %v", i, err)
		}
		if !m.Equal(parsed) {
			t.Fatalf("case %d: round trip mismatch: original=%s parsed=%s", i, m, parsed)
		}
	}
}

// Invariant 2: parse-then-format fixed point, for buffers already in
// canonical ascending-option-number form.
func TestRoundTripParseThenFormat(t *testing.T) {
	bufs := [][]byte{
		{0x40, 0x00, 0x12, 0x34},
		{0x41, 0x01, 0x00, 0x01, 0x54, 0xB1, 0x61},
		{0x60, 0x45, 0xBE, 0xEF, 0xFF, 0x68, 0x69},
		{0x70, 0x00, 0xAB, 0xCD},
		{0x40, 0x01, 0x00, 0x01, 0xE0, 0x00, 0x0B},
		{0x40, 0x01, 0x00, 0x01, 0xB1, 0x61, 0x01, 0x62},
	}
	for i, buf := range bufs {
		m, err := Parse(buf)
		if err != nil {
			t.Fatalf("case %d: Parse failed: %v", i, err)
		}
		out, err := Format(m)
		if err != nil {
			t.Fatalf("case %d: Format failed: %v", i, err)
		}
		if !bytesEqual(out, buf) {
			t.Fatalf("case %d: Format(Parse(buf)) = % x, want % x", i, out, buf)
		}
	}
}

// Invariant 3: Validator idempotence.
func TestRoundTripValidatorIdempotence(t *testing.T) {
	for i, m := range sampleMessages() {
		if err := validate(m); err != nil {
			t.Fatalf("case %d: unexpectedly invalid: %v", i, err)
		}
		if err := validate(m); err != nil {
			t.Fatalf("case %d: became invalid on second call: %v", i, err)
		}
	}
}

// Invariant 4: option ordering invariant after arbitrary AddOption calls.
func TestRoundTripOptionOrderingInvariant(t *testing.T) {
	m := NewMessage()
	for _, n := range []OptionNumber{11, 35, 3, 60, 1, 14} {
		if _, err := m.AddOption(n, nil); err != nil {
			t.Fatalf("AddOption(%d) failed: %v", n, err)
		}
	}
	prev := OptionNumber(0)
	first := true
	for opt := m.FirstOption(); opt != nil; opt = opt.Next() {
		if !first && opt.Num < prev {
			t.Fatalf("options not ascending: %d followed by smaller number", prev)
		}
		prev = opt.Num
		first = false
	}
}

// Invariant 5: buffer purity across every setter.
func TestRoundTripBufferPurity(t *testing.T) {
	m := NewMessage()

	tok := []byte{1, 2, 3}
	m.SetToken(tok)
	tok[0] = 0xff

	val := []byte("option-value")
	m.AddOption(URIPath, val)
	val[0] = 'X'

	payload := []byte("payload")
	m.SetPayload(payload)
	payload[0] = 'X'

	if m.GetToken()[0] != 1 {
		t.Fatalf("token was not copied")
	}
	if string(m.FirstOption().Value) != "option-value" {
		t.Fatalf("option value was not copied")
	}
	if string(m.GetPayload()) != "payload" {
		t.Fatalf("payload was not copied")
	}
}

// Invariant 6: bounded token.
func TestRoundTripBoundedToken(t *testing.T) {
	m := NewMessage()
	if err := m.SetToken(make([]byte, 8)); err != nil {
		t.Fatalf("SetToken(8) failed: %v", err)
	}
	if m.GetTokenLen() > 8 {
		t.Fatalf("GetTokenLen() = %d, exceeds 8", m.GetTokenLen())
	}
	if err := m.SetToken(make([]byte, 100)); err == nil {
		t.Fatalf("SetToken(100) succeeded, want InvalidArgument")
	}
	if m.GetTokenLen() > 8 {
		t.Fatalf("GetTokenLen() = %d, exceeds 8 after rejected SetToken", m.GetTokenLen())
	}
}
