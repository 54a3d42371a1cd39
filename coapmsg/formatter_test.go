package coapmsg

import "testing"

func TestFormatRejectsInvalidMessage(t *testing.T) {
	m := NewMessage()
	m.SetType(NonConfirmable) // Empty + NON is invalid.
	if _, err := Format(m); !isBadMessage(err) {
		t.Fatalf("Format(invalid) = %v, want BadMessage", err)
	}
}

func TestFormatIntoNoSpaceAtEachStage(t *testing.T) {
	m := validMinimal()
	m.SetToken([]byte{1, 2})
	m.AddOption(URIPath, []byte("ab"))
	m.SetPayload([]byte("xyz"))

	full := EncodedLen(m)
	for n := 0; n < full; n++ {
		buf := make([]byte, n)
		if _, err := FormatInto(m, buf); !isNoSpace(err) {
			t.Fatalf("FormatInto with %d-byte buffer (need %d) = %v, want NoSpace", n, full, err)
		}
	}

	buf := make([]byte, full)
	written, err := FormatInto(m, buf)
	if err != nil {
		t.Fatalf("FormatInto with exact-size buffer failed: %v", err)
	}
	if written != full {
		t.Fatalf("FormatInto wrote %d bytes, want %d", written, full)
	}
}

func TestFormatIntoDoesNotMutateMessageOnFailure(t *testing.T) {
	m := validMinimal()
	m.SetPayload([]byte("hello"))
	before := m.Clone()

	buf := make([]byte, 2)
	if _, err := FormatInto(m, buf); err == nil {
		t.Fatalf("expected NoSpace")
	}
	if !m.Equal(before) {
		t.Fatalf("FormatInto mutated the input message on failure")
	}
}

func TestFormatOptionHeaderNibbles(t *testing.T) {
	m := validMinimal()
	m.AddOption(1, nil)   // delta 1, literal.
	m.AddOption(14, nil)  // delta 13, one-byte extension.
	m.AddOption(283, nil) // delta 269, two-byte extension.

	out, err := Format(m)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	parsed, err := Parse(out)
	if err != nil {
		t.Fatalf("round-trip Parse failed: %v", err)
	}
	nums := []OptionNumber{}
	for o := parsed.FirstOption(); o != nil; o = o.Next() {
		nums = append(nums, o.Num)
	}
	want := []OptionNumber{1, 14, 283}
	if len(nums) != len(want) {
		t.Fatalf("got %v, want %v", nums, want)
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Fatalf("got %v, want %v", nums, want)
		}
	}
}

func TestEncodedLenMatchesActualOutput(t *testing.T) {
	m := validMinimal()
	m.SetToken([]byte{1, 2, 3})
	m.AddOption(URIPath, []byte("resource"))
	m.SetPayload([]byte("body"))

	out, err := Format(m)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(out) != EncodedLen(m) {
		t.Fatalf("len(Format()) = %d, EncodedLen() = %d", len(out), EncodedLen(m))
	}
}
