package coapmsg

import "fmt"

// maxTokenLen is the largest token the CoAP header's 4-bit TKL field
// can express.
const maxTokenLen = 8

// Message is a CoAP message: the aggregate of §3's header scalars, an
// ordered option sequence, and a payload. A zero-value Message is not
// ready to use; call NewMessage.
type Message struct {
	Ver        uint8
	Type       COAPType
	CodeClass  uint8
	CodeDetail uint8
	MsgID      uint16

	token    [maxTokenLen]byte
	tokenLen int

	Options *OptionSequence
	Payload []byte
}

// NewMessage returns a Message in its cleared state: version 1, type
// Confirmable, code 0.00, no token, no options, no payload.
func NewMessage() *Message {
	return &Message{
		Ver:     1,
		Options: &OptionSequence{},
	}
}

// Reset returns m to its cleared state, releasing its options and
// payload. Destroy is an alias kept for readers translating from the
// spec's create/destroy vocabulary; in Go the two operations coincide
// since there is nothing left to free once nothing references it.
func (m *Message) Reset() {
	m.Ver = 1
	m.Type = Confirmable
	m.CodeClass = 0
	m.CodeDetail = 0
	m.MsgID = 0
	m.token = [maxTokenLen]byte{}
	m.tokenLen = 0
	m.Options = &OptionSequence{}
	m.Payload = nil
}

// Destroy is Reset; see the Reset doc comment.
func (m *Message) Destroy() { m.Reset() }

// GetVer returns the protocol version, always 1 for a valid Message.
func (m *Message) GetVer() uint8 { return m.Ver }

// GetType returns the message type.
func (m *Message) GetType() COAPType { return m.Type }

// GetCodeClass returns the code's class, [0,7].
func (m *Message) GetCodeClass() uint8 { return m.CodeClass }

// GetCodeDetail returns the code's detail, [0,31].
func (m *Message) GetCodeDetail() uint8 { return m.CodeDetail }

// Code returns the packed class/detail code.
func (m *Message) Code() COAPCode { return BuildCode(m.CodeClass, m.CodeDetail) }

// GetMsgID returns the message id.
func (m *Message) GetMsgID() uint16 { return m.MsgID }

// GetTokenLen returns the number of valid token bytes, 0..8.
func (m *Message) GetTokenLen() int { return m.tokenLen }

// GetToken returns a copy of the message's token bytes. Mutating the
// returned slice does not affect m.
func (m *Message) GetToken() []byte {
	out := make([]byte, m.tokenLen)
	copy(out, m.token[:m.tokenLen])
	return out
}

// GetPayload returns a copy of the message's payload. Mutating the
// returned slice does not affect m.
func (m *Message) GetPayload() []byte {
	if len(m.Payload) == 0 {
		return nil
	}
	out := make([]byte, len(m.Payload))
	copy(out, m.Payload)
	return out
}

// GetPayloadLen returns len(m.Payload).
func (m *Message) GetPayloadLen() int { return len(m.Payload) }

// FirstOption returns the first option record, or nil if there are
// none.
func (m *Message) FirstOption() *Option { return m.Options.First() }

// IsConfirmable reports whether the message is Confirmable.
func (m *Message) IsConfirmable() bool { return m.Type == Confirmable }

// IsEmpty reports whether the message has code 0.00 (§3 "Empty
// message").
func (m *Message) IsEmpty() bool { return m.CodeClass == 0 && m.CodeDetail == 0 }

// SetType sets the message type, rejecting anything outside
// {Confirmable, NonConfirmable, Acknowledgement, Reset}.
func (m *Message) SetType(t COAPType) error {
	if t > Reset {
		return invalidArgument("unknown message type %d", t)
	}
	m.Type = t
	return nil
}

// SetCode sets the code's class and detail, rejecting values outside
// their field widths. This setter alone does not enforce §3's
// stricter {0,2,4,5} class conformance; that check belongs to the
// Validator and only binds on the parse path and at Format time.
func (m *Message) SetCode(class, detail uint8) error {
	if class > 7 {
		return invalidArgument("code class %d exceeds 7", class)
	}
	if detail > 31 {
		return invalidArgument("code detail %d exceeds 31", detail)
	}
	m.CodeClass = class
	m.CodeDetail = detail
	return nil
}

// SetMsgID sets the message id, rejecting values that do not fit in
// 16 bits.
func (m *Message) SetMsgID(id uint32) error {
	if id > 0xffff {
		return invalidArgument("message id %d exceeds 65535", id)
	}
	m.MsgID = uint16(id)
	return nil
}

// SetToken copies buf as the message's token, rejecting tokens longer
// than 8 bytes. buf is not retained.
func (m *Message) SetToken(buf []byte) error {
	if len(buf) > maxTokenLen {
		return invalidArgument("token length %d exceeds 8", len(buf))
	}
	m.token = [maxTokenLen]byte{}
	copy(m.token[:], buf)
	m.tokenLen = len(buf)
	return nil
}

// AddOption appends an option to m's sequence in ascending-number
// order (Options.InsertOrdered), copying val. It fails with
// ErrOutOfMemory if val is too long to be represented by the wire
// length encoding (see ErrOutOfMemory).
func (m *Message) AddOption(num OptionNumber, val []byte) (*Option, error) {
	if len(val) > maxOptionValueLen {
		return nil, outOfMemory("option %d value length %d exceeds wire maximum %d", num, len(val), maxOptionValueLen)
	}
	return m.Options.InsertOrdered(num, val), nil
}

// RemoveOptions deletes every option with the given number.
func (m *Message) RemoveOptions(num OptionNumber) {
	m.Options.removeMatching(num)
}

// SetPayload replaces m's payload with a copy of buf. Passing a
// zero-length buf frees the existing payload.
func (m *Message) SetPayload(buf []byte) {
	if len(buf) == 0 {
		m.Payload = nil
		return
	}
	m.Payload = append([]byte(nil), buf...)
}

// Copy deep-clones src into dst, replacing dst's prior options and
// payload.
func Copy(dst, src *Message) {
	dst.Ver = src.Ver
	dst.Type = src.Type
	dst.CodeClass = src.CodeClass
	dst.CodeDetail = src.CodeDetail
	dst.MsgID = src.MsgID
	dst.token = src.token
	dst.tokenLen = src.tokenLen
	dst.Options = src.Options.clone()
	dst.Payload = append([]byte(nil), src.Payload...)
}

// Clone returns a deep copy of m.
func (m *Message) Clone() *Message {
	dst := NewMessage()
	Copy(dst, m)
	return dst
}

// Equal reports whether m and other have identical scalars, identical
// options in the same order, and identical payload bytes.
func (m *Message) Equal(other *Message) bool {
	if other == nil {
		return false
	}
	if m.Ver != other.Ver || m.Type != other.Type || m.CodeClass != other.CodeClass ||
		m.CodeDetail != other.CodeDetail || m.MsgID != other.MsgID ||
		m.tokenLen != other.tokenLen || m.token != other.token {
		return false
	}
	if len(m.Payload) != len(other.Payload) {
		return false
	}
	for i := range m.Payload {
		if m.Payload[i] != other.Payload[i] {
			return false
		}
	}
	a, b := m.Options.First(), other.Options.First()
	for a != nil && b != nil {
		if a.Num != b.Num || len(a.Value) != len(b.Value) {
			return false
		}
		for i := range a.Value {
			if a.Value[i] != b.Value[i] {
				return false
			}
		}
		a, b = a.Next(), b.Next()
	}
	return a == nil && b == nil
}

func (m *Message) String() string {
	return fmt.Sprintf("coapmsg.Message{Type:%s, Code:%d.%02d, MsgID:%d, Token:%x, Options:%d, Payload:%dB}",
		m.Type, m.CodeClass, m.CodeDetail, m.MsgID, m.GetToken(), m.Options.Len(), len(m.Payload))
}

// ParseTypeAndMsgID extracts just the type and message id from a
// header without fully parsing or validating the message, for
// transports that must dispatch before committing to a full parse.
func ParseTypeAndMsgID(buf []byte) (COAPType, uint16, error) {
	if len(buf) < 4 {
		return 0, 0, badMessage("buffer shorter than the 4-byte header (%d bytes)", len(buf))
	}
	return COAPType((buf[0] >> 4) & 0x3), uint16(buf[2])<<8 | uint16(buf[3]), nil
}
