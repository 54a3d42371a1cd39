package coapmsg

import (
	"fmt"
	"strings"
)

// OptionValue is a read-only view over an option's raw bytes with
// accessors for CoAP's uint/opaque/string value formats (RFC 7252
// §3.2). uint values are encoded big-endian with no leading zero
// byte, the same convention encodeUint/decodeUint below use.
type OptionValue []byte

// IsSet reports whether the value carries any bytes.
func (v OptionValue) IsSet() bool { return len(v) > 0 }

// IsNotSet is the complement of IsSet.
func (v OptionValue) IsNotSet() bool { return !v.IsSet() }

func decodeUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// AsUInt8 decodes the value as a big-endian unsigned integer.
func (v OptionValue) AsUInt8() uint8 { return uint8(decodeUint(v)) }

// AsUInt16 decodes the value as a big-endian unsigned integer.
func (v OptionValue) AsUInt16() uint16 { return uint16(decodeUint(v)) }

// AsUInt32 decodes the value as a big-endian unsigned integer.
func (v OptionValue) AsUInt32() uint32 { return uint32(decodeUint(v)) }

// AsUInt64 decodes the value as a big-endian unsigned integer.
func (v OptionValue) AsUInt64() uint64 { return decodeUint(v) }

// AsString returns the value as a string, for the "string" option
// format.
func (v OptionValue) AsString() string { return string(v) }

// AsBytes returns a copy of the value, for the "opaque" option format.
func (v OptionValue) AsBytes() []byte { return append([]byte(nil), v...) }

func encodeUint(v uint32) []byte {
	switch {
	case v == 0:
		return nil
	case v < 1<<8:
		return []byte{byte(v)}
	case v < 1<<16:
		return []byte{byte(v >> 8), byte(v)}
	case v < 1<<24:
		return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
	default:
		return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	}
}

// optionValueToBytes converts a caller-supplied Go value into an
// option's wire bytes. Accepted types mirror the formats RFC 7252
// §3.2 defines: strings and []byte pass through as string/opaque
// values, int, uint and the 8-, 16- and 32-bit integer kinds are
// converted to uint32 and encoded as minimal-width big-endian uints,
// and nil produces an empty (zero-length) value. int64, uint64 and any
// other type are rejected with ErrInvalidArgument.
func optionValueToBytes(val interface{}) ([]byte, error) {
	switch x := val.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case int:
		return encodeUint(uint32(x)), nil
	case int8:
		return encodeUint(uint32(x)), nil
	case int16:
		return encodeUint(uint32(x)), nil
	case int32:
		return encodeUint(uint32(x)), nil
	case uint:
		return encodeUint(uint32(x)), nil
	case uint8:
		return encodeUint(uint32(x)), nil
	case uint16:
		return encodeUint(uint32(x)), nil
	case uint32:
		return encodeUint(x), nil
	default:
		return nil, invalidArgument("unsupported option value type %T", val)
	}
}

// GetOptionValue returns the first option value with the given
// number, or nil if there is none.
func (m *Message) GetOptionValue(num OptionNumber) OptionValue {
	for opt := m.Options.First(); opt != nil; opt = opt.Next() {
		if opt.Num == num {
			return OptionValue(opt.Value)
		}
	}
	return nil
}

// GetOptionValues returns every option value with the given number,
// in sequence order.
func (m *Message) GetOptionValues(num OptionNumber) []OptionValue {
	var out []OptionValue
	for opt := m.Options.First(); opt != nil; opt = opt.Next() {
		if opt.Num == num {
			out = append(out, OptionValue(opt.Value))
		}
	}
	return out
}

// AddOptionValue appends an option built from a Go value (see
// optionValueToBytes) rather than raw bytes.
func (m *Message) AddOptionValue(num OptionNumber, value interface{}) error {
	v, err := optionValueToBytes(value)
	if err != nil {
		return err
	}
	_, err = m.AddOption(num, v)
	return err
}

// SetOptionValue replaces every existing option with the given number
// with a single option built from value.
func (m *Message) SetOptionValue(num OptionNumber, value interface{}) error {
	v, err := optionValueToBytes(value)
	if err != nil {
		return err
	}
	m.RemoveOptions(num)
	_, err = m.AddOption(num, v)
	return err
}

// Path returns the message's URI-Path segments.
func (m *Message) Path() []string {
	values := m.GetOptionValues(URIPath)
	if len(values) == 0 {
		return nil
	}
	path := make([]string, len(values))
	for i, v := range values {
		path[i] = v.AsString()
	}
	return path
}

// PathString returns the message's URI-Path segments joined by "/".
func (m *Message) PathString() string {
	return strings.Join(m.Path(), "/")
}

// SetPath replaces the message's URI-Path options with parts, in
// order.
func (m *Message) SetPath(parts []string) {
	m.RemoveOptions(URIPath)
	for _, p := range parts {
		m.AddOptionValue(URIPath, p)
	}
}

// SetPathString replaces the message's URI-Path options with the
// segments of a "/"-separated string.
func (m *Message) SetPathString(s string) {
	if len(s) == 0 {
		m.SetPath(nil)
		return
	}
	m.SetPath(strings.Split(strings.TrimLeft(s, "/"), "/"))
}

func (v OptionValue) String() string {
	return fmt.Sprintf("%q", string(v))
}
