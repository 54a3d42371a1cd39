package coapmsg

import "github.com/pkg/errors"

// Error taxonomy surfaced across the codec's boundary. Every operation
// that can fail returns one of these, possibly wrapped with
// github.com/pkg/errors for sub-stage context; test with errors.Is
// against the sentinel, not string matching.
var (
	// ErrInvalidArgument means a caller-supplied scalar is outside its
	// allowed domain (wrong version, unknown type, oversized code or
	// token, message id overflow).
	ErrInvalidArgument = errors.New("coapmsg: invalid argument")

	// ErrBadMessage means the wire bytes, or the Message they decoded
	// to, do not conform to the CoAP base format.
	ErrBadMessage = errors.New("coapmsg: malformed message")

	// ErrNoSpace means the caller-supplied output buffer was too small
	// to hold the formatted message.
	ErrNoSpace = errors.New("coapmsg: output buffer too small")

	// ErrOutOfMemory means an internal allocation could not be
	// satisfied. Go's allocator panics rather than returning a
	// recoverable error on true exhaustion, so in practice this
	// sentinel is only reachable for values that would overflow the
	// wire encoding's representable range (see Message.AddOption).
	ErrOutOfMemory = errors.New("coapmsg: allocation failed")
)

func badMessage(format string, args ...interface{}) error {
	return errors.Wrapf(ErrBadMessage, format, args...)
}

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func noSpace(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNoSpace, format, args...)
}

func outOfMemory(format string, args ...interface{}) error {
	return errors.Wrapf(ErrOutOfMemory, format, args...)
}
