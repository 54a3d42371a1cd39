package coapmsg

import "fmt"

// COAPType is the message type carried in bits 5-4 of the header byte.
type COAPType uint8

const (
	// Confirmable messages require an acknowledgement.
	Confirmable COAPType = 0
	// NonConfirmable messages do not require an acknowledgement.
	NonConfirmable COAPType = 1
	// Acknowledgement responds to a Confirmable message.
	Acknowledgement COAPType = 2
	// Reset indicates the recipient could not process a message; a
	// Reset message is always Empty.
	Reset COAPType = 3
)

var typeNames = [...]string{
	Confirmable:     "CON",
	NonConfirmable:  "NON",
	Acknowledgement: "ACK",
	Reset:           "RST",
}

func (t COAPType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// COAPCode packs a message's class (high 3 bits) and detail (low 5
// bits) into the single wire byte RFC 7252 calls "Code". A Message
// keeps class and detail as separate fields (see §3 of the spec this
// codec implements); COAPCode is a convenience view over that pair.
type COAPCode uint8

// Request codes.
const (
	GET    COAPCode = 1
	POST   COAPCode = 2
	PUT    COAPCode = 3
	DELETE COAPCode = 4
)

// Response codes.
const (
	Empty                 COAPCode = 0
	Created               COAPCode = 65
	Deleted               COAPCode = 66
	Valid                 COAPCode = 67
	Changed               COAPCode = 68
	Content               COAPCode = 69
	BadRequest            COAPCode = 128
	Unauthorized          COAPCode = 129
	BadOption             COAPCode = 130
	Forbidden             COAPCode = 131
	NotFound              COAPCode = 132
	MethodNotAllowed      COAPCode = 133
	NotAcceptable         COAPCode = 134
	PreconditionFailed    COAPCode = 140
	RequestEntityTooLarge COAPCode = 141
	UnsupportedMediaType  COAPCode = 143
	InternalServerError   COAPCode = 160
	NotImplemented        COAPCode = 161
	BadGateway            COAPCode = 162
	ServiceUnavailable    COAPCode = 163
	GatewayTimeout        COAPCode = 164
	ProxyingNotSupported  COAPCode = 165
)

var codeNames = map[COAPCode]string{
	GET: "GET", POST: "POST", PUT: "PUT", DELETE: "DELETE",
	Empty: "Empty", Created: "Created", Deleted: "Deleted", Valid: "Valid",
	Changed: "Changed", Content: "Content", BadRequest: "BadRequest",
	Unauthorized: "Unauthorized", BadOption: "BadOption", Forbidden: "Forbidden",
	NotFound: "NotFound", MethodNotAllowed: "MethodNotAllowed",
	NotAcceptable: "NotAcceptable", PreconditionFailed: "PreconditionFailed",
	RequestEntityTooLarge: "RequestEntityTooLarge", UnsupportedMediaType: "UnsupportedMediaType",
	InternalServerError: "InternalServerError", NotImplemented: "NotImplemented",
	BadGateway: "BadGateway", ServiceUnavailable: "ServiceUnavailable",
	GatewayTimeout: "GatewayTimeout", ProxyingNotSupported: "ProxyingNotSupported",
}

func (c COAPCode) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("%d.%02d", c.Class(), c.Detail())
}

// Class returns the code's class, bits 7-5 ([0,7]).
func (c COAPCode) Class() uint8 { return uint8(c) >> 5 }

// Detail returns the code's detail, bits 4-0 ([0,31]).
func (c COAPCode) Detail() uint8 { return uint8(c) & 0x1f }

// IsSuccess reports whether c is a 2.xx response code.
func (c COAPCode) IsSuccess() bool { return c.Class() == 2 }

// IsError reports whether c is a 4.xx or 5.xx response code.
func (c COAPCode) IsError() bool { return c.Class() == 4 || c.Class() == 5 }

// BuildCode packs a class/detail pair into a COAPCode.
func BuildCode(class, detail uint8) COAPCode {
	return COAPCode((class << 5) | (detail & 0x1f))
}
