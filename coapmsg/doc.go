// Package coapmsg implements the CoAP (RFC 7252) base message codec:
// parsing a byte buffer into a Message and formatting a Message back
// into bytes, with the option and cross-field rules the wire format
// requires.
//
// The package performs no network I/O, keeps no de-duplication or
// retransmission state, and does not implement DTLS. It is a pure
// value transformer; everything else (timers, sockets, proxying) is
// an external collaborator built on top of it.
package coapmsg
