package coapmsg

import "github.com/sirupsen/logrus"

// log is the package-level diagnostic logger. The codec never logs on
// the hot path inside the parser or formatter loops, only at the
// Parse/Format boundary, and never calls Fatal or Panic through it.
var log = logrus.New()

// SetLogger routes the codec's Debug/Trace diagnostics into l instead
// of the package default, the way liblobarocoap's Go bindings hand
// their logger to the embedding application.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}
