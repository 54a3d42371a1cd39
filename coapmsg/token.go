package coapmsg

import (
	"math/rand"
	"sync"
	"time"
)

// TokenGenerator produces CoAP tokens. Encapsulating the PRNG behind
// an interface, rather than reaching for a process-global
// lazily-seeded generator, is the fix DESIGN.md records for §9's
// "Global PRNG state" note: callers that need independent token
// streams (e.g. per-connection, or deterministic in tests) construct
// their own generator instead of racing on first use of a shared one.
type TokenGenerator interface {
	NextToken() []byte
}

// RandomTokenGenerator produces 4-byte tokens seeded from the wall
// clock, with a rolling sequence byte in the first position so
// consecutive tokens from one generator differ even if the underlying
// PRNG repeats. The sequence byte is per generator and wraps after 256
// tokens.
type RandomTokenGenerator struct {
	seq  uint8
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRandomTokenGenerator returns a RandomTokenGenerator seeded from
// the current time. It is not cryptographically secure; do not use it
// to generate tokens in a security-sensitive deployment (§9).
func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NextToken returns the next 4-byte token.
func (t *RandomTokenGenerator) NextToken() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	tok := make([]byte, 4)
	t.rand.Read(tok)
	t.seq++
	tok[0] = t.seq
	return tok
}

// CountingTokenGenerator produces 1-byte tokens that simply count up,
// for tests that need deterministic, reproducible tokens.
type CountingTokenGenerator struct {
	seq uint8
	mu  sync.Mutex
}

// NewCountingTokenGenerator returns a CountingTokenGenerator starting
// at 1.
func NewCountingTokenGenerator() *CountingTokenGenerator {
	return &CountingTokenGenerator{}
}

// NextToken returns the next 1-byte token.
func (t *CountingTokenGenerator) NextToken() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	return []byte{t.seq}
}

var (
	defaultGen     *RandomTokenGenerator
	defaultGenOnce sync.Once
)

// GenRandomBytes fills buf with pseudo-random bytes drawn from a
// lazily-initialised, process-wide generator, matching §4.5's
// gen_rand_str. Unlike the C source, the first-use race §9 warns about
// is closed by sync.Once; callers that need an independent stream
// unaffected by other GenRandomBytes callers should construct their
// own TokenGenerator instead.
func GenRandomBytes(buf []byte) {
	defaultGenOnce.Do(func() {
		defaultGen = NewRandomTokenGenerator()
	})
	defaultGen.mu.Lock()
	defer defaultGen.mu.Unlock()
	defaultGen.rand.Read(buf)
}
