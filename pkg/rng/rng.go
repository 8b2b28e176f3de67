// Package rng provides the byte source used by the RND instruction.
package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"time"
)

const (
	lag        = 4096
	multiplier = 18782
	initCarry  = 362436
	modulusM1  = 0xFFFFFFFE
)

// CMWC is Marsaglia's complementary multiply-with-carry generator with a
// lag of 4096.
type CMWC struct {
	q     [lag]uint32
	carry uint32
	i     int
}

// New returns a generator seeded deterministically from seed.
func New(seed uint64) *CMWC {
	g := &CMWC{}
	g.Seed(seed)
	return g
}

// NewFromEntropy returns a generator seeded from the operating system's
// random source, falling back to the clock if that is unavailable.
func NewFromEntropy() *CMWC {
	var b [8]byte
	seed := uint64(time.Now().UnixNano())
	if _, err := cryptorand.Read(b[:]); err == nil {
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return New(seed)
}

// Seed reinitialises the lag table from seed.
func (g *CMWC) Seed(seed uint64) {
	s := seed
	for i := range g.q {
		s = splitmix64(s)
		g.q[i] = uint32(s >> 32)
	}
	g.carry = initCarry
	g.i = lag - 1
}

// Next returns the next 32-bit value.
func (g *CMWC) Next() uint32 {
	g.i = (g.i + 1) & (lag - 1)
	t := multiplier*uint64(g.q[g.i]) + uint64(g.carry)
	g.carry = uint32(t >> 32)
	x := uint32(t) + g.carry
	if x < g.carry {
		x++
		g.carry++
	}
	g.q[g.i] = modulusM1 - x
	return g.q[g.i]
}

// NextByte returns the high byte of the next value.
func (g *CMWC) NextByte() byte {
	return byte(g.Next() >> 24)
}

// splitmix64 advances s and returns a well mixed value; only used to fill
// the lag table.
func splitmix64(s uint64) uint64 {
	s += 0x9E3779B97F4A7C15
	z := s
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
