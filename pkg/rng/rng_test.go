package rng

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDeterministicSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10000; i++ {
		assert.Equal(t, a.NextByte(), b.NextByte())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 256; i++ {
		if a.NextByte() == b.NextByte() {
			same++
		}
	}
	assert.True(t, same < 32)
}

func TestReseedRestartsSequence(t *testing.T) {
	g := New(7)
	first := make([]byte, 64)
	for i := range first {
		first[i] = g.NextByte()
	}
	g.Seed(7)
	for i := range first {
		assert.Equal(t, first[i], g.NextByte())
	}
}

func TestByteDistribution(t *testing.T) {
	g := New(0xC0FFEE)
	var buckets [16]int
	const n = 160000
	for i := 0; i < n; i++ {
		buckets[g.NextByte()>>4]++
	}
	for i, c := range buckets {
		if c < n/16*9/10 || c > n/16*11/10 {
			t.Errorf("bucket %d: count %d outside 10%% of %d", i, c, n/16)
		}
	}
}

func TestNewFromEntropy(t *testing.T) {
	g := NewFromEntropy()
	assert.NotNil(t, g)
	_ = g.NextByte()
}
