package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyDownUp(t *testing.T) {
	k := New()
	assert.False(t, k.IsDown(5))

	k.KeyDown(5)
	assert.True(t, k.IsDown(5))

	k.KeyDown(5)
	assert.True(t, k.IsDown(5))

	k.KeyUp(5)
	assert.False(t, k.IsDown(5))

	k.KeyUp(5)
	assert.False(t, k.IsDown(5))
}

func TestOutOfRangeIgnored(t *testing.T) {
	k := New()
	k.KeyDown(16)
	k.KeyDown(0xFF)
	for i := uint8(0); i < NumKeys; i++ {
		assert.False(t, k.IsDown(i))
	}
}

func TestIsDownMasksIndex(t *testing.T) {
	k := New()
	k.KeyDown(0x3)
	assert.True(t, k.IsDown(0x13))
}

func TestFirstPressedSince(t *testing.T) {
	k := New()
	k.KeyDown(2) // already held when the snapshot is taken
	snap := k.Snapshot()

	_, ok := k.FirstPressedSince(snap)
	assert.False(t, ok)

	k.KeyDown(9)
	k.KeyDown(4)
	key, ok := k.FirstPressedSince(snap)
	assert.True(t, ok)
	assert.Equal(t, uint8(4), key)
}

func TestFirstPressedSinceSeesTapBetweenPolls(t *testing.T) {
	k := New()
	snap := k.Snapshot()

	k.KeyDown(0xB)
	k.KeyUp(0xB)

	key, ok := k.FirstPressedSince(snap)
	assert.True(t, ok)
	assert.Equal(t, uint8(0xB), key)
}

func TestHeldKeyRepressCounts(t *testing.T) {
	k := New()
	k.KeyDown(1)
	snap := k.Snapshot()

	k.KeyUp(1)
	_, ok := k.FirstPressedSince(snap)
	assert.False(t, ok)

	k.KeyDown(1)
	key, ok := k.FirstPressedSince(snap)
	assert.True(t, ok)
	assert.Equal(t, uint8(1), key)
}

func TestReset(t *testing.T) {
	k := New()
	k.KeyDown(7)
	k.Reset()
	assert.False(t, k.IsDown(7))
	assert.Equal(t, Snapshot{}, k.Snapshot())
}
