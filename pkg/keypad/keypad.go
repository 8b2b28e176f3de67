// Package keypad models the 16-key hexadecimal keypad.
//
// The original layout is:
//
//	+---+---+---+---+
//	| 1 | 2 | 3 | C |
//	+---+---+---+---+
//	| 4 | 5 | 6 | D |
//	+---+---+---+---+
//	| 7 | 8 | 9 | E |
//	+---+---+---+---+
//	| A | 0 | B | F |
//	+---+---+---+---+
package keypad

// NumKeys is the number of keys on the pad.
const NumKeys = 16

// Snapshot records how many presses each key had seen at a point in time.
type Snapshot [NumKeys]uint32

// Keypad holds the down state of every key and counts up-to-down
// transitions so a press between two polls is never lost.
type Keypad struct {
	down    [NumKeys]bool
	presses [NumKeys]uint32
}

// New returns a keypad with every key up.
func New() *Keypad {
	return &Keypad{}
}

// KeyDown marks key i as pressed. Repeated calls while held are ignored, as
// are indices outside 0..15.
func (k *Keypad) KeyDown(i uint8) {
	if i >= NumKeys || k.down[i] {
		return
	}
	k.down[i] = true
	k.presses[i]++
}

// KeyUp marks key i as released.
func (k *Keypad) KeyUp(i uint8) {
	if i >= NumKeys {
		return
	}
	k.down[i] = false
}

// IsDown reports whether key i is held. Only the low nibble of i is used.
func (k *Keypad) IsDown(i uint8) bool {
	return k.down[i&0x0F]
}

// Reset releases every key and forgets press history.
func (k *Keypad) Reset() {
	*k = Keypad{}
}

// Snapshot captures the current press counters.
func (k *Keypad) Snapshot() Snapshot {
	return Snapshot(k.presses)
}

// FirstPressedSince returns the lowest-numbered key that has been pressed
// since s was taken.
func (k *Keypad) FirstPressedSince(s Snapshot) (uint8, bool) {
	for i := range k.presses {
		if k.presses[i] != s[i] {
			return uint8(i), true
		}
	}
	return 0, false
}
