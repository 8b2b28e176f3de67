package emulator

import "time"

// Clock converts elapsed wall time into whole CPU cycles and timer ticks,
// carrying the fractional remainder of each to the next call.
type Clock struct {
	cycleHz int64
	timerHz int64

	// accumulators in Hz·ns; one event is owed per full second's worth.
	cycleAcc int64
	timerAcc int64
}

// NewClock returns a clock for the given CPU and timer frequencies.
func NewClock(cycleHz, timerHz int) *Clock {
	return &Clock{cycleHz: int64(cycleHz), timerHz: int64(timerHz)}
}

// Advance adds elapsed time and returns how many cycles and timer ticks are
// now due. Negative durations are ignored.
func (c *Clock) Advance(elapsed time.Duration) (cycles, ticks int) {
	if elapsed <= 0 {
		return 0, 0
	}
	ns := elapsed.Nanoseconds()
	second := int64(time.Second)

	c.cycleAcc += ns * c.cycleHz
	cycles = int(c.cycleAcc / second)
	c.cycleAcc %= second

	c.timerAcc += ns * c.timerHz
	ticks = int(c.timerAcc / second)
	c.timerAcc %= second
	return cycles, ticks
}

// Reset drops any carried remainder.
func (c *Clock) Reset() {
	c.cycleAcc = 0
	c.timerAcc = 0
}
