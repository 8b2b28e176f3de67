// Package emulator is the host-facing handle around the CPU: reset, program
// loading, stepping, timer ticks, key input and read-only state inspection.
//
// An Emulator is not safe for concurrent use. The host must serialise calls
// to ExecuteCycle, DecrementTimers and the key methods.
package emulator

import (
	"time"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/cpu"
	"gochip8/pkg/disasm"
	"gochip8/pkg/display"
	"gochip8/pkg/rng"
)

const (
	DefaultClockHz = 500
	DefaultTimerHz = 60
)

// Config holds the emulator settings.
type Config struct {
	ClockHz int
	TimerHz int
	Quirks  cpu.Quirks

	// Seed makes RND reproducible when Seeded is set; otherwise the
	// generator is seeded from system entropy.
	Seed   uint64
	Seeded bool

	// Trace logs every executed instruction at debug level.
	Trace bool

	Logger *log.Logger
}

// DefaultConfig returns the modern-interpreter defaults.
func DefaultConfig() Config {
	return Config{
		ClockHz: DefaultClockHz,
		TimerHz: DefaultTimerHz,
	}
}

type Emulator struct {
	cfg   Config
	cpu   *cpu.CPU
	rand  *rng.CMWC
	clock *Clock
}

// New creates an emulator in its reset state.
func New(cfg Config) *Emulator {
	if cfg.ClockHz <= 0 {
		cfg.ClockHz = DefaultClockHz
	}
	if cfg.TimerHz <= 0 {
		cfg.TimerHz = DefaultTimerHz
	}

	e := &Emulator{cfg: cfg}
	if cfg.Seeded {
		e.rand = rng.New(cfg.Seed)
	} else {
		e.rand = rng.NewFromEntropy()
	}

	e.cpu = cpu.NewCPU(e.rand)
	e.cpu.Quirks = cfg.Quirks
	e.cpu.Logger = cfg.Logger
	e.clock = NewClock(cfg.ClockHz, cfg.TimerHz)
	return e
}

// Reset returns the machine to power-on state, cancelling any key wait and
// clearing a fault. A seeded generator restarts its sequence.
func (e *Emulator) Reset() {
	e.cpu.Reset()
	if e.cfg.Seeded {
		e.rand.Seed(e.cfg.Seed)
	}
	e.clock.Reset()
}

// LoadProgram copies a raw program image to 0x200. It fails with
// cpu.ErrLoadTooLarge if the image does not fit.
func (e *Emulator) LoadProgram(program []byte) error {
	if err := e.cpu.LoadProgram(program); err != nil {
		return err
	}
	if e.cfg.Logger != nil {
		e.cfg.Logger.Info("Program loaded",
			log.Int("bytes", len(program)),
			log.Hex("address", uint16(cpu.ProgramStart)))
	}
	return nil
}

// ExecuteCycle runs one CPU cycle.
func (e *Emulator) ExecuteCycle() {
	if e.cfg.Trace && e.cfg.Logger != nil && !e.cpu.Halted && !e.cpu.Waiting {
		pc := e.cpu.PC
		e.cfg.Logger.Debug("Execute",
			log.Hex("pc", pc),
			log.String("instruction", disasm.Decode(pc, e.cpu.PeekOpcode(pc)).String()))
	}
	e.cpu.Step()
}

// DecrementTimers is the 60 Hz timer tick.
func (e *Emulator) DecrementTimers() {
	e.cpu.DecrementTimers()
}

// Advance runs the cycles and timer ticks owed for elapsed wall time,
// spreading the ticks evenly between the cycles. It returns the number of
// cycles executed.
func (e *Emulator) Advance(elapsed time.Duration) int {
	cycles, ticks := e.clock.Advance(elapsed)

	done := 0
	for i := 0; i < cycles; i++ {
		e.ExecuteCycle()
		if ticks > 0 && (i+1)*ticks/cycles > done {
			e.DecrementTimers()
			done++
		}
	}
	for ; done < ticks; done++ {
		e.DecrementTimers()
	}
	return cycles
}

// KeyDown presses key i (0..15).
func (e *Emulator) KeyDown(i uint8) {
	e.cpu.Keypad.KeyDown(i)
}

// KeyUp releases key i (0..15).
func (e *Emulator) KeyUp(i uint8) {
	e.cpu.Keypad.KeyUp(i)
}

// Memory returns a copy of the 4 KiB address space.
func (e *Emulator) Memory() [cpu.MemorySize]byte {
	return e.cpu.Memory
}

// Display returns a copy of the framebuffer, one byte (0 or 1) per pixel.
func (e *Emulator) Display() [display.Size]byte {
	return e.cpu.Display.Pixels
}

// RegisterV returns a copy of V0..VF.
func (e *Emulator) RegisterV() [cpu.NumRegisters]byte {
	return e.cpu.V
}

func (e *Emulator) RegisterI() uint16 {
	return e.cpu.I
}

func (e *Emulator) RegisterPC() uint16 {
	return e.cpu.PC
}

// StackPointer returns the number of occupied stack slots.
func (e *Emulator) StackPointer() uint8 {
	return e.cpu.SP
}

func (e *Emulator) DelayTimer() byte {
	return e.cpu.DT
}

// SoundActive reports whether the host should be sounding its beeper.
func (e *Emulator) SoundActive() bool {
	return e.cpu.SoundActive()
}

// IsWaitingForKey reports whether an Fx0A is pending.
func (e *Emulator) IsWaitingForKey() bool {
	return e.cpu.Waiting
}

// IsFaulted reports whether the CPU has halted on a fault.
func (e *Emulator) IsFaulted() bool {
	return e.cpu.Faulted()
}

// Fault returns the latched fault, or nil.
func (e *Emulator) Fault() *cpu.Fault {
	return e.cpu.Fault()
}

// Screen gives hosts direct access to the framebuffer for rendering. It
// must be treated as read-only and not held across mutating calls.
func (e *Emulator) Screen() *display.Display {
	return e.cpu.Display
}
