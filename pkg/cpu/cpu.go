// Package cpu implements the CHIP-8 interpreter: registers, memory, stack,
// timers and the fetch-decode-execute cycle.
package cpu

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/disasm"
	"gochip8/pkg/display"
	"gochip8/pkg/keypad"
	"gochip8/pkg/rng"
)

const (
	MemorySize   = 4096
	ProgramStart = 0x200
	// MaxProgramSize is the largest image LoadProgram accepts.
	MaxProgramSize = MemorySize - ProgramStart
	StackSize      = 16
	NumRegisters   = 16

	// addrMask keeps memory accesses inside the 12-bit address space.
	addrMask = 0x0FFF
)

// First nibble of each opcode group.
const (
	OpSys    uint16 = 0x0
	OpJP     uint16 = 0x1
	OpCALL   uint16 = 0x2
	OpSEImm  uint16 = 0x3
	OpSNEImm uint16 = 0x4
	OpSEReg  uint16 = 0x5
	OpLDImm  uint16 = 0x6
	OpADDImm uint16 = 0x7
	OpALU    uint16 = 0x8
	OpSNEReg uint16 = 0x9
	OpLDI    uint16 = 0xA
	OpJPV0   uint16 = 0xB
	OpRND    uint16 = 0xC
	OpDRW    uint16 = 0xD
	OpKey    uint16 = 0xE
	OpMisc   uint16 = 0xF
)

// RandomSource produces the bytes consumed by RND.
type RandomSource interface {
	NextByte() byte
}

type CPU struct {
	V  [NumRegisters]byte
	I  uint16
	PC uint16
	SP uint8

	Stack [StackSize]uint16

	// DT is the delay timer, ST the sound timer. Both count down at 60 Hz.
	DT byte
	ST byte

	Memory [MemorySize]byte

	Display *display.Display
	Keypad  *keypad.Keypad
	Rand    RandomSource

	Quirks Quirks

	// Waiting is set by Fx0A until a key press is observed.
	Waiting      bool
	waitRegister uint8
	waitSnapshot keypad.Snapshot

	// Halted latches after a fault; Step is a no-op until Reset.
	Halted bool
	fault  *Fault

	// Logger receives fault and key-wait events. Nil disables logging.
	Logger *log.Logger
}

// NewCPU creates a CPU with its own display and keypad, reset and ready for
// a program to be loaded. A nil rand is replaced by an entropy-seeded
// generator.
func NewCPU(rand RandomSource) *CPU {
	if rand == nil {
		rand = rng.NewFromEntropy()
	}
	c := &CPU{
		Display: display.New(),
		Keypad:  keypad.New(),
		Rand:    rand,
	}
	c.Reset()
	return c
}

// Reset returns all state to power-on values and reinstalls the font.
// Attached peripherals, quirks and logger are kept.
func (c *CPU) Reset() {
	c.V = [NumRegisters]byte{}
	c.I = 0
	c.PC = ProgramStart
	c.SP = 0
	c.Stack = [StackSize]uint16{}
	c.DT = 0
	c.ST = 0
	c.Memory = [MemorySize]byte{}
	copy(c.Memory[FontBase:], FontSet[:])

	c.Waiting = false
	c.waitRegister = 0
	c.waitSnapshot = keypad.Snapshot{}
	c.Halted = false
	c.fault = nil

	c.Display.Clear()
	c.Keypad.Reset()
}

// LoadProgram copies a raw program image into memory at ProgramStart.
func (c *CPU) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes > %d bytes", ErrLoadTooLarge, len(program), MaxProgramSize)
	}
	copy(c.Memory[ProgramStart:], program)
	return nil
}

// Step runs one cycle. A halted CPU does nothing; a CPU waiting on Fx0A
// only checks for a new key press.
func (c *CPU) Step() {
	if c.Halted {
		return
	}

	if c.Waiting {
		key, ok := c.Keypad.FirstPressedSince(c.waitSnapshot)
		if !ok {
			return
		}
		c.V[c.waitRegister] = key
		c.Waiting = false
		if c.Logger != nil {
			c.Logger.Debug("Key wait resolved",
				log.Int("register", int(c.waitRegister)),
				log.Int("key", int(key)))
		}
		return
	}

	pc := c.PC
	opcode := c.fetch()
	c.execute(pc, opcode)
}

// RunCycles steps n times, stopping early once halted.
func (c *CPU) RunCycles(n int) {
	for i := 0; i < n && !c.Halted; i++ {
		c.Step()
	}
}

// DecrementTimers is the 60 Hz tick: each non-zero timer counts down by one.
func (c *CPU) DecrementTimers() {
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
}

// SoundActive reports whether the sound timer is running.
func (c *CPU) SoundActive() bool {
	return c.ST > 0
}

// Fault returns the fault that halted the CPU, or nil.
func (c *CPU) Fault() *Fault {
	return c.fault
}

// Faulted reports whether the CPU halted on a fault.
func (c *CPU) Faulted() bool {
	return c.fault != nil
}

// WaitRegister returns the register targeted by a pending Fx0A.
func (c *CPU) WaitRegister() (uint8, bool) {
	return c.waitRegister, c.Waiting
}

// PeekOpcode returns the big-endian opcode at addr without side effects.
func (c *CPU) PeekOpcode(addr uint16) uint16 {
	return uint16(c.Memory[addr&addrMask])<<8 | uint16(c.Memory[(addr+1)&addrMask])
}

func (c *CPU) fetch() uint16 {
	opcode := c.PeekOpcode(c.PC)
	c.skip()
	return opcode
}

// skip advances PC by one instruction, staying inside the address space.
func (c *CPU) skip() {
	c.PC = (c.PC + 2) & addrMask
}

func (c *CPU) halt(err error, pc, opcode uint16) {
	c.Halted = true
	c.fault = &Fault{Err: err, Opcode: opcode, PC: pc}
	if c.Logger != nil {
		c.Logger.Error("CPU halted",
			log.Err(err),
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", disasm.Format(opcode)))
	}
}

// EncodeInstruction packs four nibbles into an opcode.
func EncodeInstruction(op, x, y, n uint16) uint16 {
	return (op&0xF)<<12 | (x&0xF)<<8 | (y&0xF)<<4 | n&0xF
}
