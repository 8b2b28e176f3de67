package cpu

import (
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/display"
)

// execute runs one decoded opcode. PC already points past it; pc is the
// address it was fetched from and is only used for fault reporting.
func (c *CPU) execute(pc, opcode uint16) {
	x := (opcode >> 8) & 0xF
	y := (opcode >> 4) & 0xF
	n := opcode & 0xF
	kk := byte(opcode)
	nnn := opcode & addrMask

	switch opcode >> 12 {
	case OpSys:
		switch opcode {
		case 0x00E0:
			c.Display.Clear()
		case 0x00EE:
			if c.SP == 0 {
				c.halt(ErrStackUnderflow, pc, opcode)
				return
			}
			c.SP--
			c.PC = c.Stack[c.SP]
		default:
			// SYS nnn: machine code routines are not emulated.
		}

	case OpJP:
		c.PC = nnn

	case OpCALL:
		if int(c.SP) >= StackSize {
			c.halt(ErrStackOverflow, pc, opcode)
			return
		}
		c.Stack[c.SP] = c.PC
		c.SP++
		c.PC = nnn

	case OpSEImm:
		if c.V[x] == kk {
			c.skip()
		}

	case OpSNEImm:
		if c.V[x] != kk {
			c.skip()
		}

	case OpSEReg:
		if n != 0 {
			c.halt(ErrUnknownOpcode, pc, opcode)
			return
		}
		if c.V[x] == c.V[y] {
			c.skip()
		}

	case OpLDImm:
		c.V[x] = kk

	case OpADDImm:
		c.V[x] += kk

	case OpALU:
		c.executeALU(pc, opcode, x, y, n)

	case OpSNEReg:
		if n != 0 {
			c.halt(ErrUnknownOpcode, pc, opcode)
			return
		}
		if c.V[x] != c.V[y] {
			c.skip()
		}

	case OpLDI:
		c.I = nnn

	case OpJPV0:
		c.PC = (nnn + uint16(c.V[0])) & addrMask

	case OpRND:
		c.V[x] = c.Rand.NextByte() & kk

	case OpDRW:
		c.draw(x, y, n)

	case OpKey:
		switch kk {
		case 0x9E:
			if c.Keypad.IsDown(c.V[x] & 0xF) {
				c.skip()
			}
		case 0xA1:
			if !c.Keypad.IsDown(c.V[x] & 0xF) {
				c.skip()
			}
		default:
			c.halt(ErrUnknownOpcode, pc, opcode)
		}

	case OpMisc:
		c.executeMisc(pc, opcode, x, kk)
	}
}

// executeALU handles the 8xyn register-register group. The result is
// written to V[x] before VF so the flag wins when x is F.
func (c *CPU) executeALU(pc, opcode, x, y, n uint16) {
	vx, vy := c.V[x], c.V[y]

	switch n {
	case 0x0:
		c.V[x] = vy
	case 0x1:
		c.V[x] = vx | vy
	case 0x2:
		c.V[x] = vx & vy
	case 0x3:
		c.V[x] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		c.V[x] = byte(sum)
		c.V[0xF] = boolToByte(sum > 0xFF)
	case 0x5:
		c.V[x] = vx - vy
		c.V[0xF] = boolToByte(vx >= vy)
	case 0x6:
		src := vx
		if c.Quirks.ShiftUsesVY {
			src = vy
		}
		c.V[x] = src >> 1
		c.V[0xF] = src & 0x01
	case 0x7:
		c.V[x] = vy - vx
		c.V[0xF] = boolToByte(vy >= vx)
	case 0xE:
		src := vx
		if c.Quirks.ShiftUsesVY {
			src = vy
		}
		c.V[x] = src << 1
		c.V[0xF] = (src >> 7) & 0x01
	default:
		c.halt(ErrUnknownOpcode, pc, opcode)
	}
}

// executeMisc handles the Fxkk group.
func (c *CPU) executeMisc(pc, opcode, x uint16, kk byte) {
	switch kk {
	case 0x07:
		c.V[x] = c.DT

	case 0x0A:
		c.Waiting = true
		c.waitRegister = uint8(x)
		c.waitSnapshot = c.Keypad.Snapshot()
		if c.Logger != nil {
			c.Logger.Debug("Waiting for key", log.Int("register", int(x)), log.Hex("pc", pc))
		}

	case 0x15:
		c.DT = c.V[x]

	case 0x18:
		c.ST = c.V[x]

	case 0x1E:
		c.I += uint16(c.V[x])

	case 0x29:
		c.I = FontBase + GlyphSize*uint16(c.V[x]&0xF)

	case 0x33:
		v := c.V[x]
		c.Memory[c.I&addrMask] = v / 100
		c.Memory[(c.I+1)&addrMask] = (v / 10) % 10
		c.Memory[(c.I+2)&addrMask] = v % 10

	case 0x55:
		for k := uint16(0); k <= x; k++ {
			c.Memory[(c.I+k)&addrMask] = c.V[k]
		}
		if c.Quirks.LoadStoreIncrementsI {
			c.I += x + 1
		}

	case 0x65:
		for k := uint16(0); k <= x; k++ {
			c.V[k] = c.Memory[(c.I+k)&addrMask]
		}
		if c.Quirks.LoadStoreIncrementsI {
			c.I += x + 1
		}

	default:
		c.halt(ErrUnknownOpcode, pc, opcode)
	}
}

// draw blits an n-row sprite read from memory at I. VF is written after
// every pixel has been XORed.
func (c *CPU) draw(x, y, n uint16) {
	var rows [display.MaxSpriteRows]byte
	sprite := rows[:n]
	for i := range sprite {
		sprite[i] = c.Memory[(c.I+uint16(i))&addrMask]
	}

	px, py := int(c.V[x]), int(c.V[y])
	var collision bool
	if c.Quirks.ClipSprites {
		collision = c.Display.DrawClipped(px, py, sprite)
	} else {
		collision = c.Display.Draw(px, py, sprite)
	}
	c.V[0xF] = boolToByte(collision)
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
