// Package disasm renders CHIP-8 opcodes as assembly text.
//
// Instruction identity comes from the retrogolib CHIP-8 opcode table; the
// operand syntax follows the common Cowgod notation with $-prefixed hex
// immediates.
package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is one decoded opcode.
type Instruction struct {
	Address  uint16
	Opcode   uint16
	Name     string
	Operands string
	// Known is false when the opcode matches no instruction pattern.
	Known bool
}

// String returns the assembly text of the instruction.
func (i Instruction) String() string {
	if i.Operands == "" {
		return i.Name
	}
	return i.Name + " " + i.Operands
}

// Lookup finds the table entry for an opcode.
func Lookup(opcode uint16) (*chip8.Instruction, bool) {
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Decode decodes the opcode found at address.
func Decode(address, opcode uint16) Instruction {
	ins := Instruction{Address: address, Opcode: opcode}

	entry, ok := Lookup(opcode)
	if !ok {
		if opcode&0xF000 == 0 {
			ins.Name = "SYS"
			ins.Operands = fmt.Sprintf("$%03X", opcode&0x0FFF)
			ins.Known = true
			return ins
		}
		ins.Name = "DW"
		ins.Operands = fmt.Sprintf("$%04X", opcode)
		return ins
	}

	ins.Name = strings.ToUpper(entry.Name)
	ins.Operands = operands(entry, opcode)
	ins.Known = true
	return ins
}

// Format returns the assembly text for a single opcode.
func Format(opcode uint16) string {
	return Decode(0, opcode).String()
}

// Program decodes a raw program image loaded at base. A trailing odd byte
// is emitted as a data byte.
func Program(data []byte, base uint16) []Instruction {
	out := make([]Instruction, 0, len(data)/2+1)
	for i := 0; i+1 < len(data); i += 2 {
		op := uint16(data[i])<<8 | uint16(data[i+1])
		out = append(out, Decode(base+uint16(i), op))
	}
	if len(data)%2 == 1 {
		last := len(data) - 1
		out = append(out, Instruction{
			Address:  base + uint16(last),
			Opcode:   uint16(data[last]),
			Name:     "DB",
			Operands: fmt.Sprintf("$%02X", data[last]),
		})
	}
	return out
}

// IsSkip reports whether the opcode conditionally skips the next instruction.
func IsSkip(opcode uint16) bool {
	entry, ok := Lookup(opcode)
	return ok && chip8.SkipInstructions.Contains(entry.Name)
}

func operands(entry *chip8.Instruction, opcode uint16) string {
	x := (opcode & 0x0F00) >> 8
	y := (opcode & 0x00F0) >> 4
	n := opcode & 0x000F
	kk := opcode & 0x00FF
	nnn := opcode & 0x0FFF

	switch entry {
	case chip8.Cls, chip8.Ret:
		return ""
	case chip8.Call:
		return fmt.Sprintf("$%03X", nnn)
	case chip8.Jp:
		if opcode&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", nnn)
		}
		return fmt.Sprintf("$%03X", nnn)
	case chip8.Se, chip8.Sne:
		if opcode&0xF000 == 0x3000 || opcode&0xF000 == 0x4000 {
			return fmt.Sprintf("V%X, $%02X", x, kk)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Ld:
		return loadOperands(opcode, x, y, kk, nnn)
	case chip8.Add:
		switch opcode & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, kk)
		case 0xF000:
			return fmt.Sprintf("I, V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Or, chip8.And, chip8.Xor, chip8.Sub, chip8.Subn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Shr, chip8.Shl, chip8.Skp, chip8.Sknp:
		return fmt.Sprintf("V%X", x)
	case chip8.Rnd:
		return fmt.Sprintf("V%X, $%02X", x, kk)
	case chip8.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, n)
	}
	return ""
}

func loadOperands(opcode, x, y, kk, nnn uint16) string {
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, kk)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", nnn)
	}

	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
