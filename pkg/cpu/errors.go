package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrLoadTooLarge   = errors.New("program too large for memory")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownOpcode  = errors.New("unknown opcode")
)

// Fault describes the instruction that halted the CPU.
type Fault struct {
	Err    error
	Opcode uint16
	// PC is the address the faulting opcode was fetched from.
	PC uint16
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v: opcode %04X at %03X", f.Err, f.Opcode, f.PC)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
