package main

import (
	"time"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/cpu"
	"gochip8/pkg/emulator"
	"gochip8/pkg/keypad"
)

// handleOptions are the settings a page may pass when creating a handle.
type handleOptions struct {
	Legacy  bool
	Seed    uint64
	Seeded  bool
	ClockHz int
}

// handle is one emulator exported to the page. Handles share nothing, so a
// page may run several machines side by side.
type handle struct {
	emu *emulator.Emulator
}

func newHandle(opts handleOptions, logger *log.Logger) *handle {
	cfg := emulator.DefaultConfig()
	cfg.Logger = logger
	cfg.Seed = opts.Seed
	cfg.Seeded = opts.Seeded
	if opts.ClockHz > 0 {
		cfg.ClockHz = opts.ClockHz
	}
	if opts.Legacy {
		cfg.Quirks = cpu.LegacyQuirks
	}
	return &handle{emu: emulator.New(cfg)}
}

func (h *handle) memory() []byte {
	m := h.emu.Memory()
	return m[:]
}

func (h *handle) display() []byte {
	d := h.emu.Display()
	return d[:]
}

func (h *handle) registerV() []byte {
	v := h.emu.RegisterV()
	return v[:]
}

// keyDown presses key i. Values outside 0..15 are rejected, since a JS
// number would otherwise truncate into a valid key.
func (h *handle) keyDown(i int) bool {
	if i < 0 || i >= keypad.NumKeys {
		return false
	}
	h.emu.KeyDown(uint8(i))
	return true
}

func (h *handle) keyUp(i int) bool {
	if i < 0 || i >= keypad.NumKeys {
		return false
	}
	h.emu.KeyUp(uint8(i))
	return true
}

// advance runs the machine for ms milliseconds of wall time.
func (h *handle) advance(ms float64) int {
	if ms <= 0 {
		return 0
	}
	return h.emu.Advance(time.Duration(ms * float64(time.Millisecond)))
}

// fault describes the latched fault as plain values, or returns nil.
func (h *handle) fault() map[string]any {
	f := h.emu.Fault()
	if f == nil {
		return nil
	}
	return map[string]any{
		"error":  f.Err.Error(),
		"opcode": int(f.Opcode),
		"pc":     int(f.PC),
	}
}
