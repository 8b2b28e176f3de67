package main

import (
	"strings"
	"testing"

	"gochip8/pkg/display"
)

func TestRenderFrame(t *testing.T) {
	d := display.New()
	d.Draw(0, 0, []byte{0xC0, 0x80}) // (0,0) (1,0) (0,1)
	d.Draw(2, 1, []byte{0x80})       // (2,1)

	frame := renderFrame(d)
	lines := strings.Split(strings.TrimPrefix(frame, "\x1b[H"), "\r\n")
	if len(lines) != display.Height/2+1 {
		t.Fatalf("lines: expected %d, got %d", display.Height/2+1, len(lines))
	}
	if !strings.HasPrefix(lines[0], "█▀▄ ") {
		t.Errorf("first line: expected prefix %q, got %q", "█▀▄ ", lines[0][:12])
	}
	if got := len([]rune(lines[0])); got != display.Width {
		t.Errorf("line width: expected %d runes, got %d", display.Width, got)
	}
}

func TestConsoleKeyMapCoversKeypad(t *testing.T) {
	seen := make(map[uint8]bool)
	for _, pad := range keyMap {
		seen[pad] = true
	}
	if len(seen) != 16 {
		t.Errorf("expected all 16 keypad keys mapped, got %d", len(seen))
	}
}

func TestParseOptions(t *testing.T) {
	opts, _, err := parseOptions([]string{"game.ch8"})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.quiet || opts.legacy {
		t.Errorf("defaults: expected quiet=false legacy=false, got %+v", opts)
	}
	if opts.rom != "game.ch8" {
		t.Errorf("rom: expected game.ch8, got %q", opts.rom)
	}

	opts, _, err = parseOptions([]string{"-q", "-legacy", "game.ch8"})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if !opts.quiet || !opts.legacy {
		t.Errorf("flags: expected quiet and legacy set, got %+v", opts)
	}

	if _, _, err := parseOptions(nil); err == nil {
		t.Error("missing ROM: expected error")
	}
}
