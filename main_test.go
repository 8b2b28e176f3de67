package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/config"
	"gochip8/pkg/cpu"
)

func writeROM(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunDisassembly(t *testing.T) {
	rom := writeROM(t, []byte{0x60, 0x0A, 0x12, 0x00})
	var out bytes.Buffer
	err := run(options{rom: rom, dis: true}, log.NewTestLogger(t), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "200  600A  LD V0, $0A\n202  1200  JP $200\n"
	if out.String() != want {
		t.Errorf("disassembly: expected %q, got %q", want, out.String())
	}
}

func TestRunHeadless(t *testing.T) {
	// LD I, font 0; DRW V0, V0, 5; JP 0x204
	rom := writeROM(t, []byte{0xA0, 0x00, 0xD0, 0x05, 0x12, 0x04})
	shot := filepath.Join(t.TempDir(), "out.png")
	var out bytes.Buffer
	err := run(options{rom: rom, cycles: 10, scale: 2, screenshot: shot}, log.NewTestLogger(t), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "PC=0x204") {
		t.Errorf("state: expected PC=0x204, got %q", strings.SplitN(out.String(), "\n", 2)[0])
	}
	if !strings.Contains(out.String(), "####....") {
		t.Error("frame: expected top row of glyph 0")
	}
	if _, err := os.Stat(shot); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}

func TestRunReportsFault(t *testing.T) {
	rom := writeROM(t, []byte{0xFF, 0xFF})
	var out bytes.Buffer
	err := run(options{rom: rom, cycles: 10, scale: 1}, config.CreateLogger(false, true), &out)
	if !errors.Is(err, cpu.ErrUnknownOpcode) {
		t.Errorf("run: expected ErrUnknownOpcode, got %v", err)
	}
	var f *cpu.Fault
	if !errors.As(err, &f) || f.Opcode != 0xFFFF || f.PC != 0x200 {
		t.Errorf("run: expected fault FFFF at 200, got %v", err)
	}
}
