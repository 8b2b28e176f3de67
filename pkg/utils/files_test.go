package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gochip8/pkg/cpu"
)

func TestGetPathInfo(t *testing.T) {
	dir := t.TempDir()
	full, parent, err := GetPathInfo(filepath.Join(dir, "sub", "..", "game.ch8"))
	if err != nil {
		t.Fatalf("GetPathInfo: %v", err)
	}
	if full != filepath.Join(dir, "game.ch8") {
		t.Errorf("fullPath: expected %q, got %q", filepath.Join(dir, "game.ch8"), full)
	}
	if parent != dir {
		t.Errorf("parentDir: expected %q, got %q", dir, parent)
	}
}

func TestReadROM(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ch8")
	if err := os.WriteFile(good, []byte{0x00, 0xE0}, 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := ReadROM(good)
	if err != nil {
		t.Fatalf("ReadROM: %v", err)
	}
	if len(data) != 2 {
		t.Errorf("ReadROM: expected 2 bytes, got %d", len(data))
	}

	big := filepath.Join(dir, "big.ch8")
	if err := os.WriteFile(big, make([]byte, cpu.MaxProgramSize+1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadROM(big); !errors.Is(err, cpu.ErrLoadTooLarge) {
		t.Errorf("ReadROM(big): expected ErrLoadTooLarge, got %v", err)
	}

	if _, err := ReadROM(filepath.Join(dir, "missing.ch8")); err == nil {
		t.Error("ReadROM(missing): expected error")
	}
}
