package display

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferRGBA(t *testing.T) {
	d := New()
	d.Draw(1, 0, []byte{0x80})

	pal := Palette{
		Off: color.RGBA{0x01, 0x02, 0x03, 0xFF},
		On:  color.RGBA{0xAA, 0xBB, 0xCC, 0xFF},
	}
	pixels := d.FramebufferRGBA(pal)
	if len(pixels) != Size*4 {
		t.Fatalf("length: expected %d, got %d", Size*4, len(pixels))
	}
	if pixels[0] != 0x01 || pixels[1] != 0x02 || pixels[2] != 0x03 {
		t.Errorf("pixel 0: expected off color, got %v", pixels[0:4])
	}
	if pixels[4] != 0xAA || pixels[5] != 0xBB || pixels[6] != 0xCC || pixels[7] != 0xFF {
		t.Errorf("pixel 1: expected on color, got %v", pixels[4:8])
	}
}

func TestScaledImage(t *testing.T) {
	d := New()
	d.Draw(0, 0, []byte{0x80})

	img := d.ScaledImage(DefaultPalette, 4)
	if img.Bounds().Dx() != Width*4 || img.Bounds().Dy() != Height*4 {
		t.Fatalf("bounds: expected %dx%d, got %v", Width*4, Height*4, img.Bounds())
	}
	if got := img.RGBAAt(3, 3); got != DefaultPalette.On {
		t.Errorf("RGBAAt(3,3): expected on color, got %v", got)
	}
	if got := img.RGBAAt(4, 0); got != DefaultPalette.Off {
		t.Errorf("RGBAAt(4,0): expected off color, got %v", got)
	}
}

func TestSaveScreenshot(t *testing.T) {
	d := New()
	d.Draw(10, 10, []byte{0xFF})

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := d.SaveScreenshot(path, DefaultPalette, 2); err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != Width*2 {
		t.Errorf("width: expected %d, got %d", Width*2, img.Bounds().Dx())
	}
}
