// Package display implements the 64×32 monochrome framebuffer and the XOR
// sprite blitter.
package display

import (
	"strings"

	"gochip8/pkg/grid"
)

const (
	Width  = 64
	Height = 32

	// Size is the number of pixels in the framebuffer, one byte each.
	Size = Width * Height

	// MaxSpriteRows is the tallest sprite a single draw can blit.
	MaxSpriteRows = 15
)

// Display is a row-major framebuffer. Each cell holds 0 or 1.
type Display struct {
	Pixels [Size]byte
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.Pixels = [Size]byte{}
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates wrap.
func (d *Display) Pixel(x, y int) bool {
	return d.Pixels[grid.Index(wrap(x, Width), wrap(y, Height), Width)] == 1
}

// Draw XORs sprite rows onto the framebuffer with the top-left corner at
// (x, y), wrapping on both axes. Bits are read MSB first. It returns true if
// any set sprite bit landed on a pixel that was already on.
func (d *Display) Draw(x, y int, sprite []byte) bool {
	return d.blit(x, y, sprite, false)
}

// DrawClipped is Draw with the start position wrapped onto the screen but
// with columns and rows past the right and bottom edges discarded.
func (d *Display) DrawClipped(x, y int, sprite []byte) bool {
	return d.blit(x, y, sprite, true)
}

func (d *Display) blit(x, y int, sprite []byte, clip bool) bool {
	if len(sprite) > MaxSpriteRows {
		sprite = sprite[:MaxSpriteRows]
	}
	x = wrap(x, Width)
	y = wrap(y, Height)

	collision := false
	for i, row := range sprite {
		py := y + i
		if py >= Height {
			if clip {
				break
			}
			py %= Height
		}
		for j := 0; j < 8; j++ {
			if row&(0x80>>j) == 0 {
				continue
			}
			px := x + j
			if px >= Width {
				if clip {
					break
				}
				px %= Width
			}
			idx := grid.Index(px, py, Width)
			if d.Pixels[idx] == 1 {
				collision = true
			}
			d.Pixels[idx] ^= 1
		}
	}
	return collision
}

// String renders the framebuffer as text, one line per row.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for i, p := range d.Pixels {
		if p == 1 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
		if x, _ := grid.GetGridCoords(i, Width); x == Width-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
