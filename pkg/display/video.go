package display

import (
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Palette maps the two pixel states to colors.
type Palette struct {
	Off color.RGBA
	On  color.RGBA
}

// DefaultPalette is white on black.
var DefaultPalette = Palette{
	Off: color.RGBA{0x00, 0x00, 0x00, 0xFF},
	On:  color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
}

// FramebufferRGBA decodes the framebuffer into a 64×32 RGBA8888 byte slice
// (length 64*32*4 = 8192).
func (d *Display) FramebufferRGBA(p Palette) []byte {
	pixels := make([]byte, Size*4)
	for i, v := range d.Pixels {
		c := p.Off
		if v == 1 {
			c = p.On
		}
		pixels[i*4+0] = c.R
		pixels[i*4+1] = c.G
		pixels[i*4+2] = c.B
		pixels[i*4+3] = c.A
	}
	return pixels
}

// Image returns the framebuffer as an *image.RGBA.
func (d *Display) Image(p Palette) *image.RGBA {
	return &image.RGBA{
		Pix:    d.FramebufferRGBA(p),
		Stride: Width * 4,
		Rect:   image.Rect(0, 0, Width, Height),
	}
}

// ScaledImage returns the framebuffer upscaled by an integer factor with
// nearest-neighbour sampling so pixels stay sharp.
func (d *Display) ScaledImage(p Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := d.Image(p)
	dst := image.NewRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// SaveScreenshot encodes the framebuffer as a PNG and writes it to filename.
func (d *Display) SaveScreenshot(filename string, p Palette, scale int) error {
	img := d.ScaledImage(p, scale)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
