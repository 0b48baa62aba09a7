// Package video converts CHIP-8 framebuffers into images.
package video

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/sarchlab/c8sim/emu"
)

// Palette colors for lit and unlit pixels.
var (
	On  = color.RGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}
	Off = color.RGBA{A: 0xFF}
)

// RGBA writes the framebuffer as packed RGBA bytes into dst, growing it if
// needed, and returns it. The layout matches ebiten.Image.WritePixels.
func RGBA(fb *emu.Framebuffer, dst []byte) []byte {
	n := fb.Width() * fb.Height() * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	i := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			c := Off
			if fb.Pixel(x, y) {
				c = On
			}
			dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}

	return dst
}

// Image returns the framebuffer as an *image.RGBA, one image pixel per
// framebuffer pixel.
func Image(fb *emu.Framebuffer) *image.RGBA {
	return &image.RGBA{
		Pix:    RGBA(fb, nil),
		Stride: fb.Width() * 4,
		Rect:   image.Rect(0, 0, fb.Width(), fb.Height()),
	}
}

// Scaled returns the framebuffer enlarged by an integer factor with
// nearest-neighbor sampling.
func Scaled(fb *emu.Framebuffer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	src := Image(fb)
	if scale == 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, fb.Width()*scale, fb.Height()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst
}

// SaveScreenshot encodes the framebuffer, scaled, as a PNG file.
func SaveScreenshot(path string, fb *emu.Framebuffer, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}

	return writePNG(f, Scaled(fb, scale))
}

// writePNG encodes img to w and closes it. A failed close is reported even
// when encoding succeeded.
func writePNG(w io.WriteCloser, img image.Image) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close screenshot: %w", cerr)
		}
	}()

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}

	return nil
}
