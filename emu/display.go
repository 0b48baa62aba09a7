package emu

// Framebuffer is a monochrome pixel grid addressed as (x, y) with the origin
// at the top left.
type Framebuffer struct {
	width  int
	height int
	pixels []bool
}

// NewFramebuffer creates an all-off framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]bool, width*height),
	}
}

// Width returns the number of columns.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the number of rows.
func (f *Framebuffer) Height() int { return f.height }

// Pixel reports whether the pixel at (x, y) is on. Out of range coordinates
// read as off.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return false
	}
	return f.pixels[y*f.width+x]
}

// SetPixel sets the pixel at (x, y). Out of range coordinates are ignored.
func (f *Framebuffer) SetPixel(x, y int, on bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pixels[y*f.width+x] = on
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	clear(f.pixels)
}

// Lit returns the number of pixels that are on.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, p := range f.pixels {
		if p {
			n++
		}
	}
	return n
}

// Pixels returns a copy of the framebuffer in row-major order.
func (f *Framebuffer) Pixels() []bool {
	out := make([]bool, len(f.pixels))
	copy(out, f.pixels)
	return out
}

// DrawSprite XORs an 8-pixel-wide sprite onto the framebuffer with its top
// left corner at (x mod width, y mod height). Rows and columns that fall off
// the right or bottom edge are clipped. It reports whether any lit pixel was
// turned off.
func (f *Framebuffer) DrawSprite(x, y int, sprite []byte) bool {
	x %= f.width
	y %= f.height
	collision := false

	for row, bits := range sprite {
		py := y + row
		if py >= f.height {
			break
		}
		for col := 0; col < 8; col++ {
			px := x + col
			if px >= f.width {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			idx := py*f.width + px
			if f.pixels[idx] {
				collision = true
			}
			f.pixels[idx] = !f.pixels[idx]
		}
	}

	return collision
}

// executeDraw implements Dxyn.
func (s *State) executeDraw(x, y, n uint8) {
	px := int(s.V[x])
	py := int(s.V[y])
	s.V[FlagRegister] = 0

	var buf [16]byte
	sprite := buf[:n]
	for i := range sprite {
		sprite[i] = s.ReadByte(s.I + uint16(i))
	}

	if s.Display.DrawSprite(px, py, sprite) {
		s.V[FlagRegister] = 1
	}
}
