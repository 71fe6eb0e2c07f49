package cxform

import "image"

// Pixmap is a float RGBA output buffer holding premultiplied colors. Values
// are stored unclamped; clamping happens only when converting to an 8-bit
// image.
type Pixmap struct {
	width  int
	height int
	pix    []Color
}

// NewPixmap creates a transparent pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// At returns the color at (x, y), or transparent outside the pixmap.
func (p *Pixmap) At(x, y int) Color {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return ColorTransparent
	}
	return p.pix[y*p.width+x]
}

// Set stores c at (x, y). Out-of-range writes are ignored.
func (p *Pixmap) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return
	}
	p.pix[y*p.width+x] = c
}

// Clear fills the pixmap with c.
func (p *Pixmap) Clear(c Color) {
	for i := range p.pix {
		p.pix[i] = c
	}
}

// row returns the slice backing row y.
func (p *Pixmap) row(y int) []Color {
	return p.pix[y*p.width : (y+1)*p.width]
}

// ToRGBA converts the pixmap to an 8-bit premultiplied image, clamping each
// channel to [0, 1] and RGB to at most alpha.
func (p *Pixmap) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i, c := range p.pix {
		r, g, b, a := c.RGBA()
		o := i * 4
		img.Pix[o+0] = uint8(r >> 8)
		img.Pix[o+1] = uint8(g >> 8)
		img.Pix[o+2] = uint8(b >> 8)
		img.Pix[o+3] = uint8(a >> 8)
	}
	return img
}

// ToNRGBA converts the pixmap to an 8-bit straight-alpha image, the form
// PNG stores.
func (p *Pixmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for i, c := range p.pix {
		n := c.nrgba()
		o := i * 4
		img.Pix[o+0] = n.R
		img.Pix[o+1] = n.G
		img.Pix[o+2] = n.B
		img.Pix[o+3] = n.A
	}
	return img
}
