package cxform

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA color with float32 components. Components are nominally
// in [0, 1] but are never clamped by the transform stage.
//
// A Color carries no flag saying whether it is premultiplied; textures and
// stage output are premultiplied, the transform itself works on straight
// colors. Functions that care say which one they expect.
type Color struct {
	R, G, B, A float32
}

var (
	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}
	// ColorTransparent is the zero color.
	ColorTransparent = Color{}
)

// Premultiply scales R, G and B by A.
func (c Color) Premultiply() Color {
	return Color{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// Unpremultiply divides R, G and B by A. A color whose alpha is not
// positive is returned unchanged.
func (c Color) Unpremultiply() Color {
	if !(c.A > 0) {
		return c
	}
	return Color{c.R / c.A, c.G / c.A, c.B / c.A, c.A}
}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Add returns the component-wise sum of c and o.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Vec4 returns the color as a 4-component vector in R, G, B, A order.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// ColorFromVec4 is the inverse of Color.Vec4.
func ColorFromVec4(v mgl32.Vec4) Color {
	return Color{v[0], v[1], v[2], v[3]}
}

// ColorFromRGBA converts any image/color value to a premultiplied Color.
// Go colors are already alpha-premultiplied, so only the scale changes.
func ColorFromRGBA(c color.Color) Color {
	r, g, b, a := c.RGBA()
	const m = 0xffff
	return Color{float32(r) / m, float32(g) / m, float32(b) / m, float32(a) / m}
}

// RGBA implements color.Color for a premultiplied Color. Components are
// clamped to [0, 1]; this is the only place the package clamps.
func (c Color) RGBA() (r, g, b, a uint32) {
	const m = 0xffff
	a = uint32(clamp01(c.A)*m + 0.5)
	r = uint32(min(clamp01(c.R), clamp01(c.A))*m + 0.5)
	g = uint32(min(clamp01(c.G), clamp01(c.A))*m + 0.5)
	b = uint32(min(clamp01(c.B), clamp01(c.A))*m + 0.5)
	return
}

// nrgba converts a premultiplied Color to an 8-bit straight-alpha color.
func (c Color) nrgba() color.NRGBA {
	a := clamp01(c.A)
	if a == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: uint8(clamp01(c.R/a)*255 + 0.5),
		G: uint8(clamp01(c.G/a)*255 + 0.5),
		B: uint8(clamp01(c.B/a)*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
