package cxform

// ColorTransform is an affine per-channel color operation: every channel,
// alpha included, is multiplied by Mult and then offset by Add. It is
// defined on straight (unassociated) colors.
//
// A ColorTransform is the uniform record of one draw batch. It is read-only
// while the batch runs and replaced, not mutated, for the next batch.
type ColorTransform struct {
	Mult Color
	Add  Color
}

// IdentityColorTransform leaves every color unchanged.
var IdentityColorTransform = ColorTransform{Mult: ColorWhite}

// Apply runs the bitmap color-transform stage on one sampled, premultiplied
// texel and returns a premultiplied result.
//
// A texel whose alpha is not positive is returned verbatim. Otherwise it is
// unpremultiplied, transformed on all four channels, and premultiplied again
// by the transformed alpha. Nothing is clamped: results outside [0, 1],
// including negative channels, are left for a later stage.
func (t ColorTransform) Apply(sampled Color) Color {
	if !(sampled.A > 0) {
		return sampled
	}
	r := t.Mult.R*(sampled.R/sampled.A) + t.Add.R
	g := t.Mult.G*(sampled.G/sampled.A) + t.Add.G
	b := t.Mult.B*(sampled.B/sampled.A) + t.Add.B
	a := t.Mult.A*sampled.A + t.Add.A
	return Color{r * a, g * a, b * a, a}
}

// IsIdentity reports whether t leaves every color unchanged.
func (t ColorTransform) IsIdentity() bool {
	return t == IdentityColorTransform
}

// Concat returns the transform equivalent to applying inner first and then
// t, as a parent display object's transform wraps its child's.
func (t ColorTransform) Concat(inner ColorTransform) ColorTransform {
	return ColorTransform{
		Mult: t.Mult.Mul(inner.Mult),
		Add:  t.Mult.Mul(inner.Add).Add(t.Add),
	}
}

// Lerp interpolates every multiplier and offset between t (at 0) and to (at 1).
func (t ColorTransform) Lerp(to ColorTransform, f float32) ColorTransform {
	return ColorTransform{
		Mult: lerpColor(t.Mult, to.Mult, f),
		Add:  lerpColor(t.Add, to.Add, f),
	}
}

// Uniforms packs the transform in binding order: mult_color then add_color.
func (t ColorTransform) Uniforms() [8]float32 {
	return [8]float32{
		t.Mult.R, t.Mult.G, t.Mult.B, t.Mult.A,
		t.Add.R, t.Add.G, t.Add.B, t.Add.A,
	}
}

// NewTintTransform pushes colors toward the straight color c. An amount of 0
// leaves colors unchanged and 1 replaces RGB with c. Alpha is untouched.
func NewTintTransform(c Color, amount float32) ColorTransform {
	m := 1 - amount
	return ColorTransform{
		Mult: Color{m, m, m, 1},
		Add:  Color{c.R * amount, c.G * amount, c.B * amount, 0},
	}
}

// NewBrightnessTransform brightens (b > 0, toward white) or darkens
// (b < 0, toward black) RGB. b is clamped to [-1, 1].
func NewBrightnessTransform(b float32) ColorTransform {
	b = max(-1, min(1, b))
	if b >= 0 {
		m := 1 - b
		return ColorTransform{
			Mult: Color{m, m, m, 1},
			Add:  Color{b, b, b, 0},
		}
	}
	m := 1 + b
	return ColorTransform{Mult: Color{m, m, m, 1}}
}

// NewAlphaTransform scales alpha by a and leaves RGB unchanged.
func NewAlphaTransform(a float32) ColorTransform {
	return ColorTransform{Mult: Color{1, 1, 1, a}}
}

// NewOffsetTransform adds add to every channel with unit multipliers.
func NewOffsetTransform(add Color) ColorTransform {
	return ColorTransform{Mult: ColorWhite, Add: add}
}

func lerpColor(a, b Color, t float32) Color {
	return Color{
		a.R + (b.R-a.R)*t,
		a.G + (b.G-a.G)*t,
		a.B + (b.B-a.B)*t,
		a.A + (b.A-a.A)*t,
	}
}
