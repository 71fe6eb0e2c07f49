package cxform

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertColorNear(t *testing.T, name string, got, want Color) {
	t.Helper()
	assertNear(t, name+".R", got.R, want.R)
	assertNear(t, name+".G", got.G, want.G)
	assertNear(t, name+".B", got.B, want.B)
	assertNear(t, name+".A", got.A, want.A)
}

// --- Apply ---

func TestApplyTransparentPassThrough(t *testing.T) {
	transforms := []ColorTransform{
		IdentityColorTransform,
		{Mult: Color{2, 3, 4, 5}, Add: Color{0.5, 0.5, 0.5, 0.5}},
		{Mult: Color{-1, -1, -1, -1}, Add: Color{1, 1, 1, 1}},
	}
	texels := []Color{
		{},
		{0.3, 0.2, 0.1, 0}, // garbage RGB behind zero alpha stays verbatim
		{1, 1, 1, 0},
	}
	for _, xf := range transforms {
		for _, c := range texels {
			if got := xf.Apply(c); got != c {
				t.Errorf("%+v.Apply(%v) = %v, want %v unchanged", xf, c, got, c)
			}
		}
	}
}

func TestApplyIdentity(t *testing.T) {
	texels := []Color{
		{0.5, 0.5, 0.5, 0.5},
		{1, 0, 0, 1},
		{0.1, 0.2, 0.3, 0.4},
		{0.01, 0.005, 0, 0.02},
		{0.75, 0.25, 0.5, 1},
	}
	for _, c := range texels {
		assertColorNear(t, "identity", IdentityColorTransform.Apply(c), c)
	}
}

func TestApplyIdentitySubnormalAlpha(t *testing.T) {
	tiny := float32(math.SmallestNonzeroFloat32)
	texels := []Color{
		{tiny, tiny, 0, tiny},
		{1e-40, 1e-40, 0, 1e-40},
		{0, tiny, tiny, tiny},
	}
	for _, c := range texels {
		got := IdentityColorTransform.Apply(c)
		if got != c {
			t.Errorf("identity Apply(%v) = %v, want %v unchanged", c, got, c)
		}
	}
}

func TestApplySubnormalAlphaStaysFinite(t *testing.T) {
	tiny := float32(math.SmallestNonzeroFloat32)
	xf := ColorTransform{Mult: Color{0.5, 2, 1, 4}, Add: Color{0.1, 0, 0, 0.25}}
	got := xf.Apply(Color{tiny, tiny, tiny, tiny})
	for i, v := range [4]float32{got.R, got.G, got.B, got.A} {
		f := float64(v)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			t.Fatalf("channel %d = %v, want finite", i, v)
		}
	}
	assertColorNear(t, "subnormal tint", got, Color{0.6 * 0.25, 2 * 0.25, 0.25, 0.25})
}

func TestApplyRoundTrip(t *testing.T) {
	// Straight-convert then re-premultiply reproduces the texel.
	for a := float32(0.05); a <= 1; a += 0.05 {
		c := Color{0.9 * a, 0.4 * a, 0.1 * a, a}
		got := c.Unpremultiply().Premultiply()
		assertColorNear(t, "round trip", got, c)
		assertColorNear(t, "identity apply", IdentityColorTransform.Apply(c), c)
	}
}

func TestApplyAlphaScaledTint(t *testing.T) {
	xf := ColorTransform{Mult: Color{1, 0, 0, 1}}
	sampled := Color{0.5, 0.5, 0.5, 0.5}

	straight := xf.Mult.Mul(sampled.Unpremultiply()).Add(xf.Add)
	assertColorNear(t, "straight", straight, Color{1, 0, 0, 0.5})
	assertColorNear(t, "result", xf.Apply(sampled), Color{0.5, 0, 0, 0.5})
}

func TestApplyAdditiveOffsetAffectsAlpha(t *testing.T) {
	xf := ColorTransform{Mult: ColorWhite, Add: Color{0, 0, 0, 0.25}}
	sampled := Color{0.25, 0.125, 0, 0.25} // straight (1, 0.5, 0, 0.25)

	got := xf.Apply(sampled)
	assertNear(t, "A", got.A, 0.5)
	// RGB is premultiplied by the transformed alpha 0.5, not by 0.25.
	assertNear(t, "R", got.R, 0.5)
	assertNear(t, "G", got.G, 0.25)
	assertNear(t, "B", got.B, 0)
}

func TestApplyMonotonicInMult(t *testing.T) {
	sampled := Color{0.2, 0.3, 0.1, 0.6}
	channels := []struct {
		name string
		set  func(c *Color, v float32)
		get  func(c Color) float32
	}{
		{"R", func(c *Color, v float32) { c.R = v }, func(c Color) float32 { return c.R }},
		{"G", func(c *Color, v float32) { c.G = v }, func(c Color) float32 { return c.G }},
		{"B", func(c *Color, v float32) { c.B = v }, func(c Color) float32 { return c.B }},
		{"A", func(c *Color, v float32) { c.A = v }, func(c Color) float32 { return c.A }},
	}
	for _, ch := range channels {
		t.Run(ch.name, func(t *testing.T) {
			prev := float32(math.Inf(-1))
			for m := float32(0.25); m <= 4; m += 0.25 {
				xf := IdentityColorTransform
				ch.set(&xf.Mult, m)
				got := ch.get(xf.Apply(sampled))
				if !(got > prev) {
					t.Fatalf("mult %v: %s = %v, not above previous %v", m, ch.name, got, prev)
				}
				prev = got
			}
		})
	}
}

func TestApplyDoesNotClamp(t *testing.T) {
	sampled := Color{0.5, 0.5, 0.5, 0.5}

	bright := ColorTransform{Mult: Color{4, 4, 4, 4}}
	got := bright.Apply(sampled)
	assertColorNear(t, "bright", got, Color{8, 8, 8, 2})

	inverted := ColorTransform{Mult: Color{-1, -1, -1, 1}}
	got = inverted.Apply(sampled)
	assertColorNear(t, "inverted", got, Color{-0.5, -0.5, -0.5, 0.5})
}

func TestApplyNegativeAlphaPassesThrough(t *testing.T) {
	c := Color{0.1, 0.1, 0.1, -0.5}
	xf := ColorTransform{Mult: Color{2, 2, 2, 2}, Add: Color{1, 1, 1, 1}}
	if got := xf.Apply(c); got != c {
		t.Errorf("Apply(%v) = %v, want unchanged", c, got)
	}
}

func TestApplyAlphaDrivenToZero(t *testing.T) {
	xf := ColorTransform{Mult: Color{1, 1, 1, 0}}
	got := xf.Apply(Color{0.5, 0.25, 0, 0.5})
	assertColorNear(t, "faded", got, Color{})
}

// --- Composition ---

func TestIsIdentity(t *testing.T) {
	if !IdentityColorTransform.IsIdentity() {
		t.Error("IdentityColorTransform should be identity")
	}
	if (ColorTransform{}).IsIdentity() {
		t.Error("zero transform should not be identity")
	}
	if NewAlphaTransform(0.5).IsIdentity() {
		t.Error("alpha transform should not be identity")
	}
}

func TestConcatMatchesSequentialApply(t *testing.T) {
	inner := ColorTransform{Mult: Color{0.5, 1, 2, 0.8}, Add: Color{0.1, -0.2, 0, 0.05}}
	outer := ColorTransform{Mult: Color{1.5, 0.5, 1, 1}, Add: Color{0, 0.3, -0.1, 0.1}}
	combined := outer.Concat(inner)

	straight := Color{0.4, 0.6, 0.2, 0.7}
	step := outer.Mult.Mul(inner.Mult.Mul(straight).Add(inner.Add)).Add(outer.Add)
	once := combined.Mult.Mul(straight).Add(combined.Add)
	assertColorNear(t, "concat", once, step)
}

func TestConcatIdentity(t *testing.T) {
	xf := ColorTransform{Mult: Color{0.5, 1, 2, 0.8}, Add: Color{0.1, -0.2, 0, 0.05}}
	if got := IdentityColorTransform.Concat(xf); got != xf {
		t.Errorf("identity.Concat(xf) = %+v, want %+v", got, xf)
	}
	if got := xf.Concat(IdentityColorTransform); got != xf {
		t.Errorf("xf.Concat(identity) = %+v, want %+v", got, xf)
	}
}

func TestLerp(t *testing.T) {
	from := IdentityColorTransform
	to := ColorTransform{Mult: Color{0, 0, 0, 1}, Add: Color{1, 0.5, 0, 0}}

	if got := from.Lerp(to, 0); got != from {
		t.Errorf("Lerp(0) = %+v, want %+v", got, from)
	}
	if got := from.Lerp(to, 1); got != to {
		t.Errorf("Lerp(1) = %+v, want %+v", got, to)
	}
	mid := from.Lerp(to, 0.5)
	assertColorNear(t, "mid.Mult", mid.Mult, Color{0.5, 0.5, 0.5, 1})
	assertColorNear(t, "mid.Add", mid.Add, Color{0.5, 0.25, 0, 0})
}

func TestUniformsOrder(t *testing.T) {
	xf := ColorTransform{Mult: Color{1, 2, 3, 4}, Add: Color{5, 6, 7, 8}}
	want := [8]float32{1, 2, 3, 4, 5, 6, 7, 8}
	if got := xf.Uniforms(); got != want {
		t.Errorf("Uniforms() = %v, want %v", got, want)
	}
}

// --- Constructors ---

func TestNewTintTransform(t *testing.T) {
	red := Color{1, 0, 0, 1}

	none := NewTintTransform(red, 0)
	if !none.IsIdentity() {
		t.Errorf("tint amount 0 = %+v, want identity", none)
	}

	full := NewTintTransform(red, 1)
	got := full.Apply(Color{0.2, 0.4, 0.6, 0.5})
	assertColorNear(t, "full tint", got, Color{0.5, 0, 0, 0.5})
}

func TestNewBrightnessTransform(t *testing.T) {
	tests := []struct {
		name string
		b    float32
		want Color
	}{
		{"unchanged", 0, Color{0.4, 0.4, 0.4, 1}},
		{"white", 1, Color{1, 1, 1, 1}},
		{"black", -1, Color{0, 0, 0, 1}},
		{"half bright", 0.5, Color{0.7, 0.7, 0.7, 1}},
		{"half dark", -0.5, Color{0.2, 0.2, 0.2, 1}},
		{"clamped", 3, Color{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBrightnessTransform(tt.b).Apply(Color{0.4, 0.4, 0.4, 1})
			assertColorNear(t, "result", got, tt.want)
		})
	}
}

func TestNewAlphaTransform(t *testing.T) {
	got := NewAlphaTransform(0.5).Apply(Color{1, 0.5, 0, 1})
	assertColorNear(t, "result", got, Color{0.5, 0.25, 0, 0.5})
}

func TestNewOffsetTransform(t *testing.T) {
	xf := NewOffsetTransform(Color{0.25, 0, 0, 0})
	got := xf.Apply(Color{0.5, 0.5, 0.5, 1})
	assertColorNear(t, "result", got, Color{0.75, 0.5, 0.5, 1})
}

// --- Benchmarks ---

func BenchmarkApply(b *testing.B) {
	xf := ColorTransform{Mult: Color{1, 0.5, 0.25, 1}, Add: Color{0.1, 0, 0, 0}}
	c := Color{0.3, 0.2, 0.1, 0.6}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c = xf.Apply(c)
		c.A = 0.6
	}
	_ = c
}
