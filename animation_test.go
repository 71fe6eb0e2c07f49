package cxform

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenTransformReachesTarget(t *testing.T) {
	xf := IdentityColorTransform
	target := ColorTransform{Mult: Color{0, 0.5, 2, 0.25}, Add: Color{1, -0.5, 0, 0.5}}

	g := TweenTransform(&xf, target, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	got := xf.Uniforms()
	want := target.Uniforms()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 0.01 {
			t.Errorf("channel %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestTweenTransformMidpoint(t *testing.T) {
	xf := IdentityColorTransform
	target := ColorTransform{Mult: Color{0, 0, 0, 1}, Add: Color{1, 1, 1, 0}}

	g := TweenTransform(&xf, target, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be Done at midpoint")
	}
	if math.Abs(float64(xf.Mult.R-0.5)) > 0.01 {
		t.Errorf("Mult.R = %f, want ~0.5", xf.Mult.R)
	}
	if math.Abs(float64(xf.Add.G-0.5)) > 0.01 {
		t.Errorf("Add.G = %f, want ~0.5", xf.Add.G)
	}
	if xf.Mult.A != 1 {
		t.Errorf("Mult.A = %f, want 1 (unchanged channel)", xf.Mult.A)
	}
}

func TestTweenTransformUpdateAfterDone(t *testing.T) {
	xf := IdentityColorTransform
	g := TweenTransform(&xf, NewAlphaTransform(0), 0.5, ease.Linear)
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done")
	}
	xf.Mult.A = 0.75
	g.Update(0.5)
	if xf.Mult.A != 0.75 {
		t.Error("Update after Done should not write")
	}
}

func TestTweenTransformReset(t *testing.T) {
	xf := IdentityColorTransform
	g := TweenTransform(&xf, NewAlphaTransform(0), 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)
	g.Reset()

	if g.Done {
		t.Error("Done should be false after Reset")
	}
	if xf != IdentityColorTransform {
		t.Errorf("transform after Reset = %+v, want identity", xf)
	}
}
