package cxform

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TransformTween animates all eight channels of a ColorTransform (the four
// multipliers and the four offsets) toward a target. Call Update(dt) each
// frame; values are written to the target transform in place.
//
// There is no global animation manager; users call Update themselves.
// Write the animated transform into the next batch's uniforms, never into
// one that is being drawn.
type TransformTween struct {
	tweens [8]*gween.Tween
	fields [8]*float32
	Done   bool
}

// TweenTransform creates a tween moving *xf to the target transform over
// duration seconds using the easing function.
func TweenTransform(xf *ColorTransform, to ColorTransform, duration float32, fn ease.TweenFunc) *TransformTween {
	g := &TransformTween{}
	g.fields = [8]*float32{
		&xf.Mult.R, &xf.Mult.G, &xf.Mult.B, &xf.Mult.A,
		&xf.Add.R, &xf.Add.G, &xf.Add.B, &xf.Add.A,
	}
	targets := to.Uniforms()
	for i, f := range g.fields {
		g.tweens[i] = gween.New(*f, targets[i], duration, fn)
	}
	return g
}

// Update advances all channels by dt seconds and writes them to the
// transform. Done is set once every channel has finished.
func (g *TransformTween) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds the tween to its starting values.
func (g *TransformTween) Reset() {
	for i, tw := range g.tweens {
		val, _ := tw.Set(0)
		*g.fields[i] = val
	}
	g.Done = false
}
