package cxform

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// colorTransformShaderSrc is the GPU form of ColorTransform.Apply.
// Ebitengine images are premultiplied; the shader unpremultiplies, applies
// mult and add to all four channels, then premultiplies by the new alpha.
// Fully transparent texels pass through. Output is not clamped here; the
// render target's format clamps on store.
const colorTransformShaderSrc = `//kage:unit pixels
package main

var MultColor vec4
var AddColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
		c = MultColor*c + AddColor
		c.rgb *= c.a
	}
	return c
}
`

// Uniform names, in binding order.
const (
	uniformMultColor = "MultColor"
	uniformAddColor  = "AddColor"
)

// --- Lazy shader compilation (drawing is single-threaded) ---

var colorTransformShader *ebiten.Shader

func ensureColorTransformShader() *ebiten.Shader {
	if colorTransformShader == nil {
		s, err := ebiten.NewShader([]byte(colorTransformShaderSrc))
		if err != nil {
			panic("cxform: failed to compile color transform shader: " + err.Error())
		}
		colorTransformShader = s
	}
	return colorTransformShader
}

// shaderUniforms is a persistent uniform record for the color transform
// shader. The map and its vectors are allocated once; set writes in place so
// a draw does not allocate.
type shaderUniforms struct {
	values map[string]any
	mult   mgl32.Vec4
	add    mgl32.Vec4
}

func newShaderUniforms() *shaderUniforms {
	u := &shaderUniforms{values: make(map[string]any, 2)}
	u.values[uniformMultColor] = u.mult[:]
	u.values[uniformAddColor] = u.add[:]
	return u
}

// set copies xf into the uniform vectors.
func (u *shaderUniforms) set(xf ColorTransform) {
	u.mult = xf.Mult.Vec4()
	u.add = xf.Add.Vec4()
}
