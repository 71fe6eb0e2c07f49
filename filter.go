package cxform

import "github.com/hajimehoshi/ebiten/v2"

// Filter is the interface for effects applied to a whole rendered image.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to
	// accommodate the effect. Zero means no padding.
	Padding() int
}

// --- ColorTransformFilter ---

// ColorTransformFilter runs the color transform stage over every pixel of
// an image using a Kage shader.
type ColorTransformFilter struct {
	Transform ColorTransform
	uniforms  *shaderUniforms
	shaderOp  ebiten.DrawRectShaderOptions
}

// NewColorTransformFilter creates a filter applying xf.
func NewColorTransformFilter(xf ColorTransform) *ColorTransformFilter {
	return &ColorTransformFilter{
		Transform: xf,
		uniforms:  newShaderUniforms(),
	}
}

// Apply renders src into dst through the color transform.
func (f *ColorTransformFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureColorTransformShader()
	if f.uniforms == nil {
		f.uniforms = newShaderUniforms()
	}
	f.uniforms.set(f.Transform)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms.values
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; color transforms don't expand the image bounds.
func (f *ColorTransformFilter) Padding() int { return 0 }

// --- Filter chain ---

// FilterChainPadding returns the cumulative padding required by filters.
func FilterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// ApplyFilters runs a filter chain on src, ping-ponging between pooled
// images. It returns the image holding the final result: src itself when
// filters is empty, otherwise an image acquired from pool that the caller
// should Release when done. Intermediate images are released here.
func ApplyFilters(filters []Filter, src *ebiten.Image, pool *TexturePool) *ebiten.Image {
	if len(filters) == 0 {
		return src
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	current := src
	var scratch *ebiten.Image

	for _, f := range filters {
		if scratch == nil || scratch == src {
			// src belongs to the caller and is never drawn into.
			scratch = pool.Acquire(w, h)
		} else {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}

	if scratch != src {
		pool.Release(scratch)
	}
	return current
}
