package cxform

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is a persistent offscreen canvas that sprites are drawn
// into through the color transform stage. Unlike images from a TexturePool,
// a RenderTexture is owned by the caller and is not recycled between frames.
type RenderTexture struct {
	image *ebiten.Image
	w, h  int
	batch *SpriteBatch
}

// NewRenderTexture creates a persistent offscreen canvas of the given size.
func NewRenderTexture(w, h int) *RenderTexture {
	return &RenderTexture{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
		batch: NewSpriteBatch(),
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Clear fills the texture with transparent black.
func (rt *RenderTexture) Clear() {
	rt.image.Clear()
}

// Fill fills the entire texture with the premultiplied color c.
func (rt *RenderTexture) Fill(c Color) {
	rt.image.Fill(c)
}

// DrawImage draws the whole of src placed by geoM and shaded with xf.
func (rt *RenderTexture) DrawImage(src *ebiten.Image, geoM ebiten.GeoM, xf ColorTransform) {
	rt.batch.Begin(rt.image)
	rt.batch.Draw(src, TextureRegion{}, geoM, xf)
	rt.batch.End()
}

// DrawRegion draws a named atlas region placed by geoM. The region's default
// transform is applied first, then xf. Missing names draw the magenta
// placeholder.
func (rt *RenderTexture) DrawRegion(atlas *Atlas, name string, geoM ebiten.GeoM, xf ColorTransform) {
	r := atlas.Region(name)
	page := atlas.PageImage(r)
	if page == nil {
		return
	}
	rt.batch.Begin(rt.image)
	rt.batch.Draw(page, r, geoM, xf.Concat(atlas.Transform(name)))
	rt.batch.End()
}

// ApplyTransform runs the color transform over the current contents in
// place, using pool for the scratch image.
func (rt *RenderTexture) ApplyTransform(xf ColorTransform, pool *TexturePool) {
	if xf.IsIdentity() {
		return
	}
	f := NewColorTransformFilter(xf)
	out := ApplyFilters([]Filter{f}, rt.image, pool)
	rt.image.Clear()
	rt.image.DrawImage(out.SubImage(image.Rect(0, 0, rt.w, rt.h)).(*ebiten.Image), nil)
	pool.Release(out)
}

// Resize deallocates the old image and creates a new one at the given dimensions.
func (rt *RenderTexture) Resize(width, height int) {
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImage(width, height)
	rt.w = width
	rt.h = height
}

// Dispose deallocates the underlying image. The RenderTexture should not be
// used after calling Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}
