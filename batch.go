package cxform

import "github.com/hajimehoshi/ebiten/v2"

// SpriteBatch accumulates textured quads and submits them through the
// color transform shader. Quads that share a page image and a
// ColorTransform are drawn in one call, so the transform is a per-batch
// uniform: constant for every pixel of a flush.
//
// Usage:
//
//	b.Begin(screen)
//	b.Draw(page, region, geoM, xf)
//	...
//	b.End()
type SpriteBatch struct {
	target    *ebiten.Image
	page      *ebiten.Image
	xf        ColorTransform
	verts     []ebiten.Vertex
	inds      []uint32
	uniforms  *shaderUniforms
	shaderOp  ebiten.DrawTrianglesShaderOptions
	drawCalls int
}

// NewSpriteBatch creates an empty batch.
func NewSpriteBatch() *SpriteBatch {
	return &SpriteBatch{uniforms: newShaderUniforms()}
}

// Begin starts a frame of drawing into target and resets the draw call count.
func (b *SpriteBatch) Begin(target *ebiten.Image) {
	b.target = target
	b.drawCalls = 0
}

// Draw queues region r of page, placed by geoM and shaded with xf. A region
// with zero width or height covers the whole page. A change of page or
// transform flushes the quads queued so far.
func (b *SpriteBatch) Draw(page *ebiten.Image, r TextureRegion, geoM ebiten.GeoM, xf ColorTransform) {
	if b.target == nil {
		panic("cxform: SpriteBatch.Draw called outside Begin/End")
	}
	if page == nil {
		return
	}
	if r.Width == 0 || r.Height == 0 {
		r = RegionOf(page)
	}
	if len(b.verts) > 0 && (page != b.page || xf != b.xf) {
		b.Flush()
	}
	b.page = page
	b.xf = xf
	b.appendQuad(&r, &geoM)
}

// Flush submits queued quads as a single DrawTrianglesShader32 call.
func (b *SpriteBatch) Flush() {
	if len(b.verts) == 0 || b.target == nil {
		return
	}
	if globalDebug {
		debugCheckBatchSize(len(b.verts) / 4)
	}
	if b.uniforms == nil {
		b.uniforms = newShaderUniforms()
	}
	b.uniforms.set(b.xf)
	b.shaderOp.Images[0] = b.page
	b.shaderOp.Uniforms = b.uniforms.values

	b.target.DrawTrianglesShader32(b.verts, b.inds, ensureColorTransformShader(), &b.shaderOp)
	b.drawCalls++

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// End flushes remaining quads and detaches the target.
func (b *SpriteBatch) End() {
	b.Flush()
	b.target = nil
	b.page = nil
	b.shaderOp.Images[0] = nil
}

// DrawCalls returns the number of flushes since Begin.
func (b *SpriteBatch) DrawCalls() int {
	return b.drawCalls
}

// Pending returns the number of queued quads.
func (b *SpriteBatch) Pending() int {
	return len(b.verts) / 4
}

// appendQuad appends 4 vertices and 6 indices for one region.
func (b *SpriteBatch) appendQuad(r *TextureRegion, geoM *ebiten.GeoM) {
	// Local quad corners: TL, TR, BL, BR. Width/Height are the visual size
	// for rotated regions too; the trim offset shifts the local origin.
	ox := float64(r.OffsetX)
	oy := float64(r.OffsetY)
	w := float64(r.Width)
	h := float64(r.Height)
	lx := [4]float64{ox, ox + w, ox, ox + w}
	ly := [4]float64{oy, oy, oy + h, oy + h}

	// Source positions in page pixels.
	rx := float32(r.X)
	ry := float32(r.Y)
	rw := float32(r.Width)
	rh := float32(r.Height)
	var sx, sy [4]float32
	if r.Rotated {
		// Stored 90° CW: the stored rect is rh wide and rw tall.
		//   Visual TL → (rx + rh, ry)
		//   Visual TR → (rx + rh, ry + rw)
		//   Visual BL → (rx, ry)
		//   Visual BR → (rx, ry + rw)
		sx = [4]float32{rx + rh, rx + rh, rx, rx}
		sy = [4]float32{ry, ry + rw, ry, ry + rw}
	} else {
		sx = [4]float32{rx, rx + rw, rx, rx + rw}
		sy = [4]float32{ry, ry, ry + rh, ry + rh}
	}

	base := uint32(len(b.verts))
	for i := 0; i < 4; i++ {
		dx, dy := geoM.Apply(lx[i], ly[i])
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(dx),
			DstY:   float32(dy),
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}
