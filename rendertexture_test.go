package cxform

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewRenderTextureDimensions(t *testing.T) {
	rt := NewRenderTexture(64, 32)
	defer rt.Dispose()

	if rt.Width() != 64 || rt.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", rt.Width(), rt.Height())
	}
	b := rt.Image().Bounds()
	if b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("image bounds = %dx%d, want 64x32", b.Dx(), b.Dy())
	}
}

func TestRenderTextureClearAndFill(t *testing.T) {
	rt := NewRenderTexture(4, 4)
	defer rt.Dispose()

	// Should not panic.
	rt.Clear()
	rt.Fill(Color{1, 0, 0, 1})
}

func TestRenderTextureDrawImage(t *testing.T) {
	rt := NewRenderTexture(32, 32)
	defer rt.Dispose()

	src := ebiten.NewImage(8, 8)
	defer src.Deallocate()

	var geoM ebiten.GeoM
	geoM.Translate(10, 10)
	// Should not panic.
	rt.DrawImage(src, geoM, NewAlphaTransform(0.5))
	if rt.batch.Pending() != 0 {
		t.Errorf("Pending = %d after DrawImage, want 0", rt.batch.Pending())
	}
	if rt.batch.DrawCalls() != 1 {
		t.Errorf("DrawCalls = %d, want 1", rt.batch.DrawCalls())
	}
}

func TestRenderTextureDrawRegion(t *testing.T) {
	rt := NewRenderTexture(64, 64)
	defer rt.Dispose()

	page := ebiten.NewImage(32, 32)
	defer page.Deallocate()

	atlas, err := LoadAtlas([]byte(`{"frames":{"a":{"frame":{"x":0,"y":0,"w":16,"h":16}}}}`), []*ebiten.Image{page})
	if err != nil {
		t.Fatal(err)
	}
	rt.DrawRegion(atlas, "a", ebiten.GeoM{}, IdentityColorTransform)
	if rt.batch.DrawCalls() != 1 {
		t.Errorf("DrawCalls = %d, want 1", rt.batch.DrawCalls())
	}

	// Missing names resolve to the magenta placeholder.
	rt.DrawRegion(atlas, "missing", ebiten.GeoM{}, IdentityColorTransform)
	if rt.batch.DrawCalls() != 1 {
		t.Errorf("DrawCalls for placeholder = %d, want 1", rt.batch.DrawCalls())
	}
}

func TestRenderTextureDrawRegionUsesDefaultTransform(t *testing.T) {
	rt := NewRenderTexture(32, 32)
	defer rt.Dispose()

	data := `{"frames":{"ghost":{"frame":{"x":0,"y":0,"w":8,"h":8},
		"colorTransform":{"mult":[1,1,1,0.5]}}}}`
	atlas, err := LoadAtlas([]byte(data), []*ebiten.Image{ebiten.NewImage(8, 8)})
	if err != nil {
		t.Fatal(err)
	}
	tint := NewTintTransform(Color{1, 0, 0, 1}, 1)
	rt.DrawRegion(atlas, "ghost", ebiten.GeoM{}, tint)

	want := tint.Concat(NewAlphaTransform(0.5))
	if rt.batch.xf != want {
		t.Errorf("batch transform = %+v, want %+v", rt.batch.xf, want)
	}
}

func TestRenderTextureApplyTransform(t *testing.T) {
	rt := NewRenderTexture(16, 16)
	defer rt.Dispose()

	var pool TexturePool
	defer pool.Dispose()

	rt.Fill(Color{0.5, 0.5, 0.5, 1})
	rt.ApplyTransform(NewBrightnessTransform(0.5), &pool)
	if pool.Len() != 1 {
		t.Errorf("pool.Len = %d after ApplyTransform, want 1", pool.Len())
	}

	// Identity is a no-op and touches no pooled image.
	var empty TexturePool
	rt.ApplyTransform(IdentityColorTransform, &empty)
	if empty.Len() != 0 {
		t.Errorf("identity ApplyTransform used the pool")
	}
}

func TestRenderTextureDispose(t *testing.T) {
	rt := NewRenderTexture(16, 16)
	rt.Dispose()

	if rt.Image() != nil {
		t.Error("Image() should be nil after Dispose")
	}

	// Double dispose should not panic.
	rt.Dispose()
}

func TestRenderTextureResize(t *testing.T) {
	rt := NewRenderTexture(32, 32)
	defer rt.Dispose()

	rt.Resize(128, 64)
	if rt.Width() != 128 || rt.Height() != 64 {
		t.Errorf("after Resize: size = %dx%d, want 128x64", rt.Width(), rt.Height())
	}
	if rt.Image() == nil {
		t.Fatal("Image() should not be nil after Resize")
	}
	b := rt.Image().Bounds()
	if b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("image bounds = %dx%d, want 128x64", b.Dx(), b.Dy())
	}
}

// --- Benchmarks ---

func BenchmarkRenderTextureDrawImage(b *testing.B) {
	rt := NewRenderTexture(256, 256)
	defer rt.Dispose()
	src := ebiten.NewImage(32, 32)
	xf := NewTintTransform(Color{1, 0, 0, 1}, 0.5)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rt.DrawImage(src, ebiten.GeoM{}, xf)
	}
}
