package cxform

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is a read-only grid of premultiplied float texels.
type Texture struct {
	width  int
	height int
	pix    []Color
}

// NewTexture copies img into a Texture. Go images are premultiplied (or
// converted to premultiplied by their color model), so texels keep that
// convention.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := &Texture{width: w, height: h, pix: make([]Color, w*h)}

	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				p := row[x*4 : x*4+4]
				t.pix[y*w+x] = Color{
					float32(p[0]) / 255,
					float32(p[1]) / 255,
					float32(p[2]) / 255,
					float32(p[3]) / 255,
				}
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				t.pix[y*w+x] = ColorFromRGBA(img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	}
	return t
}

// NewTextureFromColors wraps premultiplied texels in row-major order. The
// slice is used directly, not copied.
func NewTextureFromColors(width, height int, pix []Color) (*Texture, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("cxform: invalid texture size %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("cxform: texture %dx%d needs %d texels, got %d",
			width, height, width*height, len(pix))
	}
	return &Texture{width: width, height: height, pix: pix}, nil
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (width, height int) {
	return t.width, t.height
}

// At returns the texel at (x, y), or transparent outside the texture.
func (t *Texture) At(x, y int) Color {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return ColorTransparent
	}
	return t.pix[y*t.width+x]
}

// FilterMode selects how texels are combined when sampling.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota // closest texel
	FilterLinear                    // bilinear blend of the four closest texels
)

// WrapMode selects what a sample outside [0, 1] reads.
type WrapMode uint8

const (
	WrapClampToEdge    WrapMode = iota // repeat the edge texel
	WrapRepeat                         // tile the texture
	WrapMirroredRepeat                 // tile, flipping every other copy
	WrapClampToZero                    // read transparent black
)

// Sampler is the filtering and addressing configuration paired with a
// texture. The zero value is nearest filtering with clamp-to-edge.
type Sampler struct {
	Filter FilterMode
	Wrap   WrapMode
}

// Sample reads tex at the normalized coordinate. Texel i covers
// [i/w, (i+1)/w), so its center is at (i+0.5)/w. The result is premultiplied.
func (s Sampler) Sample(tex *Texture, coord mgl32.Vec2) Color {
	if tex == nil || tex.width == 0 || tex.height == 0 {
		return ColorTransparent
	}
	fx := float64(coord[0]) * float64(tex.width)
	fy := float64(coord[1]) * float64(tex.height)

	if s.Filter != FilterLinear {
		return s.fetch(tex, int(math.Floor(fx)), int(math.Floor(fy)))
	}

	fx -= 0.5
	fy -= 0.5
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	tx := float32(fx - x0)
	ty := float32(fy - y0)
	ix, iy := int(x0), int(y0)

	c00 := s.fetch(tex, ix, iy)
	c10 := s.fetch(tex, ix+1, iy)
	c01 := s.fetch(tex, ix, iy+1)
	c11 := s.fetch(tex, ix+1, iy+1)
	return lerpColor(lerpColor(c00, c10, tx), lerpColor(c01, c11, tx), ty)
}

func (s Sampler) fetch(tex *Texture, x, y int) Color {
	x, okX := wrapIndex(x, tex.width, s.Wrap)
	y, okY := wrapIndex(y, tex.height, s.Wrap)
	if !okX || !okY {
		return ColorTransparent
	}
	return tex.pix[y*tex.width+x]
}

// wrapIndex maps i into [0, n) for the wrap mode. ok is false when the
// mode reads transparent for out-of-range indices.
func wrapIndex(i, n int, mode WrapMode) (int, bool) {
	switch mode {
	case WrapRepeat:
		return ((i % n) + n) % n, true
	case WrapMirroredRepeat:
		p := 2 * n
		m := ((i % p) + p) % p
		if m >= n {
			m = p - 1 - m
		}
		return m, true
	case WrapClampToZero:
		return i, i >= 0 && i < n
	default:
		return max(0, min(n-1, i)), true
	}
}

// Shade runs one full invocation: sample tex at coord, then apply xf.
func Shade(tex *Texture, s Sampler, coord mgl32.Vec2, xf ColorTransform) Color {
	return xf.Apply(s.Sample(tex, coord))
}
