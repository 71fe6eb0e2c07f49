package cxform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion is a sub-rectangle of an atlas page: a sprite, a glyph tile
// or any other bitmap drawn through a SpriteBatch.
//
// Width and Height are the size as drawn. A rotated region is stored on the
// page turned 90° clockwise, so it occupies Height×Width page pixels.
type TextureRegion struct {
	Page      uint16 // index into Atlas.Pages
	X, Y      uint16 // top-left of the stored rect on the page
	Width     uint16 // drawn width; trimmed sprites may be smaller than OriginalW
	Height    uint16 // drawn height
	OriginalW uint16 // untrimmed width
	OriginalH uint16 // untrimmed height
	OffsetX   int16  // trim offset applied to the quad origin
	OffsetY   int16
	Rotated   bool
}

// RegionOf returns a region covering all of img.
func RegionOf(img *ebiten.Image) TextureRegion {
	b := img.Bounds()
	w, h := uint16(b.Dx()), uint16(b.Dy())
	return TextureRegion{
		X:         uint16(b.Min.X),
		Y:         uint16(b.Min.Y),
		Width:     w,
		Height:    h,
		OriginalW: w,
		OriginalH: h,
	}
}

// PageRect returns the page pixels the region is stored in.
func (r TextureRegion) PageRect() image.Rectangle {
	w, h := int(r.Width), int(r.Height)
	if r.Rotated {
		w, h = h, w
	}
	return image.Rect(int(r.X), int(r.Y), int(r.X)+w, int(r.Y)+h)
}

// Atlas maps names to regions of its page images. Every region has been
// checked to lie inside its page, so a SpriteBatch drawing it never samples
// outside the page. A region may carry a default ColorTransform.
type Atlas struct {
	Pages      []*ebiten.Image
	regions    map[string]TextureRegion
	transforms map[string]ColorTransform
}

// Region returns the named region. Unknown names return a 1×1 region on
// the placeholder page (drawn magenta) and log in debug mode.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if globalDebug {
		log.Printf("cxform: atlas region %q not found, drawing placeholder", name)
	}
	return TextureRegion{Page: placeholderPage, Width: 1, Height: 1, OriginalW: 1, OriginalH: 1}
}

// Transform returns the default color transform of the named region, or the
// identity when the atlas sets none.
func (a *Atlas) Transform(name string) ColorTransform {
	if xf, ok := a.transforms[name]; ok {
		return xf
	}
	return IdentityColorTransform
}

// PageImage returns the page image a region lives on, or nil if the page
// index is out of range.
func (a *Atlas) PageImage(r TextureRegion) *ebiten.Image {
	if r.Page == placeholderPage {
		return placeholderImage()
	}
	if int(r.Page) < len(a.Pages) {
		return a.Pages[r.Page]
	}
	return nil
}

// Len returns the number of named regions.
func (a *Atlas) Len() int { return len(a.regions) }

// placeholderPage never names a real page.
const placeholderPage = 0xFFFF

var placeholder *ebiten.Image

func placeholderImage() *ebiten.Image {
	if placeholder == nil {
		placeholder = ebiten.NewImage(1, 1)
		placeholder.Fill(color.RGBA{R: 0xff, B: 0xff, A: 0xff})
	}
	return placeholder
}

// LoadAtlas reads TexturePacker JSON and binds its frames to pages. It
// accepts a single page with "frames" as an object (JSON Hash) or an array
// (JSON Array), and multipack data with a "textures" list, one entry per
// page.
//
// Frames may carry an optional default transform:
//
//	"colorTransform": {"mult": [1, 1, 1, 0.5], "add": [0.2, 0, 0, 0]}
//
// A missing "mult" is all ones. LoadAtlas fails if a frame refers to a
// missing page or does not fit inside its page.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var doc struct {
		Frames   json.RawMessage `json:"frames"`
		Textures []struct {
			Frames json.RawMessage `json:"frames"`
		} `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("cxform: parse atlas: %w", err)
	}

	a := &Atlas{
		Pages:      pages,
		regions:    make(map[string]TextureRegion),
		transforms: make(map[string]ColorTransform),
	}
	switch {
	case doc.Textures != nil:
		for i, tex := range doc.Textures {
			if err := a.addFrames(tex.Frames, uint16(i)); err != nil {
				return nil, err
			}
		}
	case doc.Frames != nil:
		if err := a.addFrames(doc.Frames, 0); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(`cxform: atlas has neither "frames" nor "textures"`)
	}
	return a, nil
}

type atlasRect struct {
	X, Y, W, H int
}

type atlasFrame struct {
	Filename         string    `json:"filename"`
	Frame            atlasRect `json:"frame"`
	Rotated          bool      `json:"rotated"`
	SpriteSourceSize atlasRect `json:"spriteSourceSize"`
	SourceSize       struct {
		W, H int
	} `json:"sourceSize"`
	ColorTransform *struct {
		Mult *mgl32.Vec4 `json:"mult"`
		Add  mgl32.Vec4  `json:"add"`
	} `json:"colorTransform"`
}

// decodeFrames accepts the hash form (name → frame) and the array form
// (frames carrying "filename").
func decodeFrames(raw json.RawMessage) ([]atlasFrame, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var frames []atlasFrame
		if err := json.Unmarshal(raw, &frames); err != nil {
			return nil, err
		}
		for i, f := range frames {
			if f.Filename == "" {
				return nil, fmt.Errorf("frame %d has no filename", i)
			}
		}
		return frames, nil
	}
	var byName map[string]atlasFrame
	if err := json.Unmarshal(raw, &byName); err != nil {
		return nil, err
	}
	frames := make([]atlasFrame, 0, len(byName))
	for name, f := range byName {
		f.Filename = name
		frames = append(frames, f)
	}
	return frames, nil
}

func (a *Atlas) addFrames(raw json.RawMessage, page uint16) error {
	frames, err := decodeFrames(raw)
	if err != nil {
		return fmt.Errorf("cxform: parse atlas frames for page %d: %w", page, err)
	}
	for _, f := range frames {
		r, err := f.region(page)
		if err != nil {
			return fmt.Errorf("cxform: atlas frame %q: %w", f.Filename, err)
		}
		if err := a.checkBounds(r); err != nil {
			return fmt.Errorf("cxform: atlas frame %q: %w", f.Filename, err)
		}
		a.regions[f.Filename] = r
		if ct := f.ColorTransform; ct != nil {
			xf := ColorTransform{Mult: ColorWhite, Add: ColorFromVec4(ct.Add)}
			if ct.Mult != nil {
				xf.Mult = ColorFromVec4(*ct.Mult)
			}
			a.transforms[f.Filename] = xf
		}
	}
	return nil
}

// region converts a frame. TexturePacker's frame size is the drawn size for
// rotated frames too, so it maps straight onto Width and Height.
func (f atlasFrame) region(page uint16) (TextureRegion, error) {
	for _, v := range [...]int{f.Frame.X, f.Frame.Y, f.Frame.W, f.Frame.H, f.SourceSize.W, f.SourceSize.H} {
		if v < 0 || v > 0xFFFF {
			return TextureRegion{}, fmt.Errorf("value %d out of range", v)
		}
	}
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}, nil
}

func (a *Atlas) checkBounds(r TextureRegion) error {
	if int(r.Page) >= len(a.Pages) || a.Pages[r.Page] == nil {
		return fmt.Errorf("page %d not provided (%d pages)", r.Page, len(a.Pages))
	}
	rect := r.PageRect()
	if b := a.Pages[r.Page].Bounds(); !rect.In(b) {
		return fmt.Errorf("rect %v lies outside page %d bounds %v", rect, r.Page, b)
	}
	return nil
}

// globalDebug enables debug-only warnings across the package.
var globalDebug bool

// SetDebugMode enables or disables debug warnings (missing atlas regions,
// oversized sprite batches).
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}
