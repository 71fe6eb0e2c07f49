// Package cxform implements the color transform stage of a 2D bitmap
// renderer for [Ebitengine].
//
// A [ColorTransform] is a per-channel multiplier and offset applied to
// straight (non-premultiplied) colors. Texels are stored premultiplied, so
// the stage unpremultiplies a sampled texel, transforms all four channels,
// and premultiplies again by the transformed alpha. Texels whose alpha is
// not positive are passed through untouched. Nothing is clamped.
//
// # Software pipeline
//
// [Renderer.Render] shades every pixel of a [Pixmap] from a [Texture] and a
// [Sampler], splitting rows across worker goroutines:
//
//	tex := cxform.NewTexture(img)
//	dst := cxform.NewPixmap(w, h)
//	var r cxform.Renderer
//	err := r.Render(ctx, dst, tex, cxform.Sampler{Filter: cxform.FilterLinear},
//		cxform.NewTintTransform(cxform.Color{R: 1, A: 1}, 0.5))
//
// [Shade] runs the same stage for a single texture coordinate.
//
// # GPU pipeline
//
// The same math runs as a Kage shader. [SpriteBatch] draws atlas regions
// with one transform per flush, [ColorTransformFilter] applies a transform
// to a whole image, and [RenderTexture] keeps a persistent canvas:
//
//	b := cxform.NewSpriteBatch()
//	b.Begin(screen)
//	b.Draw(atlas.PageImage(r), r, geoM, xf)
//	b.End()
//
// Filters run through [ApplyFilters] with scratch images from a
// [TexturePool].
//
// # Animation
//
// [TweenTransform] animates all eight channels of a transform with [gween]
// easing functions. ECS integration lives in the cxform/ecs package
// (a [Donburi] draw system).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package cxform
