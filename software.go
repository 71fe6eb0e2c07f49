package cxform

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// bandsPerWorker controls how finely rows are split; more bands than
// workers keeps cores busy when some rows are cheaper than others.
const bandsPerWorker = 4

// Renderer runs the color-transform stage on the CPU, one invocation per
// destination pixel. The zero value uses GOMAXPROCS workers.
type Renderer struct {
	// Workers bounds the number of concurrent row bands. Zero or less
	// means runtime.GOMAXPROCS(0).
	Workers int
	// Debug prints per-batch stats to stderr.
	Debug bool
}

// Render fills dst with one batch: every pixel samples tex through s at the
// pixel center mapped to [0, 1]² and is shaded with xf. tex, s and xf are
// only read. Invocations are independent and run in parallel bands.
//
// Render returns ctx.Err() if the batch is abandoned before completion;
// dst then holds a partially rendered image.
func (r *Renderer) Render(ctx context.Context, dst *Pixmap, tex *Texture, s Sampler, xf ColorTransform) error {
	start := time.Now()
	w, h := dst.width, dst.height
	if w == 0 || h == 0 {
		return ctx.Err()
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rows := max(1, (h+workers*bandsPerWorker-1)/(workers*bandsPerWorker))

	invW := 1 / float32(w)
	invH := 1 / float32(h)

	var passthrough atomic.Int64
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for y0 := 0; y0 < h; y0 += rows {
		if gctx.Err() != nil {
			break
		}
		y1 := min(h, y0+rows)
		eg.Go(func() error {
			var skipped int64
			for y := y0; y < y1; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				v := (float32(y) + 0.5) * invH
				row := dst.row(y)
				for x := range row {
					c := s.Sample(tex, mgl32.Vec2{(float32(x) + 0.5) * invW, v})
					if !(c.A > 0) {
						skipped++
					}
					row[x] = xf.Apply(c)
				}
			}
			passthrough.Add(skipped)
			return nil
		})
	}

	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	if r.Debug {
		debugLog(renderStats{
			elapsed:     time.Since(start),
			invocations: w * h,
			passthrough: int(passthrough.Load()),
			bands:       (h + rows - 1) / rows,
			workers:     workers,
			identity:    xf.IsIdentity(),
		})
	}
	return err
}
