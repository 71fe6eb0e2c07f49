// Command cxform applies a color transform to an image with the software
// pipeline. Input may be PNG, BMP, TIFF or WebP; output is always PNG.
//
//	cxform -in sprite.png -out tinted.png -mult 1,0.5,0.5,1 -add 0.1,0,0,0
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/phanxgames/cxform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type options struct {
	in, out string
	xf      cxform.ColorTransform
	sampler cxform.Sampler
	scale   float64
	workers int
	debug   bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("cxform: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("cxform: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("cxform", flag.ContinueOnError)
	var (
		opts             options
		mult, add        string
		filterMode, wrap string
	)
	fs.StringVar(&opts.in, "in", "", "input image path")
	fs.StringVar(&opts.out, "out", "", "output PNG path")
	fs.StringVar(&mult, "mult", "1,1,1,1", "multiplier r,g,b,a")
	fs.StringVar(&add, "add", "0,0,0,0", "offset r,g,b,a")
	fs.StringVar(&filterMode, "filter", "nearest", "sampling filter: nearest or linear")
	fs.StringVar(&wrap, "wrap", "clamp", "wrap mode: clamp, repeat, mirror or zero")
	fs.Float64Var(&opts.scale, "scale", 1, "output size relative to the input")
	fs.IntVar(&opts.workers, "workers", 0, "worker goroutines (0 uses GOMAXPROCS)")
	fs.BoolVar(&opts.debug, "debug", false, "print render statistics to stderr")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.in == "" || opts.out == "" {
		return opts, fmt.Errorf("both -in and -out are required")
	}
	if opts.scale <= 0 {
		return opts, fmt.Errorf("scale must be positive, got %v", opts.scale)
	}

	var err error
	if opts.xf.Mult, err = parseColor(mult); err != nil {
		return opts, fmt.Errorf("parse -mult: %w", err)
	}
	if opts.xf.Add, err = parseColor(add); err != nil {
		return opts, fmt.Errorf("parse -add: %w", err)
	}
	if opts.sampler.Filter, err = parseFilter(filterMode); err != nil {
		return opts, err
	}
	if opts.sampler.Wrap, err = parseWrap(wrap); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseColor reads "r,g,b,a" as four floats. Values are not clamped.
func parseColor(s string) (cxform.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return cxform.Color{}, fmt.Errorf("want 4 components, got %d in %q", len(parts), s)
	}
	var v [4]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return cxform.Color{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return cxform.Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func parseFilter(s string) (cxform.FilterMode, error) {
	switch s {
	case "nearest":
		return cxform.FilterNearest, nil
	case "linear":
		return cxform.FilterLinear, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

func parseWrap(s string) (cxform.WrapMode, error) {
	switch s {
	case "clamp":
		return cxform.WrapClampToEdge, nil
	case "repeat":
		return cxform.WrapRepeat, nil
	case "mirror":
		return cxform.WrapMirroredRepeat, nil
	case "zero":
		return cxform.WrapClampToZero, nil
	}
	return 0, fmt.Errorf("unknown wrap mode %q", s)
}

func run(ctx context.Context, opts options) error {
	img, err := cxform.ReadImage(opts.in)
	if err != nil {
		return err
	}
	tex := cxform.NewTexture(img)
	w, h := tex.Size()

	dst := cxform.NewPixmap(int(float64(w)*opts.scale+0.5), int(float64(h)*opts.scale+0.5))
	r := cxform.Renderer{Workers: opts.workers, Debug: opts.debug}
	if err := r.Render(ctx, dst, tex, opts.sampler, opts.xf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return cxform.WritePNG(opts.out, dst.ToNRGBA())
}
