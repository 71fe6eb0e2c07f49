package cxform

import (
	"fmt"
	"os"
	"time"
)

// renderStats holds timing and invocation counts for one software batch.
// Only populated when Renderer.Debug is true.
type renderStats struct {
	elapsed     time.Duration
	invocations int
	passthrough int
	bands       int
	workers     int
	identity    bool
}

// debugLog prints batch stats to stderr.
func debugLog(stats renderStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[cxform] render: %v | invocations: %d | transparent pass-through: %d\n",
		stats.elapsed, stats.invocations, stats.passthrough)
	_, _ = fmt.Fprintf(os.Stderr,
		"[cxform] bands: %d | workers: %d | identity transform: %v\n",
		stats.bands, stats.workers, stats.identity)
}

// debugMaxBatchQuads is the quad count above which a SpriteBatch flush is
// reported as unusually large.
const debugMaxBatchQuads = 10000

func debugCheckBatchSize(quads int) {
	if quads > debugMaxBatchQuads {
		_, _ = fmt.Fprintf(os.Stderr, "[cxform] warning: flushing %d quads in one batch (threshold %d)\n",
			quads, debugMaxBatchQuads)
	}
}
