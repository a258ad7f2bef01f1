// ABOUTME: bench subcommand: concurrent churn of text instances through pooled buffers
// ABOUTME: Each errgroup worker owns its registry and engine; nothing is shared across goroutines

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/textpool-go/internal/config"
	tplog "github.com/mauromedda/textpool-go/internal/log"
	"github.com/mauromedda/textpool-go/pkg/layout"
	"github.com/mauromedda/textpool-go/pkg/pool"
	"github.com/mauromedda/textpool-go/pkg/textinfo"
)

// workerResult is what one bench worker reports back.
type workerResult struct {
	ID          int
	Layouts     int
	Lines       int
	Diagnostics int
	Elapsed     time.Duration
	Stats       []pool.Stats
}

func runBench(args []string, s *config.Settings, stdout, stderr io.Writer) error {
	a, err := parseBenchFlags(args, s, stderr)
	if err != nil {
		return err
	}

	tplog.Debug("bench: %d workers x %d frames x %d instances, width %d, pooled %v",
		a.workers, a.frames, a.instances, a.width, s.PoolEnabled())

	results, err := bench(context.Background(), a, s)
	if err != nil {
		return err
	}

	if a.json {
		return writeJSON(stdout, s.PoolEnabled(), results)
	}
	return writeTable(stdout, s.PoolEnabled(), results)
}

// bench runs a.workers independent workers and collects their results in
// worker order.
func bench(ctx context.Context, a benchArgs, s *config.Settings) ([]workerResult, error) {
	results := make([]workerResult, a.workers)
	g, gCtx := errgroup.WithContext(ctx)

	for i := range a.workers {
		g.Go(func() error {
			res, err := runWorker(gCtx, i, a, s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bench workers: %w", err)
	}
	return results, nil
}

// runWorker creates a.instances text instances per frame, lays each out,
// and releases them all before the next frame.
func runWorker(ctx context.Context, id int, a benchArgs, s *config.Settings) (workerResult, error) {
	res := workerResult{ID: id}
	reg := newRegistry(s, countingReporter(&res.Diagnostics))
	eng := layout.NewEngine(a.width, a.linesPerPage)
	live := make([]*textinfo.TextInfo, 0, a.instances)

	start := time.Now()
	for range a.frames {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		for range a.instances {
			ti := textinfo.New(reg)
			eng.Layout(ti, a.text)
			res.Lines += ti.LineCount
			res.Layouts++
			live = append(live, ti)
		}
		for i, ti := range live {
			ti.Release()
			live[i] = nil
		}
		live = live[:0]
	}
	res.Elapsed = time.Since(start)
	res.Stats = reg.Stats()

	tplog.Debug("bench: worker %d done in %s, %d pools", id, res.Elapsed, reg.Len())
	reg.Drain()
	return res, nil
}
