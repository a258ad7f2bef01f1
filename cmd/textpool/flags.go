// ABOUTME: Per-subcommand flag parsing using stdlib flag package
// ABOUTME: Flags override settings loaded from config files and the environment

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/mauromedda/textpool-go/internal/config"
)

type benchArgs struct {
	frames       int
	instances    int
	workers      int
	width        int
	linesPerPage int
	json         bool
	text         string
}

type demoArgs struct {
	instances int
	width     int
	text      string
}

// poolFlags registers the flags shared by every subcommand.
type poolFlags struct {
	noPool bool
	strict bool
	text   string
	width  int
}

func (p *poolFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&p.noPool, "no-pool", false, "Allocate fresh buffers instead of pooling")
	fs.BoolVar(&p.strict, "strict", false, "Detect double releases anywhere in the free list")
	fs.StringVar(&p.text, "text", "", "Text to lay out")
	fs.IntVar(&p.width, "width", 0, "Wrap width in cells (default: terminal width)")
}

// apply folds the flags into s and returns the effective text and width.
func (p *poolFlags) apply(s *config.Settings) (string, int) {
	if p.noPool {
		s.SetPool(false)
	}
	if p.strict {
		s.Guard = config.GuardStrict
	}

	text := p.text
	if text == "" {
		text = s.SampleText
	}
	if text == "" {
		text = defaultText
	}

	width := p.width
	if width == 0 {
		width = s.Width
	}
	if width == 0 {
		width = terminalWidth()
	}
	return text, width
}

func parseBenchFlags(args []string, s *config.Settings, stderr io.Writer) (benchArgs, error) {
	var (
		a  benchArgs
		pf poolFlags
	)

	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&a.frames, "frames", 100, "Frames per worker")
	fs.IntVar(&a.instances, "instances", 50, "Text instances created and released each frame")
	fs.IntVar(&a.workers, "workers", 4, "Concurrent workers, each with its own registry")
	fs.IntVar(&a.linesPerPage, "lines-per-page", s.LinesPerPage, "Lines per page (0: single page)")
	fs.BoolVar(&a.json, "json", false, "Write the report as JSON")
	pf.register(fs)

	if err := fs.Parse(args); err != nil {
		return a, err
	}
	if fs.NArg() > 0 {
		return a, fmt.Errorf("bench: unexpected arguments %v", fs.Args())
	}
	if a.frames < 1 || a.instances < 1 || a.workers < 1 {
		return a, fmt.Errorf("bench: frames, instances, and workers must be positive")
	}
	if a.linesPerPage < 0 || pf.width < 0 {
		return a, fmt.Errorf("bench: width and lines-per-page must not be negative")
	}

	a.text, a.width = pf.apply(s)
	return a, nil
}

func parseDemoFlags(args []string, s *config.Settings, stderr io.Writer) (demoArgs, error) {
	var (
		a  demoArgs
		pf poolFlags
	)

	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&a.instances, "instances", 20, "Text instances created on each toggle")
	pf.register(fs)

	if err := fs.Parse(args); err != nil {
		return a, err
	}
	if a.instances < 1 {
		return a, fmt.Errorf("demo: instances must be positive")
	}

	a.text, a.width = pf.apply(s)
	return a, nil
}
