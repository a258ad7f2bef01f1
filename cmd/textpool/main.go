// ABOUTME: CLI entry point for textpool: bench, demo, and version subcommands
// ABOUTME: Loads merged settings, applies flag overrides, and builds one pool registry per goroutine

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/textpool-go/internal/termfix"

	"github.com/mauromedda/textpool-go/internal/config"
	tplog "github.com/mauromedda/textpool-go/internal/log"
	"github.com/mauromedda/textpool-go/pkg/pool"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// defaultText is laid out when neither settings nor flags supply one.
const defaultText = "The quick brown fox jumps over the lazy dog. " +
	"<link=\"docs\">Pooled buffers</link> keep layout allocation-free " +
	"after warm-up, even for \x1b[1mstyled\x1b[0m text and wide 文字.\n" +
	"Each frame releases every instance and acquires it again."

var errUsage = errors.New("usage: textpool <bench|demo|version> [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "bench":
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return runBench(args[1:], s, stdout, stderr)
	case "demo":
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return runDemo(args[1:], s, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "textpool %s (%s) built %s\n", version, commit, date)
		return nil
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, errUsage.Error())
		return nil
	}
	return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
}

// loadSettings reads global and project settings and applies the log level.
func loadSettings() (*config.Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	s, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	level, err := tplog.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	tplog.SetLevel(level)
	return s, nil
}

// newRegistry builds a registry from s, or nil when pooling is off.
// report receives every pool diagnostic; nil means log them.
func newRegistry(s *config.Settings, report pool.Reporter) *pool.Registry {
	if !s.PoolEnabled() {
		return nil
	}
	var opts []pool.Option
	if s.Guard == config.GuardStrict {
		opts = append(opts, pool.WithGuard(pool.GuardStrict))
	}
	if s.LengthCheck == config.LengthCheckPanic {
		opts = append(opts, pool.WithLengthCheck(pool.LengthCheckPanic))
	}
	if report != nil {
		opts = append(opts, pool.WithReporter(report))
	}
	return pool.NewRegistry(opts...)
}

// countingReporter logs every diagnostic and counts them.
func countingReporter(n *int) pool.Reporter {
	return func(err error) {
		*n++
		pool.LogReporter(err)
	}
}
