// ABOUTME: Release diagnostics: double-release and length-mismatch errors, reporter hook
// ABOUTME: Diagnostics are reported, never returned; the default reporter logs at error level

package pool

import (
	"errors"
	"fmt"

	"github.com/mauromedda/textpool-go/internal/log"
)

var (
	// ErrDoubleRelease reports a release of an instance that is already free.
	ErrDoubleRelease = errors.New("instance already released to pool")

	// ErrLengthMismatch reports an array released under a length it does not have.
	ErrLengthMismatch = errors.New("array length does not match release length")
)

// ReleaseError describes a rejected or suspicious release.
type ReleaseError struct {
	Pool   string // pool name, usually the element type
	Length int    // claimed length; -1 for object pools
	Actual int    // actual array length, set for ErrLengthMismatch
	Err    error  // ErrDoubleRelease or ErrLengthMismatch
}

func (e *ReleaseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrLengthMismatch):
		return fmt.Sprintf("internal error: %s: %v (claimed %d, actual %d)", e.Pool, e.Err, e.Length, e.Actual)
	case e.Length >= 0:
		return fmt.Sprintf("internal error: %s: %v (length %d)", e.Pool, e.Err, e.Length)
	default:
		return fmt.Sprintf("internal error: %s: %v", e.Pool, e.Err)
	}
}

func (e *ReleaseError) Unwrap() error { return e.Err }

// Reporter receives release diagnostics. It must not call back into the pool.
type Reporter func(err error)

// LogReporter writes diagnostics through the package logger.
func LogReporter(err error) {
	log.Error("pool: %v", err)
}

// GuardMode selects how much work a release does to detect double releases.
type GuardMode int

const (
	// GuardTop compares the released instance with the top of its free stack
	// only. A hit is reported and the instance is pushed anyway, so the stack
	// then holds two aliases of it. Deeper duplicates go unnoticed.
	GuardTop GuardMode = iota

	// GuardStrict tracks every free instance in a side table. A release of an
	// instance that is already free is reported and rejected.
	GuardStrict
)

func (g GuardMode) String() string {
	switch g {
	case GuardTop:
		return "top"
	case GuardStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// LengthCheck selects what an array pool does with a mismatched release.
type LengthCheck int

const (
	// LengthCheckReport reports the mismatch and drops the array unpooled.
	LengthCheckReport LengthCheck = iota

	// LengthCheckPanic panics with the *ReleaseError.
	LengthCheckPanic
)

func (l LengthCheck) String() string {
	switch l {
	case LengthCheckReport:
		return "report"
	case LengthCheckPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// settings is the resolved form of a set of Options.
type settings struct {
	name        string
	guard       GuardMode
	lengthCheck LengthCheck
	reporter    Reporter
	disabled    bool
}

// Option configures a pool or a Registry.
type Option func(*settings)

// WithName sets the name used in stats and diagnostics.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithGuard sets the double-release guard level.
func WithGuard(g GuardMode) Option {
	return func(s *settings) { s.guard = g }
}

// WithLengthCheck sets the handling of mismatched array releases.
func WithLengthCheck(l LengthCheck) Option {
	return func(s *settings) { s.lengthCheck = l }
}

// WithReporter installs the diagnostic sink. A nil r restores LogReporter.
func WithReporter(r Reporter) Option {
	return func(s *settings) { s.reporter = r }
}

// WithDisabled starts array pools with reuse switched off.
func WithDisabled() Option {
	return func(s *settings) { s.disabled = true }
}

func resolve(defaultName string, opts []Option) settings {
	s := settings{name: defaultName}
	for _, opt := range opts {
		opt(&s)
	}
	if s.reporter == nil {
		s.reporter = LogReporter
	}
	return s
}
