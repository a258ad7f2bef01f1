// ABOUTME: Shared test helpers for pool tests
// ABOUTME: recorder collects reported diagnostics instead of logging them

package pool

import "testing"

type recorder struct {
	errs []error
}

func (r *recorder) report(err error) {
	r.errs = append(r.errs, err)
}

func (r *recorder) count(t *testing.T, want int) {
	t.Helper()
	if len(r.errs) != want {
		t.Fatalf("reported %d diagnostics %v; want %d", len(r.errs), r.errs, want)
	}
}

func same[T any](a, b []T) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
