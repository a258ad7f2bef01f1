// ABOUTME: Resize protocol for pooled buffers: acquire new, copy forward, release old
// ABOUTME: Grow rounds through NextCapacity and never shrinks; ResizeExact uses the size as-is

package pool

// Grow makes *arr hold at least size elements. When it must grow, the new
// length is NextCapacity(size). It reports whether *arr was replaced.
func Grow[T any](p *ArrayPool[T], arr *[]T, size int) bool {
	if size <= len(*arr) {
		return false
	}
	replace(p, arr, NextCapacity(size))
	return true
}

// ResizeExact makes len(*arr) == size, growing or shrinking. It is a no-op
// when the length already matches. It reports whether *arr was replaced.
func ResizeExact[T any](p *ArrayPool[T], arr *[]T, size int) bool {
	if size == len(*arr) {
		return false
	}
	replace(p, arr, size)
	return true
}

// replace swaps *arr for a length-n array carrying the leading elements of
// the old one. The old array goes back to p under its own length.
func replace[T any](p *ArrayPool[T], arr *[]T, n int) {
	old := *arr
	next := p.Acquire(n)
	copy(next, old)
	p.Release(len(old), old)
	*arr = next
}
