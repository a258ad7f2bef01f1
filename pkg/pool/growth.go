// ABOUTME: Growth policy: rounds a requested size up to the next allocation size
// ABOUTME: Powers of two up to 1024, then fixed 256-element steps

package pool

import "math/bits"

const (
	blockLimit     = 1024
	blockIncrement = 256
)

// NextCapacity returns the capacity to allocate for requested elements: the
// smallest power of two >= requested, or requested+256 above 1024. Requests
// below 1 yield 1.
func NextCapacity(requested int) int {
	if requested > blockLimit {
		return requested + blockIncrement
	}
	if requested <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(requested-1))
}
