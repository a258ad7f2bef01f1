// ABOUTME: ArrayPool: fixed-length []T free lists bucketed by exact length
// ABOUTME: Enable switch, lifecycle hooks, double-release guard, length-mismatch check

package pool

import (
	"reflect"
	"sort"
)

// ArrayPool recycles []T arrays keyed by their exact length. An array in the
// bucket for length L always has len L. Acquire never searches; a request
// for a length with an empty bucket allocates.
//
// The pool is not safe for concurrent use. SetEnabled must not be called
// while another pool operation is in progress.
//
// A nil *ArrayPool is valid: Acquire allocates and Release drops.
type ArrayPool[T any] struct {
	name        string
	enabled     bool
	buckets     map[int]*bucket[T]
	freeSet     map[*T]struct{} // GuardStrict only; keyed by &arr[0]
	guard       GuardMode
	lengthCheck LengthCheck
	report      Reporter
	onAcquire   func([]T)
	onRelease   func([]T)

	created int
	free    int
	dropped int
}

type bucket[T any] struct {
	items [][]T
}

// NewArrayPool creates an array pool. Either hook may be nil.
func NewArrayPool[T any](onAcquire, onRelease func([]T), opts ...Option) *ArrayPool[T] {
	s := resolve(reflect.TypeFor[T]().String(), opts)
	p := &ArrayPool[T]{
		name:        s.name,
		enabled:     !s.disabled,
		buckets:     make(map[int]*bucket[T]),
		guard:       s.guard,
		lengthCheck: s.lengthCheck,
		report:      s.reporter,
		onAcquire:   onAcquire,
		onRelease:   onRelease,
	}
	if s.guard == GuardStrict {
		p.freeSet = make(map[*T]struct{})
	}
	return p
}

// ClearArray zeroes every element of arr. It is the default release hook.
func ClearArray[T any](arr []T) {
	clear(arr)
}

// Acquire returns an array of exactly length elements. It panics if length
// is negative.
func (p *ArrayPool[T]) Acquire(length int) []T {
	if length < 0 {
		panic("pool: negative array length")
	}
	if p == nil {
		return make([]T, length)
	}
	if !p.enabled {
		arr := make([]T, length)
		if p.onAcquire != nil {
			p.onAcquire(arr)
		}
		return arr
	}

	b := p.bucket(length)
	var arr []T
	if n := len(b.items); n > 0 {
		arr = b.items[n-1]
		b.items[n-1] = nil
		b.items = b.items[:n-1]
		p.free--
		if p.freeSet != nil && length > 0 {
			delete(p.freeSet, &arr[0])
		}
	} else {
		arr = make([]T, length)
		p.created++
	}
	if p.onAcquire != nil {
		p.onAcquire(arr)
	}
	return arr
}

// Release returns arr to the bucket for length. A nil arr is a no-op, and a
// disabled pool drops the array. length must equal len(arr); see
// LengthCheck for what happens when it does not.
//
// Zero-length arrays have no identity and are never reported as double
// releases.
func (p *ArrayPool[T]) Release(length int, arr []T) {
	if p == nil || arr == nil || !p.enabled {
		return
	}
	if len(arr) != length {
		err := &ReleaseError{Pool: p.name, Length: length, Actual: len(arr), Err: ErrLengthMismatch}
		if p.lengthCheck == LengthCheckPanic {
			panic(err)
		}
		p.report(err)
		return
	}

	b := p.bucket(length)
	if length > 0 {
		head := &arr[0]
		if p.freeSet != nil {
			if _, ok := p.freeSet[head]; ok {
				p.report(&ReleaseError{Pool: p.name, Length: length, Err: ErrDoubleRelease})
				return
			}
			p.freeSet[head] = struct{}{}
		} else if n := len(b.items); n > 0 && &b.items[n-1][0] == head {
			p.report(&ReleaseError{Pool: p.name, Length: length, Err: ErrDoubleRelease})
		}
	}
	if p.onRelease != nil {
		p.onRelease(arr)
	}
	b.items = append(b.items, arr)
	p.free++
}

// Recycle releases arr under its own length.
func (p *ArrayPool[T]) Recycle(arr []T) {
	p.Release(len(arr), arr)
}

func (p *ArrayPool[T]) bucket(length int) *bucket[T] {
	b, ok := p.buckets[length]
	if !ok {
		b = &bucket[T]{}
		p.buckets[length] = b
	}
	return b
}

// SetEnabled switches reuse on or off. Arrays already free stay pooled and
// become reachable again once reuse is switched back on.
func (p *ArrayPool[T]) SetEnabled(enabled bool) {
	if p == nil {
		return
	}
	p.enabled = enabled
}

// Enabled reports whether the pool reuses arrays.
func (p *ArrayPool[T]) Enabled() bool {
	return p != nil && p.enabled
}

// Created returns the number of arrays allocated on pool misses while enabled.
func (p *ArrayPool[T]) Created() int {
	if p == nil {
		return 0
	}
	return p.created
}

// FreeCount returns the number of arrays waiting across all buckets.
func (p *ArrayPool[T]) FreeCount() int {
	if p == nil {
		return 0
	}
	return p.free
}

// BucketLen returns the number of free arrays of the given length.
func (p *ArrayPool[T]) BucketLen(length int) int {
	if p == nil {
		return 0
	}
	if b, ok := p.buckets[length]; ok {
		return len(b.items)
	}
	return 0
}

// Lengths returns the lengths that have a bucket, ascending.
func (p *ArrayPool[T]) Lengths() []int {
	if p == nil {
		return nil
	}
	lengths := make([]int, 0, len(p.buckets))
	for l := range p.buckets {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// ActiveCount returns the number of pool-allocated arrays held by callers.
func (p *ArrayPool[T]) ActiveCount() int {
	if p == nil {
		return 0
	}
	return p.created - p.free - p.dropped
}

// Drain discards every free array and every bucket.
func (p *ArrayPool[T]) Drain() {
	if p == nil {
		return
	}
	p.dropped += p.free
	p.free = 0
	clear(p.buckets)
	if p.freeSet != nil {
		clear(p.freeSet)
	}
}

// Stats returns a snapshot of the pool counters.
func (p *ArrayPool[T]) Stats() Stats {
	if p == nil {
		return Stats{Kind: KindArray}
	}
	return Stats{
		Name:    p.name,
		Kind:    KindArray,
		Created: p.created,
		Free:    p.free,
		Active:  p.ActiveCount(),
		Dropped: p.dropped,
		Buckets: len(p.buckets),
		Enabled: p.enabled,
	}
}
