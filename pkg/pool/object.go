// ABOUTME: ObjectPool: LIFO free list of *T with on-acquire and on-release hooks
// ABOUTME: Not safe for concurrent use; a nil *ObjectPool allocates and drops

package pool

import "reflect"

// ObjectPool recycles *T values. Objects come back in last-in-first-out order.
//
// A nil *ObjectPool is valid: Acquire returns new(T) and Release drops the
// object. This is the unpooled path.
type ObjectPool[T any] struct {
	name      string
	free      []*T
	freeSet   map[*T]struct{} // GuardStrict only
	guard     GuardMode
	report    Reporter
	onAcquire func(*T)
	onRelease func(*T)

	created int
	dropped int
}

// NewObjectPool creates an object pool. Either hook may be nil.
func NewObjectPool[T any](onAcquire, onRelease func(*T), opts ...Option) *ObjectPool[T] {
	s := resolve(reflect.TypeFor[T]().String(), opts)
	p := &ObjectPool[T]{
		name:      s.name,
		guard:     s.guard,
		report:    s.reporter,
		onAcquire: onAcquire,
		onRelease: onRelease,
	}
	if s.guard == GuardStrict {
		p.freeSet = make(map[*T]struct{})
	}
	return p
}

// Acquire pops the most recently released object or constructs a new one,
// then runs the on-acquire hook.
func (p *ObjectPool[T]) Acquire() *T {
	if p == nil {
		return new(T)
	}
	var obj *T
	if n := len(p.free); n > 0 {
		obj = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		if p.freeSet != nil {
			delete(p.freeSet, obj)
		}
	} else {
		obj = new(T)
		p.created++
	}
	if p.onAcquire != nil {
		p.onAcquire(obj)
	}
	return obj
}

// Release runs the on-release hook and pushes obj onto the free list.
// Releasing nil is a no-op. See GuardMode for double-release handling.
func (p *ObjectPool[T]) Release(obj *T) {
	if p == nil || obj == nil {
		return
	}
	if p.freeSet != nil {
		if _, ok := p.freeSet[obj]; ok {
			p.report(&ReleaseError{Pool: p.name, Length: -1, Err: ErrDoubleRelease})
			return
		}
		p.freeSet[obj] = struct{}{}
	} else if n := len(p.free); n > 0 && p.free[n-1] == obj {
		p.report(&ReleaseError{Pool: p.name, Length: -1, Err: ErrDoubleRelease})
	}
	if p.onRelease != nil {
		p.onRelease(obj)
	}
	p.free = append(p.free, obj)
}

// Created returns the number of objects this pool has constructed.
func (p *ObjectPool[T]) Created() int {
	if p == nil {
		return 0
	}
	return p.created
}

// FreeCount returns the number of objects waiting for reuse.
func (p *ObjectPool[T]) FreeCount() int {
	if p == nil {
		return 0
	}
	return len(p.free)
}

// ActiveCount returns the number of constructed objects held by callers.
func (p *ObjectPool[T]) ActiveCount() int {
	if p == nil {
		return 0
	}
	return p.created - len(p.free) - p.dropped
}

// Drain discards every free object.
func (p *ObjectPool[T]) Drain() {
	if p == nil {
		return
	}
	p.dropped += len(p.free)
	clear(p.free)
	p.free = p.free[:0]
	if p.freeSet != nil {
		clear(p.freeSet)
	}
}

// Stats returns a snapshot of the pool counters.
func (p *ObjectPool[T]) Stats() Stats {
	if p == nil {
		return Stats{Kind: KindObject}
	}
	return Stats{
		Name:    p.name,
		Kind:    KindObject,
		Created: p.created,
		Free:    len(p.free),
		Active:  p.ActiveCount(),
		Dropped: p.dropped,
		Enabled: true,
	}
}
