// ABOUTME: ListPool: pooled growable slices, truncated to empty on release
// ABOUTME: Built on ObjectPool[[]T]; capacity survives reuse

package pool

// ListPool recycles *[]T scratch lists. Acquire returns an empty list whose
// capacity is whatever the previous holder grew it to.
type ListPool[T any] struct {
	objects *ObjectPool[[]T]
}

// NewListPool creates a list pool.
func NewListPool[T any](opts ...Option) *ListPool[T] {
	return &ListPool[T]{
		objects: NewObjectPool(nil, truncateList[T], opts...),
	}
}

func truncateList[T any](l *[]T) {
	clear(*l)
	*l = (*l)[:0]
}

// Acquire returns an empty list.
func (p *ListPool[T]) Acquire() *[]T {
	if p == nil {
		return new([]T)
	}
	return p.objects.Acquire()
}

// Release empties l and returns it to the pool.
func (p *ListPool[T]) Release(l *[]T) {
	if p == nil {
		return
	}
	p.objects.Release(l)
}

// Drain discards every free list.
func (p *ListPool[T]) Drain() {
	if p == nil {
		return
	}
	p.objects.Drain()
}

// Stats returns a snapshot of the pool counters.
func (p *ListPool[T]) Stats() Stats {
	if p == nil {
		return Stats{Kind: KindList}
	}
	s := p.objects.Stats()
	s.Kind = KindList
	return s
}
