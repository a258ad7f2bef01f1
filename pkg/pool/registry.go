// ABOUTME: Registry: explicitly owned set of pools, one per element type and kind
// ABOUTME: Pools are created lazily; a nil *Registry hands out nil (unpooled) pools

// Package pool recycles transient objects and fixed-length arrays so that
// hot paths such as per-frame text layout stop producing garbage.
//
// Nothing in this package is safe for concurrent use. Each goroutine that
// needs pooling owns its own Registry.
package pool

import (
	"fmt"
	"reflect"
	"sort"
)

// Pool kinds reported in Stats.
const (
	KindObject = "object"
	KindArray  = "array"
	KindList   = "list"
)

type poolKey struct {
	kind string
	typ  reflect.Type
}

// member is what the registry needs from every pool it owns.
type member interface {
	Stats() Stats
	Drain()
}

// Registry owns one pool per (kind, element type). The zero value is not
// usable; call NewRegistry.
type Registry struct {
	opts     []Option
	disabled bool
	pools    map[poolKey]member
}

// NewRegistry creates a registry whose pools are built with opts.
func NewRegistry(opts ...Option) *Registry {
	s := resolve("", opts)
	return &Registry{
		opts:     opts,
		disabled: s.disabled,
		pools:    make(map[poolKey]member),
	}
}

// Arrays returns the registry's array pool for T, creating it on first use
// with ClearArray as its release hook. It returns nil for a nil registry.
func Arrays[T any](r *Registry) *ArrayPool[T] {
	if r == nil {
		return nil
	}
	key := poolKey{kind: KindArray, typ: reflect.TypeFor[T]()}
	if m, ok := r.pools[key]; ok {
		return m.(*ArrayPool[T])
	}
	p := NewArrayPool(nil, ClearArray[T], r.options()...)
	r.pools[key] = p
	return p
}

// RegisterArrays installs an array pool for T with custom hooks. It fails if
// the registry already has one.
func RegisterArrays[T any](r *Registry, onAcquire, onRelease func([]T)) (*ArrayPool[T], error) {
	if r == nil {
		return nil, fmt.Errorf("register array pool for %s: nil registry", reflect.TypeFor[T]())
	}
	key := poolKey{kind: KindArray, typ: reflect.TypeFor[T]()}
	if _, ok := r.pools[key]; ok {
		return nil, fmt.Errorf("array pool for %s already registered", key.typ)
	}
	p := NewArrayPool(onAcquire, onRelease, r.options()...)
	r.pools[key] = p
	return p, nil
}

// Objects returns the registry's object pool for T, creating it on first use
// with a release hook that resets the object to its zero value. It returns
// nil for a nil registry.
func Objects[T any](r *Registry) *ObjectPool[T] {
	if r == nil {
		return nil
	}
	key := poolKey{kind: KindObject, typ: reflect.TypeFor[T]()}
	if m, ok := r.pools[key]; ok {
		return m.(*ObjectPool[T])
	}
	p := NewObjectPool(nil, resetObject[T], r.options()...)
	r.pools[key] = p
	return p
}

func resetObject[T any](obj *T) {
	var zero T
	*obj = zero
}

// Lists returns the registry's list pool for T, creating it on first use.
// It returns nil for a nil registry.
func Lists[T any](r *Registry) *ListPool[T] {
	if r == nil {
		return nil
	}
	key := poolKey{kind: KindList, typ: reflect.TypeFor[T]()}
	if m, ok := r.pools[key]; ok {
		return m.(*ListPool[T])
	}
	p := NewListPool[T](r.options()...)
	r.pools[key] = p
	return p
}

// options returns the registry options followed by the current enable state,
// so pools created after SetEnabled inherit it.
func (r *Registry) options() []Option {
	opts := make([]Option, 0, len(r.opts)+1)
	opts = append(opts, r.opts...)
	if r.disabled {
		opts = append(opts, WithDisabled())
	} else {
		opts = append(opts, func(s *settings) { s.disabled = false })
	}
	return opts
}

// toggler is implemented by array pools.
type toggler interface {
	SetEnabled(bool)
}

// SetEnabled switches reuse on or off for every array pool, current and
// future. Object and list pools always reuse.
func (r *Registry) SetEnabled(enabled bool) {
	if r == nil {
		return
	}
	r.disabled = !enabled
	for _, m := range r.pools {
		if t, ok := m.(toggler); ok {
			t.SetEnabled(enabled)
		}
	}
}

// Enabled reports whether array pools in r reuse arrays.
func (r *Registry) Enabled() bool {
	return r != nil && !r.disabled
}

// Len returns the number of pools created so far.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.pools)
}

// Stats returns a snapshot of every pool, ordered by name then kind.
func (r *Registry) Stats() []Stats {
	if r == nil {
		return nil
	}
	out := make([]Stats, 0, len(r.pools))
	for _, m := range r.pools {
		out = append(out, m.Stats())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Drain discards every cached free instance. Pools stay registered and keep
// working; this is the shutdown path for long-lived processes.
func (r *Registry) Drain() {
	if r == nil {
		return
	}
	for _, m := range r.pools {
		m.Drain()
	}
}
