package pool

import "sync"

// SlicePool pools slices of T, resized to the requested length on Get.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates an empty SlicePool.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
	}
}

// Get returns a slice of length size and a cleanup function that must be
// called, typically deferred, to return the slice to the pool. The contents
// of the returned slice are unspecified.
func (p *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)
	slice := (*ptr)[:0]
	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}

	return slice, func() {
		*ptr = slice[:0]
		p.pool.Put(ptr)
	}
}
