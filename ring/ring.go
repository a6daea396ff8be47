// Package ring provides a time-indexed ring buffer.
//
// The buffer can continue accepting data on its end indefinitely, but has
// a limited capacity; once the capacity is reached, pushing removes the
// oldest value. Stored values are addressed by the absolute tick at which
// they were pushed, which lets a consumer read a producer's output without
// being ticked in lockstep with it: the capacity bounds how far the two
// may drift apart before data is lost.
package ring

import (
	"errors"

	"pipelined.dev/dsp"
)

// Errors returned by the buffer.
var (
	ErrZeroCapacity = errors.New("ring: capacity must be positive")
	ErrOutOfWindow  = errors.New("ring: time is outside the buffer window")
)

// Buffer is a fixed-capacity circular store addressed by absolute time.
// Only values pushed within the last capacity ticks are retrievable.
//
// Buffer performs no internal synchronization. A connection mediated by a
// Buffer is single-producer/single-consumer; concurrent use requires
// external locking.
type Buffer[T any] struct {
	buf      []T
	capacity int
	size     int
	start    dsp.Time
	end      dsp.Time
}

// New returns an empty buffer holding at most capacity values.
func New[T any](capacity int) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, ErrZeroCapacity
	}
	return &Buffer[T]{
		buf:      make([]T, capacity),
		capacity: capacity,
	}, nil
}

// Push appends v at the current end time. If the buffer is full, the
// oldest value is overwritten and becomes unrecoverable.
func (b *Buffer[T]) Push(v T) {
	b.buf[int(b.end%dsp.Time(b.capacity))] = v
	if b.size < b.capacity {
		b.size++
	} else {
		b.start++
	}
	b.end++
}

// Get returns the value stored at time t. The second return value is false
// if t is outside the buffer window.
func (b *Buffer[T]) Get(t dsp.Time) (T, bool) {
	if t < b.start || t >= b.end {
		var zero T
		return zero, false
	}
	return b.buf[int(t%dsp.Time(b.capacity))], true
}

// Update overwrites the value stored at time t. It returns ErrOutOfWindow
// if t is outside the buffer window.
func (b *Buffer[T]) Update(t dsp.Time, v T) error {
	if t < b.start || t >= b.end {
		return ErrOutOfWindow
	}
	b.buf[int(t%dsp.Time(b.capacity))] = v
	return nil
}

// Start returns the oldest retrievable time.
func (b *Buffer[T]) Start() dsp.Time { return b.start }

// End returns the time at which the next value will be stored. Retrievable
// times are [Start, End).
func (b *Buffer[T]) End() dsp.Time { return b.end }

// Len returns the number of values currently stored.
func (b *Buffer[T]) Len() int { return b.size }
