package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pipelined.dev/dsp"
	"pipelined.dev/dsp/ring"
)

func TestNew(t *testing.T) {
	_, err := ring.New[int](0)
	assert.Equal(t, ring.ErrZeroCapacity, err)

	_, err = ring.New[int](-1)
	assert.Equal(t, ring.ErrZeroCapacity, err)

	b, err := ring.New[int](2)
	assert.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestPush(t *testing.T) {
	b, err := ring.New[int](2)
	assert.NoError(t, err)

	b.Push(13)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, dsp.Time(0), b.Start())
	assert.Equal(t, dsp.Time(1), b.End())

	b.Push(7)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, dsp.Time(0), b.Start())
	assert.Equal(t, dsp.Time(2), b.End())

	// Third push overwrites the oldest value.
	b.Push(3)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, dsp.Time(1), b.Start())
	assert.Equal(t, dsp.Time(3), b.End())

	_, ok := b.Get(0)
	assert.False(t, ok)
	v, ok := b.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	v, ok = b.Get(2)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestGetWindow(t *testing.T) {
	// Pushing capacity+k values makes times below k unavailable and keeps
	// the remaining window intact.
	const capacity, k = 8, 3
	b, err := ring.New[int](capacity)
	assert.NoError(t, err)

	for i := 0; i < capacity+k; i++ {
		b.Push(i)
	}
	for t0 := dsp.Time(0); t0 < k; t0++ {
		_, ok := b.Get(t0)
		assert.False(t, ok)
	}
	for t0 := dsp.Time(k); t0 < capacity+k; t0++ {
		v, ok := b.Get(t0)
		assert.True(t, ok)
		assert.Equal(t, int(t0), v)
	}
	_, ok := b.Get(capacity + k)
	assert.False(t, ok)
}

func TestUpdate(t *testing.T) {
	b, err := ring.New[int](2)
	assert.NoError(t, err)
	b.Push(7)
	b.Push(13)

	// Out of range on both sides.
	assert.Equal(t, ring.ErrOutOfWindow, b.Update(2, 22))
	b.Push(3) // window is now [1, 3)
	assert.Equal(t, ring.ErrOutOfWindow, b.Update(0, 22))

	assert.NoError(t, b.Update(1, 22))
	v, ok := b.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 22, v)
}
