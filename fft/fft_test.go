package fft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntLog(t *testing.T) {
	tests := map[uint32]uint32{
		1:  0,
		2:  1,
		3:  2,
		4:  2,
		7:  3,
		8:  3,
		31: 5,
		32: 5,
	}
	for n, expected := range tests {
		assert.Equal(t, expected, intLog(n), "intLog(%d)", n)
	}
}

func TestBitReverse(t *testing.T) {
	tests := []struct {
		v, bits, expected uint32
	}{
		{0x00000000, 32, 0x00000000},
		{0xFFFFFFFF, 32, 0xFFFFFFFF},
		{0x00000001, 32, 0x80000000},
		{0x11111111, 32, 0x88888888},
		{0x234f9e01, 32, 0x8079f2c4},
		{0x00000001, 4, 0x00000008},
		{0x0000000F, 4, 0x0000000F},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, bitReverse(test.v, test.bits))
	}
}

func TestBitReverseInvolution(t *testing.T) {
	for bits := uint32(1); bits <= 10; bits++ {
		for v := uint32(0); v < 1<<bits; v++ {
			assert.Equal(t, v, bitReverse(bitReverse(v, bits), bits))
		}
	}
}

func TestFFTImpulse(t *testing.T) {
	// An impulse has a constant transform.
	impulse := make([]complex128, 8)
	impulse[0] = 1
	out := make([]complex128, 8)

	tr := New(8)
	assert.NoError(t, tr.FFT(impulse, out))
	for i, c := range out {
		assert.InDelta(t, 1, real(c), 1e-9, "bin %d", i)
		assert.InDelta(t, 0, imag(c), 1e-9, "bin %d", i)
	}
}

func TestIFFTImpulse(t *testing.T) {
	// A constant spectrum transforms back to an impulse.
	flat := make([]complex128, 8)
	for i := range flat {
		flat[i] = 1
	}
	out := make([]complex128, 8)

	tr := New(8)
	assert.NoError(t, tr.IFFT(flat, out))
	assert.InDelta(t, 1, real(out[0]), 1e-9)
	for _, c := range out[1:] {
		assert.InDelta(t, 0, real(c), 1e-9)
		assert.InDelta(t, 0, imag(c), 1e-9)
	}
}

func TestFFTIdentity(t *testing.T) {
	input := make([]complex128, 8)
	for i := range input {
		input[i] = complex(float64(i+1), 0)
	}
	freq := make([]complex128, 8)
	out := make([]complex128, 8)

	tr := New(8)
	assert.NoError(t, tr.FFT(input, freq))
	assert.NoError(t, tr.IFFT(freq, out))
	for i := range input {
		assert.InDelta(t, real(input[i]), real(out[i]), 1e-6)
		assert.InDelta(t, 0, imag(out[i]), 1e-6)
	}
}

func TestFFTZeroPad(t *testing.T) {
	// Input shorter than the transform size is treated as zero padded.
	input := make([]complex128, 7)
	for i := range input {
		input[i] = complex(float64(i+1), 0)
	}
	freq := make([]complex128, 8)
	out := make([]complex128, 8)

	tr := New(8)
	assert.NoError(t, tr.FFT(input, freq))
	assert.NoError(t, tr.IFFT(freq, out))
	for i := range input {
		assert.InDelta(t, real(input[i]), real(out[i]), 1e-6)
		assert.InDelta(t, 0, imag(out[i]), 1e-6)
	}
	assert.InDelta(t, 0, real(out[7]), 1e-6)
}

func TestFFTOutputTooSmall(t *testing.T) {
	input := make([]complex128, 8)
	out := make([]complex128, 7)

	tr := New(8)
	assert.Equal(t, ErrOutputTooSmall, tr.FFT(input, out))
	assert.Equal(t, ErrOutputTooSmall, tr.IFFT(input, out))
}

func TestPaddedSize(t *testing.T) {
	tests := map[int]int{1: 1, 2: 2, 3: 4, 8: 8, 9: 16, 1000: 1024}
	for requested, padded := range tests {
		assert.Equal(t, padded, New(requested).Size())
	}
}
