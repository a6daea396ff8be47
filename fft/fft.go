// Package fft implements a fixed-size fast Fourier transform.
//
// A Transformer must first be created; it stores precomputed tables that
// speed up the transform and can only perform transforms of the chosen
// size. The requested size is rounded up to the next power of two and the
// original value is not retained; callers that need it must keep it
// themselves.
package fft

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrOutputTooSmall is returned when the output buffer cannot hold the
// transform result.
var ErrOutputTooSmall = errors.New("fft: output buffer shorter than transform size")

// Transformer holds precomputed tables to perform transforms of a fixed
// size. It is immutable after construction and safe for repeated use.
type Transformer struct {
	size        int
	bitReverses []int
	twiddles    []complex128
}

// New returns a Transformer for transforms of the given size, rounded up
// to the next power of two.
func New(size int) *Transformer {
	padded := nextPowerOfTwo(size)
	bits := intLog(uint32(padded))

	// Indices are expressed in the lower log2(padded) bits only.
	bitReverses := make([]int, padded)
	for i := range bitReverses {
		bitReverses[i] = int(bitReverse(uint32(i), bits))
	}

	// Twiddle factors w_N^k = exp(-j*2*pi*k/N).
	twiddles := make([]complex128, padded)
	for k := range twiddles {
		twiddles[k] = cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(padded)))
	}

	return &Transformer{size: padded, bitReverses: bitReverses, twiddles: twiddles}
}

// Size returns the padded size of the transforms this Transformer performs.
func (tr *Transformer) Size() int {
	return tr.size
}

// FFT performs a forward transform of input and places the result in
// output. Input shorter than the transform size is zero padded, input
// longer is truncated. It returns ErrOutputTooSmall if output cannot hold
// the result.
func (tr *Transformer) FFT(input, output []complex128) error {
	return tr.transform(input, output, false)
}

// IFFT performs an inverse transform of input and places the result in
// output. Padding, truncation and failure behave as in FFT.
func (tr *Transformer) IFFT(input, output []complex128) error {
	return tr.transform(input, output, true)
}

// transform performs both directions, since they differ only at the very
// beginning and end of the computation.
func (tr *Transformer) transform(input, output []complex128, inverse bool) error {
	if len(output) < tr.size {
		return ErrOutputTooSmall
	}
	if len(input) > tr.size {
		input = input[:tr.size]
	}

	// Copy the input into bit-reversed order, zero padding the remainder,
	// conjugating if inverse transforming.
	for i, v := range input {
		if inverse {
			v = cmplx.Conj(v)
		}
		output[tr.bitReverses[i]] = v
	}
	for _, i := range tr.bitReverses[len(input):] {
		output[i] = 0
	}

	// Iterative radix-2 Cooley-Tukey, starting at 2 points.
	for n := 2; n <= tr.size; n *= 2 {
		for set := 0; set < tr.size/n; set++ {
			for k := 0; k < n/2; k++ {
				lo := n*set + k
				hi := lo + n/2

				lower := output[lo]
				upper := output[hi] * tr.twiddles[tr.size/n*k]

				output[lo] = lower + upper
				output[hi] = lower - upper
			}
		}
	}

	if inverse {
		scale := complex(1/float64(tr.size), 0)
		for i := 0; i < tr.size; i++ {
			output[i] = cmplx.Conj(output[i]) * scale
		}
	}
	return nil
}

// bitReverse returns the bit reverse of v within the lower bits bits.
func bitReverse(v uint32, bits uint32) uint32 {
	v = v>>16 | v<<16
	v = (v&0xFF00FF00)>>8 | (v&0x00FF00FF)<<8
	v = (v&0xF0F0F0F0)>>4 | (v&0x0F0F0F0F)<<4
	v = (v&0xCCCCCCCC)>>2 | (v&0x33333333)<<2
	v = (v&0xAAAAAAAA)>>1 | (v&0x55555555)<<1
	return v >> (32 - bits)
}

// intLog returns the log base 2 of n, rounded up.
func intLog(n uint32) uint32 {
	i := n - 1 // correct for exact powers of two
	var res uint32
	for i > 0 {
		i >>= 1
		res++
	}
	return res
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << intLog(uint32(n))
}
