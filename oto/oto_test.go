//go:build cgo

package oto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pipelined.dev/dsp"
	"pipelined.dev/dsp/ring"
)

// newTestSink builds a sink without an audio context so the buffering
// logic can be exercised headlessly.
func newTestSink(t *testing.T, channels, bufferTicks int) *Sink {
	t.Helper()
	buf, err := ring.New[dsp.Sample](bufferTicks * channels)
	assert.NoError(t, err)
	return &Sink{channels: channels, buf: buf}
}

func readSamples(t *testing.T, s *Sink, n int) []dsp.Sample {
	t.Helper()
	p := make([]byte, 4*n)
	read, err := s.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, len(p), read)
	out := make([]dsp.Sample, n)
	for i := range out {
		bits := uint32(p[4*i]) | uint32(p[4*i+1])<<8 | uint32(p[4*i+2])<<16 | uint32(p[4*i+3])<<24
		out[i] = math.Float32frombits(bits)
	}
	return out
}

func TestReadDrainsTicks(t *testing.T) {
	s := newTestSink(t, 1, 8)
	for i := 1; i <= 3; i++ {
		s.Tick(dsp.Time(i), []dsp.Sample{dsp.Sample(i) / 10}, nil)
	}
	assert.Equal(t, []dsp.Sample{0.1, 0.2, 0.3}, readSamples(t, s, 3))
}

func TestReadPadsSilence(t *testing.T) {
	s := newTestSink(t, 1, 8)
	s.Tick(0, []dsp.Sample{0.5}, nil)
	// Only one sample buffered; the rest of the read is silence.
	assert.Equal(t, []dsp.Sample{0.5, 0, 0}, readSamples(t, s, 3))
	// The silence padding does not advance past fresh data.
	s.Tick(1, []dsp.Sample{0.25}, nil)
	assert.Equal(t, []dsp.Sample{0.25}, readSamples(t, s, 1))
}

func TestOverrunSkipsOldest(t *testing.T) {
	s := newTestSink(t, 1, 4)
	for i := 0; i < 10; i++ {
		s.Tick(dsp.Time(i), []dsp.Sample{dsp.Sample(i)}, nil)
	}
	// The cursor was pushed forward to the oldest surviving sample.
	assert.Equal(t, []dsp.Sample{6, 7, 8, 9}, readSamples(t, s, 4))
}
