//go:build cgo

// Package oto provides a pure Go playback sink node.
//
// The sink pushes every frame into a time-indexed ring buffer; the oto
// player drains it from its own goroutine through io.Reader. The ring
// capacity bounds how far playback may lag behind the chain: if the chain
// outruns the player the oldest samples are dropped, if the player
// outruns the chain it is fed silence.
package oto

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"pipelined.dev/dsp"
	"pipelined.dev/dsp/ring"
)

// Sink plays its input channels through an oto player.
type Sink struct {
	channels int
	player   *oto.Player

	mu   sync.Mutex
	buf  *ring.Buffer[dsp.Sample]
	next dsp.Time // play cursor into buf
}

// NewSink opens an audio context and starts playback. bufferTicks is the
// ring capacity in frames, bounding the drift between the chain and the
// player.
func NewSink(sampleRate, channels, bufferTicks int) (*Sink, error) {
	buf, err := ring.New[dsp.Sample](bufferTicks * channels)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &Sink{
		channels: channels,
		buf:      buf,
	}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// NumInputs implements dsp.Node.
func (s *Sink) NumInputs() int { return s.channels }

// NumOutputs implements dsp.Node.
func (s *Sink) NumOutputs() int { return 0 }

// Tick pushes one frame into the ring.
func (s *Sink) Tick(_ dsp.Time, inputs, _ []dsp.Sample) {
	s.mu.Lock()
	for _, in := range inputs {
		s.buf.Push(in)
	}
	// If playback fell more than a full ring behind, skip the cursor
	// forward to the oldest sample still available.
	if start := s.buf.Start(); s.next < start {
		s.next = start
	}
	s.mu.Unlock()
}

// Read implements io.Reader for the oto player, draining buffered samples
// as 32 bit little endian floats and padding with silence when the chain
// has not produced enough yet.
func (s *Sink) Read(p []byte) (int, error) {
	n := len(p) / 4
	s.mu.Lock()
	for i := 0; i < n; i++ {
		v, ok := s.buf.Get(s.next)
		if ok {
			s.next++
		} else {
			v = 0
		}
		bits := math.Float32bits(v)
		p[4*i] = byte(bits)
		p[4*i+1] = byte(bits >> 8)
		p[4*i+2] = byte(bits >> 16)
		p[4*i+3] = byte(bits >> 24)
	}
	s.mu.Unlock()
	return n * 4, nil
}

// Close stops playback.
func (s *Sink) Close() error {
	return s.player.Close()
}
