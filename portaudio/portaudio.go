//go:build cgo

// Package portaudio provides a playback sink node using the default
// output device.
package portaudio

import (
	"github.com/gordonklaus/portaudio"

	"pipelined.dev/dsp"
)

// Sink plays its input channels on the default output device. Frames are
// collected into an internal buffer and written to the stream whenever the
// buffer fills, so a Tick blocks only on buffer boundaries.
type Sink struct {
	channels int
	buf      []float32
	pos      int
	stream   *portaudio.Stream
	err      error
}

// NewSink initializes portaudio and opens and starts the default stream.
// bufferSize is the stream buffer length in frames.
func NewSink(sampleRate, channels, bufferSize int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Sink{
		channels: channels,
		buf:      make([]float32, bufferSize*channels),
	}
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), bufferSize, &s.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

// NumInputs implements dsp.Node.
func (s *Sink) NumInputs() int { return s.channels }

// NumOutputs implements dsp.Node.
func (s *Sink) NumOutputs() int { return 0 }

// Tick buffers one frame and writes the stream when the buffer is full.
// Stream faults are retained and surfaced by Err and Close.
func (s *Sink) Tick(_ dsp.Time, inputs, _ []dsp.Sample) {
	for _, in := range inputs {
		s.buf[s.pos] = in
		s.pos++
	}
	if s.pos == len(s.buf) {
		s.pos = 0
		if err := s.stream.Write(); err != nil && s.err == nil {
			s.err = err
		}
	}
}

// Err returns the first stream fault encountered during playback, if any.
func (s *Sink) Err() error {
	return s.err
}

// Close stops the stream and terminates portaudio. It returns a retained
// playback fault if no shutdown error occurs first.
func (s *Sink) Close() error {
	if err := s.stream.Stop(); err != nil {
		return err
	}
	if err := s.stream.Close(); err != nil {
		return err
	}
	if err := portaudio.Terminate(); err != nil {
		return err
	}
	return s.err
}
