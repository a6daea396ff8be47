//go:build cgo

// Package mp3 provides an mp3 file sink node encoded with lame.
package mp3

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/viert/lame"

	"pipelined.dev/dsp"
)

// Sink encodes its input channels to an mp3 file. Samples are collected
// into an internal pcm buffer and handed to the encoder whenever the
// buffer fills; Flush drains the remainder and closes the file.
type Sink struct {
	channels int
	f        *os.File
	wr       *lame.LameWriter
	pcm      []byte
	pos      int
	err      error
}

// NewSink creates the file and initializes the encoder. bufferSize is the
// encode granularity in frames.
func NewSink(path string, sampleRate, channels, bitRate, quality, bufferSize int) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	wr := lame.NewWriter(f)
	wr.Encoder.SetBitrate(bitRate)
	wr.Encoder.SetQuality(quality)
	wr.Encoder.SetNumChannels(channels)
	wr.Encoder.SetInSamplerate(sampleRate)
	wr.Encoder.SetMode(lame.JOINT_STEREO)
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()

	return &Sink{
		channels: channels,
		f:        f,
		wr:       wr,
		pcm:      make([]byte, 2*bufferSize*channels),
	}, nil
}

// NumInputs implements dsp.Node.
func (s *Sink) NumInputs() int { return s.channels }

// NumOutputs implements dsp.Node.
func (s *Sink) NumOutputs() int { return 0 }

// Tick buffers one frame as 16 bit little endian pcm, encoding whenever
// the buffer fills. Encoder faults are retained and surfaced by Flush.
func (s *Sink) Tick(_ dsp.Time, inputs, _ []dsp.Sample) {
	for _, in := range inputs {
		binary.LittleEndian.PutUint16(s.pcm[s.pos:], uint16(int16(in*(math.MaxInt16-1))))
		s.pos += 2
	}
	if s.pos == len(s.pcm) {
		s.pos = 0
		if _, err := s.wr.Write(s.pcm); err != nil && s.err == nil {
			s.err = err
		}
	}
}

// Flush encodes any remaining samples and closes the encoder and file. It
// returns a retained encoder fault if no shutdown error occurs first.
func (s *Sink) Flush() error {
	if s.pos > 0 {
		if _, err := s.wr.Write(s.pcm[:s.pos]); err != nil && s.err == nil {
			s.err = err
		}
		s.pos = 0
	}
	if err := s.wr.Close(); err != nil {
		return err
	}
	if err := s.f.Close(); err != nil {
		return err
	}
	return s.err
}
