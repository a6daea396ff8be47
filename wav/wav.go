// Package wav provides file-backed source and sink nodes.
//
// Source preloads the whole file at construction so Tick never touches
// the disk; Sink accumulates frames in memory and encodes them on Flush.
// Both therefore stay within the bounded-time tick contract at the cost of
// holding the full signal in memory.
package wav

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"pipelined.dev/dsp"
)

// ErrUnsupportedBitDepth is returned when an unsupported bit depth is
// used. Only 16 and 32 bits are supported.
var ErrUnsupportedBitDepth = errors.New("wav: only 16 and 32 bit depth are supported")

type (
	// Source reads a wav file and emits one frame per tick, silence once
	// the file is exhausted.
	Source struct {
		channels int
		rate     int
		data     []dsp.Sample // interleaved
		pos      int
	}

	// Sink collects frames and writes them to a wav file on Flush.
	Sink struct {
		path     string
		channels int
		rate     int
		bitDepth int
		data     []int // interleaved
	}
)

// NewSource returns a source emitting the file's samples.
func NewSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("wav: %v is not a valid wav file", path)
	}
	if decoder.BitDepth != 16 && decoder.BitDepth != 32 {
		return nil, ErrUnsupportedBitDepth
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	divider := dsp.Sample(math.MaxInt16)
	if decoder.BitDepth == 32 {
		divider = dsp.Sample(math.MaxInt32)
	}
	data := make([]dsp.Sample, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = dsp.Sample(v) / divider
	}

	return &Source{
		channels: buf.Format.NumChannels,
		rate:     int(decoder.SampleRate),
		data:     data,
	}, nil
}

// SampleRate returns the sample rate of the decoded file, in Hz.
func (s *Source) SampleRate() int {
	return s.rate
}

// Done reports whether the file is exhausted and the source now emits
// silence.
func (s *Source) Done() bool {
	return s.pos >= len(s.data)
}

// NumInputs implements dsp.Node.
func (s *Source) NumInputs() int { return 0 }

// NumOutputs implements dsp.Node.
func (s *Source) NumOutputs() int { return s.channels }

// Tick implements dsp.Node.
func (s *Source) Tick(_ dsp.Time, _, outputs []dsp.Sample) {
	for i := range outputs {
		if s.pos < len(s.data) {
			outputs[i] = s.data[s.pos]
			s.pos++
		} else {
			outputs[i] = 0
		}
	}
}

// NewSink returns a sink writing to path on Flush.
func NewSink(path string, sampleRate, channels, bitDepth int) (*Sink, error) {
	if bitDepth != 16 && bitDepth != 32 {
		return nil, ErrUnsupportedBitDepth
	}
	return &Sink{
		path:     path,
		channels: channels,
		rate:     sampleRate,
		bitDepth: bitDepth,
	}, nil
}

// NumInputs implements dsp.Node.
func (s *Sink) NumInputs() int { return s.channels }

// NumOutputs implements dsp.Node.
func (s *Sink) NumOutputs() int { return 0 }

// Tick implements dsp.Node.
func (s *Sink) Tick(_ dsp.Time, inputs, _ []dsp.Sample) {
	multiplier := dsp.Sample(math.MaxInt16 - 1)
	if s.bitDepth == 32 {
		multiplier = dsp.Sample(math.MaxInt32 - 1)
	}
	for _, in := range inputs {
		s.data = append(s.data, int(in*multiplier))
	}
}

// Flush encodes the collected frames and closes the file.
func (s *Sink) Flush() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	encoder := wav.NewEncoder(f, s.rate, s.bitDepth, s.channels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: s.channels,
			SampleRate:  s.rate,
		},
		Data:           s.data,
		SourceBitDepth: s.bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		encoder.Close()
		f.Close()
		return err
	}
	if err := encoder.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
