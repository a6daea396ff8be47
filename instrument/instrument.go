// Package instrument provides a polyphonic instrument node.
//
// Poly glues the voice allocator to a fixed pool of generator nodes: each
// tick it drains the midi source, routes note events onto voices via the
// allocator's stealing policy, ticks every voice and sums their outputs
// into a single channel.
package instrument

import (
	"errors"

	"pipelined.dev/dsp"
	"pipelined.dev/dsp/midi"
	"pipelined.dev/dsp/voice"
)

// ErrVoiceArity is returned when a voice is not a single-channel source.
var ErrVoiceArity = errors.New("instrument: voices must declare zero inputs and one output")

// Voice is a generator node that can be triggered and released. Between a
// NoteOff and the next NoteOn a voice is expected to decay on its own;
// silent voices still tick.
type Voice interface {
	dsp.Node
	// NoteOn starts the voice playing a note at a velocity from 0 to 1.
	NoteOn(note uint8, velocity float32)
	// NoteOff releases the note the voice is playing.
	NoteOff()
}

// Poly is a polyphonic instrument node with zero inputs and one output.
type Poly struct {
	voices  *voice.Array[Voice]
	events  midi.Source
	scratch []dsp.Sample
}

// NewPoly returns an instrument playing events from the source on the
// provided voices. Every voice must declare zero inputs and one output.
func NewPoly(events midi.Source, voices []Voice) (*Poly, error) {
	for _, v := range voices {
		if v.NumInputs() != 0 || v.NumOutputs() != 1 {
			return nil, ErrVoiceArity
		}
	}
	array, err := voice.New(voices)
	if err != nil {
		return nil, err
	}
	return &Poly{
		voices:  array,
		events:  events,
		scratch: make([]dsp.Sample, 1),
	}, nil
}

// NumInputs implements dsp.Node.
func (p *Poly) NumInputs() int { return 0 }

// NumOutputs implements dsp.Node.
func (p *Poly) NumOutputs() int { return 1 }

// Tick routes this tick's events, then ticks and sums all voices.
func (p *Poly) Tick(t dsp.Time, _, outputs []dsp.Sample) {
	for _, e := range p.events.EventsAt(t) {
		p.handle(e)
	}

	var sum dsp.Sample
	for _, v := range p.voices.Voices() {
		v.Tick(t, nil, p.scratch)
		sum += p.scratch[0]
	}
	outputs[0] = sum
}

func (p *Poly) handle(e midi.Event) {
	switch m := e.Message.(type) {
	case midi.NoteOn:
		v := p.voices.NoteOn(m.Note)
		(*v).NoteOn(m.Note, m.Velocity)
	case midi.NoteOff:
		if v, ok := p.voices.NoteOff(m.Note); ok {
			(*v).NoteOff()
		}
	}
}
