// Package midi defines the event vocabulary consumed by instrument nodes.
//
// The core does not parse raw protocol bytes; hardware and file drivers
// are expected to deliver events already decoded into these types. Some
// payloads are converted to more convenient ranges: velocities and
// pressures become floats from 0 to 1, pitch bend becomes a float from -1
// to 1. Anything not specifically enumerated is preserved as raw bytes in
// Other.
package midi

import (
	"math"

	"pipelined.dev/dsp"
)

// Event is a single decoded MIDI event.
type Event struct {
	// Channel the event was sent to.
	Channel uint8
	// Time is the tick the event is scheduled for.
	Time dsp.Time
	// Message holds the decoded payload.
	Message Message
}

// Message is the content of a MIDI event. The set of implementations is
// closed: NoteOn, NoteOff, PitchBend, KeyPressure, SustainPedal,
// ControlChange, ProgramChange, ChannelPressure and Other.
type Message interface {
	message()
}

type (
	// NoteOn starts a note with a velocity from 0 to 1.
	NoteOn struct {
		Note     uint8
		Velocity float32
	}

	// NoteOff stops a note.
	NoteOff struct {
		Note     uint8
		Velocity float32
	}

	// PitchBend bends the pitch by a value from -1 to 1.
	PitchBend struct {
		Bend float32
	}

	// KeyPressure carries polyphonic aftertouch from 0 to 1.
	KeyPressure struct {
		Note     uint8
		Pressure float32
	}

	// SustainPedal toggles the sustain pedal.
	SustainPedal struct {
		On bool
	}

	// ControlChange carries a raw controller change.
	ControlChange struct {
		Controller uint8
		Value      uint8
	}

	// ProgramChange selects a program.
	ProgramChange struct {
		Program uint8
	}

	// ChannelPressure carries channel aftertouch from 0 to 1.
	ChannelPressure struct {
		Pressure float32
	}

	// Other preserves an unrecognized message as raw bytes.
	Other struct {
		Status uint8
		Data1  uint8
		Data2  uint8
	}
)

func (NoteOn) message()          {}
func (NoteOff) message()         {}
func (PitchBend) message()       {}
func (KeyPressure) message()     {}
func (SustainPedal) message()    {}
func (ControlChange) message()   {}
func (ProgramChange) message()   {}
func (ChannelPressure) message() {}
func (Other) message()           {}

// Source yields decoded events per tick. Implementations are typically
// hardware or file drivers outside this module.
type Source interface {
	// EventsAt returns the events scheduled for tick t, in delivery order.
	EventsAt(t dsp.Time) []Event
}

// Frequency returns the fundamental frequency of a MIDI note number in
// Hz, using equal temperament tuned to A440.
func Frequency(note uint8) float64 {
	return 440 * math.Pow(2, (float64(note)-69)/12)
}
