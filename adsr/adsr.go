// Package adsr provides an attack/decay/sustain/release envelope node.
//
// The envelope is a time-varying gain multiplier applied to every input
// channel. A note-down event starts a smooth attack from the current
// multiplier, not from zero; a note-up event starts a release from the
// current multiplier. Attack, decay and release each schedule an automatic
// transition into the following state, while sustain and silent hold until
// the next external event.
package adsr

import "pipelined.dev/dsp"

// State identifies the phase the envelope is currently in.
type State int

// Envelope states, in automatic transition order.
const (
	StateSilent State = iota
	StateAttack
	StateDecay
	StateSustain
	StateRelease
)

// next returns the state entered when a scheduled transition fires.
func (s State) next() State {
	switch s {
	case StateAttack:
		return StateDecay
	case StateDecay:
		return StateSustain
	case StateSustain:
		return StateRelease
	default:
		// Release and Silent both fall to Silent.
		return StateSilent
	}
}

// Envelope is a multichannel ADSR node.
type Envelope struct {
	channels     int
	rate         int
	attackTicks  dsp.Time
	decayTicks   dsp.Time
	releaseTicks dsp.Time
	sustainLevel dsp.Sample

	current State
	// changeScheduled is an explicit flag rather than a sentinel time
	// value: 0 is a reachable tick and cannot double as "nothing
	// scheduled".
	changeAt        dsp.Time
	changeScheduled bool
	multiplier      dsp.Sample
	delta           dsp.Sample
	lastTime        dsp.Time
}

// New returns an envelope with the provided settings.
//
// attackTime, decayTime and releaseTime are given in seconds and converted
// to tick counts at the provided sample rate. sustainLevel is the held
// amplitude from 0 to 1. channels defines how many channels of audio the
// node filters.
func New(attackTime, decayTime float64, sustainLevel dsp.Sample, releaseTime float64, channels, sampleRate int) *Envelope {
	e := &Envelope{
		channels:     channels,
		rate:         sampleRate,
		sustainLevel: sustainLevel,
	}
	e.attackTicks = e.ticks(attackTime)
	e.decayTicks = e.ticks(decayTime)
	e.releaseTicks = e.ticks(releaseTime)
	return e
}

// Default returns an envelope with reasonable settings: 50ms attack, 100ms
// decay, 0.5 sustain, 100ms release.
func Default(channels int) *Envelope {
	return New(0.05, 0.1, 0.5, 0.1, channels, dsp.DefaultSampleRate)
}

// ticks converts a duration in seconds to a tick count. Durations shorter
// than one tick are clamped to one so ramp deltas stay finite.
func (e *Envelope) ticks(seconds float64) dsp.Time {
	t := dsp.Time(seconds * float64(e.rate))
	if t < 1 {
		t = 1
	}
	return t
}

// State returns the phase the envelope is currently in.
func (e *Envelope) State() State {
	return e.current
}

// NoteDown forces an immediate transition into attack, ramping up from the
// current multiplier.
func (e *Envelope) NoteDown() {
	e.enter(StateAttack, e.lastTime)
}

// NoteUp forces an immediate transition into release, ramping down from
// the current multiplier.
func (e *Envelope) NoteUp() {
	e.enter(StateRelease, e.lastTime)
}

// SetAttack sets the attack duration in seconds. It affects only future
// transitions into attack, not an in-flight ramp.
func (e *Envelope) SetAttack(seconds float64) {
	e.attackTicks = e.ticks(seconds)
}

// SetDecay sets the decay duration in seconds.
func (e *Envelope) SetDecay(seconds float64) {
	e.decayTicks = e.ticks(seconds)
}

// SetRelease sets the release duration in seconds.
func (e *Envelope) SetRelease(seconds float64) {
	e.releaseTicks = e.ticks(seconds)
}

// SetSustain sets the sustain level from 0 to 1.
func (e *Envelope) SetSustain(level dsp.Sample) {
	e.sustainLevel = level
}

// enter transitions into the given state at time t, recomputing the ramp
// from the current multiplier.
func (e *Envelope) enter(s State, t dsp.Time) {
	e.current = s
	switch s {
	case StateAttack:
		e.changeAt, e.changeScheduled = t+e.attackTicks, true
		e.delta = (1.0 - e.multiplier) / dsp.Sample(e.attackTicks)
	case StateDecay:
		e.changeAt, e.changeScheduled = t+e.decayTicks, true
		e.delta = (e.sustainLevel - e.multiplier) / dsp.Sample(e.decayTicks)
	case StateSustain:
		e.changeScheduled = false
		e.multiplier = e.sustainLevel
		e.delta = 0
	case StateRelease:
		e.changeAt, e.changeScheduled = t+e.releaseTicks, true
		e.delta = (0.0 - e.multiplier) / dsp.Sample(e.releaseTicks)
	case StateSilent:
		e.changeScheduled = false
		e.multiplier = 0
		e.delta = 0
	}
}

// NumInputs implements dsp.Node.
func (e *Envelope) NumInputs() int {
	return e.channels
}

// NumOutputs implements dsp.Node.
func (e *Envelope) NumOutputs() int {
	return e.channels
}

// Tick advances any scheduled transition, updates the multiplier by the
// current ramp delta and applies it to every input channel.
func (e *Envelope) Tick(t dsp.Time, inputs, outputs []dsp.Sample) {
	if e.changeScheduled && e.changeAt == t {
		e.enter(e.current.next(), t)
	}
	e.lastTime = t

	e.multiplier += e.delta

	for i, s := range inputs {
		outputs[i] = s * e.multiplier
	}
}
