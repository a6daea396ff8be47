// Package oscillator provides an antialiasing waveform generator node.
//
// # Waveforms
//
// The oscillator supports several classical waveforms. Saw, square and
// triangle come in aliased and antialiased variants. The aliased variants
// produce pure signals (a square wave emits only -1 and +1), which is
// useful for control signals but introduces aliasing in the frequency
// domain. The antialiased variants use PolyBLEP (polynomial bandlimited
// step) to suppress the aliasing near each discontinuity, which yields a
// much cleaner audible signal.
//
// # Pitch bend and vibrato
//
// Transpose and bend multiply the base frequency, both configured in
// semitones. When constructed with the LFO option the node declares one
// input channel; the input signal modulates the frequency by
// 2^(input·intensity), with the intensity in fractional octaves.
package oscillator

import (
	"math"
	"math/rand"

	"pipelined.dev/dsp"
)

// Waveform selects the generated wave shape.
type Waveform int

// Supported waveforms.
const (
	Sine Waveform = iota
	Saw
	Square
	Triangle
	// WhiteNoise emits an independent uniform random value in [-1, 1]
	// each tick.
	WhiteNoise
	// PulseTrain emits 1.0 on the tick the phase wraps, 0.0 otherwise.
	PulseTrain
)

// Antialias selects how discontinuous waveforms are rendered.
type Antialias int

const (
	// Aliased renders the naive waveform.
	Aliased Antialias = iota
	// PolyBLEP applies a polynomial bandlimiting correction near each
	// discontinuity.
	PolyBLEP
)

const twoPi = 2 * math.Pi

// Oscillator is a periodic waveform generator node. It declares no inputs
// unless constructed with LFO, and always declares a single output.
type Oscillator struct {
	waveform   Waveform
	antialias  Antialias
	rate       int
	hasLFO     bool
	lfoOctaves dsp.Sample // vibrato depth in octaves
	transpose  dsp.Sample // frequency multiplier
	bend       dsp.Sample // frequency multiplier
	phase      dsp.Sample // in [0, 2pi)
	phaseDelta dsp.Sample // base increment per tick
	lastSample dsp.Sample // previous output, integrated by the triangle
}

type config struct {
	rate      int
	antialias Antialias
	freq      float64
	transpose float64
	bend      float64
	lfo       float64
	hasLFO    bool
}

// Option configures an oscillator at construction.
type Option func(*config)

// Rate sets the sample rate in Hz.
func Rate(hz int) Option {
	return func(c *config) { c.rate = hz }
}

// Antialiased selects the PolyBLEP variant of the waveform.
func Antialiased() Option {
	return func(c *config) { c.antialias = PolyBLEP }
}

// Freq sets the frequency in Hz.
func Freq(hz float64) Option {
	return func(c *config) { c.freq = hz }
}

// Transpose sets the pitch transposition in semitones.
func Transpose(semitones float64) Option {
	return func(c *config) { c.transpose = semitones }
}

// Bend sets the pitch bend in semitones.
func Bend(semitones float64) Option {
	return func(c *config) { c.bend = semitones }
}

// LFO gives the node a modulation input with the provided vibrato depth in
// semitones. The input arity is fixed at construction; without this option
// the oscillator is a pure source.
func LFO(semitones float64) Option {
	return func(c *config) {
		c.hasLFO = true
		c.lfo = semitones
	}
}

// New returns an oscillator generating the provided waveform.
func New(waveform Waveform, options ...Option) *Oscillator {
	c := config{rate: dsp.DefaultSampleRate}
	for _, option := range options {
		option(&c)
	}
	o := &Oscillator{
		waveform:  waveform,
		antialias: c.antialias,
		rate:      c.rate,
		hasLFO:    c.hasLFO,
	}
	o.SetFreq(c.freq)
	o.SetTranspose(c.transpose)
	o.SetBend(c.bend)
	o.SetLFOIntensity(c.lfo)
	return o
}

// SetFreq sets the frequency in Hz.
func (o *Oscillator) SetFreq(hz float64) {
	o.phaseDelta = dsp.Sample(hz * twoPi / float64(o.rate))
}

// SetWaveform sets the generated waveform.
func (o *Oscillator) SetWaveform(w Waveform) {
	o.waveform = w
}

// SetTranspose sets the pitch transposition in semitones.
func (o *Oscillator) SetTranspose(semitones float64) {
	o.transpose = pow2(semitones / 12)
}

// SetBend sets the pitch bend in semitones.
func (o *Oscillator) SetBend(semitones float64) {
	o.bend = pow2(semitones / 12)
}

// SetLFOIntensity sets the vibrato depth in semitones. It has no audible
// effect unless the node was constructed with the LFO option.
func (o *Oscillator) SetLFOIntensity(semitones float64) {
	o.lfoOctaves = dsp.Sample(semitones / 12)
}

// NumInputs implements dsp.Node.
func (o *Oscillator) NumInputs() int {
	if o.hasLFO {
		return 1
	}
	return 0
}

// NumOutputs implements dsp.Node.
func (o *Oscillator) NumOutputs() int {
	return 1
}

// Tick advances the phase by the effective increment and evaluates the
// waveform at the new phase.
func (o *Oscillator) Tick(_ dsp.Time, inputs, outputs []dsp.Sample) {
	delta := o.phaseDelta
	if len(inputs) > 0 {
		delta *= pow2(float64(inputs[0] * o.lfoOctaves))
	}
	delta *= o.bend * o.transpose

	o.phase += delta
	if o.phase >= twoPi {
		o.phase -= twoPi
	}

	var s dsp.Sample
	switch o.waveform {
	case Sine:
		s = dsp.Sample(math.Sin(float64(o.phase)))
	case Saw:
		s = o.phase/math.Pi - 1 + o.polyBLEP(delta)
	case Square:
		s = naiveSquare(o.phase) + o.polyBLEP(delta)
	case Triangle:
		// Leaky integration of the square wave. The coefficient is the
		// current phase increment, so the integration constant tracks the
		// instantaneous frequency.
		sq := naiveSquare(o.phase) + o.polyBLEP(delta)
		s = delta*sq + (1-delta)*o.lastSample
	case WhiteNoise:
		s = 2*rand.Float32() - 1
	case PulseTrain:
		if o.phase < delta {
			s = 1
		}
	}
	o.lastSample = s
	outputs[0] = s
}

func naiveSquare(phase dsp.Sample) dsp.Sample {
	if phase < math.Pi {
		return 1
	}
	return -1
}

// polyBLEP computes the bandlimiting step to add to the naive waveform at
// the current phase, for the effective increment delta.
func (o *Oscillator) polyBLEP(delta dsp.Sample) dsp.Sample {
	if o.antialias != PolyBLEP {
		return 0
	}
	t := o.phase / twoPi
	dt := delta / twoPi
	switch o.waveform {
	case Saw:
		// Single discontinuity at phase 0.
		return -blepOffset(t, dt)
	case Square, Triangle:
		// Discontinuities at phase 0 and pi.
		shifted := t + 0.5
		if shifted >= 1 {
			shifted -= 1
		}
		return blepOffset(t, dt) - blepOffset(shifted, dt)
	default:
		return 0
	}
}

// blepOffset computes a single PolyBLEP correction for the normalized
// phase t and normalized increment dt, both in cycle fractions.
func blepOffset(t, dt dsp.Sample) dsp.Sample {
	switch {
	case t < dt: // just after the discontinuity
		t /= dt
		return -t*t + 2*t - 1
	case t > 1-dt: // just before the next discontinuity
		t = (t - 1) / dt
		return t*t + 2*t + 1
	default:
		return 0
	}
}

func pow2(x float64) dsp.Sample {
	return dsp.Sample(math.Pow(2, x))
}
