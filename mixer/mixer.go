// Package mixer provides stateless utility nodes for combining and
// scaling channels.
package mixer

import "pipelined.dev/dsp"

type (
	// Adder sums all of its input channels into a single output.
	Adder struct {
		inputs int
	}

	// Multiplier multiplies all of its input channels into a single
	// output.
	Multiplier struct {
		inputs int
	}

	// Gain scales every channel by a constant factor.
	Gain struct {
		channels int
		gain     dsp.Sample
	}
)

// NewAdder returns an adder with the provided number of input channels.
func NewAdder(inputs int) *Adder {
	return &Adder{inputs: inputs}
}

// NumInputs implements dsp.Node.
func (a *Adder) NumInputs() int { return a.inputs }

// NumOutputs implements dsp.Node.
func (a *Adder) NumOutputs() int { return 1 }

// Tick implements dsp.Node.
func (a *Adder) Tick(_ dsp.Time, inputs, outputs []dsp.Sample) {
	var s dsp.Sample
	for _, in := range inputs {
		s += in
	}
	outputs[0] = s
}

// NewMultiplier returns a multiplier with the provided number of input
// channels.
func NewMultiplier(inputs int) *Multiplier {
	return &Multiplier{inputs: inputs}
}

// NumInputs implements dsp.Node.
func (m *Multiplier) NumInputs() int { return m.inputs }

// NumOutputs implements dsp.Node.
func (m *Multiplier) NumOutputs() int { return 1 }

// Tick implements dsp.Node.
func (m *Multiplier) Tick(_ dsp.Time, inputs, outputs []dsp.Sample) {
	s := dsp.Sample(1)
	for _, in := range inputs {
		s *= in
	}
	outputs[0] = s
}

// NewGain returns a gain stage over the provided number of channels.
func NewGain(channels int, gain dsp.Sample) *Gain {
	return &Gain{channels: channels, gain: gain}
}

// SetGain sets the scaling factor.
func (g *Gain) SetGain(gain dsp.Sample) {
	g.gain = gain
}

// NumInputs implements dsp.Node.
func (g *Gain) NumInputs() int { return g.channels }

// NumOutputs implements dsp.Node.
func (g *Gain) NumOutputs() int { return g.channels }

// Tick implements dsp.Node.
func (g *Gain) Tick(_ dsp.Time, inputs, outputs []dsp.Sample) {
	for i, in := range inputs {
		outputs[i] = in * g.gain
	}
}
