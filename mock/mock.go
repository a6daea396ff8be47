// Package mock provides simple nodes for testing chains and instruments.
package mock

import "pipelined.dev/dsp"

type (
	// Source emits Value on every output channel each tick.
	Source struct {
		Channels int
		Value    dsp.Sample
	}

	// Counter emits the current tick number on every output channel,
	// which makes execution order visible in tests.
	Counter struct {
		Channels int
	}

	// Pass copies its inputs to its outputs unchanged.
	Pass struct {
		Channels int
	}

	// Sink records every frame it receives.
	Sink struct {
		Channels int
		Frames   [][]dsp.Sample
	}

	// Node declares arbitrary arities and does nothing, for wiring tests.
	Node struct {
		Ins  int
		Outs int
	}
)

// NumInputs implements dsp.Node.
func (s *Source) NumInputs() int { return 0 }

// NumOutputs implements dsp.Node.
func (s *Source) NumOutputs() int { return s.Channels }

// Tick implements dsp.Node.
func (s *Source) Tick(_ dsp.Time, _, outputs []dsp.Sample) {
	for i := range outputs {
		outputs[i] = s.Value
	}
}

// NumInputs implements dsp.Node.
func (c *Counter) NumInputs() int { return 0 }

// NumOutputs implements dsp.Node.
func (c *Counter) NumOutputs() int { return c.Channels }

// Tick implements dsp.Node.
func (c *Counter) Tick(t dsp.Time, _, outputs []dsp.Sample) {
	for i := range outputs {
		outputs[i] = dsp.Sample(t)
	}
}

// NumInputs implements dsp.Node.
func (p *Pass) NumInputs() int { return p.Channels }

// NumOutputs implements dsp.Node.
func (p *Pass) NumOutputs() int { return p.Channels }

// Tick implements dsp.Node.
func (p *Pass) Tick(_ dsp.Time, inputs, outputs []dsp.Sample) {
	copy(outputs, inputs)
}

// NumInputs implements dsp.Node.
func (s *Sink) NumInputs() int { return s.Channels }

// NumOutputs implements dsp.Node.
func (s *Sink) NumOutputs() int { return 0 }

// Tick implements dsp.Node.
func (s *Sink) Tick(_ dsp.Time, inputs, _ []dsp.Sample) {
	frame := make([]dsp.Sample, len(inputs))
	copy(frame, inputs)
	s.Frames = append(s.Frames, frame)
}

// NumInputs implements dsp.Node.
func (n *Node) NumInputs() int { return n.Ins }

// NumOutputs implements dsp.Node.
func (n *Node) NumOutputs() int { return n.Outs }

// Tick implements dsp.Node.
func (n *Node) Tick(_ dsp.Time, _, _ []dsp.Sample) {}
