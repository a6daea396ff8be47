/*
Package dsp provides the scalar types and the node contract shared by all
processing packages in this module.

Concept

Audio is processed one sample frame at a time. Every processing unit
implements Node: it declares a fixed input and output arity and transforms
one input frame into one output frame per tick. Ticks are identified by a
monotonically increasing time counter which is shared by every node driven
within the same pass.

Nodes are composed with the chain package, which validates arities at
construction and executes nodes in a fixed order. Generator packages
(oscillator, adsr) and boundary packages (wav, portaudio, oto, mp3) all
speak this contract.
*/
package dsp

// Sample is a single amplitude value. Values are nominally in [-1.0, 1.0],
// though intermediate signals may exceed this range; clamping is the
// responsibility of the output boundary.
type Sample = float32

// Time identifies a single tick. It starts at 0 and increases by exactly
// one per scheduler pass.
type Time = uint64

// DefaultSampleRate is the sample rate assumed by constructors that are
// not given an explicit rate, in Hz.
const DefaultSampleRate = 44100

// Node is a unit of audio-rate processing. Both arities are fixed for the
// lifetime of the node and must be queried before wiring.
type Node interface {
	// NumInputs returns the number of input channels the node consumes.
	NumInputs() int

	// NumOutputs returns the number of output channels the node produces.
	NumOutputs() int

	// Tick processes a single frame. It must consume exactly NumInputs
	// samples and produce exactly NumOutputs samples, using only t and the
	// node's own state. It is called once per tick, starting at t=0, and
	// must complete in bounded time: no blocking, no I/O retries.
	Tick(t Time, inputs, outputs []Sample)
}
