// Package chain provides a linear scheduler for dsp nodes.
//
// A chain holds an ordered list of nodes and drives them with a shared,
// monotonically increasing tick counter. The first node must be a source
// (zero inputs); each following node must consume exactly as many channels
// as its predecessor produces. Wiring is validated once, at construction;
// per-tick execution performs no checks.
//
// The chain supports only a straight line of nodes. Fan-out, fan-in and
// feedback need a different driver, with connections decoupled through the
// ring package.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"pipelined.dev/dsp"
	"pipelined.dev/dsp/log"
)

// Construction errors.
var (
	ErrSourceInputs  = errors.New("chain: source node must not declare inputs")
	ErrArityMismatch = errors.New("chain: node input arity must match preceding output arity")
)

// scheduled pairs a node with its owned output buffer.
type scheduled struct {
	node dsp.Node
	out  []dsp.Sample
}

// Chain executes nodes in construction order, once per tick.
type Chain struct {
	uid    string
	nodes  []scheduled
	time   dsp.Time
	rate   int
	logger *logrus.Entry
}

// Option provides a way to set chain parameters.
type Option func(*Chain)

// Rate sets the sample rate used to size run-loop batches, in Hz.
func Rate(hz int) Option {
	return func(c *Chain) { c.rate = hz }
}

// New returns a chain starting with the provided source node. The source
// must declare zero inputs. Further nodes are attached with Append.
func New(source dsp.Node, options ...Option) (*Chain, error) {
	if n := source.NumInputs(); n != 0 {
		return nil, fmt.Errorf("%w: source declares %d inputs", ErrSourceInputs, n)
	}
	c := &Chain{
		uid:  xid.New().String(),
		rate: dsp.DefaultSampleRate,
	}
	for _, option := range options {
		option(c)
	}
	c.logger = log.GetLogger().WithField("chain", c.uid)
	c.nodes = append(c.nodes, scheduled{
		node: source,
		out:  make([]dsp.Sample, source.NumOutputs()),
	})
	c.logger.WithField("node", fmt.Sprintf("%T", source)).Debug("source attached")
	return c, nil
}

// Append attaches a node to the end of the chain. The node's input arity
// must equal the output arity of the current terminal node.
func (c *Chain) Append(node dsp.Node) error {
	outs := c.nodes[len(c.nodes)-1].node.NumOutputs()
	if ins := node.NumInputs(); ins != outs {
		return fmt.Errorf("%w: %d inputs after %d outputs", ErrArityMismatch, ins, outs)
	}
	c.nodes = append(c.nodes, scheduled{
		node: node,
		out:  make([]dsp.Sample, node.NumOutputs()),
	})
	c.logger.WithField("node", fmt.Sprintf("%T", node)).Debug("node appended")
	return nil
}

// Tick executes one pass: every node runs exactly once in construction
// order, each fed the current output buffer of its predecessor, then the
// time counter advances by one.
func (c *Chain) Tick() {
	c.nodes[0].node.Tick(c.time, nil, c.nodes[0].out)
	for i := 1; i < len(c.nodes); i++ {
		c.nodes[i].node.Tick(c.time, c.nodes[i-1].out, c.nodes[i].out)
	}
	c.time++
}

// Time returns the tick the next pass will execute at.
func (c *Chain) Time() dsp.Time {
	return c.time
}

// Run ticks the chain until ctx is cancelled. Cancellation is polled once
// per tenth of a second of audio time rather than every tick, which keeps
// the poll overhead bounded; the in-flight batch always completes, so the
// chain never stops mid-tick. Run returns the cancellation cause.
func (c *Chain) Run(ctx context.Context) error {
	batch := c.rate / 10
	c.logger.WithField("batch", batch).Debug("chain running")
	for {
		for i := 0; i < batch; i++ {
			c.Tick()
		}
		select {
		case <-ctx.Done():
			c.logger.WithField("ticks", c.time).Debug("chain stopped")
			return ctx.Err()
		default:
		}
	}
}
