package chain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"pipelined.dev/dsp"
	"pipelined.dev/dsp/chain"
	"pipelined.dev/dsp/mock"
)

func TestSourceValidation(t *testing.T) {
	_, err := chain.New(&mock.Node{Ins: 2, Outs: 1})
	assert.ErrorIs(t, err, chain.ErrSourceInputs)

	_, err = chain.New(&mock.Node{Ins: 0, Outs: 1})
	assert.NoError(t, err)
}

func TestAppendValidation(t *testing.T) {
	c, err := chain.New(&mock.Node{Ins: 0, Outs: 1})
	assert.NoError(t, err)

	// A 2-input node cannot follow a 1-output node, and the rejection
	// happens before any tick executes.
	err = c.Append(&mock.Node{Ins: 2, Outs: 1})
	assert.ErrorIs(t, err, chain.ErrArityMismatch)
	assert.Equal(t, dsp.Time(0), c.Time())

	assert.NoError(t, c.Append(&mock.Node{Ins: 1, Outs: 2}))
	assert.NoError(t, c.Append(&mock.Node{Ins: 2, Outs: 1}))
}

func TestTick(t *testing.T) {
	// Counter source, identity processor, recording sink: the sink must
	// observe the counter values produced within the same pass.
	sink := &mock.Sink{Channels: 1}
	c, err := chain.New(&mock.Counter{Channels: 1})
	assert.NoError(t, err)
	assert.NoError(t, c.Append(&mock.Pass{Channels: 1}))
	assert.NoError(t, c.Append(sink))

	for i := 0; i < 4; i++ {
		c.Tick()
	}

	assert.Equal(t, dsp.Time(4), c.Time())
	assert.Equal(t, [][]dsp.Sample{{0}, {1}, {2}, {3}}, sink.Frames)
}

func TestMultichannel(t *testing.T) {
	sink := &mock.Sink{Channels: 2}
	c, err := chain.New(&mock.Source{Channels: 2, Value: 0.5})
	assert.NoError(t, err)
	assert.NoError(t, c.Append(&mock.Pass{Channels: 2}))
	assert.NoError(t, c.Append(sink))

	c.Tick()
	assert.Equal(t, [][]dsp.Sample{{0.5, 0.5}}, sink.Frames)
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := chain.New(&mock.Source{Channels: 1, Value: 1}, chain.Rate(1000))
	assert.NoError(t, err)
	assert.NoError(t, c.Append(&mock.Node{Ins: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	err = <-done

	assert.ErrorIs(t, err, context.Canceled)
	// The run loop polls once per batch of rate/10 ticks, so the tick
	// count is always a whole number of batches.
	assert.NotZero(t, c.Time())
	assert.Zero(t, c.Time()%100)
}
