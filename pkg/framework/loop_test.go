package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestLoopPriorityOrder(t *testing.T) {
	l := NewLoop()
	var order []int
	for _, lv := range []int{PrLvIdle, PrLvTop, PrLvActuate, PrLvControl} {
		lv := lv
		l.AddController(lv, ControlFunc(func(ControlContext) error {
			order = append(order, lv)
			return nil
		}))
	}
	l.RunIteration(context.Background())
	require.Equal(t, []int{PrLvTop, PrLvControl, PrLvActuate, PrLvIdle}, order)
}

func TestLoopMessages(t *testing.T) {
	l := NewLoop()
	var taken, seen []Message
	l.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			if n, ok := mc.CurrentMessage().(int); ok {
				taken = append(taken, n)
				mc.MessageTaken()
			}
		}))
		return nil
	}))
	l.AddController(PrLvIdle, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			seen = append(seen, mc.CurrentMessage())
		}))
		return errors.New("ignored")
	}))
	l.PostMessage(1)
	l.PostMessage("a")
	l.PostMessage(2)
	l.RunIteration(context.Background())
	require.Equal(t, []Message{1, 2}, taken)
	require.Equal(t, []Message{"a"}, seen)

	taken, seen = nil, nil
	l.RunIteration(context.Background())
	require.Empty(t, taken)
	require.Empty(t, seen)
}

func TestLoopTicksWithClock(t *testing.T) {
	clk := clock.NewMock()
	l := NewLoop()
	l.Clock = clk
	iterCh := make(chan time.Time, 4)
	l.AddController(PrLvActuate, ControlFunc(func(cc ControlContext) error {
		iterCh <- cc.Time()
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	go func() { doneCh <- l.Run(ctx) }()

	l.TriggerNext()
	select {
	case <-iterCh:
	case <-time.After(time.Second):
		t.Fatal("trigger did not run an iteration")
	}

	// the ticker exists once an iteration has run.
	clk.Add(DefaultInterval)
	select {
	case at := <-iterCh:
		require.Equal(t, clk.Now(), at)
	case <-time.After(time.Second):
		t.Fatal("ticker did not run an iteration")
	}

	cancel()
	select {
	case err := <-doneCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoopRunnableError(t *testing.T) {
	l := NewLoop()
	failure := errors.New("port gone")
	l.AddRunnable(NamedRun("uart", RunFunc(func(ctx context.Context) error {
		LoopCtlFrom(ctx).TriggerNext()
		return failure
	})))
	err := l.Run(context.Background())
	require.True(t, errors.Is(err, failure))
	require.Contains(t, err.Error(), "uart")
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())
	e1 := errors.New("e1")
	errs.Add(nil, e1)
	require.Equal(t, e1, errs.Aggregate())
	errs.Add(errors.New("e2"))
	require.EqualError(t, errs.Aggregate(), "e1; e2")
}
