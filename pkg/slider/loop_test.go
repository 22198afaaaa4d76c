package slider

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/link"
	"github.com/robotalks/slider.go/pkg/motor/sim"
)

func TestServiceInLoop(t *testing.T) {
	clk := clock.NewMock()
	svc := NewService(New(sim.NewConfig().NewStepper(clk)))
	var changes []Axis
	svc.Watch(func(a Axis) { changes = append(changes, a) })

	loop := framework.NewLoop()
	loop.Clock = clk
	loop.Add(svc)

	ctx := context.Background()
	exec := func(line string) string {
		req := link.NewRequest("test", line)
		loop.PostMessage(req)
		loop.RunIteration(ctx)
		resp, err := req.Wait(ctx)
		require.NoError(t, err)
		return resp
	}

	require.Equal(t, "OK", exec("PING"))
	require.Len(t, changes, 1)
	require.Equal(t, StateIdle, changes[0].State)

	require.Equal(t, "OK", exec("MOVE STEPS=100"))
	require.Len(t, changes, 2)
	require.Equal(t, StateMoving, changes[1].State)

	clk.Add(5 * time.Second)
	loop.RunIteration(ctx)
	require.Len(t, changes, 3)
	require.Equal(t, StateIdle, changes[2].State)
	require.Equal(t, int32(100), changes[2].Position)

	loop.RunIteration(ctx)
	require.Len(t, changes, 3)
	require.Equal(t, "OK STATE=idle POS=100 HOMED=0", exec("STATUS"))
}

func TestServiceIgnoresOtherMessages(t *testing.T) {
	svc := NewService(New(sim.NewStepper(clock.NewMock())))
	loop := framework.NewLoop().Add(svc)
	var leftover []framework.Message
	loop.AddController(framework.PrLvIdle, framework.ControlFunc(func(cc framework.ControlContext) error {
		cc.Messages().ProcessMessages(framework.ProcessMessageFunc(func(mc framework.MessageProcessingContext) {
			leftover = append(leftover, mc.CurrentMessage())
		}))
		return nil
	}))
	req := link.NewRequest("test", "GETPOS")
	loop.PostMessage("noise")
	loop.PostMessage(req)
	loop.RunIteration(context.Background())
	resp, err := req.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "OK POS=0", resp)
	require.Equal(t, []framework.Message{"noise"}, leftover)
}
