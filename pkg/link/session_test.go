package link_test

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/slider.go/pkg/link"
	"github.com/robotalks/slider.go/pkg/motor/sim"
	"github.com/robotalks/slider.go/pkg/slider"
)

type pipeRW struct {
	io.Reader
	io.Writer
}

func startSession(t *testing.T, handler link.Handler) (io.WriteCloser, *bufio.Reader, chan error) {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	s := link.NewSession("test", &pipeRW{Reader: inR, Writer: outW})
	s.Handler = handler
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- s.Run(context.Background())
		outW.Close()
	}()
	return inW, bufio.NewReader(outR), doneCh
}

func readLine(t *testing.T, r *bufio.Reader) string {
	lineCh := make(chan string, 1)
	go func() {
		line, _ := r.ReadString('\n')
		lineCh <- line
	}()
	select {
	case line := <-lineCh:
		return line
	case <-time.After(time.Second):
		t.Fatal("no response")
	}
	return ""
}

func TestSessionRawBytes(t *testing.T) {
	ctl := slider.New(sim.NewStepper(clock.NewMock()))
	handler := link.HandleLineFunc(func(_ context.Context, line string) (string, error) {
		return ctl.Exec(line), nil
	})
	in, out, doneCh := startSession(t, handler)

	_, err := io.WriteString(in, "  PING  \r\n\r\n   \nSTA")
	require.NoError(t, err)
	require.Equal(t, "OK\n", readLine(t, out))
	_, err = io.WriteString(in, "TUS\nfoo\nping\n")
	require.NoError(t, err)
	require.Equal(t, "OK STATE=idle POS=0 HOMED=0\n", readLine(t, out))
	require.Equal(t, "ERROR 30 UNKNOWN_COMMAND\n", readLine(t, out))
	require.Equal(t, "OK\n", readLine(t, out))

	require.NoError(t, in.Close())
	select {
	case err := <-doneCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not end")
	}
}

func TestSessionHandlerError(t *testing.T) {
	failure := errors.New("loop gone")
	in, _, doneCh := startSession(t, link.HandleLineFunc(func(context.Context, string) (string, error) {
		return "", failure
	}))
	_, err := io.WriteString(in, "PING\n")
	require.NoError(t, err)
	select {
	case err := <-doneCh:
		require.Equal(t, failure, err)
	case <-time.After(time.Second):
		t.Fatal("session did not end")
	}
}

func TestRequestReplyOnce(t *testing.T) {
	req := link.NewRequest("test", "PING")
	req.Reply("OK")
	req.Reply("ignored")
	resp, err := req.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "OK", resp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = link.NewRequest("test", "PING").Wait(ctx)
	require.Equal(t, context.Canceled, err)
}
