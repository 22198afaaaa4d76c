// Package link carries command lines from transports into the control loop.
package link

import (
	"context"

	"github.com/robotalks/slider.go/pkg/framework"
)

// Request is a framed command line posted to the loop, answered by
// exactly one response line.
type Request struct {
	Source string
	Line   string

	replyCh chan string
}

// NewRequest creates a Request.
func NewRequest(source, line string) *Request {
	return &Request{Source: source, Line: line, replyCh: make(chan string, 1)}
}

// Reply answers the Request. Only the first reply is kept.
func (r *Request) Reply(resp string) {
	select {
	case r.replyCh <- resp:
	default:
	}
}

// Wait blocks until the Request is answered.
func (r *Request) Wait(ctx context.Context) (string, error) {
	select {
	case resp := <-r.replyCh:
		return resp, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Exec posts a command line to the loop and waits for the response line.
func Exec(ctx context.Context, lc framework.LoopControl, source, line string) (string, error) {
	req := NewRequest(source, line)
	lc.PostMessage(req)
	lc.TriggerNext()
	return req.Wait(ctx)
}
