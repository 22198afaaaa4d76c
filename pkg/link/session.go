package link

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/wire"
)

// Handler answers one command line.
type Handler interface {
	HandleLine(ctx context.Context, line string) (string, error)
}

// HandleLineFunc is func type of Handler.
type HandleLineFunc func(context.Context, string) (string, error)

// HandleLine implements Handler.
func (f HandleLineFunc) HandleLine(ctx context.Context, line string) (string, error) {
	return f(ctx, line)
}

// LoopHandler forwards lines to the loop as Requests.
func LoopHandler(lc framework.LoopControl, source string) Handler {
	return HandleLineFunc(func(ctx context.Context, line string) (string, error) {
		return Exec(ctx, lc, source, line)
	})
}

// Session serves the line protocol over a byte stream: it frames
// incoming bytes into lines, answers each line in order and writes
// the response lines back.
type Session struct {
	Name       string
	ReadWriter io.ReadWriter
	// Handler answers lines. When nil, lines are posted to the loop
	// found in the context given to Run.
	Handler Handler

	lock sync.Mutex
}

// NewSession creates a Session.
func NewSession(name string, rw io.ReadWriter) *Session {
	return &Session{Name: name, ReadWriter: rw}
}

// Run implements framework.Runnable. It returns nil when the stream ends.
func (s *Session) Run(ctx context.Context) error {
	handler := s.Handler
	if handler == nil {
		handler = LoopHandler(framework.LoopCtlFrom(ctx), s.Name)
	}

	lineCh, errCh := make(chan string), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.readLoop(subCtx, lineCh, errCh)

	glog.V(1).Infof("session %s started", s.Name)
	for {
		select {
		case line := <-lineCh:
			resp, err := handler.HandleLine(ctx, line)
			if err != nil {
				return err
			}
			if err = s.WriteLine(resp); err != nil {
				return err
			}
		case err := <-errCh:
			glog.V(1).Infof("session %s closed: %v", s.Name, err)
			if err == io.EOF {
				return nil
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// String describes the Session.
func (s *Session) String() string {
	return "session:" + s.Name
}

// WriteLine writes a terminated line. An empty line is not written.
func (s *Session) WriteLine(line string) error {
	if line == "" {
		return nil
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := io.WriteString(s.ReadWriter, line+"\n")
	return err
}

func (s *Session) readLoop(ctx context.Context, lineCh chan string, errCh chan error) {
	scanner := wire.NewScanner(s.ReadWriter)
	for {
		line, err := scanner.Next()
		if err != nil {
			errCh <- err
			return
		}
		glog.V(2).Infof("%s: %q", s.Name, line)
		select {
		case lineCh <- line:
		case <-ctx.Done():
			return
		}
	}
}
