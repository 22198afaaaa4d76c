package framework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
)

// ErrForcedExit is returned by Runner.Wait when a second signal arrives.
var ErrForcedExit = errors.New("forced exit")

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string { return r.name }

// NamedRun gives a Runnable a name shown in logs and errors.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error { return f(ctx) }

type runResult struct {
	name string
	err  error
}

// Runner starts Runnables in goroutines and collects their errors.
// The first Runnable returning a non-cancel error stops the others.
type Runner struct {
	Context context.Context

	cancel  context.CancelFunc
	count   int
	results chan runResult
	exitCh  chan struct{}
}

// NewRunner creates a Runner on the background context.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a Runner on ctx.
func NewRunnerWith(ctx context.Context) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	return &Runner{
		Context: ctx,
		cancel:  cancel,
		results: make(chan runResult),
		exitCh:  make(chan struct{}),
	}
}

// HandleSignals cancels the Runner on SIGINT/SIGTERM and forces Wait to
// return on a second one.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		glog.Infof("%v: stopping", sig)
		r.cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go starts the Runnables.
func (r *Runner) Go(runnables ...Runnable) *Runner {
	for _, runnable := range runnables {
		name := fmt.Sprintf("#%d", r.count)
		if named, ok := runnable.(Named); ok {
			name = named.Name()
		}
		r.count++
		go func(runnable Runnable, name string) {
			glog.V(4).Infof("runner %s started", name)
			err := runnable.Run(r.Context)
			glog.V(4).Infof("runner %s stopped: %v", name, err)
			r.results <- runResult{name: name, err: err}
		}(runnable, name)
	}
	return r
}

// Stop cancels all Runnables.
func (r *Runner) Stop() {
	r.cancel()
}

// Wait blocks until all Runnables return.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for n := 0; n < r.count; n++ {
		select {
		case <-r.exitCh:
			return ErrForcedExit
		case res := <-r.results:
			if res.err == nil || errors.Is(res.err, context.Canceled) {
				continue
			}
			errs.Add(fmt.Errorf("%s: %w", res.name, res.err))
			r.cancel()
		}
	}
	return errs.Aggregate()
}

// RunWithContextCloser runs fn, which blocks without a context, and
// closes closer when ctx is done to unblock it. closer is always closed
// before returning.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- fn() }()
	select {
	case err := <-errCh:
		closer.Close()
		return err
	case <-ctx.Done():
		closer.Close()
		<-errCh
		return ctx.Err()
	}
}
