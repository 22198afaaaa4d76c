package slider

import (
	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/link"
)

// Watcher is notified on the loop goroutine when the axis state changes.
type Watcher func(Axis)

// Service runs a Controller in a framework.Loop: command requests are
// handled at PrLvControl, the motor is polled at PrLvActuate and state
// changes are published at PrLvPostProc.
type Service struct {
	Controller *Controller

	watchers []Watcher
	last     *Axis
}

// NewService creates a Service.
func NewService(ctl *Controller) *Service {
	return &Service{Controller: ctl}
}

// Watch registers a Watcher.
func (s *Service) Watch(w Watcher) *Service {
	s.watchers = append(s.watchers, w)
	return s
}

// AddToLoop implements framework.LoopAdder.
func (s *Service) AddToLoop(l *framework.Loop) {
	l.AddController(framework.PrLvControl, framework.ControlFunc(s.handleRequests))
	l.AddController(framework.PrLvActuate, framework.ControlFunc(s.poll))
	l.AddController(framework.PrLvPostProc, framework.ControlFunc(s.publish))
}

func (s *Service) handleRequests(cc framework.ControlContext) error {
	cc.Messages().ProcessMessages(framework.ProcessMessageFunc(func(mc framework.MessageProcessingContext) {
		req, ok := mc.CurrentMessage().(*link.Request)
		if !ok {
			return
		}
		mc.MessageTaken()
		req.Reply(s.Controller.Exec(req.Line))
	}))
	return nil
}

func (s *Service) poll(framework.ControlContext) error {
	s.Controller.Poll()
	return nil
}

func (s *Service) publish(framework.ControlContext) error {
	axis := s.Controller.Snapshot()
	if s.last != nil && s.last.Equal(axis) {
		return nil
	}
	s.last = &axis
	for _, w := range s.watchers {
		w(axis.clone())
	}
	return nil
}
