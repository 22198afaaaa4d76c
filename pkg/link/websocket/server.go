// Package websocket serves the line protocol to websocket clients, one
// session per connection.
package websocket

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/link"
)

// DefaultPath is the URL path of the line endpoint.
const DefaultPath = "/line"

// Server accepts websocket connections.
type Server struct {
	Addr string
	Path string

	lock     sync.Mutex
	listener net.Listener
}

// NewServer creates a Server.
func NewServer(addr string) *Server {
	return &Server{Addr: addr, Path: DefaultPath}
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "websocket:" + s.Addr
}

// ListenAddr returns the bound address once the Server runs.
func (s *Server) ListenAddr() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Handler creates the http.Handler serving sessions with lines answered
// by handler.
func Handler(ctx context.Context, handler func(conn *websocket.Conn) link.Handler) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		name := conn.Request().RemoteAddr
		session := link.NewSession(name, conn)
		session.Handler = handler(conn)
		glog.Infof("websocket %s connected", name)
		if err := framework.RunWithContextCloser(ctx, conn, func() error {
			return session.Run(ctx)
		}); err != nil && err != context.Canceled {
			glog.Warningf("websocket %s: %v", name, err)
		}
		glog.Infof("websocket %s disconnected", name)
	})
}

// Run implements framework.Runnable. Lines are posted to the loop found
// in ctx.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.lock.Lock()
	s.listener = ln
	s.lock.Unlock()

	lc := framework.LoopCtlFrom(ctx)
	mux := http.NewServeMux()
	mux.Handle(s.Path, Handler(ctx, func(conn *websocket.Conn) link.Handler {
		return link.LoopHandler(lc, "ws:"+conn.Request().RemoteAddr)
	}))
	glog.Infof("websocket listening on %s%s", ln.Addr(), s.Path)
	srv := &http.Server{Handler: mux}
	return framework.RunWithContextCloser(ctx, srv, func() error {
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}
