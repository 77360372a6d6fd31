package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server serves a hub over HTTP until its context is cancelled.
type Server struct {
	hub  *Hub
	srv  *http.Server
	ln   net.Listener
	done chan error
}

// Listen binds addr and starts serving the hub in the background.
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate: listen %s: %w", addr, err)
	}

	s := &Server{
		hub:  hub,
		srv:  &http.Server{Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second},
		ln:   ln,
		done: make(chan error, 1),
	}
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	return s, nil
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown ends every stream and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, st := range s.hub.Streams() {
		s.hub.End(st.Name)
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return <-s.done
}
