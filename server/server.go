// Package server exposes the pond solver over a websocket.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Server accepts websocket connections on /ws and serves each with a Hub.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	solver   *pond.Solver
	workers  int
}

// NewServer returns a server listening on addr. workers bounds the goroutines
// of each sweep request.
func NewServer(addr string, solver *pond.Solver, workers int) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		solver:  solver,
		workers: workers,
	}
}

// Handler routes /ws. Connections live until the peer closes or ctx is
// cancelled.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.serveWs(ctx, w, r)
	})
	return mux
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade")
		return
	}
	NewHub(conn, s.solver, s.workers).Run(ctx)
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", s.addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
