package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 2 * time.Second

// Server serves an Exporter over HTTP.
type Server struct {
	server   *http.Server
	listener net.Listener
}

// Handler returns the HTTP handler exposing /metrics and /health.
func (e *Exporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

// Serve binds addr and serves the exporter in the background. Bind errors
// are returned immediately.
func (e *Exporter) Serve(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errListen.Fmt(addr).Wrap(err)
	}

	s := &Server{
		listener: ln,
		server: &http.Server{
			Handler:           e.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	slog.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	go func() {
		err := s.server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close shuts the server down, waiting briefly for in-flight scrapes.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("stopping metrics server")

	return s.server.Shutdown(ctx)
}
