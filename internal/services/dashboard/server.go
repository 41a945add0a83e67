// Package dashboard hosts the animal-rescue dashboard: a server-rendered
// page shell plus the JSON data API the page hydrates from.
package dashboard

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// shutdownTimeout caps graceful HTTP shutdown on context cancellation.
const shutdownTimeout = 5 * time.Second

// Config defines the inputs for the dashboard server.
type Config struct {
	// HTTPAddr is the listen address. Required.
	HTTPAddr string
	// AdminSecret signs and verifies admin API tokens. Empty disables the
	// mutating routes.
	AdminSecret []byte
}

// Server hosts the dashboard HTTP server.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
}

// NewServer builds a configured dashboard server.
func NewServer(cfg Config, service Service) (*Server, error) {
	addr := strings.TrimSpace(cfg.HTTPAddr)
	if addr == "" {
		return nil, errors.New("http address is required")
	}
	if service == nil {
		return nil, errors.New("service is required")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           NewHandler(service, cfg.AdminSecret),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// ListenAndServe serves HTTP until context cancellation, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return errors.New("server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log.Printf("dashboard listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Close releases the server resources without waiting for in-flight
// requests.
func (s *Server) Close() error {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}
