package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
	"github.com/custodia-labs/replybot/internal/logger"
)

const (
	// MaxBodyBytes caps the size of a request body.
	MaxBodyBytes = 64 << 10

	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP transport for a ChatService.
type Server struct {
	mu       sync.Mutex
	chat     driving.ChatService
	settings domain.ServerSettings
	limiter  *rate.Limiter
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewServer creates an HTTP server for chat using the given settings.
// A positive RateLimit enables a shared token bucket of size Burst.
func NewServer(chat driving.ChatService, settings domain.ServerSettings) (*Server, error) {
	if chat == nil {
		return nil, ErrMissingChatService
	}

	s := &Server{
		chat:     chat,
		settings: settings,
		errChan:  make(chan error, 1),
	}
	if settings.RateLimit > 0 {
		burst := settings.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(settings.RateLimit), burst)
	}
	return s, nil
}

// Handler returns the full middleware chain and routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chatbot", s.handleChatbot)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	var h http.Handler = mux
	h = s.rateLimit(h)
	h = cors(s.settings.AllowedOrigins, h)
	h = logRequests(h)
	return h
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return ErrAlreadyStarted
	}

	listener, err := net.Listen("tcp", s.settings.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.settings.Addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Info("Listening on %s", listener.Addr())
	return nil
}

// Addr returns the address the server is listening on, or the configured
// address before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.settings.Addr
}

// Stop gracefully shuts the server down, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is cancelled or serving fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down")
		return s.Stop(shutdownCtx)
	case err := <-s.errChan:
		return err
	}
}
