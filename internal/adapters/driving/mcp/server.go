package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/replybot/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

const (
	serverName        = "replybot"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server exposes the trained chatbot to MCP clients.
type Server struct {
	ports *Ports
	sdk   *mcp.Server
}

// NewServer creates an MCP server over ports. The instructions sent to
// clients at initialisation list the labels the chatbot can return.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports}
	s.sdk = mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: Version},
		&mcp.ServerOptions{Instructions: s.instructions()},
	)

	s.registerTools()
	s.registerResources()
	return s, nil
}

func (s *Server) instructions() string {
	labels := s.ports.Chat.Labels()
	if len(labels) == 0 {
		return "Call the answer tool with a user's message to get the canned response for it."
	}
	return fmt.Sprintf(
		"Call the answer tool with a user's message to get the canned response for it. "+
			"Possible responses: %s.", strings.Join(labels, ", "))
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server on stdio")
	return s.sdk.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.sdk
	}, nil)
}

// RunHTTP listens on addr and serves streamable HTTP until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.serve(ctx, listener)
}

// serve owns listener and closes it on return.
func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Serve(listener)
	}()
	logger.Info("MCP server listening on http://%s", listener.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down MCP server")
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
