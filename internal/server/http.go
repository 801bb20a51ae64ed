package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// HTTPServer wraps an HTTP server with address and lifecycle methods.
type HTTPServer struct {
	server *http.Server
	addr   string
}

// NewHTTPServer creates an HTTPServer serving the handler on the address.
func NewHTTPServer(handler http.Handler, addr string) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{Handler: handler},
		addr:   addr,
	}
}

var _ model.Server = (*HTTPServer)(nil)

// Start starts serving on the configured address using the provided security
// layer. It blocks until the server stops; a graceful stop returns nil.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests up
// to the context deadline.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
