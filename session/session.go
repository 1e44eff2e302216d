// Package session abstracts the remote session required by a test run as
// an explicitly-passed handle. There is no process-wide cached state; the
// controller resets the handle at the start of every run.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Session is a connectable handle to the remote system tests run against.
type Session interface {
	// Reset drops any cached connection state. Called once per run,
	// before any connectivity check.
	Reset()
	// Connect verifies the remote system is reachable.
	Connect(ctx context.Context) error
}

// HTTPSession verifies connectivity with a single HTTP request.
type HTTPSession struct {
	Endpoint string
	Client   *http.Client

	cached bool
}

// NewHTTPSession creates a session handle for an HTTP endpoint.
func NewHTTPSession(endpoint string) *HTTPSession {
	return &HTTPSession{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Reset implements Session.
func (s *HTTPSession) Reset() {
	s.cached = false
	if s.Client != nil {
		s.Client.CloseIdleConnections()
	}
}

// Connect implements Session. A response, even an error status below 500,
// proves the endpoint is reachable and answering.
func (s *HTTPSession) Connect(ctx context.Context) error {
	if s.cached {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint, nil)
	if err != nil {
		return fmt.Errorf("invalid session endpoint %q: %w", s.Endpoint, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("session endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("session endpoint unhealthy: %s", resp.Status)
	}

	s.cached = true
	return nil
}
