// Package service hosts the healthz and metrics HTTP endpoints that run
// alongside the orchestrator.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/testpilot-dev/testpilot/metrics"
)

const (
	HealthzHost = "0.0.0.0"
	HealthzPort = "8080"

	MetricsHost = "0.0.0.0"
	MetricsPort = "7300"
)

type Service struct {
	Healthz *HealthzServer
	Metrics *MetricsServer
	log     *slog.Logger
}

func New(log *slog.Logger) *Service {
	return &Service{
		Healthz: &HealthzServer{log: log},
		Metrics: &MetricsServer{},
		log:     log,
	}
}

func (s *Service) Start(ctx context.Context) {
	s.log.Debug("service starting")

	go func() {
		addr := net.JoinHostPort(HealthzHost, HealthzPort)
		s.log.Debug("starting healthz server", "addr", addr)
		if err := s.Healthz.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting healthz server", "err", err)
			metrics.RecordErrorDetails("error starting healthz server", err)
		}
	}()

	go func() {
		addr := net.JoinHostPort(MetricsHost, MetricsPort)
		s.log.Debug("starting metrics server", "addr", addr)
		if err := s.Metrics.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting metrics server", "err", err)
			metrics.RecordErrorDetails("error starting metrics server", err)
		}
	}()

	s.log.Debug("service started")
}

func (s *Service) Shutdown() {
	s.log.Debug("service shutting down")

	_ = s.Healthz.Shutdown()
	_ = s.Metrics.Shutdown()

	s.log.Debug("service stopped")
}
