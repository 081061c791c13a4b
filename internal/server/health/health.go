// Package health serves the standard gRPC health service and keeps its
// status in line with periodic store probes.
package health

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "gophdiary.Diary"

const probeTimeout = 3 * time.Second

type Server struct {
	address  string
	pinger   store.Pinger
	interval time.Duration
	logger   logging.Logger
	hs       *health.Server
}

// New returns a health server probing p every interval. A nil p reports
// SERVING for as long as the process runs.
func New(address string, p store.Pinger, interval time.Duration, l logging.Logger) *Server {
	return &Server{
		address:  address,
		pinger:   p,
		interval: interval,
		logger:   l.With("module", "health"),
		hs:       health.NewServer(),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, s.hs)

	s.probe(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping health server...")
		s.hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting health server", "address", lis.Addr().String())
	return srv.Serve(lis)
}

func (s *Server) watch(ctx context.Context) {
	if s.pinger == nil || s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.pinger != nil {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := s.pinger.Ping(pctx)
		cancel()
		if err != nil {
			s.logger.Warn(ctx, "store probe failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.hs.SetServingStatus("", status)
	s.hs.SetServingStatus(ServiceName, status)
}
