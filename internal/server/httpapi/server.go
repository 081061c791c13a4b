// Package httpapi exposes the diary as a JSON API over Echo.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/gophdiary/internal/diary"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/transfer"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	echo     *echo.Echo
	diary    *diary.Service
	transfer *transfer.Transcoder
	logger   logging.Logger
	now      func() time.Time
}

func New(address string, svc *diary.Service, tr *transfer.Transcoder, l logging.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		address:  address,
		echo:     e,
		diary:    svc,
		transfer: tr,
		logger:   l.With("module", "http_api"),
		now:      time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root handler, useful for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.echo.Listener = lis

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(sctx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/diaries", s.handleList)
	api.GET("/diaries/:id", s.handleGet)
	api.POST("/diaries", s.handleCreate)
	api.PUT("/diaries/:id", s.handleUpdate)
	api.DELETE("/diaries/:id", s.handleDelete)

	api.GET("/export", s.handleExport)
	api.POST("/import", s.handleImport, importBodyLimit())
}
