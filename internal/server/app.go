// Package server wires the configured store into the HTTP API and the gRPC
// health service and runs both until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophdiary/internal/backend"
	"github.com/dmitrijs2005/gophdiary/internal/config"
	"github.com/dmitrijs2005/gophdiary/internal/diary"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/server/health"
	"github.com/dmitrijs2005/gophdiary/internal/server/httpapi"
	"github.com/dmitrijs2005/gophdiary/internal/store"
	"github.com/dmitrijs2005/gophdiary/internal/transfer"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend *backend.Backend
	http    runner
	health  runner
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, logging.FormatJSON)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	b, err := backend.Open(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	svc := diary.NewService(b.Store, logger)
	tr := transfer.New(b.Store, logger)

	pinger, _ := b.Store.(store.Pinger)

	return &App{
		config:  c,
		logger:  logger,
		backend: b,
		http:    httpapi.New(c.HTTPAddr, svc, tr, logger),
		health:  health.New(c.HealthAddr, pinger, c.HealthInterval, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "component failed", "component", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a component
// fails, then releases the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.http)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "health", app.health)
	}()

	wg.Wait()

	if err := app.backend.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
