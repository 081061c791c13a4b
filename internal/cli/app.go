package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophdiary/internal/backend"
	"github.com/dmitrijs2005/gophdiary/internal/config"
	"github.com/dmitrijs2005/gophdiary/internal/diary"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/store"
	"github.com/dmitrijs2005/gophdiary/internal/transfer"
)

type App struct {
	config   *config.Config
	diary    *diary.Service
	transfer *transfer.Transcoder
	logger   logging.Logger
	closer   io.Closer
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
}

// NewApp opens the configured store. Diagnostics go to stderr as text so
// they do not mix with the REPL output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, logging.FormatText).With("session", uuid.NewString())

	b, err := backend.Open(ctx, c, logger)
	if err != nil {
		logger.Error(ctx, "error opening storage", "error", err)
		return nil, err
	}

	a := newApp(b.Store, logger, os.Stdin, os.Stdout)
	a.config = c
	a.closer = b
	return a, nil
}

func newApp(s store.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		diary:    diary.NewService(s, logger),
		transfer: transfer.New(s, logger),
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}
}

func (a *App) status() string {
	if a.config == nil {
		return ""
	}
	return a.config.Storage
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closer == nil {
			return
		}
		if err := a.closer.Close(); err != nil {
			a.logger.Error(ctx, "error closing storage", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to the diary CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}
