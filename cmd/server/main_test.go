package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophdiary/internal/config"
)

func TestRun_StartupFailureIsReturned(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = "floppy"

	err := run(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown storage mode "floppy"`)
}
