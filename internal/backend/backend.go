// Package backend opens the entry store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/config"
	"github.com/dmitrijs2005/gophdiary/internal/kv"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/store"
	"github.com/dmitrijs2005/gophdiary/internal/store/local"
	"github.com/dmitrijs2005/gophdiary/internal/store/remote"
)

// Backend is an opened store together with its release hook.
type Backend struct {
	Store store.Store
	close func() error
}

// Close releases the underlying connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

var newS3Client = func(ctx context.Context, c remote.Config) (remote.ObjectAPI, error) {
	return remote.NewClient(ctx, c)
}

// Open connects to the backend named by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*Backend, error) {
	switch cfg.Storage {
	case config.StorageLocal:
		db, err := kv.Open(ctx, cfg.LocalDriver, cfg.LocalDSN)
		if err != nil {
			return nil, fmt.Errorf("open %s storage: %w", cfg.LocalDriver, err)
		}
		log.Info(ctx, "local storage opened", "driver", cfg.LocalDriver)
		return &Backend{Store: local.New(db), close: db.Close}, nil

	case config.StorageRemote:
		rc := remote.Config{
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
		}
		api, err := newS3Client(ctx, rc)
		if err != nil {
			return nil, fmt.Errorf("open remote storage: %w", err)
		}
		log.Info(ctx, "remote storage opened", "bucket", rc.Bucket, "endpoint", rc.Endpoint)
		return &Backend{Store: remote.New(api, rc.Bucket, rc.Prefix)}, nil

	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Storage)
	}
}
