// Package store persists run state. Every backend stores the RunState as one
// JSON document and returns an equal value on load.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"spire-run/internal/config"
	"spire-run/internal/models"
)

// ErrNotFound is returned by LoadRun when no run has the given id.
var ErrNotFound = errors.New("run not found")

// Storage defines the interface for run persistence.
type Storage interface {
	SaveRun(ctx context.Context, run *models.RunState) error
	LoadRun(ctx context.Context, id string) (*models.RunState, error)
	DeleteRun(ctx context.Context, id string) error
	ListRuns(ctx context.Context) ([]string, error)
	Close() error
}

// Open returns the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Storage, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.PostgresDSN, logger)
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		}, logger)
	case config.BackendJSON, "":
		return NewJSONStore(cfg.RunsFile(), logger)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
