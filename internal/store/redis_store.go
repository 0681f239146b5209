package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"spire-run/internal/models"
)

const (
	runKeyPrefix = "spire:run:"
	runIndexKey  = "spire:runs"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // zero keeps runs forever
}

// RedisStore keeps each run as a JSON string under spire:run:<id>, with all
// ids collected in the spire:runs set.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, ttl: opts.TTL, logger: logger.Named("store.redis")}, nil
}

func runKey(id string) string { return runKeyPrefix + id }

// SaveRun writes run and refreshes its TTL.
func (s *RedisStore) SaveRun(ctx context.Context, run *models.RunState) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", run.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKey(run.ID), data, s.ttl)
	pipe.SAdd(ctx, runIndexKey, run.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("save run failed", zap.String("runID", run.ID), zap.Error(err))
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	s.logger.Debug("run saved", zap.String("runID", run.ID), zap.Duration("ttl", s.ttl))
	return nil
}

// LoadRun reads the run with the given id.
func (s *RedisStore) LoadRun(ctx context.Context, id string) (*models.RunState, error) {
	data, err := s.client.Get(ctx, runKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	var run models.RunState
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &run, nil
}

// DeleteRun removes the run and its index entry.
func (s *RedisStore) DeleteRun(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, runKey(id))
	pipe.SRem(ctx, runIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}

// ListRuns returns the indexed ids whose run key still exists. Ids whose key
// expired are dropped from the index.
func (s *RedisStore) ListRuns(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, runIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	live := ids[:0]
	for _, id := range ids {
		n, err := s.client.Exists(ctx, runKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		if n == 0 {
			s.client.SRem(ctx, runIndexKey, id)
			continue
		}
		live = append(live, id)
	}
	sort.Strings(live)
	return live, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
