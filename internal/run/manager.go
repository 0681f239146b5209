// Package run owns the lifecycle of a run: it creates maps, applies the
// player's moves and persists the state after every change.
package run

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spire-run/internal/mapgen"
	"spire-run/internal/models"
	"spire-run/internal/store"
)

// Options tunes a Manager. The zero value is usable.
type Options struct {
	// LogDir receives runs.jsonl; empty disables the run log.
	LogDir string
	// Seed fixes the map seed of every new run when non-zero.
	Seed int64
	// MapConfig builds the generator config for a seeded source. Defaults to
	// mapgen.DefaultConfig.
	MapConfig func(rng *rand.Rand) *mapgen.Config
	Now       func() time.Time
}

// Manager is the run-state context handed to whichever component drives a
// run. It is safe for concurrent use by independent runs; a single run must
// not be driven from two goroutines at once.
type Manager struct {
	store  store.Storage
	logger *zap.Logger
	opts   Options

	mu    sync.Mutex
	seeds *rand.Rand
}

// NewManager returns a Manager persisting through st.
func NewManager(st store.Storage, logger *zap.Logger, opts Options) *Manager {
	if opts.MapConfig == nil {
		opts.MapConfig = mapgen.DefaultConfig
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		store:  st,
		logger: logger.Named("run"),
		opts:   opts,
		seeds:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *Manager) nextSeed() int64 {
	if m.opts.Seed != 0 {
		return m.opts.Seed
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seeds.Int63()
}

// Start generates a fresh map and saves it as a new run. An empty id gets a
// random one.
func (m *Manager) Start(ctx context.Context, id string) (*models.RunState, error) {
	if id == "" {
		id = uuid.NewString()
	}
	seed := m.nextSeed()
	gen, err := mapgen.NewGenerator(m.opts.MapConfig(rand.New(rand.NewSource(seed))))
	if err != nil {
		return nil, err
	}

	now := m.opts.Now()
	r := &models.RunState{
		ID:        id,
		Seed:      seed,
		Map:       gen.Generate(),
		Visited:   []string{},
		Status:    models.RunActive,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.SaveRun(ctx, r); err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	m.logger.Info("run started",
		zap.String("runID", r.ID),
		zap.Int64("seed", seed),
		zap.String("mapID", r.Map.ID),
		zap.Int("nodes", len(r.Map.Nodes)),
		zap.Int("paths", len(r.Map.Paths)),
	)
	return r, nil
}

// Resume loads the run with the given id, starting a new one under that id
// when nothing is saved. A saved map that fails validation is an error.
func (m *Manager) Resume(ctx context.Context, id string) (*models.RunState, error) {
	r, err := m.store.LoadRun(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return m.Start(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if r.Map == nil {
		return nil, fmt.Errorf("run %s has no map", id)
	}
	if err := mapgen.Validate(r.Map); err != nil {
		return nil, fmt.Errorf("run %s has a corrupt map: %w", id, err)
	}
	m.logger.Info("run resumed",
		zap.String("runID", r.ID),
		zap.String("position", r.Map.PlayerPosition),
		zap.Stringer("level", r.Map.CurrentLevel),
	)
	return r, nil
}

// Select moves the player to nodeID. An illegal target reports false and
// changes nothing. A legal move grants the node's reward, saves the run and
// returns the encounter for the caller to open.
func (m *Manager) Select(ctx context.Context, r *models.RunState, nodeID string) (Encounter, bool, error) {
	if r.Status != models.RunActive || !mapgen.MovePlayer(r.Map, nodeID) {
		m.logger.Debug("move rejected", zap.String("runID", r.ID), zap.String("target", nodeID))
		return Encounter{}, false, nil
	}

	node := r.Map.Node(nodeID)
	enc := Encounter{
		NodeID: node.ID,
		Type:   node.Type,
		Level:  node.Level,
		Gold:   goldRewards[node.Type],
		Final:  node.Level == mapgen.LevelBoss,
	}
	r.Visited = append(r.Visited, node.ID)
	r.Gold += enc.Gold
	r.Floor = int(node.Level) + 1
	r.UpdatedAt = m.opts.Now()
	if enc.Final {
		r.Status = models.RunVictory
	}

	if err := m.store.SaveRun(ctx, r); err != nil {
		return enc, true, fmt.Errorf("save after move: %w", err)
	}
	m.logger.Debug("player moved",
		zap.String("runID", r.ID),
		zap.String("node", node.ID),
		zap.String("type", string(node.Type)),
		zap.Int("gold", r.Gold),
	)
	return enc, true, nil
}

// Finish ends r: an active run is marked abandoned, a summary goes to the
// run log and the saved state is discarded.
func (m *Manager) Finish(ctx context.Context, r *models.RunState) error {
	if r.Status == models.RunActive {
		r.Status = models.RunAbandoned
	}
	if m.opts.LogDir != "" {
		if err := appendRunLog(m.opts.LogDir, summarize(r, m.opts.Now())); err != nil {
			m.logger.Warn("run log not written", zap.String("runID", r.ID), zap.Error(err))
		}
	}
	if err := m.store.DeleteRun(ctx, r.ID); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	m.logger.Info("run finished",
		zap.String("runID", r.ID),
		zap.String("status", string(r.Status)),
		zap.Int("floor", r.Floor),
		zap.Int("gold", r.Gold),
	)
	return nil
}
