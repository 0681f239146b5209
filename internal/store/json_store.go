package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"spire-run/internal/models"
)

// JSONStore keeps every run in a single local JSON file. Runs are held as raw
// documents so callers never share memory with the store.
type JSONStore struct {
	filePath string
	mu       sync.RWMutex
	runs     map[string]json.RawMessage
	logger   *zap.Logger
}

type jsonFile struct {
	Runs map[string]json.RawMessage `json:"runs"`
}

// NewJSONStore opens the file at filePath, creating it (and its directory)
// when absent.
func NewJSONStore(filePath string, logger *zap.Logger) (*JSONStore, error) {
	s := &JSONStore{
		filePath: filePath,
		runs:     make(map[string]json.RawMessage),
		logger:   logger.Named("store.json"),
	}

	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		var f jsonFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filePath, err)
		}
		if f.Runs != nil {
			s.runs = f.Runs
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if err := s.flushLocked(); err != nil {
			return nil, fmt.Errorf("create %s: %w", filePath, err)
		}
	default:
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}

	s.logger.Debug("json store opened", zap.String("path", filePath), zap.Int("runs", len(s.runs)))
	return s, nil
}

// flushLocked writes the whole file through a temp file and rename.
// Caller must hold s.mu.
func (s *JSONStore) flushLocked() error {
	data, err := json.MarshalIndent(jsonFile{Runs: s.runs}, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

// SaveRun stores run, replacing any previous state with the same id.
func (s *JSONStore) SaveRun(_ context.Context, run *models.RunState) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", run.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = data
	if err := s.flushLocked(); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// LoadRun returns a fresh copy of the run with the given id.
func (s *JSONStore) LoadRun(_ context.Context, id string) (*models.RunState, error) {
	s.mu.RLock()
	data, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("load run %s: %w", id, ErrNotFound)
	}

	var run models.RunState
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &run, nil
}

// DeleteRun removes a run. Deleting an unknown id is not an error.
func (s *JSONStore) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return nil
	}
	delete(s.runs, id)
	if err := s.flushLocked(); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}

// ListRuns returns the stored run ids in sorted order.
func (s *JSONStore) ListRuns(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op; every write is already on disk.
func (s *JSONStore) Close() error {
	return nil
}
