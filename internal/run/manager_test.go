package run

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spire-run/internal/mapgen"
	"spire-run/internal/models"
	"spire-run/internal/store"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T, seed int64) (*Manager, store.Storage, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.NewJSONStore(filepath.Join(dir, "runs.json"), zap.NewNop())
	require.NoError(t, err)
	m := NewManager(st, zap.NewNop(), Options{
		LogDir: dir,
		Seed:   seed,
		Now:    func() time.Time { return fixedNow },
	})
	return m, st, dir
}

func TestStartPersistsNewRun(t *testing.T) {
	ctx := context.Background()
	m, st, _ := newTestManager(t, 42)

	r, err := m.Start(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, models.RunActive, r.Status)
	assert.Empty(t, r.Map.PlayerPosition)
	require.NoError(t, mapgen.Validate(r.Map))

	saved, err := st.LoadRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, saved)
}

func TestStartSameSeedSameMap(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t, 9)
	a, err := m.Start(ctx, "a")
	require.NoError(t, err)
	b, err := m.Start(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, a.Map, b.Map)
}

func TestResumeStartsWhenMissing(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t, 5)

	r, err := m.Resume(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", r.ID)
	assert.Empty(t, r.Visited)
}

func TestResumeReturnsSavedProgress(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t, 5)

	r, err := m.Start(ctx, "bob")
	require.NoError(t, err)
	start := r.Map.AvailableNodes()[0]
	_, ok, err := m.Select(ctx, r, start.ID)
	require.NoError(t, err)
	require.True(t, ok)

	back, err := m.Resume(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, start.ID, back.Map.PlayerPosition)
	assert.Equal(t, []string{start.ID}, back.Visited)
}

func TestResumeRejectsCorruptMap(t *testing.T) {
	ctx := context.Background()
	m, st, _ := newTestManager(t, 5)

	r, err := m.Start(ctx, "carol")
	require.NoError(t, err)
	r.Map.Nodes[len(r.Map.Nodes)-2].Connections = nil
	require.NoError(t, st.SaveRun(ctx, r))

	_, err = m.Resume(ctx, "carol")
	assert.Error(t, err)
}

func TestSelectRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	m, st, _ := newTestManager(t, 13)

	r, err := m.Start(ctx, "dave")
	require.NoError(t, err)
	before := r.Map.Clone()

	enc, ok, err := m.Select(ctx, r, r.Map.Boss().ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Encounter{}, enc)
	assert.Equal(t, before, r.Map)
	assert.Zero(t, r.Gold)

	saved, err := st.LoadRun(ctx, "dave")
	require.NoError(t, err)
	assert.Empty(t, saved.Visited)
}

func TestSelectFullRunToVictory(t *testing.T) {
	ctx := context.Background()
	m, st, _ := newTestManager(t, 21)

	r, err := m.Start(ctx, "erin")
	require.NoError(t, err)

	var last Encounter
	for r.Status == models.RunActive {
		next := r.Map.AvailableNodes()[0]
		enc, ok, err := m.Select(ctx, r, next.ID)
		require.NoError(t, err)
		require.True(t, ok, "legal move to %s rejected", next.ID)
		assert.Equal(t, next.Type, enc.Type)
		last = enc
	}

	assert.True(t, last.Final)
	assert.Equal(t, mapgen.NodeBoss, last.Type)
	assert.Equal(t, models.RunVictory, r.Status)
	assert.Equal(t, mapgen.NumLevels, r.Floor)
	assert.Len(t, r.Visited, mapgen.NumLevels)
	assert.GreaterOrEqual(t, r.Gold, goldRewards[mapgen.NodeBoss])

	saved, err := st.LoadRun(ctx, "erin")
	require.NoError(t, err)
	assert.Equal(t, r, saved)

	// No further moves once the run is won.
	_, ok, err := m.Select(ctx, r, r.Map.Boss().ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFinishWritesLogAndDeletes(t *testing.T) {
	ctx := context.Background()
	m, st, dir := newTestManager(t, 3)

	r, err := m.Start(ctx, "frank")
	require.NoError(t, err)
	start := r.Map.AvailableNodes()[0]
	_, _, err = m.Select(ctx, r, start.ID)
	require.NoError(t, err)

	require.NoError(t, m.Finish(ctx, r))
	assert.Equal(t, models.RunAbandoned, r.Status)

	_, err = st.LoadRun(ctx, "frank")
	assert.ErrorIs(t, err, store.ErrNotFound)

	f, err := os.Open(filepath.Join(dir, "runs.jsonl"))
	require.NoError(t, err)
	defer f.Close()
	sc := bufio.NewScanner(f)
	require.True(t, sc.Scan())

	var rl RunLog
	require.NoError(t, json.Unmarshal(sc.Bytes(), &rl))
	assert.Equal(t, "frank", rl.RunID)
	assert.Equal(t, models.RunAbandoned, rl.Status)
	assert.Equal(t, 1, rl.FloorsReached)
	assert.Equal(t, 1, rl.NodesVisited[start.Type])
	assert.False(t, sc.Scan(), "expected a single log line")
}

func TestEncounterTitle(t *testing.T) {
	for _, typ := range []mapgen.NodeType{
		mapgen.NodeBattle, mapgen.NodeElite, mapgen.NodeRest,
		mapgen.NodeEvent, mapgen.NodeShop, mapgen.NodeBoss,
	} {
		assert.NotEqual(t, "You move on", Encounter{Type: typ}.Title(), typ)
	}
	assert.Equal(t, "You move on", Encounter{}.Title())
}
