package run

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spire-run/internal/mapgen"
	"spire-run/internal/models"
)

// RunLog is the summary line appended to runs.jsonl when a run ends.
type RunLog struct {
	Timestamp     time.Time               `json:"timestamp"`
	RunID         string                  `json:"run_id"`
	Seed          int64                   `json:"seed"`
	Status        models.RunStatus        `json:"status"`
	FloorsReached int                     `json:"floors_reached"`
	Gold          int                     `json:"gold"`
	NodesVisited  map[mapgen.NodeType]int `json:"nodes_visited"`
}

func summarize(r *models.RunState, now time.Time) RunLog {
	visited := make(map[mapgen.NodeType]int)
	for _, id := range r.Visited {
		if n := r.Map.Node(id); n != nil {
			visited[n.Type]++
		}
	}
	return RunLog{
		Timestamp:     now,
		RunID:         r.ID,
		Seed:          r.Seed,
		Status:        r.Status,
		FloorsReached: r.Floor,
		Gold:          r.Gold,
		NodesVisited:  visited,
	}
}

// appendRunLog writes rl as one JSON line to dir/runs.jsonl.
func appendRunLog(dir string, rl RunLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rl)
	if err != nil {
		return fmt.Errorf("marshal run log: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}
