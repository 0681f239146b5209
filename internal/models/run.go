// Package models holds the persisted shapes shared by the run manager and
// the storage backends.
package models

import (
	"time"

	"spire-run/internal/mapgen"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunActive    RunStatus = "active"
	RunVictory   RunStatus = "victory"
	RunAbandoned RunStatus = "abandoned"
)

// RunState is everything needed to resume a run: the map plus the running
// tallies kept alongside it.
type RunState struct {
	ID        string          `json:"id"`
	Seed      int64           `json:"seed"`
	Map       *mapgen.GameMap `json:"map"`
	Visited   []string        `json:"visited"`
	Gold      int             `json:"gold"`
	Floor     int             `json:"floor"`
	Status    RunStatus       `json:"status"`
	StartedAt time.Time       `json:"startedAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
