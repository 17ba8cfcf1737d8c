// Package session persists engine checkpoints so an interrupted match
// can resume where it left off.
package session

import (
	"context"
	"time"

	"github.com/aryasetia/dropshot/internal/domain/engine"
)

// Checkpoint is the durable copy of a live engine, written after every
// successful mutation and deleted when the match finishes.
type Checkpoint struct {
	MatchID string
	TakenAt time.Time
	State   engine.Snapshot
}

// Repository stores at most one checkpoint per match.
type Repository interface {
	Save(ctx context.Context, cp Checkpoint) error
	GetByMatchID(ctx context.Context, matchID string) (Checkpoint, bool, error)
	Delete(ctx context.Context, matchID string) error
}
