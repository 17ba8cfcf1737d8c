package memory

import (
	"context"
	"sync"

	"github.com/aryasetia/dropshot/internal/domain/session"
)

type CheckpointRepository struct {
	mu          sync.RWMutex
	checkpoints map[string]session.Checkpoint
}

func NewCheckpointRepository() *CheckpointRepository {
	return &CheckpointRepository{
		checkpoints: make(map[string]session.Checkpoint),
	}
}

// Save keeps the newest checkpoint per match. Writes land out of
// order when dispatched to a worker pool, so an older TakenAt must
// never replace a newer one.
func (r *CheckpointRepository) Save(_ context.Context, cp session.Checkpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.checkpoints[cp.MatchID]; ok && prev.TakenAt.After(cp.TakenAt) {
		return nil
	}
	r.checkpoints[cp.MatchID] = cp
	return nil
}

func (r *CheckpointRepository) GetByMatchID(_ context.Context, matchID string) (session.Checkpoint, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cp, ok := r.checkpoints[matchID]
	return cp, ok, nil
}

func (r *CheckpointRepository) Delete(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.checkpoints, matchID)
	return nil
}
