package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aryasetia/dropshot/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	index := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		index[m.ID] = m
	}
	return &MatchRepository{matches: index}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[m.ID] = m
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[id]
	return m, ok, nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) ListByCreator(_ context.Context, creatorID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.CreatedBy == creatorID {
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) UpdateStatus(_ context.Context, id string, status match.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[id]
	if !ok {
		return nil
	}
	m.Status = status
	r.matches[id] = m
	return nil
}

func sortMatches(matches []match.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].ScheduledAt.Equal(matches[j].ScheduledAt) {
			return matches[i].ScheduledAt.Before(matches[j].ScheduledAt)
		}
		return matches[i].ID < matches[j].ID
	})
}
