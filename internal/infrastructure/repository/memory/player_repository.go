package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aryasetia/dropshot/internal/domain/roster"
)

type PlayerRepository struct {
	mu       sync.RWMutex
	players  map[string]roster.Player
	byAuthID map[string]string
}

func NewPlayerRepository(players []roster.Player) *PlayerRepository {
	index := make(map[string]roster.Player, len(players))
	byAuthID := make(map[string]string, len(players))
	for _, p := range players {
		index[p.ID] = p
		if p.AuthID != "" {
			byAuthID[p.AuthID] = p.ID
		}
	}
	return &PlayerRepository{players: index, byAuthID: byAuthID}
}

func (r *PlayerRepository) List(_ context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) ListByIDs(_ context.Context, ids []string) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByAuthID(_ context.Context, authID string) (roster.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byAuthID[authID]
	if !ok {
		return roster.Player{}, false, nil
	}
	p, ok := r.players[id]
	return p, ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p roster.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.ID] = p
	if p.AuthID != "" {
		r.byAuthID[p.AuthID] = p.ID
	}
	return nil
}
