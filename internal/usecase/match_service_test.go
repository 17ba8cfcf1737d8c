package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/aryasetia/dropshot/internal/domain/match"
	"github.com/aryasetia/dropshot/internal/infrastructure/repository/memory"
	"github.com/aryasetia/dropshot/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func TestMatchService_CreateMatch_AppliesDefaults(t *testing.T) {
	repo := memory.NewMatchRepository(nil)
	service := NewMatchService(repo, staticIDGenerator{id: "match-001"}, logging.NewNop())

	now := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	created, err := service.CreateMatch(t.Context(), CreateMatchInput{
		Location:   "  GOR Bintaro, Hall 2  ",
		CourtCount: 3,
		Type:       match.TypeRoundRobin,
		SubType:    match.SubTypeRandom,
		CreatedBy:  "auth-01",
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	if created.ID != "match-001" {
		t.Fatalf("expected match-001, got %s", created.ID)
	}
	if created.Location != "GOR Bintaro, Hall 2" {
		t.Fatalf("location not trimmed: %q", created.Location)
	}
	if !created.ScheduledAt.Equal(now) {
		t.Fatalf("expected scheduled_at defaulted to now, got %v", created.ScheduledAt)
	}
	if created.Status != match.StatusScheduled {
		t.Fatalf("expected scheduled status, got %s", created.Status)
	}

	got, err := service.GetMatch(t.Context(), "match-001")
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.Location != created.Location {
		t.Fatalf("stored match differs: %+v", got)
	}
}

func TestMatchService_CreateMatch_RejectsBadInput(t *testing.T) {
	t.Parallel()

	service := NewMatchService(memory.NewMatchRepository(nil), staticIDGenerator{id: "m"}, logging.NewNop())
	valid := CreateMatchInput{
		Location:   "GOR Senayan",
		CourtCount: 2,
		Type:       match.TypeRoundRobin,
		SubType:    match.SubTypeRandom,
		CreatedBy:  "auth-01",
	}

	cases := []struct {
		name   string
		mutate func(*CreateMatchInput)
	}{
		{name: "empty location", mutate: func(in *CreateMatchInput) { in.Location = "   " }},
		{name: "zero courts", mutate: func(in *CreateMatchInput) { in.CourtCount = 0 }},
		{name: "unknown type", mutate: func(in *CreateMatchInput) { in.Type = "ladder" }},
		{name: "unknown sub type", mutate: func(in *CreateMatchInput) { in.SubType = "swiss" }},
		{name: "select needs set partners", mutate: func(in *CreateMatchInput) { in.SubType = match.SubTypeSelect }},
		{name: "missing creator", mutate: func(in *CreateMatchInput) { in.CreatedBy = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := valid
			tc.mutate(&in)
			if _, err := service.CreateMatch(t.Context(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestMatchService_GetMatch_NotFound(t *testing.T) {
	t.Parallel()

	service := NewMatchService(memory.NewMatchRepository(nil), staticIDGenerator{id: "m"}, logging.NewNop())
	if _, err := service.GetMatch(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetMatch(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestMatchService_ListByCreator(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(memory.SeedMatches())
	service := NewMatchService(repo, staticIDGenerator{id: "m"}, logging.NewNop())

	mine, err := service.ListByCreator(t.Context(), "auth-01")
	if err != nil {
		t.Fatalf("list by creator: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != memory.MatchIDSaturdaySocial {
		t.Fatalf("unexpected matches: %+v", mine)
	}

	other, err := service.ListByCreator(t.Context(), "auth-02")
	if err != nil {
		t.Fatalf("list by creator: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no matches for auth-02, got %d", len(other))
	}
}
