package usecase

import (
	"errors"
	"testing"

	"github.com/aryasetia/dropshot/internal/domain/roster"
	"github.com/aryasetia/dropshot/internal/infrastructure/repository/memory"
	"github.com/aryasetia/dropshot/internal/platform/logging"
)

func TestRosterService_ListEligiblePlayers_SkipsIncompleteProfiles(t *testing.T) {
	t.Parallel()

	service := NewRosterService(memory.NewPlayerRepository(memory.SeedPlayers()), logging.NewNop())

	players, err := service.ListEligiblePlayers(t.Context())
	if err != nil {
		t.Fatalf("list eligible players: %v", err)
	}
	if len(players) != 8 {
		t.Fatalf("expected 8 eligible players, got %d", len(players))
	}
	for _, p := range players {
		if p.ID == "ply-09" {
			t.Fatal("incomplete profile ply-09 must not be listed")
		}
	}
}

func TestRosterService_CompleteProfile(t *testing.T) {
	t.Parallel()

	service := NewRosterService(memory.NewPlayerRepository(memory.SeedPlayers()), logging.NewNop())

	updated, err := service.CompleteProfile(t.Context(), "auth-09", "240901", roster.GenderMale)
	if err != nil {
		t.Fatalf("complete profile: %v", err)
	}
	if updated.PIN != "240901" || updated.Gender != roster.GenderMale {
		t.Fatalf("profile not updated: %+v", updated)
	}
	if !updated.Eligible() {
		t.Fatal("completed profile must be eligible")
	}

	got, err := service.GetByAuthID(t.Context(), "auth-09")
	if err != nil {
		t.Fatalf("get by auth id: %v", err)
	}
	if got.PIN != "240901" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestRosterService_CompleteProfile_RejectsBadInput(t *testing.T) {
	t.Parallel()

	service := NewRosterService(memory.NewPlayerRepository(memory.SeedPlayers()), logging.NewNop())

	cases := []struct {
		name   string
		authID string
		pin    string
		gender roster.Gender
		want   error
	}{
		{name: "pin too short", authID: "auth-09", pin: "123", gender: roster.GenderMale, want: ErrInvalidInput},
		{name: "pin too long", authID: "auth-09", pin: "123456789", gender: roster.GenderMale, want: ErrInvalidInput},
		{name: "pin not numeric", authID: "auth-09", pin: "12ab", gender: roster.GenderMale, want: ErrInvalidInput},
		{name: "unknown gender", authID: "auth-09", pin: "1234", gender: "other", want: ErrInvalidInput},
		{name: "blank auth id", authID: " ", pin: "1234", gender: roster.GenderMale, want: ErrInvalidInput},
		{name: "unknown profile", authID: "auth-99", pin: "1234", gender: roster.GenderMale, want: ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := service.CompleteProfile(t.Context(), tc.authID, tc.pin, tc.gender); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRosterService_GetByAuthID_NotFound(t *testing.T) {
	t.Parallel()

	service := NewRosterService(memory.NewPlayerRepository(nil), logging.NewNop())
	if _, err := service.GetByAuthID(t.Context(), "auth-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
