package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aryasetia/dropshot/internal/domain/roster"
	"github.com/aryasetia/dropshot/internal/platform/logging"
)

var pinPattern = regexp.MustCompile(`^\d{4,8}$`)

// RosterService manages player profiles and roster eligibility.
type RosterService struct {
	playerRepo roster.Repository
	logger     *logging.Logger
}

func NewRosterService(playerRepo roster.Repository, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// ListEligiblePlayers returns profiles complete enough to be placed on
// a match roster.
func (s *RosterService) ListEligiblePlayers(ctx context.Context) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListEligiblePlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]roster.Player, 0, len(players))
	for _, p := range players {
		if p.Eligible() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *RosterService) GetByAuthID(ctx context.Context, authID string) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetByAuthID")
	defer span.End()

	authID = strings.TrimSpace(authID)
	if authID == "" {
		return roster.Player{}, fmt.Errorf("%w: auth id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return roster.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return roster.Player{}, fmt.Errorf("%w: player auth=%s", ErrNotFound, authID)
	}
	return p, nil
}

// CompleteProfile fills in the PIN and gender the signup flow leaves
// blank. The profile itself must already exist.
func (s *RosterService) CompleteProfile(ctx context.Context, authID, pin string, gender roster.Gender) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CompleteProfile")
	defer span.End()

	authID = strings.TrimSpace(authID)
	pin = strings.TrimSpace(pin)
	if authID == "" {
		return roster.Player{}, fmt.Errorf("%w: auth id is required", ErrInvalidInput)
	}
	if !pinPattern.MatchString(pin) {
		return roster.Player{}, fmt.Errorf("%w: pin must be 4 to 8 digits", ErrInvalidInput)
	}
	if !gender.Valid() {
		return roster.Player{}, fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, gender)
	}

	p, exists, err := s.playerRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return roster.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return roster.Player{}, fmt.Errorf("%w: player auth=%s", ErrNotFound, authID)
	}

	p.PIN = pin
	p.Gender = gender
	if err := s.playerRepo.Upsert(ctx, p); err != nil {
		return roster.Player{}, fmt.Errorf("save player: %w", err)
	}

	s.logger.InfoContext(ctx, "player profile completed", "player_id", p.ID)
	return p, nil
}
