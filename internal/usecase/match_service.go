package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aryasetia/dropshot/internal/domain/match"
	"github.com/aryasetia/dropshot/internal/platform/id"
	"github.com/aryasetia/dropshot/internal/platform/logging"
)

// CreateMatchInput carries the organizer's create-match form.
type CreateMatchInput struct {
	ScheduledAt time.Time
	Location    string
	CourtCount  int
	Type        match.Type
	SubType     match.SubType
	CreatedBy   string
}

// MatchService manages match metadata.
type MatchService struct {
	matchRepo match.Repository
	idgen     id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(matchRepo match.Repository, idgen id.Generator, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo: matchRepo,
		idgen:     idgen,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, in CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	in.Location = strings.TrimSpace(in.Location)
	if in.Location == "" {
		return match.Match{}, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if in.CourtCount < 1 {
		return match.Match{}, fmt.Errorf("%w: court count must be at least 1", ErrInvalidInput)
	}
	if !match.ValidType(in.Type) {
		return match.Match{}, fmt.Errorf("%w: unknown match type %q", ErrInvalidInput, in.Type)
	}
	if !match.ValidSubType(in.SubType) {
		return match.Match{}, fmt.Errorf("%w: unknown match sub type %q", ErrInvalidInput, in.SubType)
	}
	if !match.AllowedPairing(in.Type, in.SubType) {
		return match.Match{}, fmt.Errorf("%w: sub type %s requires type %s", ErrInvalidInput, match.SubTypeSelect, match.TypeSetPartners)
	}
	if strings.TrimSpace(in.CreatedBy) == "" {
		return match.Match{}, fmt.Errorf("%w: creator is required", ErrInvalidInput)
	}

	scheduledAt := in.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = s.now()
	}

	matchID, err := s.idgen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	m := match.Match{
		ID:          matchID,
		ScheduledAt: scheduledAt,
		Location:    in.Location,
		CourtCount:  in.CourtCount,
		Type:        in.Type,
		SubType:     in.SubType,
		CreatedBy:   strings.TrimSpace(in.CreatedBy),
		Status:      match.StatusScheduled,
		CreatedAt:   s.now(),
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", m.ID,
		"type", m.Type,
		"sub_type", m.SubType,
		"court_count", m.CourtCount,
	)
	return m, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) ListByCreator(ctx context.Context, creatorID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByCreator")
	defer span.End()

	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return nil, fmt.Errorf("%w: creator id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list matches by creator: %w", err)
	}
	return matches, nil
}
