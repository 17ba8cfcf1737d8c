package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aryasetia/dropshot/internal/domain/engine"
	"github.com/aryasetia/dropshot/internal/domain/match"
	"github.com/aryasetia/dropshot/internal/domain/roster"
	"github.com/aryasetia/dropshot/internal/platform/logging"
	"github.com/aryasetia/dropshot/internal/usecase"
)

type Handler struct {
	matchService   *usecase.MatchService
	rosterService  *usecase.RosterService
	sessionService *usecase.MatchSessionService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	rosterService *usecase.RosterService,
	sessionService *usecase.MatchSessionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:   matchService,
		rosterService:  rosterService,
		sessionService: sessionService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type completeProfileRequest struct {
	PIN    string `json:"pin" validate:"required,numeric,min=4,max=8"`
	Gender string `json:"gender" validate:"required,oneof=male female"`
}

type createMatchRequest struct {
	ScheduledAt string `json:"scheduled_at" validate:"omitempty"`
	Location    string `json:"location" validate:"required,max=200"`
	CourtCount  int    `json:"court_count" validate:"required,gt=0"`
	Type        string `json:"type" validate:"required,oneof=round_robin set_partners"`
	SubType     string `json:"sub_type" validate:"required,oneof=mixed_gender same_gender random select"`
}

type startSessionRequest struct {
	PlayerIDs []string   `json:"player_ids" validate:"omitempty,min=2,dive,required"`
	Pairs     [][]string `json:"pairs" validate:"omitempty,min=1,dive,len=2,dive,required"`
}

type submitScoreRequest struct {
	GameIndex *int `json:"game_index" validate:"required,gte=0"`
	Score1    *int `json:"score1" validate:"required,gte=0"`
	Score2    *int `json:"score2" validate:"required,gte=0"`
}

type playerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Gender string `json:"gender,omitempty"`
}

type matchDTO struct {
	ID             string `json:"id"`
	ScheduledAtUTC string `json:"scheduled_at_utc"`
	Location       string `json:"location"`
	CourtCount     int    `json:"court_count"`
	Type           string `json:"type"`
	SubType        string `json:"sub_type"`
	CreatedBy      string `json:"created_by"`
	Status         string `json:"status"`
	CreatedAtUTC   string `json:"created_at_utc"`
}

type teamDTO struct {
	Players     []playerDTO `json:"players"`
	TimesPlayed int         `json:"times_played"`
}

type gameDTO struct {
	Court  int     `json:"court"`
	Team1  teamDTO `json:"team1"`
	Team2  teamDTO `json:"team2"`
	Score1 *int    `json:"score1"`
	Score2 *int    `json:"score2"`
}

type roundDTO struct {
	MatchID  string      `json:"match_id"`
	State    string      `json:"state"`
	Round    int         `json:"round"`
	Games    []gameDTO   `json:"games"`
	Teams    []teamDTO   `json:"teams"`
	Unteamed []playerDTO `json:"unteamed"`
}

type standingDTO struct {
	Rank               int    `json:"rank"`
	PlayerID           string `json:"player_id"`
	PlayerName         string `json:"player_name"`
	Wins               int    `json:"wins"`
	Losses             int    `json:"losses"`
	PointsDifferential int    `json:"points_differential"`
}

func rosterPlayerToDTO(p roster.Player) playerDTO {
	return playerDTO{
		ID:     p.ID,
		Name:   p.Name,
		Email:  p.Email,
		Gender: string(p.Gender),
	}
}

func enginePlayerToDTO(p engine.Player) playerDTO {
	return playerDTO{
		ID:     p.ID,
		Name:   p.Name,
		Gender: string(p.Gender),
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:             m.ID,
		ScheduledAtUTC: m.ScheduledAt.UTC().Format(time.RFC3339),
		Location:       m.Location,
		CourtCount:     m.CourtCount,
		Type:           string(m.Type),
		SubType:        string(m.SubType),
		CreatedBy:      m.CreatedBy,
		Status:         string(m.Status),
		CreatedAtUTC:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func teamToDTO(t engine.Team) teamDTO {
	return teamDTO{
		Players: []playerDTO{
			enginePlayerToDTO(t.Players[0]),
			enginePlayerToDTO(t.Players[1]),
		},
		TimesPlayed: t.TimesPlayed,
	}
}

func gameToDTO(g engine.Game) gameDTO {
	return gameDTO{
		Court:  g.Court,
		Team1:  teamToDTO(g.Team1),
		Team2:  teamToDTO(g.Team2),
		Score1: g.Score1,
		Score2: g.Score2,
	}
}

func roundToDTO(v usecase.RoundView) roundDTO {
	games := make([]gameDTO, 0, len(v.Games))
	for _, g := range v.Games {
		games = append(games, gameToDTO(g))
	}
	teams := make([]teamDTO, 0, len(v.Teams))
	for _, t := range v.Teams {
		teams = append(teams, teamToDTO(t))
	}
	unteamed := make([]playerDTO, 0, len(v.Unteamed))
	for _, p := range v.Unteamed {
		unteamed = append(unteamed, enginePlayerToDTO(p))
	}

	return roundDTO{
		MatchID:  v.MatchID,
		State:    string(v.State),
		Round:    v.Round,
		Games:    games,
		Teams:    teams,
		Unteamed: unteamed,
	}
}

func standingsToDTO(standings []engine.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(standings))
	for i, s := range standings {
		out = append(out, standingDTO{
			Rank:               i + 1,
			PlayerID:           s.Player.ID,
			PlayerName:         s.Player.Name,
			Wins:               s.Wins,
			Losses:             s.Losses,
			PointsDifferential: s.PointsDifferential,
		})
	}
	return out
}

func pairsFromRequest(raw [][]string) [][2]string {
	out := make([][2]string, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 {
			continue
		}
		out = append(out, [2]string{pair[0], pair[1]})
	}
	return out
}
