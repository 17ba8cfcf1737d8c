// Package engine orchestrates one match: it builds teams from a
// roster under a composition policy, schedules games across courts
// round by round, accumulates submitted scores, and ranks players once
// the match is finalized. The engine is synchronous and holds no
// internal lock; callers serialize access.
package engine

import (
	"fmt"
	"math/rand"
)

// State is the lifecycle position of the match.
type State string

const (
	StateAwaitingTeams State = "awaiting_teams"
	StateRoundActive   State = "round_active"
	StateRoundComplete State = "round_complete"
	StateFinalized     State = "finalized"
)

func (s State) valid() bool {
	switch s {
	case StateAwaitingTeams, StateRoundActive, StateRoundComplete, StateFinalized:
		return true
	}
	return false
}

// Config fixes a match for the engine's lifetime.
type Config struct {
	Policy     Policy
	CourtCount int
	Roster     []Player
	// Pairs supplies organizer-chosen partnerships under PolicySelect
	// and is ignored otherwise.
	Pairs [][2]string
	// Seed drives the pairing shuffles so the same configuration
	// rebuilds the same teams.
	Seed int64
}

type totals struct {
	wins   int
	losses int
	diff   int
}

// Engine is the round controller for a single match.
type Engine struct {
	policy     Policy
	courtCount int
	roster     []Player
	pairs      [][2]string
	seed       int64
	rng        *rand.Rand

	state        State
	round        int
	teams        []Team
	unteamed     []Player
	games        []Game
	ledger       *Ledger
	lastOpponent map[PairKey]PairKey
	totals       map[string]*totals
}

func New(cfg Config) (*Engine, error) {
	if !cfg.Policy.Valid() {
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidComposition, cfg.Policy)
	}
	if cfg.CourtCount < 1 {
		return nil, fmt.Errorf("%w: court count must be at least 1, got %d", ErrInvalidComposition, cfg.CourtCount)
	}
	if len(cfg.Roster) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrInvalidComposition)
	}
	ids := make(map[string]bool, len(cfg.Roster))
	for _, p := range cfg.Roster {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: player with empty id", ErrInvalidComposition)
		}
		if ids[p.ID] {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidComposition, p.ID)
		}
		ids[p.ID] = true
	}

	roster := make([]Player, len(cfg.Roster))
	copy(roster, cfg.Roster)

	return &Engine{
		policy:       cfg.Policy,
		courtCount:   cfg.CourtCount,
		roster:       roster,
		pairs:        cfg.Pairs,
		seed:         cfg.Seed,
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		state:        StateAwaitingTeams,
		ledger:       NewLedger(),
		lastOpponent: make(map[PairKey]PairKey),
		totals:       make(map[string]*totals),
	}, nil
}

// Start builds the teams and schedules round 1. Nothing is mutated
// when team building fails.
func (e *Engine) Start() error {
	if e.state != StateAwaitingTeams {
		return fmt.Errorf("%w: start in state %s", ErrInvalidState, e.state)
	}

	var (
		built BuildResult
		err   error
	)
	if e.policy == PolicySelect {
		built, err = SelectTeams(e.roster, e.pairs)
	} else {
		built, err = BuildTeams(e.roster, e.policy, e.rng)
	}
	if err != nil {
		return err
	}

	e.teams = built.Teams
	e.unteamed = built.Unteamed
	for _, t := range e.teams {
		e.ledger.Track(t.Key())
		for _, p := range t.Players {
			e.totals[p.ID] = &totals{}
		}
	}

	e.round = 1
	e.games = scheduleRound(e.ledger, e.teams, e.courtCount, e.lastOpponent)
	e.noteOpponents()
	e.state = StateRoundActive
	return nil
}

// SubmitScore records a game's result and folds it into the per-player
// aggregates. Resubmitting before the round advances rolls back the
// previous deltas first, so identical resubmission is idempotent.
func (e *Engine) SubmitScore(gameIndex, score1, score2 int) error {
	if e.state != StateRoundActive {
		return fmt.Errorf("%w: submit score in state %s", ErrInvalidState, e.state)
	}
	if gameIndex < 0 || gameIndex >= len(e.games) {
		return fmt.Errorf("%w: game %d of %d", ErrUnknownGame, gameIndex, len(e.games))
	}
	if score1 < 0 || score2 < 0 {
		return fmt.Errorf("%w: scores must be non-negative, got %d-%d", ErrInvalidScore, score1, score2)
	}

	g := &e.games[gameIndex]
	if g.Scored() {
		e.applyScore(*g, *g.Score1, *g.Score2, -1)
	}
	s1, s2 := score1, score2
	g.Score1, g.Score2 = &s1, &s2
	e.applyScore(*g, score1, score2, +1)
	return nil
}

// CompleteRound closes score submission for the current round. Games
// left unscored are allowed; they simply contribute nothing.
func (e *Engine) CompleteRound() error {
	if e.state != StateRoundActive {
		return fmt.Errorf("%w: complete round in state %s", ErrInvalidState, e.state)
	}
	e.state = StateRoundComplete
	return nil
}

// NextRound discards the finished round's games and schedules the
// next one from the ledger's play counts.
func (e *Engine) NextRound() error {
	if e.state != StateRoundComplete {
		return fmt.Errorf("%w: next round in state %s", ErrInvalidState, e.state)
	}
	e.round++
	e.games = scheduleRound(e.ledger, e.teams, e.courtCount, e.lastOpponent)
	e.noteOpponents()
	e.state = StateRoundActive
	return nil
}

// Finalize ends the match. Terminal: no round or score mutation is
// accepted afterwards.
func (e *Engine) Finalize() error {
	if e.state != StateRoundComplete {
		return fmt.Errorf("%w: finalize in state %s", ErrInvalidState, e.state)
	}
	e.state = StateFinalized
	return nil
}

func (e *Engine) State() State { return e.state }

// Round returns the 1-based current round index, 0 before the match
// starts.
func (e *Engine) Round() int { return e.round }

// Games returns the current round's games. Scores are owned copies;
// writing through them never reaches the tracker's aggregates.
func (e *Engine) Games() []Game {
	out := make([]Game, len(e.games))
	copy(out, e.games)
	for i := range out {
		out[i].Score1 = copyScore(out[i].Score1)
		out[i].Score2 = copyScore(out[i].Score2)
		e.fillCounts(&out[i].Team1)
		e.fillCounts(&out[i].Team2)
	}
	return out
}

func copyScore(s *int) *int {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (e *Engine) Teams() []Team {
	out := make([]Team, len(e.teams))
	copy(out, e.teams)
	for i := range out {
		e.fillCounts(&out[i])
	}
	return out
}

func (e *Engine) Unteamed() []Player {
	out := make([]Player, len(e.unteamed))
	copy(out, e.unteamed)
	return out
}

func (e *Engine) applyScore(g Game, score1, score2 int, sign int) {
	for _, p := range g.Team1.Players {
		e.totals[p.ID].diff += sign * (score1 - score2)
	}
	for _, p := range g.Team2.Players {
		e.totals[p.ID].diff += sign * (score2 - score1)
	}
	switch {
	case score1 > score2:
		e.addResult(g.Team1, g.Team2, sign)
	case score2 > score1:
		e.addResult(g.Team2, g.Team1, sign)
	}
}

func (e *Engine) addResult(winner, loser Team, sign int) {
	for _, p := range winner.Players {
		e.totals[p.ID].wins += sign
	}
	for _, p := range loser.Players {
		e.totals[p.ID].losses += sign
	}
}

func (e *Engine) noteOpponents() {
	for _, g := range e.games {
		k1, k2 := g.Team1.Key(), g.Team2.Key()
		e.lastOpponent[k1] = k2
		e.lastOpponent[k2] = k1
	}
}

func (e *Engine) fillCounts(t *Team) {
	t.TimesPlayed = e.ledger.TimesPlayed(t.Key())
}
