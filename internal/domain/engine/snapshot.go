package engine

import "fmt"

// Snapshot is the engine's complete serializable state. It is a plain
// struct so callers can persist and reload a match without the engine
// knowing how.
type Snapshot struct {
	Policy     Policy      `json:"policy"`
	CourtCount int         `json:"courtCount"`
	Roster     []Player    `json:"roster"`
	Pairs      [][2]string `json:"pairs,omitempty"`
	Seed       int64       `json:"seed"`

	State    State    `json:"state"`
	Round    int      `json:"round"`
	Teams    []Team   `json:"teams"`
	Unteamed []Player `json:"unteamed,omitempty"`
	Games    []Game   `json:"games"`

	LastOpponents []OpponentRecord `json:"lastOpponents,omitempty"`
	Totals        []PlayerTotals   `json:"totals"`
}

// OpponentRecord remembers who a team faced in the round it last
// played, feeding the soft no-rematch rule across a reload.
type OpponentRecord struct {
	Team     PairKey `json:"team"`
	Opponent PairKey `json:"opponent"`
}

// PlayerTotals is one player's accumulated results.
type PlayerTotals struct {
	PlayerID           string `json:"playerId"`
	Wins               int    `json:"wins"`
	Losses             int    `json:"losses"`
	PointsDifferential int    `json:"pointsDifferential"`
}

// Snapshot captures the current state. Team order follows build order
// so a restore reproduces the ledger's tie-break positions.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Policy:     e.policy,
		CourtCount: e.courtCount,
		Roster:     append([]Player(nil), e.roster...),
		Pairs:      append([][2]string(nil), e.pairs...),
		Seed:       e.seed,
		State:      e.state,
		Round:      e.round,
		Teams:      e.Teams(),
		Unteamed:   append([]Player(nil), e.unteamed...),
		Games:      e.Games(),
	}

	for _, t := range e.teams {
		key := t.Key()
		if opp, ok := e.lastOpponent[key]; ok {
			snap.LastOpponents = append(snap.LastOpponents, OpponentRecord{Team: key, Opponent: opp})
		}
	}
	for _, t := range e.teams {
		for _, p := range t.Players {
			agg := e.totals[p.ID]
			snap.Totals = append(snap.Totals, PlayerTotals{
				PlayerID:           p.ID,
				Wins:               agg.wins,
				Losses:             agg.losses,
				PointsDifferential: agg.diff,
			})
		}
	}
	return snap
}

// Restore rebuilds a working engine from a snapshot.
func Restore(snap Snapshot) (*Engine, error) {
	e, err := New(Config{
		Policy:     snap.Policy,
		CourtCount: snap.CourtCount,
		Roster:     snap.Roster,
		Pairs:      snap.Pairs,
		Seed:       snap.Seed,
	})
	if err != nil {
		return nil, err
	}
	if !snap.State.valid() {
		return nil, fmt.Errorf("%w: unknown state %q in snapshot", ErrInvalidState, snap.State)
	}

	e.state = snap.State
	e.round = snap.Round
	e.teams = append([]Team(nil), snap.Teams...)
	e.unteamed = append([]Player(nil), snap.Unteamed...)
	e.games = append([]Game(nil), snap.Games...)
	for i := range e.games {
		e.games[i].Score1 = copyScore(e.games[i].Score1)
		e.games[i].Score2 = copyScore(e.games[i].Score2)
	}

	for _, t := range e.teams {
		e.ledger.setCount(t.Key(), t.TimesPlayed)
		for _, p := range t.Players {
			e.totals[p.ID] = &totals{}
		}
	}
	for _, rec := range snap.LastOpponents {
		e.lastOpponent[rec.Team] = rec.Opponent
	}
	for _, agg := range snap.Totals {
		t, ok := e.totals[agg.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: totals for player %s outside any team", ErrInvalidState, agg.PlayerID)
		}
		t.wins = agg.Wins
		t.losses = agg.Losses
		t.diff = agg.PointsDifferential
	}
	return e, nil
}
