package engine

// Game is one scheduled pairing on a court. Scores stay nil until the
// organizer submits them.
type Game struct {
	Court  int   `json:"court"`
	Team1  Team  `json:"team1"`
	Team2  Team  `json:"team2"`
	Score1 *int  `json:"score1"`
	Score2 *int  `json:"score2"`
}

func (g Game) Scored() bool {
	return g.Score1 != nil && g.Score2 != nil
}

// scheduleRound selects the least-played teams and pairs them into at
// most courtCount games. Re-pairing a team against the opponent it
// just faced is avoided when any alternative exists among the selected
// set, never at the cost of dropping a game. Fewer than two teams
// yields an empty round. Every scheduled team's play count is bumped.
func scheduleRound(ledger *Ledger, teams []Team, courtCount int, lastOpponent map[PairKey]PairKey) []Game {
	games := min(courtCount, len(teams)/2)
	if games == 0 {
		return nil
	}

	selected := ledger.LeastPlayed(teams, 2*games)

	used := make([]bool, len(selected))
	var out []Game
	for i := 0; i < len(selected) && len(out) < games; i++ {
		if used[i] {
			continue
		}

		pick := -1
		for j := i + 1; j < len(selected); j++ {
			if used[j] {
				continue
			}
			if pick < 0 {
				pick = j
			}
			if !rematch(lastOpponent, selected[i], selected[j]) {
				pick = j
				break
			}
		}
		if pick < 0 {
			break
		}

		used[i], used[pick] = true, true
		out = append(out, Game{
			Court: len(out) + 1,
			Team1: selected[i],
			Team2: selected[pick],
		})
	}

	played := make([]PairKey, 0, len(out)*2)
	for _, g := range out {
		played = append(played, g.Team1.Key(), g.Team2.Key())
	}
	ledger.RecordPlayed(played)

	return out
}

func rematch(lastOpponent map[PairKey]PairKey, a, b Team) bool {
	if lastOpponent == nil {
		return false
	}
	return lastOpponent[a.Key()] == b.Key()
}
