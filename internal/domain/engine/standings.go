package engine

import "sort"

// Standing is one player's cumulative record.
type Standing struct {
	Player             Player `json:"player"`
	Wins               int    `json:"wins"`
	Losses             int    `json:"losses"`
	PointsDifferential int    `json:"pointsDifferential"`
}

// Standings ranks the teamed players by wins, then points
// differential, then name. Callable in any state; before the first
// submitted score every record is zero.
func (e *Engine) Standings() []Standing {
	out := make([]Standing, 0, len(e.totals))
	for _, t := range e.teams {
		for _, p := range t.Players {
			agg := e.totals[p.ID]
			out = append(out, Standing{
				Player:             p,
				Wins:               agg.wins,
				Losses:             agg.losses,
				PointsDifferential: agg.diff,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].PointsDifferential != out[j].PointsDifferential {
			return out[i].PointsDifferential > out[j].PointsDifferential
		}
		if out[i].Player.Name != out[j].Player.Name {
			return out[i].Player.Name < out[j].Player.Name
		}
		return out[i].Player.ID < out[j].Player.ID
	})
	return out
}
