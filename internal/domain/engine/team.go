package engine

import (
	"fmt"
	"math/rand"

	"github.com/aryasetia/dropshot/internal/domain/roster"
)

// Policy selects how the roster is partitioned into teams.
type Policy string

const (
	PolicyRandom      Policy = "random"
	PolicyMixedGender Policy = "mixed_gender"
	PolicySameGender  Policy = "same_gender"
	PolicySelect      Policy = "select"
)

func (p Policy) Valid() bool {
	switch p {
	case PolicyRandom, PolicyMixedGender, PolicySameGender, PolicySelect:
		return true
	}
	return false
}

// Player is the slice of a profile the engine needs.
type Player struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Gender roster.Gender `json:"gender"`
}

// PairKey identifies a team by its unordered player pair. Low and High
// hold the two player ids in lexicographic order so that a team with
// swapped players hashes identically.
type PairKey struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

func NewPairKey(a, b string) PairKey {
	if a <= b {
		return PairKey{Low: a, High: b}
	}
	return PairKey{Low: b, High: a}
}

// Team is an unordered pair of players playing as one side.
type Team struct {
	Players     [2]Player `json:"players"`
	TimesPlayed int       `json:"timesPlayed"`
}

func (t Team) Key() PairKey {
	return NewPairKey(t.Players[0].ID, t.Players[1].ID)
}

// BuildResult carries the built teams plus any players the policy
// could not place. Surplus players are reported, not an error.
type BuildResult struct {
	Teams    []Team
	Unteamed []Player
}

// BuildTeams partitions players into teams under the given policy.
// rng drives the shuffles for the randomized policies. A policy that
// produces no team at all fails with ErrInvalidComposition.
func BuildTeams(players []Player, policy Policy, rng *rand.Rand) (BuildResult, error) {
	var result BuildResult

	switch policy {
	case PolicyRandom:
		pool := shuffled(players, rng)
		result = pairConsecutive(pool)
	case PolicyMixedGender:
		males, females := splitByGender(players)
		males = shuffled(males, rng)
		females = shuffled(females, rng)
		n := min(len(males), len(females))
		for i := 0; i < n; i++ {
			result.Teams = append(result.Teams, Team{Players: [2]Player{males[i], females[i]}})
		}
		result.Unteamed = append(result.Unteamed, males[n:]...)
		result.Unteamed = append(result.Unteamed, females[n:]...)
	case PolicySameGender:
		males, females := splitByGender(players)
		for _, group := range [][]Player{shuffled(males, rng), shuffled(females, rng)} {
			part := pairConsecutive(group)
			result.Teams = append(result.Teams, part.Teams...)
			result.Unteamed = append(result.Unteamed, part.Unteamed...)
		}
	default:
		return BuildResult{}, fmt.Errorf("%w: unsupported policy %q", ErrInvalidComposition, policy)
	}

	if len(result.Teams) == 0 {
		return BuildResult{}, fmt.Errorf("%w: policy %s yields no team from %d players", ErrInvalidComposition, policy, len(players))
	}
	return result, nil
}

// SelectTeams builds teams from organizer-chosen player id pairs. It
// validates that every id is on the roster, partners are distinct, no
// player appears in two pairs, and no pair repeats. Roster players not
// named in any pair are reported unteamed.
func SelectTeams(players []Player, pairs [][2]string) (BuildResult, error) {
	if len(pairs) == 0 {
		return BuildResult{}, fmt.Errorf("%w: no partner pairs selected", ErrInvalidComposition)
	}

	byID := make(map[string]Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	var result BuildResult
	placed := make(map[string]bool, len(pairs)*2)
	seenPairs := make(map[PairKey]bool, len(pairs))
	for _, pair := range pairs {
		if pair[0] == pair[1] {
			return BuildResult{}, fmt.Errorf("%w: player %s paired with themselves", ErrInvalidComposition, pair[0])
		}
		key := NewPairKey(pair[0], pair[1])
		if seenPairs[key] {
			return BuildResult{}, fmt.Errorf("%w: duplicate pair %s/%s", ErrInvalidComposition, key.Low, key.High)
		}
		seenPairs[key] = true

		var members [2]Player
		for i, id := range pair {
			p, ok := byID[id]
			if !ok {
				return BuildResult{}, fmt.Errorf("%w: player %s is not on the roster", ErrInvalidComposition, id)
			}
			if placed[id] {
				return BuildResult{}, fmt.Errorf("%w: player %s appears in more than one pair", ErrInvalidComposition, id)
			}
			placed[id] = true
			members[i] = p
		}
		result.Teams = append(result.Teams, Team{Players: members})
	}

	for _, p := range players {
		if !placed[p.ID] {
			result.Unteamed = append(result.Unteamed, p)
		}
	}
	return result, nil
}

func shuffled(players []Player, rng *rand.Rand) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	return out
}

func pairConsecutive(players []Player) BuildResult {
	var result BuildResult
	for i := 0; i+1 < len(players); i += 2 {
		result.Teams = append(result.Teams, Team{Players: [2]Player{players[i], players[i+1]}})
	}
	if len(players)%2 == 1 {
		result.Unteamed = append(result.Unteamed, players[len(players)-1])
	}
	return result
}

func splitByGender(players []Player) (males, females []Player) {
	for _, p := range players {
		if p.Gender == roster.GenderFemale {
			females = append(females, p)
		} else {
			males = append(males, p)
		}
	}
	return males, females
}
