package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/aryasetia/dropshot/internal/domain/roster"
)

func testRoster(males, females int) []Player {
	out := make([]Player, 0, males+females)
	for i := 0; i < males; i++ {
		out = append(out, Player{
			ID:     fmt.Sprintf("m-%02d", i+1),
			Name:   fmt.Sprintf("Male %02d", i+1),
			Gender: roster.GenderMale,
		})
	}
	for i := 0; i < females; i++ {
		out = append(out, Player{
			ID:     fmt.Sprintf("f-%02d", i+1),
			Name:   fmt.Sprintf("Female %02d", i+1),
			Gender: roster.GenderFemale,
		})
	}
	return out
}

func TestBuildTeams_RandomPairsEveryone(t *testing.T) {
	t.Parallel()

	players := testRoster(4, 2)
	result, err := BuildTeams(players, PolicyRandom, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("build teams: %v", err)
	}

	if len(result.Teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(result.Teams))
	}
	if len(result.Unteamed) != 0 {
		t.Fatalf("expected nobody unteamed, got %d", len(result.Unteamed))
	}

	placed := make(map[string]bool)
	for _, team := range result.Teams {
		for _, p := range team.Players {
			if placed[p.ID] {
				t.Fatalf("player %s placed twice", p.ID)
			}
			placed[p.ID] = true
		}
	}
	if len(placed) != len(players) {
		t.Fatalf("expected %d placed players, got %d", len(players), len(placed))
	}
}

func TestBuildTeams_RandomOddRosterReportsSurplus(t *testing.T) {
	t.Parallel()

	result, err := BuildTeams(testRoster(3, 2), PolicyRandom, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("build teams: %v", err)
	}
	if len(result.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(result.Teams))
	}
	if len(result.Unteamed) != 1 {
		t.Fatalf("expected 1 unteamed player, got %d", len(result.Unteamed))
	}
}

func TestBuildTeams_MixedGenderPairsAcrossGenders(t *testing.T) {
	t.Parallel()

	result, err := BuildTeams(testRoster(3, 2), PolicyMixedGender, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("build teams: %v", err)
	}

	if len(result.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(result.Teams))
	}
	for _, team := range result.Teams {
		if team.Players[0].Gender == team.Players[1].Gender {
			t.Fatalf("team %v is not mixed gender", team.Key())
		}
	}
	if len(result.Unteamed) != 1 || result.Unteamed[0].Gender != roster.GenderMale {
		t.Fatalf("expected the surplus male unteamed, got %v", result.Unteamed)
	}
}

func TestBuildTeams_SameGenderKeepsGendersApart(t *testing.T) {
	t.Parallel()

	result, err := BuildTeams(testRoster(4, 3), PolicySameGender, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("build teams: %v", err)
	}

	if len(result.Teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(result.Teams))
	}
	for _, team := range result.Teams {
		if team.Players[0].Gender != team.Players[1].Gender {
			t.Fatalf("team %v mixes genders", team.Key())
		}
	}
	if len(result.Unteamed) != 1 {
		t.Fatalf("expected 1 unteamed player, got %d", len(result.Unteamed))
	}
}

func TestBuildTeams_NoTeamPossibleFails(t *testing.T) {
	t.Parallel()

	// Mixed gender with a single-gender roster cannot form any team.
	_, err := BuildTeams(testRoster(4, 0), PolicyMixedGender, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidComposition) {
		t.Fatalf("expected ErrInvalidComposition, got %v", err)
	}

	_, err = BuildTeams(testRoster(1, 0), PolicyRandom, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidComposition) {
		t.Fatalf("expected ErrInvalidComposition for lone player, got %v", err)
	}
}

func TestBuildTeams_SameSeedSameTeams(t *testing.T) {
	t.Parallel()

	players := testRoster(5, 5)
	first, err := BuildTeams(players, PolicyRandom, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("build teams: %v", err)
	}
	second, err := BuildTeams(players, PolicyRandom, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("rebuild teams: %v", err)
	}

	if len(first.Teams) != len(second.Teams) {
		t.Fatalf("team counts differ: %d vs %d", len(first.Teams), len(second.Teams))
	}
	for i := range first.Teams {
		if first.Teams[i].Key() != second.Teams[i].Key() {
			t.Fatalf("team %d differs: %v vs %v", i, first.Teams[i].Key(), second.Teams[i].Key())
		}
	}
}

func TestSelectTeams_PlacesPairsAndReportsRest(t *testing.T) {
	t.Parallel()

	players := testRoster(3, 2)
	result, err := SelectTeams(players, [][2]string{
		{"m-01", "f-01"},
		{"m-02", "f-02"},
	})
	if err != nil {
		t.Fatalf("select teams: %v", err)
	}

	if len(result.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(result.Teams))
	}
	if result.Teams[0].Key() != NewPairKey("m-01", "f-01") {
		t.Fatalf("unexpected first team: %v", result.Teams[0].Key())
	}
	if len(result.Unteamed) != 1 || result.Unteamed[0].ID != "m-03" {
		t.Fatalf("expected m-03 unteamed, got %v", result.Unteamed)
	}
}

func TestSelectTeams_RejectsInvalidPairs(t *testing.T) {
	t.Parallel()

	players := testRoster(3, 2)
	cases := []struct {
		name  string
		pairs [][2]string
	}{
		{name: "no pairs", pairs: nil},
		{name: "self pair", pairs: [][2]string{{"m-01", "m-01"}}},
		{name: "duplicate pair", pairs: [][2]string{{"m-01", "f-01"}, {"f-01", "m-01"}}},
		{name: "unknown player", pairs: [][2]string{{"m-01", "ghost"}}},
		{name: "player in two pairs", pairs: [][2]string{{"m-01", "f-01"}, {"m-01", "f-02"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := SelectTeams(players, tc.pairs); !errors.Is(err, ErrInvalidComposition) {
				t.Fatalf("expected ErrInvalidComposition, got %v", err)
			}
		})
	}
}

func TestNewPairKey_OrderInsensitive(t *testing.T) {
	t.Parallel()

	if NewPairKey("b", "a") != NewPairKey("a", "b") {
		t.Fatal("pair key should not depend on argument order")
	}
}
