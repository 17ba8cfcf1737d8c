package engine

import (
	"errors"
	"testing"
)

func TestSnapshotRestore_RoundTripsMidMatch(t *testing.T) {
	t.Parallel()

	eng := selectEngine(t, 2)
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := eng.SubmitScore(0, 11, 5); err != nil {
		t.Fatalf("submit score: %v", err)
	}
	if err := eng.CompleteRound(); err != nil {
		t.Fatalf("complete round: %v", err)
	}

	restored, err := Restore(eng.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.State() != StateRoundComplete || restored.Round() != 1 {
		t.Fatalf("restored state=%s round=%d", restored.State(), restored.Round())
	}

	wantGames := eng.Games()
	gotGames := restored.Games()
	if len(gotGames) != len(wantGames) {
		t.Fatalf("game count differs: %d vs %d", len(gotGames), len(wantGames))
	}
	for i := range wantGames {
		if gotGames[i].Team1.Key() != wantGames[i].Team1.Key() || gotGames[i].Team2.Key() != wantGames[i].Team2.Key() {
			t.Fatalf("game %d pairing differs", i)
		}
		if gotGames[i].Scored() != wantGames[i].Scored() {
			t.Fatalf("game %d scored flag differs", i)
		}
	}

	wantStandings := eng.Standings()
	gotStandings := restored.Standings()
	for i := range wantStandings {
		if gotStandings[i] != wantStandings[i] {
			t.Fatalf("standing %d differs: %+v vs %+v", i, gotStandings[i], wantStandings[i])
		}
	}
}

func TestSnapshotRestore_ContinuesPlay(t *testing.T) {
	t.Parallel()

	eng := selectEngine(t, 1)
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := eng.SubmitScore(0, 11, 7); err != nil {
		t.Fatalf("submit score: %v", err)
	}
	if err := eng.CompleteRound(); err != nil {
		t.Fatalf("complete round: %v", err)
	}

	roundOne := eng.Games()
	played := map[PairKey]bool{
		roundOne[0].Team1.Key(): true,
		roundOne[0].Team2.Key(): true,
	}

	restored, err := Restore(eng.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := restored.NextRound(); err != nil {
		t.Fatalf("next round after restore: %v", err)
	}
	if restored.Round() != 2 || restored.State() != StateRoundActive {
		t.Fatalf("expected active round 2, got round=%d state=%s", restored.Round(), restored.State())
	}

	// The round 1 participants carry their play count across the
	// reload, so round 2 schedules the rested teams.
	games := restored.Games()
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if played[games[0].Team1.Key()] || played[games[0].Team2.Key()] {
		t.Fatalf("round 2 rescheduled a round 1 team: %v vs %v", games[0].Team1.Key(), games[0].Team2.Key())
	}
}

func TestSnapshotRestore_PreservesTieBreakOrder(t *testing.T) {
	t.Parallel()

	eng := selectEngine(t, 2)
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	restored, err := Restore(eng.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	want := eng.Teams()
	got := restored.Teams()
	if len(got) != len(want) {
		t.Fatalf("team count differs: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Key() != want[i].Key() {
			t.Fatalf("team %d differs: %v vs %v", i, got[i].Key(), want[i].Key())
		}
	}
}

func TestRestore_RejectsCorruptSnapshots(t *testing.T) {
	t.Parallel()

	eng := selectEngine(t, 2)
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	corrupt := eng.Snapshot()
	corrupt.State = "halftime"
	if _, err := Restore(corrupt); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for unknown state, got %v", err)
	}

	orphan := eng.Snapshot()
	orphan.Totals = append(orphan.Totals, PlayerTotals{PlayerID: "ghost", Wins: 3})
	if _, err := Restore(orphan); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for orphan totals, got %v", err)
	}
}
