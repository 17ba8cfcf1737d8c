package engine

import "sort"

// Ledger tracks how many rounds each team has been scheduled into.
// Ties in least-played selection break on first-seen order so the same
// input sequence always schedules the same teams.
type Ledger struct {
	counts map[PairKey]int
	seen   map[PairKey]int
	next   int
}

func NewLedger() *Ledger {
	return &Ledger{
		counts: make(map[PairKey]int),
		seen:   make(map[PairKey]int),
	}
}

// Track registers a team. Registration order fixes the tie-break
// position for all later selections. Re-tracking a known team is a
// no-op.
func (l *Ledger) Track(key PairKey) {
	if _, ok := l.seen[key]; ok {
		return
	}
	l.seen[key] = l.next
	l.next++
	l.counts[key] = 0
}

func (l *Ledger) TimesPlayed(key PairKey) int {
	return l.counts[key]
}

// RecordPlayed bumps the play count of every scheduled team. Called
// exactly once per round per team placed into a game.
func (l *Ledger) RecordPlayed(keys []PairKey) {
	for _, key := range keys {
		l.Track(key)
		l.counts[key]++
	}
}

// LeastPlayed returns up to k candidates ordered by ascending play
// count, first-seen order breaking ties.
func (l *Ledger) LeastPlayed(candidates []Team, k int) []Team {
	out := make([]Team, len(candidates))
	copy(out, candidates)

	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].Key(), out[j].Key()
		if l.counts[ki] != l.counts[kj] {
			return l.counts[ki] < l.counts[kj]
		}
		return l.seen[ki] < l.seen[kj]
	})

	if k < len(out) {
		out = out[:k]
	}
	return out
}

// setCount overwrites a team's play count during checkpoint restore.
func (l *Ledger) setCount(key PairKey, count int) {
	l.Track(key)
	l.counts[key] = count
}
