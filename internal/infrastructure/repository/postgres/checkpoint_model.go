package postgres

import "time"

type checkpointTableModel struct {
	MatchID string    `db:"match_id"`
	TakenAt time.Time `db:"taken_at"`
	State   []byte    `db:"state"`
}
