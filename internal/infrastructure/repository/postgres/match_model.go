package postgres

import "time"

type matchTableModel struct {
	ID          string    `db:"id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Location    string    `db:"location"`
	CourtCount  int       `db:"court_count"`
	Type        string    `db:"match_type"`
	SubType     string    `db:"match_sub_type"`
	CreatedBy   string    `db:"created_by"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}
