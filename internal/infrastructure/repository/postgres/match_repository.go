package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/aryasetia/dropshot/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, scheduled_at, location, court_count, match_type, match_sub_type, created_by, status, created_at`

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	const query = `
		INSERT INTO matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ScheduledAt, m.Location, m.CourtCount,
		string(m.Type), string(m.SubType), m.CreatedBy, string(m.Status), m.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert match")
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, errors.Wrap(err, "get match by id")
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches ORDER BY scheduled_at, id`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "select matches")
	}
	return matchesFromRows(rows), nil
}

func (r *MatchRepository) ListByCreator(ctx context.Context, creatorID string) ([]match.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches WHERE created_by = $1 ORDER BY scheduled_at, id`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, creatorID); err != nil {
		return nil, errors.Wrap(err, "select matches by creator")
	}
	return matchesFromRows(rows), nil
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, id string, status match.Status) error {
	const query = `UPDATE matches SET status = $1 WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, string(status), id); err != nil {
		return errors.Wrap(err, "update match status")
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.ID,
		ScheduledAt: row.ScheduledAt,
		Location:    row.Location,
		CourtCount:  row.CourtCount,
		Type:        match.Type(row.Type),
		SubType:     match.SubType(row.SubType),
		CreatedBy:   row.CreatedBy,
		Status:      match.Status(row.Status),
		CreatedAt:   row.CreatedAt,
	}
}

func matchesFromRows(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out
}
