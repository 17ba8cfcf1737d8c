package postgres

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/aryasetia/dropshot/internal/domain/roster"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, auth_id, name, email, gender, pin`

func (r *PlayerRepository) List(ctx context.Context) ([]roster.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players ORDER BY name, id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "select players")
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]roster.Player, error) {
	if len(ids) == 0 {
		return []roster.Player{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+playerColumns+` FROM players WHERE id IN (?) ORDER BY name, id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build select players by ids query")
	}
	query = r.db.Rebind(query)

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select players by ids")
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByAuthID(ctx context.Context, authID string) (roster.Player, bool, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE auth_id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, authID); err != nil {
		if isNotFound(err) {
			return roster.Player{}, false, nil
		}
		return roster.Player{}, false, errors.Wrap(err, "get player by auth id")
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p roster.Player) error {
	const query = `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			auth_id = EXCLUDED.auth_id,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			gender = EXCLUDED.gender,
			pin = EXCLUDED.pin`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.AuthID, p.Name, p.Email,
		nullableString(string(p.Gender)), nullableString(p.PIN),
	)
	if err != nil {
		return errors.Wrap(err, "upsert player")
	}
	return nil
}

func playerFromRow(row playerTableModel) roster.Player {
	return roster.Player{
		ID:     row.ID,
		AuthID: row.AuthID,
		Name:   row.Name,
		Email:  row.Email,
		Gender: roster.Gender(row.Gender.String),
		PIN:    row.PIN.String,
	}
}

func playersFromRows(rows []playerTableModel) []roster.Player {
	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
