package postgres

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/valyala/bytebufferpool"

	"github.com/aryasetia/dropshot/internal/domain/engine"
	"github.com/aryasetia/dropshot/internal/domain/session"
)

type CheckpointRepository struct {
	db *sqlx.DB
}

func NewCheckpointRepository(db *sqlx.DB) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

func (r *CheckpointRepository) Save(ctx context.Context, cp session.Checkpoint) error {
	state, err := encodeSnapshot(cp.State)
	if err != nil {
		return errors.Wrap(err, "encode checkpoint state")
	}

	// Pool workers can deliver saves out of order; the WHERE clause
	// keeps an older snapshot from replacing a newer one.
	const query = `
		INSERT INTO match_checkpoints (match_id, taken_at, state)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id) DO UPDATE SET
			taken_at = EXCLUDED.taken_at,
			state = EXCLUDED.state
		WHERE match_checkpoints.taken_at <= EXCLUDED.taken_at`

	if _, err := r.db.ExecContext(ctx, query, cp.MatchID, cp.TakenAt, state); err != nil {
		return errors.Wrap(err, "upsert checkpoint")
	}
	return nil
}

func (r *CheckpointRepository) GetByMatchID(ctx context.Context, matchID string) (session.Checkpoint, bool, error) {
	const query = `SELECT match_id, taken_at, state FROM match_checkpoints WHERE match_id = $1`

	var row checkpointTableModel
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return session.Checkpoint{}, false, nil
		}
		return session.Checkpoint{}, false, errors.Wrap(err, "get checkpoint by match id")
	}

	var snap engine.Snapshot
	if err := sonic.Unmarshal(row.State, &snap); err != nil {
		return session.Checkpoint{}, false, errors.Wrap(err, "decode checkpoint state")
	}
	return session.Checkpoint{
		MatchID: row.MatchID,
		TakenAt: row.TakenAt,
		State:   snap,
	}, true, nil
}

func (r *CheckpointRepository) Delete(ctx context.Context, matchID string) error {
	const query = `DELETE FROM match_checkpoints WHERE match_id = $1`

	if _, err := r.db.ExecContext(ctx, query, matchID); err != nil {
		return errors.Wrap(err, "delete checkpoint")
	}
	return nil
}

// encodeSnapshot streams the snapshot through a pooled buffer; the
// returned slice is an owned copy.
func encodeSnapshot(snap engine.Snapshot) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(snap); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}
