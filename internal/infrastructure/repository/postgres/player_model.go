package postgres

import "database/sql"

type playerTableModel struct {
	ID     string         `db:"id"`
	AuthID string         `db:"auth_id"`
	Name   string         `db:"name"`
	Email  string         `db:"email"`
	Gender sql.NullString `db:"gender"`
	PIN    sql.NullString `db:"pin"`
}
