package plans

import "github.com/dmitrijs2005/listkeeper/internal/dbx"

// PostgresRepository implements Repository on PostgreSQL.
type PostgresRepository struct {
	sqlRepository
}

// NewPostgresRepository returns a PostgresRepository bound to db.
func NewPostgresRepository(db dbx.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: queries{
		insert: `INSERT INTO plans (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		get:    `SELECT id, title, created_at, updated_at FROM plans WHERE id = $1`,
		list:   `SELECT id, title, created_at, updated_at FROM plans ORDER BY created_at, id`,
		rename: `UPDATE plans SET title = $1, updated_at = $2 WHERE id = $3`,
		deleteItems: `DELETE FROM list_items
			WHERE list_id IN (SELECT id FROM lists WHERE plan_id = $1)`,
		deleteLists: `DELETE FROM lists WHERE plan_id = $1`,
		deletePlan:  `DELETE FROM plans WHERE id = $1`,
	}}}
}
