package records

import (
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/models"
)

var postgresQueries = queries{
	selectList: `SELECT id, plan_id, kind, title, notes, budget, currency, created_at, updated_at
		FROM lists WHERE id = $1`,
	selectListByPlan: `SELECT id, plan_id, kind, title, notes, budget, currency, created_at, updated_at
		FROM lists WHERE plan_id = $1 AND kind = $2`,
	insertList: `INSERT INTO lists (id, plan_id, kind, title, notes, budget, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (plan_id, kind) DO NOTHING`,
	updateList: `UPDATE lists SET title = $1, notes = $2, budget = $3, currency = $4, updated_at = $5
		WHERE id = $6`,
	deleteList: `DELETE FROM lists WHERE id = $1`,
	selectItems: `SELECT id, payload, sort_index, created_at, updated_at
		FROM list_items WHERE list_id = $1 ORDER BY sort_index, created_at, id`,
	selectItemIDs: `SELECT id FROM list_items WHERE list_id = $1`,
	upsertItem: `INSERT INTO list_items (id, list_id, payload, sort_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload,
			sort_index = EXCLUDED.sort_index,
			updated_at = EXCLUDED.updated_at`,
	deleteItem:  `DELETE FROM list_items WHERE id = $1`,
	deleteItems: `DELETE FROM list_items WHERE list_id = $1`,
}

// PostgresRepository implements Repository on PostgreSQL through the pgx
// database/sql driver.
type PostgresRepository[P models.Payload[P]] struct {
	sqlRepository[P]
}

// NewPostgresRepository returns a PostgresRepository bound to db.
func NewPostgresRepository[P models.Payload[P]](db dbx.DB) *PostgresRepository[P] {
	return &PostgresRepository[P]{sqlRepository[P]{
		db:  db,
		q:   postgresQueries,
		now: func() time.Time { return time.Now().UTC() },
	}}
}
