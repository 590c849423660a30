package records

import (
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/models"
)

var sqliteQueries = queries{
	selectList: `select id, plan_id, kind, title, notes, budget, currency, created_at, updated_at
		from lists where id=?`,
	selectListByPlan: `select id, plan_id, kind, title, notes, budget, currency, created_at, updated_at
		from lists where plan_id=? and kind=?`,
	insertList: `INSERT INTO lists (id, plan_id, kind, title, notes, budget, currency, created_at, updated_at)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(plan_id, kind) DO NOTHING`,
	updateList: `update lists set title=?, notes=?, budget=?, currency=?, updated_at=? where id=?`,
	deleteList: `delete from lists where id=?`,
	selectItems: `select id, payload, sort_index, created_at, updated_at
		from list_items where list_id=? order by sort_index, created_at, id`,
	selectItemIDs: `select id from list_items where list_id=?`,
	upsertItem: `INSERT INTO list_items (id, list_id, payload, sort_index, created_at, updated_at)
		values (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload,
			sort_index = excluded.sort_index,
			updated_at = excluded.updated_at`,
	deleteItem:  `delete from list_items where id=?`,
	deleteItems: `delete from list_items where list_id=?`,
}

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository[P models.Payload[P]] struct {
	sqlRepository[P]
}

// NewSQLiteRepository returns a SQLiteRepository bound to db.
func NewSQLiteRepository[P models.Payload[P]](db dbx.DB) *SQLiteRepository[P] {
	return &SQLiteRepository[P]{sqlRepository[P]{
		db:  db,
		q:   sqliteQueries,
		now: func() time.Time { return time.Now().UTC() },
	}}
}
