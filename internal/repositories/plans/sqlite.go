package plans

import "github.com/dmitrijs2005/listkeeper/internal/dbx"

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository struct {
	sqlRepository
}

// NewSQLiteRepository returns a SQLiteRepository bound to db.
func NewSQLiteRepository(db dbx.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: queries{
		insert: `insert into plans (id, title, created_at, updated_at) values (?, ?, ?, ?)`,
		get:    `select id, title, created_at, updated_at from plans where id=?`,
		list:   `select id, title, created_at, updated_at from plans order by created_at, id`,
		rename: `update plans set title=?, updated_at=? where id=?`,
		deleteItems: `delete from list_items
			where list_id in (select id from lists where plan_id=?)`,
		deleteLists: `delete from lists where plan_id=?`,
		deletePlan:  `delete from plans where id=?`,
	}}}
}
