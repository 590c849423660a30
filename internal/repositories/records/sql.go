package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// queries holds the dialect specific statements. Argument order is shared by
// every dialect.
type queries struct {
	selectList       string // id
	selectListByPlan string // plan_id, kind
	insertList       string // id, plan_id, kind, title, notes, budget, currency, created_at, updated_at
	updateList       string // title, notes, budget, currency, updated_at, id
	deleteList       string // id
	selectItems      string // list_id
	selectItemIDs    string // list_id
	upsertItem       string // id, list_id, payload, sort_index, created_at, updated_at
	deleteItem       string // id
	deleteItems      string // list_id
}

// sqlRepository is the database/sql implementation shared by the SQLite and
// PostgreSQL repositories.
type sqlRepository[P models.Payload[P]] struct {
	db  dbx.DB
	q   queries
	now func() time.Time
}

func (r *sqlRepository[P]) Fetch(ctx context.Context, id uuid.UUID) (*models.Record[P], error) {
	return r.load(ctx, r.q.selectList, id.String())
}

func (r *sqlRepository[P]) FindByPlan(ctx context.Context, planID uuid.UUID, kind models.Kind) (*models.Record[P], error) {
	return r.load(ctx, r.q.selectListByPlan, planID.String(), string(kind))
}

func (r *sqlRepository[P]) FetchOrCreate(ctx context.Context, planID uuid.UUID, kind models.Kind) (*models.Record[P], error) {
	rec := newRecord[P](planID, kind, r.now)
	_, err := r.db.ExecContext(ctx, r.q.insertList,
		rec.ID.String(), rec.PlanID.String(), string(rec.Kind), rec.Title, rec.Notes, rec.Budget, rec.Currency,
		toNanos(rec.CreatedAt), toNanos(rec.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return r.FindByPlan(ctx, planID, kind)
}

func (r *sqlRepository[P]) Save(ctx context.Context, rec *models.Record[P]) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := dbx.Exec(ctx, tx, r.q.updateList,
			rec.Title, rec.Notes, rec.Budget, rec.Currency, toNanos(rec.UpdatedAt), rec.ID.String())
		if err != nil {
			return fmt.Errorf("failed to update list: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("list %s: %w", rec.ID, common.ErrNotFound)
		}

		stored, err := r.itemIDs(ctx, tx, rec.ID)
		if err != nil {
			return err
		}
		keep := make(map[uuid.UUID]bool, len(rec.Items))
		for _, it := range rec.Items {
			keep[it.ID] = true
		}
		for _, id := range stored {
			if keep[id] {
				continue
			}
			if _, err := tx.ExecContext(ctx, r.q.deleteItem, id.String()); err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}
		}

		for _, it := range rec.Items {
			payload, err := encodePayload(it.Payload)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, r.q.upsertItem,
				it.ID.String(), rec.ID.String(), payload, it.SortIndex, toNanos(it.CreatedAt), toNanos(it.UpdatedAt))
			if err != nil {
				return fmt.Errorf("failed to upsert item: %w", err)
			}
		}
		return nil
	})
}

func (r *sqlRepository[P]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, r.q.deleteItems, id.String()); err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		n, err := dbx.Exec(ctx, tx, r.q.deleteList, id.String())
		if err != nil {
			return fmt.Errorf("failed to delete list: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("list %s: %w", id, common.ErrNotFound)
		}
		return nil
	})
}

func (r *sqlRepository[P]) load(ctx context.Context, query string, args ...any) (*models.Record[P], error) {
	var (
		rec              models.Record[P]
		kind             string
		created, updated int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID, &rec.PlanID, &kind, &rec.Title, &rec.Notes, &rec.Budget, &rec.Currency, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select list: %w", err)
	}
	rec.Kind = models.Kind(kind)
	rec.CreatedAt = fromNanos(created)
	rec.UpdatedAt = fromNanos(updated)

	items, err := r.items(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}

func (r *sqlRepository[P]) items(ctx context.Context, listID uuid.UUID) ([]*models.Item[P], error) {
	rows, err := r.db.QueryContext(ctx, r.q.selectItems, listID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []*models.Item[P]
	for rows.Next() {
		var (
			it               models.Item[P]
			raw              []byte
			created, updated int64
		)
		if err := rows.Scan(&it.ID, &raw, &it.SortIndex, &created, &updated); err != nil {
			return nil, err
		}
		if it.Payload, err = decodePayload[P](raw); err != nil {
			return nil, err
		}
		it.CreatedAt = fromNanos(created)
		it.UpdatedAt = fromNanos(updated)
		result = append(result, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *sqlRepository[P]) itemIDs(ctx context.Context, tx dbx.DBTX, listID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.QueryContext(ctx, r.q.selectItemIDs, listID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to select item ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
