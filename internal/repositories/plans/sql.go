package plans

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

type queries struct {
	insert      string // id, title, created_at, updated_at
	get         string // id
	list        string
	rename      string // title, updated_at, id
	deleteItems string // plan_id
	deleteLists string // plan_id
	deletePlan  string // id
}

type sqlRepository struct {
	db dbx.DB
	q  queries
}

func (r *sqlRepository) Create(ctx context.Context, p *models.Plan) error {
	_, err := r.db.ExecContext(ctx, r.q.insert,
		p.ID.String(), p.Title, p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

func (r *sqlRepository) Get(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	p, err := scanPlan(r.db.QueryRowContext(ctx, r.q.get, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select plan: %w", err)
	}
	return p, nil
}

func (r *sqlRepository) List(ctx context.Context) ([]models.Plan, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("failed to select plans: %w", err)
	}
	defer rows.Close()

	var result []models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *sqlRepository) Rename(ctx context.Context, id uuid.UUID, title string, updatedAt time.Time) error {
	n, err := dbx.Exec(ctx, r.db, r.q.rename, title, updatedAt.UnixNano(), id.String())
	if err != nil {
		return fmt.Errorf("failed to rename plan: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *sqlRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, r.q.deleteItems, id.String()); err != nil {
			return fmt.Errorf("failed to delete list items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, r.q.deleteLists, id.String()); err != nil {
			return fmt.Errorf("failed to delete lists: %w", err)
		}
		n, err := dbx.Exec(ctx, tx, r.q.deletePlan, id.String())
		if err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		if n == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(s scanner) (*models.Plan, error) {
	var (
		p                models.Plan
		created, updated int64
	)
	if err := s.Scan(&p.ID, &p.Title, &created, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(0, created).UTC()
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return &p, nil
}
