package records

import (
	"context"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// Repository stores lists of one payload type.
type Repository[P models.Payload[P]] interface {
	// Fetch returns the list with id or common.ErrNotFound.
	Fetch(ctx context.Context, id uuid.UUID) (*models.Record[P], error)

	// FindByPlan returns the list of the given kind owned by planID or
	// common.ErrNotFound.
	FindByPlan(ctx context.Context, planID uuid.UUID, kind models.Kind) (*models.Record[P], error)

	// FetchOrCreate returns the list of the given kind owned by planID,
	// creating an empty one with the kind's default title on first access.
	FetchOrCreate(ctx context.Context, planID uuid.UUID, kind models.Kind) (*models.Record[P], error)

	// Save writes the list and replaces its items with rec.Items.
	Save(ctx context.Context, rec *models.Record[P]) error

	// DeleteByID removes the list and its items.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

func newRecord[P models.Payload[P]](planID uuid.UUID, kind models.Kind, now func() time.Time) *models.Record[P] {
	ts := now()
	return &models.Record[P]{
		ID:        uuid.New(),
		PlanID:    planID,
		Kind:      kind,
		Title:     kind.DefaultTitle(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
