// Package plans persists plans, the parent entities that own lists.
// Deleting a plan removes its lists and their items in the same transaction.
package plans

import (
	"context"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// Repository describes CRUD operations on plans.
type Repository interface {
	// Create inserts a new plan.
	Create(ctx context.Context, p *models.Plan) error

	// Get returns a plan by id or common.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Plan, error)

	// List returns all plans ordered by creation time.
	List(ctx context.Context) ([]models.Plan, error)

	// Rename changes the title of a plan.
	Rename(ctx context.Context, id uuid.UUID, title string, updatedAt time.Time) error

	// Delete removes the plan together with its lists and items.
	Delete(ctx context.Context, id uuid.UUID) error
}
