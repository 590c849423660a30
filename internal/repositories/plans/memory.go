package plans

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// CascadeFunc removes data owned by a plan. MemoryRepository calls every
// registered cascade before dropping the plan itself.
type CascadeFunc func(ctx context.Context, planID uuid.UUID) error

// MemoryRepository keeps plans in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	plans   map[uuid.UUID]models.Plan
	cascade []CascadeFunc
}

func NewMemoryRepository(cascade ...CascadeFunc) *MemoryRepository {
	return &MemoryRepository{plans: make(map[uuid.UUID]models.Plan), cascade: cascade}
}

func (r *MemoryRepository) Create(_ context.Context, p *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.ID] = *p
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.Plan) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func (r *MemoryRepository) Rename(_ context.Context, id uuid.UUID, title string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return common.ErrNotFound
	}
	p.Title, p.UpdatedAt = title, updatedAt
	r.plans[id] = p
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return common.ErrNotFound
	}
	for _, fn := range r.cascade {
		if err := fn(ctx, id); err != nil {
			return err
		}
	}
	delete(r.plans, id)
	return nil
}
