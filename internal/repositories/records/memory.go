package records

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

type planKind struct {
	plan uuid.UUID
	kind models.Kind
}

// MemoryRepository keeps lists in process memory.
type MemoryRepository[P models.Payload[P]] struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*models.Record[P]
	byPlan map[planKind]uuid.UUID
	now    func() time.Time
}

func NewMemoryRepository[P models.Payload[P]]() *MemoryRepository[P] {
	return &MemoryRepository[P]{
		byID:   make(map[uuid.UUID]*models.Record[P]),
		byPlan: make(map[planKind]uuid.UUID),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository[P]) Fetch(_ context.Context, id uuid.UUID) (*models.Record[P], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return rec.Clone(), nil
}

func (r *MemoryRepository[P]) FindByPlan(ctx context.Context, planID uuid.UUID, kind models.Kind) (*models.Record[P], error) {
	r.mu.RLock()
	id, ok := r.byPlan[planKind{planID, kind}]
	r.mu.RUnlock()
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.Fetch(ctx, id)
}

func (r *MemoryRepository[P]) FetchOrCreate(_ context.Context, planID uuid.UUID, kind models.Kind) (*models.Record[P], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := planKind{planID, kind}
	if id, ok := r.byPlan[key]; ok {
		return r.byID[id].Clone(), nil
	}
	rec := newRecord[P](planID, kind, r.now)
	r.byID[rec.ID] = rec.Clone()
	r.byPlan[key] = rec.ID
	return rec, nil
}

func (r *MemoryRepository[P]) Save(_ context.Context, rec *models.Record[P]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; !ok {
		return common.ErrNotFound
	}
	r.byID[rec.ID] = rec.Clone()
	return nil
}

func (r *MemoryRepository[P]) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byPlan, planKind{rec.PlanID, rec.Kind})
	return nil
}

// DeletePlan removes every list owned by planID.
func (r *MemoryRepository[P]) DeletePlan(_ context.Context, planID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, id := range r.byPlan {
		if key.plan == planID {
			delete(r.byID, id)
			delete(r.byPlan, key)
		}
	}
	return nil
}
