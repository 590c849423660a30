// Package services holds the application operations the CLI calls: plan
// management and opening a reconciliation store for one list of a plan.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/liststore"
	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/dmitrijs2005/listkeeper/internal/repositories/records"
	"github.com/dmitrijs2005/listkeeper/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// Exporter uploads a plan with its list snapshots and returns the object key.
type Exporter interface {
	Export(ctx context.Context, plan models.Plan, lists ...any) (string, error)
}

// PlanService manages plans and the lists they own.
type PlanService struct {
	repos repomanager.Repositories
	log   logging.Logger
	now   func() time.Time
}

func NewPlanService(repos repomanager.Repositories, log logging.Logger) *PlanService {
	return &PlanService{repos: repos, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// CreatePlan stores a new plan. The title must not be blank.
func (s *PlanService) CreatePlan(ctx context.Context, title string) (*models.Plan, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty title", common.ErrInvalidPlan)
	}
	now := s.now()
	p := &models.Plan{ID: uuid.New(), Title: title, CreatedAt: now, UpdatedAt: now}
	if err := s.repos.Plans.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	s.log.Info(ctx, "plan created", "plan_id", p.ID)
	return p, nil
}

func (s *PlanService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	return s.repos.Plans.List(ctx)
}

func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	return s.repos.Plans.Get(ctx, id)
}

// RenamePlan changes a plan title. Blank titles are rejected.
func (s *PlanService) RenamePlan(ctx context.Context, id uuid.UUID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: empty title", common.ErrInvalidPlan)
	}
	return s.repos.Plans.Rename(ctx, id, title, s.now())
}

// DeletePlan removes a plan with all of its lists.
func (s *PlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if err := s.repos.Plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	s.log.Info(ctx, "plan deleted", "plan_id", id)
	return nil
}

// OpenTasks opens the task or checklist list of a plan, creating it on first
// access.
func (s *PlanService) OpenTasks(ctx context.Context, planID uuid.UUID, kind models.Kind, opts ...liststore.Option[models.TaskPayload]) (*liststore.Store[models.TaskPayload], error) {
	if kind != models.KindTasks && kind != models.KindChecklist {
		return nil, fmt.Errorf("%w: %q does not hold tasks", common.ErrInvalidKind, kind)
	}
	return openStore(ctx, s, s.repos.Tasks, planID, kind, opts...)
}

// OpenShopping opens the shopping list of a plan, creating it on first
// access.
func (s *PlanService) OpenShopping(ctx context.Context, planID uuid.UUID, opts ...liststore.Option[models.ShoppingPayload]) (*liststore.Store[models.ShoppingPayload], error) {
	return openStore(ctx, s, s.repos.Shopping, planID, models.KindShopping, opts...)
}

func openStore[P models.Payload[P]](ctx context.Context, s *PlanService, repo records.Repository[P], planID uuid.UUID, kind models.Kind, opts ...liststore.Option[P]) (*liststore.Store[P], error) {
	if _, err := s.repos.Plans.Get(ctx, planID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", common.ErrInvalidPlan, planID)
		}
		return nil, err
	}
	rec, err := repo.FetchOrCreate(ctx, planID, kind)
	if err != nil {
		return nil, fmt.Errorf("open %s list: %w", kind, err)
	}
	opts = append([]liststore.Option[P]{liststore.WithLogger[P](s.log.With("kind", kind))}, opts...)
	return liststore.Open[P](ctx, repo, rec.ID, opts...)
}

// ExportPlan uploads the plan and every list it already has.
func (s *PlanService) ExportPlan(ctx context.Context, exp Exporter, planID uuid.UUID) (string, error) {
	plan, err := s.repos.Plans.Get(ctx, planID)
	if err != nil {
		return "", err
	}

	var lists []any
	for _, kind := range models.Kinds {
		var (
			snap any
			err  error
		)
		switch kind {
		case models.KindShopping:
			snap, err = findSnapshot(ctx, s.repos.Shopping, planID, kind)
		default:
			snap, err = findSnapshot(ctx, s.repos.Tasks, planID, kind)
		}
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		lists = append(lists, snap)
	}

	key, err := exp.Export(ctx, *plan, lists...)
	if err != nil {
		return "", fmt.Errorf("export plan: %w", err)
	}
	s.log.Info(ctx, "plan exported", "plan_id", planID, "key", key, "lists", len(lists))
	return key, nil
}

func findSnapshot[P models.Payload[P]](ctx context.Context, repo records.Repository[P], planID uuid.UUID, kind models.Kind) (any, error) {
	rec, err := repo.FindByPlan(ctx, planID, kind)
	if err != nil {
		return nil, err
	}
	return models.NewSnapshot(rec), nil
}
