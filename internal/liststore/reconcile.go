package liststore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// ApplyDraft reconciles d against the canonical record and saves when
// anything differs. It reports whether a save happened.
//
// When the surviving item ids match the canonical order the items are patched
// in place; any addition, removal or reordering rebuilds the collection.
func (s *Store[P]) ApplyDraft(ctx context.Context, d models.Draft[P]) bool {
	if d.RecordID != uuid.Nil && d.RecordID != s.id {
		s.log.Debug(ctx, "draft belongs to another list, skipping", "draft_list_id", d.RecordID)
		return false
	}
	items := normalizeDraft(d.Items, s.newID)
	return s.mutate(ctx, "apply_draft", func(rec *models.Record[P], now time.Time) bool {
		changed := reconcileScalars(rec, d)
		if reconcileItems(rec, items, now) {
			changed = true
		}
		return changed
	})
}

// normalizeDraft trims payloads, drops items whose required text is empty,
// assigns ids to new items and keeps the first occurrence of every id.
func normalizeDraft[P models.Payload[P]](in []models.DraftItem[P], newID func() uuid.UUID) []models.DraftItem[P] {
	out := make([]models.DraftItem[P], 0, len(in))
	seen := make(map[uuid.UUID]struct{}, len(in))
	for _, di := range in {
		p, ok := di.Payload.Normalize()
		if !ok {
			continue
		}
		id := di.ID
		if id == uuid.Nil {
			id = newID()
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, models.DraftItem[P]{ID: id, Payload: p})
	}
	return out
}

func reconcileScalars[P models.Payload[P]](rec *models.Record[P], d models.Draft[P]) bool {
	changed := false
	if title := strings.TrimSpace(d.Title); title != "" && title != rec.Title {
		rec.Title = title
		changed = true
	}
	if notes := strings.TrimSpace(d.Notes); notes != rec.Notes {
		rec.Notes = notes
		changed = true
	}
	// Negative and non-finite budgets keep the current one.
	if models.ValidAmount(d.Budget) && d.Budget != rec.Budget {
		rec.Budget = d.Budget
		changed = true
	}
	if currency := normalizeCurrency(d.Currency); currency != rec.Currency {
		rec.Currency = currency
		changed = true
	}
	return changed
}

func reconcileItems[P models.Payload[P]](rec *models.Record[P], items []models.DraftItem[P], now time.Time) bool {
	canonical := slices.Clone(rec.Items)
	models.SortItems(canonical)

	if sameOrder(canonical, items) {
		changed := false
		for i, di := range items {
			if patchItem(canonical[i], di.Payload, now) {
				changed = true
			}
		}
		if models.Reindex(canonical) {
			changed = true
		}
		rec.Items = canonical
		return changed
	}

	byID := make(map[uuid.UUID]*models.Item[P], len(canonical))
	for _, it := range canonical {
		byID[it.ID] = it
	}
	rebuilt := make([]*models.Item[P], 0, len(items))
	for _, di := range items {
		if it, ok := byID[di.ID]; ok {
			patchItem(it, di.Payload, now)
			rebuilt = append(rebuilt, it)
			continue
		}
		var zero P
		p, _ := di.Payload.Merge(zero)
		rebuilt = append(rebuilt, &models.Item[P]{
			ID:        di.ID,
			Payload:   p,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	models.Reindex(rebuilt)
	rec.Items = rebuilt
	return true
}

// patchItem copies the draft-owned fields of p onto it and stamps it only
// when something differed.
func patchItem[P models.Payload[P]](it *models.Item[P], p P, now time.Time) bool {
	merged, changed := p.Merge(it.Payload)
	if !changed {
		return false
	}
	it.Payload = merged
	it.UpdatedAt = now
	return true
}

func sameOrder[P models.Payload[P]](canonical []*models.Item[P], items []models.DraftItem[P]) bool {
	if len(canonical) != len(items) {
		return false
	}
	for i := range canonical {
		if canonical[i].ID != items[i].ID {
			return false
		}
	}
	return true
}

func normalizeCurrency(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}
