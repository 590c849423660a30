package liststore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// Add appends a new item with the given text. Empty text is ignored.
func (s *Store[P]) Add(ctx context.Context, text string) (uuid.UUID, bool) {
	var zero P
	return s.AddPayload(ctx, zero.Relabel(text))
}

// AddPayload appends a new item after the current last one.
func (s *Store[P]) AddPayload(ctx context.Context, p P) (uuid.UUID, bool) {
	p, ok := p.Normalize()
	if !ok {
		s.log.Debug(ctx, "empty item text, skipping", "op", "add")
		return uuid.Nil, false
	}
	var zero P
	p, _ = p.Merge(zero)

	id := s.newID()
	saved := s.mutate(ctx, "add", func(rec *models.Record[P], now time.Time) bool {
		next := 0
		for _, it := range rec.Items {
			next = max(next, it.SortIndex+1)
		}
		rec.Items = append(rec.Items, &models.Item[P]{
			ID:        id,
			Payload:   p,
			SortIndex: next,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return true
	})
	if !saved {
		return uuid.Nil, false
	}
	return id, true
}

// Toggle flips the done flag of the item with id.
func (s *Store[P]) Toggle(ctx context.Context, id uuid.UUID) bool {
	return s.mutate(ctx, "toggle", func(rec *models.Record[P], now time.Time) bool {
		_, it := rec.Find(id)
		if it == nil {
			return false
		}
		it.Payload = it.Payload.SetCompleted(!it.Payload.Completed())
		it.UpdatedAt = now
		return true
	})
}

// Rename sets the list title. Empty and unchanged titles are ignored.
func (s *Store[P]) Rename(ctx context.Context, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	return s.mutate(ctx, "rename", func(rec *models.Record[P], _ time.Time) bool {
		if rec.Title == title {
			return false
		}
		rec.Title = title
		return true
	})
}

// EditText replaces the display text of the item with id.
func (s *Store[P]) EditText(ctx context.Context, id uuid.UUID, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return s.mutate(ctx, "edit_text", func(rec *models.Record[P], now time.Time) bool {
		_, it := rec.Find(id)
		if it == nil || it.Payload.Label() == text {
			return false
		}
		it.Payload = it.Payload.Relabel(text)
		it.UpdatedAt = now
		return true
	})
}

// UpdatePayload copies the draft-owned fields of p onto the item with id.
func (s *Store[P]) UpdatePayload(ctx context.Context, id uuid.UUID, p P) bool {
	p, ok := p.Normalize()
	if !ok {
		return false
	}
	return s.mutate(ctx, "update_payload", func(rec *models.Record[P], now time.Time) bool {
		_, it := rec.Find(id)
		if it == nil {
			return false
		}
		return patchItem(it, p, now)
	})
}

// Delete removes the item with id and reindexes the survivors.
func (s *Store[P]) Delete(ctx context.Context, id uuid.UUID) bool {
	return s.mutate(ctx, "delete", func(rec *models.Record[P], _ time.Time) bool {
		i, _ := rec.Find(id)
		if i < 0 {
			return false
		}
		rec.Items = slices.Delete(rec.Items, i, i+1)
		models.SortItems(rec.Items)
		models.Reindex(rec.Items)
		return true
	})
}

// SetNotes replaces the free-form notes of the list.
func (s *Store[P]) SetNotes(ctx context.Context, notes string) bool {
	notes = strings.TrimSpace(notes)
	return s.mutate(ctx, "set_notes", func(rec *models.Record[P], _ time.Time) bool {
		if rec.Notes == notes {
			return false
		}
		rec.Notes = notes
		return true
	})
}

// SetBudget sets the list budget. Negative and non-finite amounts are
// ignored; an empty currency keeps the current one.
func (s *Store[P]) SetBudget(ctx context.Context, amount float64, currency string) bool {
	if !models.ValidAmount(amount) {
		s.log.Debug(ctx, "invalid budget, skipping", "op", "set_budget")
		return false
	}
	currency = normalizeCurrency(currency)
	return s.mutate(ctx, "set_budget", func(rec *models.Record[P], _ time.Time) bool {
		cur := rec.Currency
		if currency != "" {
			cur = currency
		}
		if rec.Budget == amount && rec.Currency == cur {
			return false
		}
		rec.Budget = amount
		rec.Currency = cur
		return true
	})
}
