package liststore

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// Move relocates the items at the given positions so they land before the
// item currently at position to, or at the end when to equals the length.
// Positions refer to the canonical order before the move. Out-of-range
// positions make the call a no-op.
func (s *Store[P]) Move(ctx context.Context, from []int, to int) bool {
	if len(from) == 0 {
		return false
	}
	return s.mutate(ctx, "move", func(rec *models.Record[P], _ time.Time) bool {
		items := slices.Clone(rec.Items)
		models.SortItems(items)

		moved, ok := moveOffsets(items, from, to)
		if !ok {
			return false
		}
		return commitOrder(rec, items, moved)
	})
}

// Reorder puts the items with the given ids first, in that order, followed by
// every other item in its prior relative order. Repeated ids keep their first
// position and unknown ids are dropped.
func (s *Store[P]) Reorder(ctx context.Context, ids []uuid.UUID) bool {
	return s.mutate(ctx, "reorder", func(rec *models.Record[P], _ time.Time) bool {
		items := slices.Clone(rec.Items)
		models.SortItems(items)
		return commitOrder(rec, items, orderByIDs(items, ids))
	})
}

func moveOffsets[T any](items []T, from []int, to int) ([]T, bool) {
	n := len(items)
	if to < 0 || to > n {
		return nil, false
	}
	src := slices.Clone(from)
	slices.Sort(src)
	src = slices.Compact(src)
	if src[0] < 0 || src[len(src)-1] >= n {
		return nil, false
	}

	picked := make(map[int]bool, len(src))
	block := make([]T, 0, len(src))
	for _, i := range src {
		picked[i] = true
		block = append(block, items[i])
	}
	rest := make([]T, 0, n-len(src))
	dest := to
	for i, it := range items {
		if picked[i] {
			if i < to {
				dest--
			}
			continue
		}
		rest = append(rest, it)
	}
	return slices.Insert(rest, dest, block...), true
}

func orderByIDs[P models.Payload[P]](items []*models.Item[P], ids []uuid.UUID) []*models.Item[P] {
	byID := make(map[uuid.UUID]*models.Item[P], len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]*models.Item[P], 0, len(items))
	used := make(map[uuid.UUID]bool, len(items))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok || used[id] {
			continue
		}
		used[id] = true
		out = append(out, it)
	}
	for _, it := range items {
		if !used[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// commitOrder assigns next as the record's item order. It reports false when
// both order and sort indices are already as requested.
func commitOrder[P models.Payload[P]](rec *models.Record[P], prev, next []*models.Item[P]) bool {
	reordered := !slices.Equal(prev, next)
	reindexed := models.Reindex(next)
	if !reordered && !reindexed {
		return false
	}
	rec.Items = next
	return true
}
