package liststore

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/models"
)

// ClearCompleted removes every done item and returns full copies of them for
// a later Restore. It returns nil when nothing was done or the save failed.
func (s *Store[P]) ClearCompleted(ctx context.Context) []models.RemovedItem[P] {
	var removed []models.RemovedItem[P]
	saved := s.mutate(ctx, "clear_completed", func(rec *models.Record[P], _ time.Time) bool {
		removed = removed[:0]
		models.SortItems(rec.Items)
		kept := make([]*models.Item[P], 0, len(rec.Items))
		for _, it := range rec.Items {
			if it.Payload.Completed() {
				removed = append(removed, models.Capture(it))
				continue
			}
			kept = append(kept, it)
		}
		if len(removed) == 0 {
			return false
		}
		models.Reindex(kept)
		rec.Items = kept
		return true
	})
	if !saved {
		return nil
	}
	return removed
}

// Restore re-creates removed items with their original ids, payloads and
// timestamps. Items whose id is already present are skipped.
func (s *Store[P]) Restore(ctx context.Context, removed []models.RemovedItem[P]) bool {
	if len(removed) == 0 {
		return false
	}
	return s.mutate(ctx, "restore", func(rec *models.Record[P], _ time.Time) bool {
		added := false
		for _, r := range removed {
			if i, _ := rec.Find(r.ID); i >= 0 {
				continue
			}
			rec.Items = append(rec.Items, r.Item())
			added = true
		}
		if !added {
			return false
		}
		models.SortItems(rec.Items)
		models.Reindex(rec.Items)
		return true
	})
}

// UndoBuffer holds the most recent batch of cleared items until it is taken
// or discarded. Timing the undo window is left to the caller, which passes
// the capture time in and reads it back.
type UndoBuffer[P models.Payload[P]] struct {
	mu         sync.Mutex
	items      []models.RemovedItem[P]
	capturedAt time.Time
}

// Capture replaces the buffered batch. An empty batch clears the buffer.
func (b *UndoBuffer[P]) Capture(items []models.RemovedItem[P], at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(items) == 0 {
		b.items, b.capturedAt = nil, time.Time{}
		return
	}
	b.items = append([]models.RemovedItem[P](nil), items...)
	b.capturedAt = at
}

// Take returns the buffered batch with its capture time and empties the
// buffer.
func (b *UndoBuffer[P]) Take() ([]models.RemovedItem[P], time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items, at := b.items, b.capturedAt
	b.items, b.capturedAt = nil, time.Time{}
	return items, at
}

// Discard drops the buffered batch.
func (b *UndoBuffer[P]) Discard() {
	b.Capture(nil, time.Time{})
}

func (b *UndoBuffer[P]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
