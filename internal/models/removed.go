package models

import (
	"time"

	"github.com/google/uuid"
)

// RemovedItem is a full copy of a line item captured when it was removed, so
// that it can be re-created with its original identity later.
type RemovedItem[P Payload[P]] struct {
	ID        uuid.UUID
	Payload   P
	SortIndex int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capture copies it into a RemovedItem.
func Capture[P Payload[P]](it *Item[P]) RemovedItem[P] {
	return RemovedItem[P]{
		ID:        it.ID,
		Payload:   it.Payload,
		SortIndex: it.SortIndex,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// Item rebuilds the line item.
func (r RemovedItem[P]) Item() *Item[P] {
	return &Item[P]{
		ID:        r.ID,
		Payload:   r.Payload,
		SortIndex: r.SortIndex,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
