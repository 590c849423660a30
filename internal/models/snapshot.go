package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ItemSnapshot is a read-only copy of a line item.
type ItemSnapshot[P Payload[P]] struct {
	ID        uuid.UUID `json:"id"`
	Payload   P         `json:"payload"`
	SortIndex int       `json:"sort_index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is an immutable projection of a list at one point in time. It
// holds no reference to the Record it was built from and every accessor
// returns copies, so it is safe to share with any reader.
type Snapshot[P Payload[P]] struct {
	id        uuid.UUID
	planID    uuid.UUID
	kind      Kind
	title     string
	notes     string
	budget    float64
	currency  string
	items     []ItemSnapshot[P]
	updatedAt time.Time
}

// NewSnapshot projects rec. Items are presented in canonical order.
func NewSnapshot[P Payload[P]](rec *Record[P]) Snapshot[P] {
	ordered := make([]*Item[P], len(rec.Items))
	copy(ordered, rec.Items)
	SortItems(ordered)

	items := make([]ItemSnapshot[P], len(ordered))
	for i, it := range ordered {
		items[i] = ItemSnapshot[P]{
			ID:        it.ID,
			Payload:   it.Payload,
			SortIndex: it.SortIndex,
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		}
	}

	return Snapshot[P]{
		id:        rec.ID,
		planID:    rec.PlanID,
		kind:      rec.Kind,
		title:     rec.Title,
		notes:     rec.Notes,
		budget:    rec.Budget,
		currency:  rec.Currency,
		items:     items,
		updatedAt: rec.UpdatedAt,
	}
}

func (s Snapshot[P]) ID() uuid.UUID        { return s.id }
func (s Snapshot[P]) PlanID() uuid.UUID    { return s.planID }
func (s Snapshot[P]) Kind() Kind           { return s.kind }
func (s Snapshot[P]) Title() string        { return s.title }
func (s Snapshot[P]) Notes() string        { return s.notes }
func (s Snapshot[P]) Budget() float64      { return s.budget }
func (s Snapshot[P]) Currency() string     { return s.currency }
func (s Snapshot[P]) UpdatedAt() time.Time { return s.updatedAt }
func (s Snapshot[P]) Len() int             { return len(s.items) }

// Items returns a copy of the items in canonical order.
func (s Snapshot[P]) Items() []ItemSnapshot[P] {
	out := make([]ItemSnapshot[P], len(s.items))
	copy(out, s.items)
	return out
}

// At returns the i-th item in canonical order.
func (s Snapshot[P]) At(i int) (ItemSnapshot[P], bool) {
	if i < 0 || i >= len(s.items) {
		return ItemSnapshot[P]{}, false
	}
	return s.items[i], true
}

// Item looks an item up by id.
func (s Snapshot[P]) Item(id uuid.UUID) (ItemSnapshot[P], bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemSnapshot[P]{}, false
}

// IDs returns item ids in canonical order.
func (s Snapshot[P]) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.items))
	for i, it := range s.items {
		ids[i] = it.ID
	}
	return ids
}

// CompletedCount returns the number of done items.
func (s Snapshot[P]) CompletedCount() int {
	n := 0
	for _, it := range s.items {
		if it.Payload.Completed() {
			n++
		}
	}
	return n
}

// Equal reports whether both snapshots carry the same values.
func (s Snapshot[P]) Equal(o Snapshot[P]) bool {
	if s.id != o.id || s.planID != o.planID || s.kind != o.kind ||
		s.title != o.title || s.notes != o.notes || s.budget != o.budget ||
		s.currency != o.currency || !s.updatedAt.Equal(o.updatedAt) ||
		len(s.items) != len(o.items) {
		return false
	}
	for i := range s.items {
		a, b := s.items[i], o.items[i]
		if a.ID != b.ID || a.Payload != b.Payload || a.SortIndex != b.SortIndex ||
			!a.CreatedAt.Equal(b.CreatedAt) || !a.UpdatedAt.Equal(b.UpdatedAt) {
			return false
		}
	}
	return true
}

type snapshotJSON[P Payload[P]] struct {
	ID        uuid.UUID         `json:"id"`
	PlanID    uuid.UUID         `json:"plan_id"`
	Kind      Kind              `json:"kind"`
	Title     string            `json:"title"`
	Notes     string            `json:"notes,omitempty"`
	Budget    float64           `json:"budget,omitempty"`
	Currency  string            `json:"currency,omitempty"`
	Items     []ItemSnapshot[P] `json:"items"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// MarshalJSON renders the snapshot for exports.
func (s Snapshot[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON[P]{
		ID:        s.id,
		PlanID:    s.planID,
		Kind:      s.kind,
		Title:     s.title,
		Notes:     s.notes,
		Budget:    s.budget,
		Currency:  s.currency,
		Items:     s.Items(),
		UpdatedAt: s.updatedAt,
	})
}
