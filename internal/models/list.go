package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind names the flavour of a list within a plan. A plan owns at most one
// list of each kind.
type Kind string

const (
	KindTasks     Kind = "tasks"
	KindShopping  Kind = "shopping"
	KindChecklist Kind = "checklist"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindTasks, KindShopping, KindChecklist}

// ParseKind resolves a user supplied kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Kinds, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown list kind %q", s)
}

// DefaultTitle is the title given to a list created on first access.
func (k Kind) DefaultTitle() string {
	switch k {
	case KindShopping:
		return "Shopping"
	case KindChecklist:
		return "Checklist"
	default:
		return "Tasks"
	}
}

// Plan is the parent entity owning lists.
type Plan struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is a persisted line item.
type Item[P Payload[P]] struct {
	ID        uuid.UUID
	Payload   P
	SortIndex int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record is the canonical, persisted list. Repositories hand out detached
// copies; mutating a Record has no effect until it is saved.
type Record[P Payload[P]] struct {
	ID        uuid.UUID
	PlanID    uuid.UUID
	Kind      Kind
	Title     string
	Notes     string
	Budget    float64
	Currency  string
	Items     []*Item[P]
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of r.
func (r *Record[P]) Clone() *Record[P] {
	if r == nil {
		return nil
	}
	out := *r
	out.Items = make([]*Item[P], len(r.Items))
	for i, it := range r.Items {
		c := *it
		out.Items[i] = &c
	}
	return &out
}

// Find returns the position and item with the given id, or -1 and nil.
func (r *Record[P]) Find(id uuid.UUID) (int, *Item[P]) {
	for i, it := range r.Items {
		if it.ID == id {
			return i, it
		}
	}
	return -1, nil
}

// IDs returns item identifiers in slice order.
func (r *Record[P]) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Items))
	for i, it := range r.Items {
		ids[i] = it.ID
	}
	return ids
}

// CompareItems is the canonical item order: sort index, then creation time,
// then identifier. It is total, so ties always resolve the same way.
func CompareItems[P Payload[P]](a, b *Item[P]) int {
	if c := cmp.Compare(a.SortIndex, b.SortIndex); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

// SortItems orders items canonically in place.
func SortItems[P Payload[P]](items []*Item[P]) {
	slices.SortStableFunc(items, CompareItems[P])
}

// Reindex assigns dense sort indices 0..n-1 in slice order and reports
// whether any index changed. Item timestamps are left alone.
func Reindex[P Payload[P]](items []*Item[P]) bool {
	changed := false
	for i, it := range items {
		if it.SortIndex != i {
			it.SortIndex = i
			changed = true
		}
	}
	return changed
}
