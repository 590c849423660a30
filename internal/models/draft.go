package models

import (
	"slices"

	"github.com/google/uuid"
)

// DraftItem is an editable line in a Draft. A nil ID marks a new item; it is
// assigned an identifier when the draft is applied.
type DraftItem[P Payload[P]] struct {
	ID      uuid.UUID
	Payload P
}

// Draft is a detached, freely editable copy of a Snapshot. Editing a draft
// never touches persisted state; it takes effect only when submitted to the
// store.
type Draft[P Payload[P]] struct {
	RecordID uuid.UUID
	Title    string
	Notes    string
	Budget   float64
	Currency string
	Items    []DraftItem[P]
}

// DraftFrom builds an editable copy of s.
func DraftFrom[P Payload[P]](s Snapshot[P]) Draft[P] {
	items := make([]DraftItem[P], 0, len(s.items))
	for _, it := range s.items {
		items = append(items, DraftItem[P]{ID: it.ID, Payload: it.Payload})
	}
	return Draft[P]{
		RecordID: s.id,
		Title:    s.title,
		Notes:    s.notes,
		Budget:   s.budget,
		Currency: s.currency,
		Items:    items,
	}
}

// Append adds a new item at the end and returns its identifier.
func (d *Draft[P]) Append(p P) uuid.UUID {
	id := uuid.New()
	d.Items = append(slices.Clip(d.Items), DraftItem[P]{ID: id, Payload: p})
	return id
}

// Index returns the position of the first item with id, or -1.
func (d *Draft[P]) Index(id uuid.UUID) int {
	for i, it := range d.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Remove drops every item with id and reports whether one was found.
func (d *Draft[P]) Remove(id uuid.UUID) bool {
	kept := make([]DraftItem[P], 0, len(d.Items))
	found := false
	for _, it := range d.Items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	d.Items = kept
	return found
}

// Move relocates the item at from so that it ends up at index to.
func (d *Draft[P]) Move(from, to int) bool {
	n := len(d.Items)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	it := d.Items[from]
	items := slices.Delete(slices.Clone(d.Items), from, from+1)
	d.Items = slices.Insert(items, to, it)
	return true
}
