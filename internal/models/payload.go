// Package models defines the list domain: plans, list records and their line
// items, the immutable snapshots handed to the presentation layer and the
// mutable drafts it edits.
package models

import (
	"math"
	"strings"
)

// Payload is the list-kind specific content of a line item. Implementations
// are small value types; every method returns a new value instead of mutating
// the receiver.
type Payload[P any] interface {
	comparable

	// Label is the required display text of the item.
	Label() string
	// Relabel returns a copy with the display text replaced.
	Relabel(text string) P
	// Completed reports the done flag.
	Completed() bool
	// SetCompleted returns a copy with the done flag set.
	SetCompleted(done bool) P
	// Normalize trims text fields. ok is false when the required text is
	// empty after trimming.
	Normalize() (normalized P, ok bool)
	// Merge copies the fields a draft owns from the receiver onto current and
	// reports whether any of them differed. Fields a draft does not own are
	// taken from current unchanged.
	Merge(current P) (merged P, changed bool)
}

// TaskPayload is a plain text item with a done flag. It backs task lists and
// checklists.
type TaskPayload struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

func (p TaskPayload) Label() string { return p.Text }

func (p TaskPayload) Relabel(text string) TaskPayload {
	p.Text = text
	return p
}

func (p TaskPayload) Completed() bool { return p.Done }

func (p TaskPayload) SetCompleted(done bool) TaskPayload {
	p.Done = done
	return p
}

func (p TaskPayload) Normalize() (TaskPayload, bool) {
	p.Text = strings.TrimSpace(p.Text)
	return p, p.Text != ""
}

func (p TaskPayload) Merge(current TaskPayload) (TaskPayload, bool) {
	changed := current != p
	return p, changed
}

// ShoppingPayload is a shopping list entry.
//
// ActualQuantity is recorded while shopping and is never overwritten from a
// draft; Merge keeps the canonical value.
type ShoppingPayload struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity,omitempty"`
	Unit           string  `json:"unit,omitempty"`
	Price          float64 `json:"price,omitempty"`
	Category       string  `json:"category,omitempty"`
	Done           bool    `json:"done"`
	ActualQuantity float64 `json:"actual_quantity,omitempty"`
}

func (p ShoppingPayload) Label() string { return p.Name }

func (p ShoppingPayload) Relabel(text string) ShoppingPayload {
	p.Name = text
	return p
}

func (p ShoppingPayload) Completed() bool { return p.Done }

func (p ShoppingPayload) SetCompleted(done bool) ShoppingPayload {
	p.Done = done
	return p
}

func (p ShoppingPayload) Normalize() (ShoppingPayload, bool) {
	p.Name = strings.TrimSpace(p.Name)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Category = strings.TrimSpace(p.Category)
	if !ValidAmount(p.Quantity) {
		p.Quantity = 0
	}
	if !ValidAmount(p.Price) {
		p.Price = 0
	}
	return p, p.Name != ""
}

func (p ShoppingPayload) Merge(current ShoppingPayload) (ShoppingPayload, bool) {
	merged := current
	merged.Name = p.Name
	merged.Quantity = p.Quantity
	merged.Unit = p.Unit
	merged.Price = p.Price
	merged.Category = p.Category
	merged.Done = p.Done
	return merged, merged != current
}

// ValidAmount reports whether x can be stored as a quantity, price or
// budget: finite and not negative.
func ValidAmount(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0)
}

// Total is the expected cost of the entry: price times quantity, or the bare
// price when no quantity is set.
func (p ShoppingPayload) Total() float64 {
	if p.Quantity > 0 {
		return p.Price * p.Quantity
	}
	return p.Price
}
