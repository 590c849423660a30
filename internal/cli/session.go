package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/liststore"
	"github.com/dmitrijs2005/listkeeper/internal/metrics"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

var (
	errNothingToUndo = errors.New("nothing to undo")
	errUndoExpired   = errors.New("undo window expired")
	errNoPrice       = errors.New("this list has no prices")
)

// session is the open list. It hides the payload type so the shell can
// switch between task and shopping lists.
type session interface {
	Kind() models.Kind
	Title() string
	Len() int
	Render(w io.Writer)
	Add(ctx context.Context, line string) bool
	Toggle(ctx context.Context, pos int) bool
	Edit(ctx context.Context, pos int, line string) bool
	Delete(ctx context.Context, pos int) bool
	Move(ctx context.Context, from []int, to int) bool
	Reorder(ctx context.Context, positions []int) bool
	Rename(ctx context.Context, title string) bool
	SetNotes(ctx context.Context, notes string) bool
	SetBudget(ctx context.Context, amount float64, currency string) bool
	SetPrice(ctx context.Context, pos int, price float64) (bool, error)
	Clear(ctx context.Context, at time.Time) int
	Undo(ctx context.Context, now time.Time, window time.Duration) (int, error)
	DraftText() string
	Rewrite(ctx context.Context, text string) bool
	// Failure returns the save error recorded since the last resetFailure.
	Failure() error
	resetFailure()
	Close()
}

type listSession[P models.Payload[P]] struct {
	store       *liststore.Store[P]
	kind        models.Kind
	codec       codec[P]
	money       func(currency string, amount float64) string
	undo        liststore.UndoBuffer[P]
	failure     error
	unsubscribe func()
}

func newSession[P models.Payload[P]](st *liststore.Store[P], kind models.Kind, c codec[P], money func(string, float64) string, m *metrics.Metrics) *listSession[P] {
	s := &listSession[P]{store: st, kind: kind, codec: c, money: money}
	unsubs := []func(){st.Subscribe(liststore.ObserverFuncs[P]{
		OnSaveFailed: func(_ context.Context, _ uuid.UUID, err error) { s.failure = err },
	})}
	if m != nil {
		unsubs = append(unsubs, st.Subscribe(metrics.Observer[P](m, kind)))
	}
	s.unsubscribe = func() {
		for _, u := range unsubs {
			u()
		}
	}
	return s
}

func (s *listSession[P]) Kind() models.Kind { return s.kind }
func (s *listSession[P]) Title() string     { return s.store.Snapshot().Title() }
func (s *listSession[P]) Len() int          { return s.store.Snapshot().Len() }
func (s *listSession[P]) Failure() error    { return s.failure }
func (s *listSession[P]) resetFailure()     { s.failure = nil }
func (s *listSession[P]) Close()            { s.unsubscribe() }

// id maps a 1-based position to an item id.
func (s *listSession[P]) id(pos int) (uuid.UUID, bool) {
	it, ok := s.store.Snapshot().At(pos - 1)
	return it.ID, ok
}

func (s *listSession[P]) Render(w io.Writer) {
	snap := s.store.Snapshot()
	money := func(v float64) string { return s.money(snap.Currency(), v) }

	fmt.Fprintf(w, "%s (%s) %d/%d done\n", snap.Title(), snap.Kind(), snap.CompletedCount(), snap.Len())
	if snap.Notes() != "" {
		fmt.Fprintln(w, snap.Notes())
	}
	for i, it := range snap.Items() {
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, marker(it.Payload.Completed()), s.codec.render(it.Payload, money))
	}
	if s.codec.total != nil {
		line := "Total: " + money(s.codec.total(snap.Items()))
		if snap.Budget() > 0 {
			line += " of " + money(snap.Budget())
		}
		fmt.Fprintln(w, line)
	} else if snap.Budget() > 0 {
		fmt.Fprintln(w, "Budget: "+money(snap.Budget()))
	}
}

func (s *listSession[P]) Add(ctx context.Context, line string) bool {
	_, ok := s.store.AddPayload(ctx, s.codec.parse(line))
	return ok
}

func (s *listSession[P]) Toggle(ctx context.Context, pos int) bool {
	id, ok := s.id(pos)
	return ok && s.store.Toggle(ctx, id)
}

// Edit replaces the item's draft-owned fields with the parsed line. The
// completion state is kept.
func (s *listSession[P]) Edit(ctx context.Context, pos int, line string) bool {
	it, ok := s.store.Snapshot().At(pos - 1)
	if !ok {
		return false
	}
	p := s.codec.parse(line).SetCompleted(it.Payload.Completed())
	return s.store.UpdatePayload(ctx, it.ID, p)
}

func (s *listSession[P]) Delete(ctx context.Context, pos int) bool {
	id, ok := s.id(pos)
	return ok && s.store.Delete(ctx, id)
}

func (s *listSession[P]) Move(ctx context.Context, from []int, to int) bool {
	offsets := make([]int, len(from))
	for i, pos := range from {
		offsets[i] = pos - 1
	}
	return s.store.Move(ctx, offsets, to-1)
}

func (s *listSession[P]) Reorder(ctx context.Context, positions []int) bool {
	ids := make([]uuid.UUID, 0, len(positions))
	for _, pos := range positions {
		if id, ok := s.id(pos); ok {
			ids = append(ids, id)
		}
	}
	return s.store.Reorder(ctx, ids)
}

func (s *listSession[P]) Rename(ctx context.Context, title string) bool {
	return s.store.Rename(ctx, title)
}

func (s *listSession[P]) SetNotes(ctx context.Context, notes string) bool {
	return s.store.SetNotes(ctx, notes)
}

func (s *listSession[P]) SetBudget(ctx context.Context, amount float64, currency string) bool {
	return s.store.SetBudget(ctx, amount, currency)
}

func (s *listSession[P]) SetPrice(ctx context.Context, pos int, price float64) (bool, error) {
	if s.codec.price == nil {
		return false, errNoPrice
	}
	it, ok := s.store.Snapshot().At(pos - 1)
	if !ok {
		return false, nil
	}
	return s.store.UpdatePayload(ctx, it.ID, s.codec.price(it.Payload, price)), nil
}

// Clear removes done items and keeps them for Undo. The previous batch is
// kept when nothing was cleared.
func (s *listSession[P]) Clear(ctx context.Context, at time.Time) int {
	removed := s.store.ClearCompleted(ctx)
	if len(removed) > 0 {
		s.undo.Capture(removed, at)
	}
	return len(removed)
}

// Undo restores the last cleared batch if it was captured within window. A
// zero window never expires.
func (s *listSession[P]) Undo(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	items, at := s.undo.Take()
	if len(items) == 0 {
		return 0, errNothingToUndo
	}
	if window > 0 && now.Sub(at) > window {
		return 0, errUndoExpired
	}
	if !s.store.Restore(ctx, items) {
		if s.failure != nil {
			return 0, fmt.Errorf("not saved: %w", s.failure)
		}
		return 0, errNothingToUndo
	}
	return len(items), nil
}

// DraftText renders the list in the form Rewrite accepts.
func (s *listSession[P]) DraftText() string {
	d := s.store.Draft()
	lines := make([]string, 0, len(d.Items))
	for _, it := range d.Items {
		lines = append(lines, marker(it.Payload.Completed())+" "+s.codec.encode(it.Payload))
	}
	return strings.Join(lines, "\n")
}

// Rewrite replaces the items with one parsed item per line. Lines keep the
// identity of the first unused existing item with the same label, so
// untouched lines keep their history and reordered lines are moved rather
// than recreated.
func (s *listSession[P]) Rewrite(ctx context.Context, text string) bool {
	d := s.store.Draft()
	pool := make(map[string][]uuid.UUID, len(d.Items))
	for _, it := range d.Items {
		label := it.Payload.Label()
		pool[label] = append(pool[label], it.ID)
	}

	items := make([]models.DraftItem[P], 0, len(d.Items))
	for _, line := range strings.Split(text, "\n") {
		done, rest := splitMarker(line)
		p := s.codec.parse(rest).SetCompleted(done)
		var id uuid.UUID
		if ids := pool[p.Label()]; len(ids) > 0 {
			id, pool[p.Label()] = ids[0], ids[1:]
		}
		items = append(items, models.DraftItem[P]{ID: id, Payload: p})
	}
	d.Items = items
	return s.store.ApplyDraft(ctx, d)
}
