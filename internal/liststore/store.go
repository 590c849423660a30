// Package liststore is the list reconciliation store: it sits between a
// presentation layer editing detached drafts and a repository holding the
// canonical records, and publishes immutable snapshots after every save.
//
// Every mutating operation goes through one gate: fetch the canonical record,
// run the operation, skip persistence when nothing changed, otherwise stamp,
// save, rebuild the snapshot and notify observers.
package liststore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// Repository is the persistence context the store borrows records from.
// Fetch must return a detached copy and common.ErrNotFound when the record
// does not exist.
type Repository[P models.Payload[P]] interface {
	Fetch(ctx context.Context, id uuid.UUID) (*models.Record[P], error)
	Save(ctx context.Context, rec *models.Record[P]) error
}

// Store serialises all operations on one list.
type Store[P models.Payload[P]] struct {
	mu sync.Mutex // held for the whole of one gate call

	repo  Repository[P]
	id    uuid.UUID
	log   logging.Logger
	now   func() time.Time
	newID func() uuid.UUID

	state   sync.RWMutex
	snap    models.Snapshot[P]
	lastErr error
	subs    []*subscription[P]
}

type subscription[P models.Payload[P]] struct {
	obs Observer[P]
}

// Option configures a Store.
type Option[P models.Payload[P]] func(*Store[P])

func WithLogger[P models.Payload[P]](l logging.Logger) Option[P] {
	return func(s *Store[P]) { s.log = l }
}

// WithClock replaces the timestamp source.
func WithClock[P models.Payload[P]](now func() time.Time) Option[P] {
	return func(s *Store[P]) { s.now = now }
}

// WithIDGenerator replaces the generator used for new items.
func WithIDGenerator[P models.Payload[P]](gen func() uuid.UUID) Option[P] {
	return func(s *Store[P]) { s.newID = gen }
}

// WithObserver subscribes obs before the store is returned.
func WithObserver[P models.Payload[P]](obs Observer[P]) Option[P] {
	return func(s *Store[P]) { s.subs = append(s.subs, &subscription[P]{obs: obs}) }
}

// Open loads the record with the given id and returns a store publishing
// its snapshot.
func Open[P models.Payload[P]](ctx context.Context, repo Repository[P], id uuid.UUID, opts ...Option[P]) (*Store[P], error) {
	s := &Store[P]{
		repo:  repo,
		id:    id,
		log:   logging.Nop(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("list_id", id)

	rec, err := repo.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("open list %s: %w", id, err)
	}
	s.snap = models.NewSnapshot(rec)
	return s, nil
}

// ID returns the identifier of the list this store edits.
func (s *Store[P]) ID() uuid.UUID { return s.id }

// Snapshot returns the last published snapshot.
func (s *Store[P]) Snapshot() models.Snapshot[P] {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.snap
}

// Draft returns an editable copy of the current snapshot.
func (s *Store[P]) Draft() models.Draft[P] {
	return models.DraftFrom(s.Snapshot())
}

// LastError returns the error of the most recent failed save, or nil once a
// later save succeeded.
func (s *Store[P]) LastError() error {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.lastErr
}

// Subscribe registers obs for change notifications and returns a function
// that removes it.
func (s *Store[P]) Subscribe(obs Observer[P]) (unsubscribe func()) {
	sub := &subscription[P]{obs: obs}
	s.state.Lock()
	s.subs = append(s.subs, sub)
	s.state.Unlock()

	return func() {
		s.state.Lock()
		defer s.state.Unlock()
		for i, x := range s.subs {
			if x == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// mutate is the gate every operation goes through. op reports whether it
// changed rec; the return value reports whether a save happened.
func (s *Store[P]) mutate(ctx context.Context, name string, op func(rec *models.Record[P], now time.Time) bool) bool {
	s.mu.Lock()

	rec, err := s.repo.Fetch(ctx, s.id)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, common.ErrNotFound) {
			s.log.Debug(ctx, "list not found, skipping", "op", name)
			return false
		}
		s.fail(ctx, name, fmt.Errorf("fetch list: %w", err))
		return false
	}

	now := s.now()
	if !op(rec, now) {
		s.mu.Unlock()
		s.log.Debug(ctx, "no change, skipping save", "op", name)
		return false
	}

	rec.UpdatedAt = now
	if err := s.repo.Save(ctx, rec); err != nil {
		s.mu.Unlock()
		s.fail(ctx, name, err)
		return false
	}

	snap := models.NewSnapshot(rec)
	s.state.Lock()
	s.snap = snap
	s.lastErr = nil
	subs := make([]*subscription[P], len(s.subs))
	copy(subs, s.subs)
	s.state.Unlock()
	s.mu.Unlock()

	s.log.Debug(ctx, "list saved", "op", name, "items", snap.Len())
	for _, sub := range subs {
		sub.obs.DidSave(ctx, s.id)
		sub.obs.SnapshotChanged(ctx, snap)
	}
	return true
}

func (s *Store[P]) fail(ctx context.Context, name string, err error) {
	s.state.Lock()
	s.lastErr = err
	subs := make([]*subscription[P], len(s.subs))
	copy(subs, s.subs)
	s.state.Unlock()

	s.log.Error(ctx, "save failed", "op", name, "error", err)
	for _, sub := range subs {
		if fo, ok := sub.obs.(FailureObserver); ok {
			fo.SaveFailed(ctx, s.id, err)
		}
	}
}
