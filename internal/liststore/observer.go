package liststore

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// Observer receives a notification after every successful save. Callbacks
// run after the store lock is released and may call back into the store.
type Observer[P models.Payload[P]] interface {
	DidSave(ctx context.Context, recordID uuid.UUID)
	SnapshotChanged(ctx context.Context, snap models.Snapshot[P])
}

// FailureObserver is implemented by observers that also want to hear about
// failed saves.
type FailureObserver interface {
	SaveFailed(ctx context.Context, recordID uuid.UUID, err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs[P models.Payload[P]] struct {
	OnDidSave         func(ctx context.Context, recordID uuid.UUID)
	OnSnapshotChanged func(ctx context.Context, snap models.Snapshot[P])
	OnSaveFailed      func(ctx context.Context, recordID uuid.UUID, err error)
}

func (f ObserverFuncs[P]) DidSave(ctx context.Context, recordID uuid.UUID) {
	if f.OnDidSave != nil {
		f.OnDidSave(ctx, recordID)
	}
}

func (f ObserverFuncs[P]) SnapshotChanged(ctx context.Context, snap models.Snapshot[P]) {
	if f.OnSnapshotChanged != nil {
		f.OnSnapshotChanged(ctx, snap)
	}
}

func (f ObserverFuncs[P]) SaveFailed(ctx context.Context, recordID uuid.UUID, err error) {
	if f.OnSaveFailed != nil {
		f.OnSaveFailed(ctx, recordID, err)
	}
}
