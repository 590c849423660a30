package liststore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearCompleted_ReindexesSurvivors(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home",
		models.TaskPayload{Text: "A", Done: true},
		models.TaskPayload{Text: "B"},
		models.TaskPayload{Text: "C", Done: true},
	)

	removed := s.ClearCompleted(ctx)
	require.Len(t, removed, 2)
	assert.Equal(t, "A", removed[0].Payload.Text)
	assert.Equal(t, 0, removed[0].SortIndex)
	assert.Equal(t, "C", removed[1].Payload.Text)

	items := s.Snapshot().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Payload.Text)
	assert.Equal(t, 0, items[0].SortIndex)
	assert.Equal(t, 1, repo.saveCount())
}

func TestClearCompleted_NothingDone(t *testing.T) {
	s, repo, _ := newStore(t, "Home", tasks("A", "B")...)
	assert.Empty(t, s.ClearCompleted(context.Background()))
	assert.Zero(t, repo.saveCount())
}

func TestClearCompleted_SaveFailureReturnsNothing(t *testing.T) {
	s, repo, _ := newStore(t, "Home", models.TaskPayload{Text: "A", Done: true})
	repo.saveErr = errors.New("boom")
	assert.Nil(t, s.ClearCompleted(context.Background()))
	assert.Equal(t, 1, s.Snapshot().Len())
}

func TestUndoRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home",
		models.TaskPayload{Text: "A", Done: true},
		models.TaskPayload{Text: "B"},
		models.TaskPayload{Text: "C", Done: true},
		models.TaskPayload{Text: "D"},
	)
	before := s.Snapshot().Items()

	removed := s.ClearCompleted(ctx)
	require.Len(t, removed, 2)
	require.True(t, s.Restore(ctx, removed))
	after := s.Snapshot().Items()

	type view struct {
		ID      string
		Payload models.TaskPayload
		Created time.Time
	}
	project := func(items []models.ItemSnapshot[models.TaskPayload]) []view {
		out := make([]view, len(items))
		for i, it := range items {
			out[i] = view{ID: it.ID.String(), Payload: it.Payload, Created: it.CreatedAt}
		}
		return out
	}
	byID := cmpopts.SortSlices(func(a, b view) bool { return strings.Compare(a.ID, b.ID) < 0 })
	if diff := cmp.Diff(project(before), project(after), byID); diff != "" {
		t.Fatalf("restored items differ (-before +after):\n%s", diff)
	}
	assertDense(t, s.Snapshot())
	assert.Equal(t, 2, repo.saveCount())

	assert.False(t, s.Restore(ctx, removed))
	assert.False(t, s.Restore(ctx, nil))
	assert.Equal(t, 2, repo.saveCount())
}

func TestUndoBuffer(t *testing.T) {
	var b UndoBuffer[models.TaskPayload]
	assert.Zero(t, b.Len())

	at := time.Now()
	batch := []models.RemovedItem[models.TaskPayload]{{Payload: models.TaskPayload{Text: "A"}}}
	b.Capture(batch, at)
	batch[0].Payload.Text = "changed"
	assert.Equal(t, 1, b.Len())

	items, when := b.Take()
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Payload.Text)
	assert.Equal(t, at, when)
	assert.Zero(t, b.Len())

	b.Capture(batch, at)
	b.Discard()
	items, when = b.Take()
	assert.Empty(t, items)
	assert.True(t, when.IsZero())
}
