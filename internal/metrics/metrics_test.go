package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/listkeeper/internal/liststore"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestObserver_RecordsStoreActivity(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	obs := Observer[models.TaskPayload](m, models.KindTasks)

	rec := &models.Record[models.TaskPayload]{
		ID: uuid.New(),
		Items: []*models.Item[models.TaskPayload]{
			{ID: uuid.New(), Payload: models.TaskPayload{Text: "a", Done: true}},
			{ID: uuid.New(), Payload: models.TaskPayload{Text: "b"}, SortIndex: 1},
		},
	}
	ctx := context.Background()
	obs.DidSave(ctx, rec.ID)
	obs.SnapshotChanged(ctx, models.NewSnapshot(rec))
	obs.(liststore.FailureObserver).SaveFailed(ctx, rec.ID, errors.New("x"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("tasks")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.items.WithLabelValues("tasks")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completed.WithLabelValues("tasks")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("tasks")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.saves.WithLabelValues("shopping")))
}
