package records

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/migrations"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, migrations.DriverSQLite))
	return db
}

func insertPlan(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`insert into plans (id, title, created_at, updated_at) values (?, ?, 0, 0)`, id.String(), "Trip")
	require.NoError(t, err)
	return id
}

// exerciseRepository runs the same scenario against any implementation.
func exerciseRepository(t *testing.T, repo Repository[models.ShoppingPayload], planID uuid.UUID) {
	ctx := context.Background()

	_, err := repo.FindByPlan(ctx, planID, models.KindShopping)
	require.ErrorIs(t, err, common.ErrNotFound)

	rec, err := repo.FetchOrCreate(ctx, planID, models.KindShopping)
	require.NoError(t, err)
	assert.Equal(t, "Shopping", rec.Title)
	assert.Equal(t, models.KindShopping, rec.Kind)
	assert.Empty(t, rec.Items)

	again, err := repo.FetchOrCreate(ctx, planID, models.KindShopping)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, again.ID)

	ts := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	keep := &models.Item[models.ShoppingPayload]{
		ID:        uuid.New(),
		Payload:   models.ShoppingPayload{Name: "Bread", Quantity: 1, Price: 2.5, ActualQuantity: 1},
		SortIndex: 0,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	drop := &models.Item[models.ShoppingPayload]{
		ID:        uuid.New(),
		Payload:   models.ShoppingPayload{Name: "Jam", Done: true},
		SortIndex: 1,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	rec.Title = "Market"
	rec.Notes = "before noon"
	rec.Budget = 30
	rec.Currency = "EUR"
	rec.UpdatedAt = ts
	rec.Items = []*models.Item[models.ShoppingPayload]{keep, drop}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Fetch(ctx, rec.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Fatalf("fetched record differs (-want +got):\n%s", diff)
	}

	// fetched records are detached
	got.Items[0].Payload.Name = "changed"
	again, err = repo.Fetch(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", again.Items[0].Payload.Name)

	rec.Items = []*models.Item[models.ShoppingPayload]{keep}
	keep.Payload.Price = 3
	require.NoError(t, repo.Save(ctx, rec))

	byPlan, err := repo.FindByPlan(ctx, planID, models.KindShopping)
	require.NoError(t, err)
	require.Len(t, byPlan.Items, 1)
	assert.Equal(t, 3.0, byPlan.Items[0].Payload.Price)

	require.NoError(t, repo.DeleteByID(ctx, rec.ID))
	_, err = repo.Fetch(ctx, rec.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, rec.ID), common.ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, rec), common.ErrNotFound)
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository[models.ShoppingPayload](), uuid.New())
}

func TestSQLiteRepository(t *testing.T) {
	db := setupSQLite(t)
	exerciseRepository(t, NewSQLiteRepository[models.ShoppingPayload](db), insertPlan(t, db))
}

func TestSQLiteRepository_ItemsComeBackInCanonicalOrder(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	repo := NewSQLiteRepository[models.TaskPayload](db)

	rec, err := repo.FetchOrCreate(ctx, insertPlan(t, db), models.KindTasks)
	require.NoError(t, err)
	ts := time.Now().UTC()
	for i, text := range []string{"c", "a", "b"} {
		rec.Items = append(rec.Items, &models.Item[models.TaskPayload]{
			ID: uuid.New(), Payload: models.TaskPayload{Text: text}, SortIndex: []int{2, 0, 1}[i],
			CreatedAt: ts, UpdatedAt: ts,
		})
	}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Fetch(ctx, rec.ID)
	require.NoError(t, err)
	var texts []string
	for _, it := range got.Items {
		texts = append(texts, it.Payload.Text)
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
}

func TestMemoryRepository_DeletePlan(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[models.TaskPayload]()
	planID := uuid.New()
	tasks, err := repo.FetchOrCreate(ctx, planID, models.KindTasks)
	require.NoError(t, err)
	other, err := repo.FetchOrCreate(ctx, uuid.New(), models.KindTasks)
	require.NoError(t, err)

	require.NoError(t, repo.DeletePlan(ctx, planID))
	_, err = repo.Fetch(ctx, tasks.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.Fetch(ctx, other.ID)
	assert.NoError(t, err)
}
