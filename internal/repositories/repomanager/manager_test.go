package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/dmitrijs2005/listkeeper/internal/repositories/plans"
	"github.com/dmitrijs2005/listkeeper/internal/repositories/records"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDriver(t *testing.T) {
	m, err := ForDriver("sqlite")
	require.NoError(t, err)
	assert.IsType(t, SQLiteRepositoryManager{}, m)

	m, err = ForDriver("pgx")
	require.NoError(t, err)
	assert.IsType(t, PostgresRepositoryManager{}, m)

	_, err = ForDriver("mysql")
	assert.ErrorIs(t, err, common.ErrUnsupportedDriver)
}

func TestPostgresRepositoryManager_Repositories(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repos := PostgresRepositoryManager{}.Repositories(db)
	assert.IsType(t, &plans.PostgresRepository{}, repos.Plans)
	assert.IsType(t, &records.PostgresRepository[models.TaskPayload]{}, repos.Tasks)
	assert.IsType(t, &records.PostgresRepository[models.ShoppingPayload]{}, repos.Shopping)
}

func TestInitDatabase_SQLite(t *testing.T) {
	ctx := context.Background()
	db, repos, err := InitDatabase(ctx, "sqlite", filepath.Join(t.TempDir(), "data", "app.db"))
	require.NoError(t, err)
	defer db.Close()

	p := &models.Plan{ID: uuid.New(), Title: "Trip"}
	require.NoError(t, repos.Plans.Create(ctx, p))
	rec, err := repos.Shopping.FetchOrCreate(ctx, p.ID, models.KindShopping)
	require.NoError(t, err)
	assert.Equal(t, "Shopping", rec.Title)
}

func TestInitDatabase_Errors(t *testing.T) {
	_, _, err := InitDatabase(context.Background(), "oracle", "")
	assert.ErrorIs(t, err, common.ErrUnsupportedDriver)

	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") }

	_, _, err = InitDatabase(context.Background(), "pgx", "postgres://nowhere")
	assert.ErrorContains(t, err, "open database: no driver")
}

func TestNewMemoryRepositories_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()
	p := &models.Plan{ID: uuid.New(), Title: "Trip"}
	require.NoError(t, repos.Plans.Create(ctx, p))

	tasks, err := repos.Tasks.FetchOrCreate(ctx, p.ID, models.KindTasks)
	require.NoError(t, err)
	shopping, err := repos.Shopping.FetchOrCreate(ctx, p.ID, models.KindShopping)
	require.NoError(t, err)

	require.NoError(t, repos.Plans.Delete(ctx, p.ID))
	_, err = repos.Tasks.Fetch(ctx, tasks.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repos.Shopping.Fetch(ctx, shopping.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
