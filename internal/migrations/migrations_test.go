package migrations

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestSource(t *testing.T) {
	dir, dialect, err := Source(DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", dir)
	assert.Equal(t, goose.DialectPostgres, dialect)

	_, _, err = Source("mysql")
	assert.ErrorIs(t, err, common.ErrUnsupportedDriver)
}

func TestEmbeddedFilesPresent(t *testing.T) {
	for _, name := range []string{"sqlite/00001_init.sql", "postgres/00001_init.sql"} {
		b, err := Migrations.ReadFile(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(b), "-- +goose Up")
	}
}

func TestUp_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Up(context.Background(), db, DriverSQLite))

	for _, table := range []string{"plans", "lists", "list_items"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	// idempotent
	require.NoError(t, Up(context.Background(), db, DriverSQLite))
}

func TestUp_WrapsGooseError(t *testing.T) {
	orig := gooseUpContext
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("locked")
	}
	t.Cleanup(func() { gooseUpContext = orig })

	err := Up(context.Background(), nil, DriverSQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate sqlite: locked")
}

func TestUp_UnknownDriver(t *testing.T) {
	err := Up(context.Background(), nil, "oracle")
	assert.ErrorIs(t, err, common.ErrUnsupportedDriver)
}
