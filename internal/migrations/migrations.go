// Package migrations embeds the schema for every supported database driver
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Driver names accepted by Up. They match the database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Source returns the migration directory and goose dialect for a driver.
func Source(driver string) (dir string, dialect goose.Dialect, err error) {
	switch driver {
	case DriverSQLite:
		return "sqlite", goose.DialectSQLite3, nil
	case DriverPostgres:
		return "postgres", goose.DialectPostgres, nil
	default:
		return "", "", fmt.Errorf("%w: %q", common.ErrUnsupportedDriver, driver)
	}
}

// Up applies all pending migrations for driver.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	dir, dialect, err := Source(driver)
	if err != nil {
		return err
	}
	sub, err := fs.Sub(Migrations, dir)
	if err != nil {
		return err
	}
	goose.SetBaseFS(sub)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate %s: %w", driver, err)
	}
	return nil
}
