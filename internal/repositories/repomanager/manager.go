// Package repomanager wires repository implementations for a database driver
// and applies the schema on startup.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/filex"
	"github.com/dmitrijs2005/listkeeper/internal/migrations"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/dmitrijs2005/listkeeper/internal/repositories/plans"
	"github.com/dmitrijs2005/listkeeper/internal/repositories/records"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Repositories bundles everything the services need. Task and checklist
// lists share one repository since they carry the same payload.
type Repositories struct {
	Plans    plans.Repository
	Tasks    records.Repository[models.TaskPayload]
	Shopping records.Repository[models.ShoppingPayload]
}

// RepositoryManager vends repositories for one SQL dialect.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Repositories(db dbx.DB) Repositories
}

// SQLiteRepositoryManager vends SQLite repositories.
type SQLiteRepositoryManager struct{}

func (SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db, migrations.DriverSQLite)
}

func (SQLiteRepositoryManager) Repositories(db dbx.DB) Repositories {
	return Repositories{
		Plans:    plans.NewSQLiteRepository(db),
		Tasks:    records.NewSQLiteRepository[models.TaskPayload](db),
		Shopping: records.NewSQLiteRepository[models.ShoppingPayload](db),
	}
}

// PostgresRepositoryManager vends PostgreSQL repositories.
type PostgresRepositoryManager struct{}

func (PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db, migrations.DriverPostgres)
}

func (PostgresRepositoryManager) Repositories(db dbx.DB) Repositories {
	return Repositories{
		Plans:    plans.NewPostgresRepository(db),
		Tasks:    records.NewPostgresRepository[models.TaskPayload](db),
		Shopping: records.NewPostgresRepository[models.ShoppingPayload](db),
	}
}

// ForDriver returns the manager for a database/sql driver name.
func ForDriver(driver string) (RepositoryManager, error) {
	switch driver {
	case migrations.DriverSQLite:
		return SQLiteRepositoryManager{}, nil
	case migrations.DriverPostgres:
		return PostgresRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedDriver, driver)
	}
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// InitDatabase opens the database, applies migrations and returns the
// repositories bound to it. The caller owns the returned *sql.DB.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, Repositories, error) {
	m, err := ForDriver(driver)
	if err != nil {
		return nil, Repositories{}, err
	}
	if driver == migrations.DriverSQLite {
		if path := filex.SQLitePath(dsn); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, Repositories{}, err
			}
		}
	}
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, Repositories{}, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, Repositories{}, fmt.Errorf("ping database: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, Repositories{}, err
	}
	return db, m.Repositories(db), nil
}

// NewMemoryRepositories returns process-local repositories. Deleting a plan
// removes its lists from both list repositories.
func NewMemoryRepositories() Repositories {
	tasks := records.NewMemoryRepository[models.TaskPayload]()
	shopping := records.NewMemoryRepository[models.ShoppingPayload]()
	return Repositories{
		Plans:    plans.NewMemoryRepository(tasks.DeletePlan, shopping.DeletePlan),
		Tasks:    tasks,
		Shopping: shopping,
	}
}
