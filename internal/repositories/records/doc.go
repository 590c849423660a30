// Package records persists lists and their line items.
//
// # Overview
//
// Repository is generic over the item payload type. Every read returns a
// detached copy of the stored list, so callers may mutate what they fetch
// freely; nothing reaches storage until Save.
//
// Implementations:
//
//   - MemoryRepository: map-backed, for tests and ephemeral sessions
//   - SQLiteRepository: local database via modernc.org/sqlite
//   - PostgresRepository: shared database via pgx
//
// SQL implementations store timestamps as unix nanoseconds and the payload as
// a JSON document. Save writes the list row and its items in one transaction.
//
// Typical usage
//
//	repo := records.NewSQLiteRepository[models.TaskPayload](db)
//	rec, _ := repo.FetchOrCreate(ctx, planID, models.KindTasks)
//	rec.Title = "Weekend"
//	_ = repo.Save(ctx, rec)
package records
