// Package store persists canonical game records with gorm.
//
// Create is idempotent per id: an active row short-circuits, a tombstoned row
// is resurrected through an ON CONFLICT upsert, and only a real insert or
// resurrection registers the created hook as an after-commit effect. Two
// concurrent creates may both reach the upsert; the database keeps one row
// and both may schedule the hook, so downstream consumers must be idempotent.
package store
