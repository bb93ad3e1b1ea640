// Package database handles catalog database connections and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections from the
// application's configuration. SQLite is the default for local runs and tests.
//
// # Connect
//
// Connect opens the configured dialect, applies pool settings and pings the
// server with the configured timeout. Migrate runs GORM auto-migration for the
// catalog models.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the start command verify that the
// games table carries every column the catalog store writes, including the
// tombstone column used for soft deletes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "games", []string{"id", "tombstoned_at"})
package database
