// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup (SQLite or Postgres) and schema bootstrap
//	└── books/           # Query/command repository for book records
//
// # Usage
//
//	db, err := database.NewDatabase(cfg.Database)
//	repo := books.NewRepository(db.DB, books.WithQueryTimeout(cfg.Database.QueryTimeout))
//
//	page, err := repo.List(ctx, books.ListQuery{Page: 1, Limit: 10})
//	book, err := repo.Create(ctx, "Dune", "Frank Herbert", "978-0441172719")
//
// The Database handle is created once at startup and passed to whoever needs
// it. Nothing in this package keeps package-level connection state.
//
// # Engines
//
// SQLite is the default engine (DATABASE_PATH). Postgres is selected with
// DATABASE_DRIVER=postgres and DATABASE_DSN. The schema is created with
// AutoMigrate when absent; there are no further migrations.
package database
