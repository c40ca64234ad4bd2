package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
)

var ErrMissingDSN = errors.New("DATABASE_DSN is required for the postgres driver")

type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens the configured store and makes sure the books table exists.
func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.GormLogger(cfg.LogLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if isMemorySQLite(cfg) {
		// every connection to :memory: is a separate database
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}

	database := &Database{DB: db, Driver: driverName(cfg)}
	if err := database.Migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info().Str("driver", database.Driver).Str("location", location(cfg)).Msg("Database initialized successfully")

	return database, nil
}

// Migrate creates the books table and its unique ISBN index when absent.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(&entities.Book{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch driverName(cfg) {
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.Path, cfg.BusyTimeout)), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, ErrMissingDSN
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func driverName(cfg config.Database) string {
	if cfg.Driver == "" {
		return config.DriverSQLite
	}
	return strings.ToLower(cfg.Driver)
}

// sqliteDSN appends the busy timeout so concurrent writers wait for the lock
// instead of failing with SQLITE_BUSY.
func sqliteDSN(path string, busyTimeout time.Duration) string {
	if path == "" {
		path = config.DefaultDatabasePath
	}
	if busyTimeout <= 0 || strings.Contains(path, "_busy_timeout") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", path, sep, busyTimeout.Milliseconds())
}

func isMemorySQLite(cfg config.Database) bool {
	return driverName(cfg) == config.DriverSQLite && strings.Contains(cfg.Path, ":memory:")
}

// location describes where the data lives without leaking credentials.
func location(cfg config.Database) string {
	if driverName(cfg) == config.DriverPostgres {
		return redactDSN(cfg.DSN)
	}
	return cfg.Path
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
