package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func testDatabaseConfig(t *testing.T) config.Database {
	t.Helper()
	return config.Database{
		Driver:      config.DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "books.db"),
		BusyTimeout: time.Second,
		LogLevel:    "silent",
	}
}

func countBooks(t *testing.T, cfg config.Database) int64 {
	t.Helper()

	db, err := database.NewDatabase(cfg)
	require.NoError(t, err)
	defer db.Close()

	count, err := books.NewRepository(db.DB).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestMigrateCommand(t *testing.T) {
	cfg := testDatabaseConfig(t)
	var out bytes.Buffer

	cmd := NewMigrateCommand(config.Database{Driver: config.DriverSQLite, LogLevel: "silent"})
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-db", cfg.Path}))
	assert.Equal(t, cfg.Path, cmd.Database.Path)

	require.NoError(t, cmd.Run())
	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "Schema is up to date (sqlite)")
	_, err := os.Stat(cfg.Path)
	assert.NoError(t, err)
}

func TestMigrateCommand_UnknownDriver(t *testing.T) {
	cmd := NewMigrateCommand(config.Database{Driver: "oracle"})
	cmd.Out = &bytes.Buffer{}

	assert.Error(t, cmd.Run())
}

func TestSeedCommand_Defaults(t *testing.T) {
	cfg := testDatabaseConfig(t)
	var out bytes.Buffer

	cmd := NewSeedCommand(cfg)
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags(nil))

	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Created: 2, skipped: 0, invalid: 0, total books: 2")

	// second run finds both ISBNs taken
	out.Reset()
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Created: 0, skipped: 2, invalid: 0, total books: 2")

	assert.Equal(t, int64(2), countBooks(t, cfg))
}

func TestSeedCommand_File(t *testing.T) {
	cfg := testDatabaseConfig(t)
	seedPath := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(`[
		{"title": "Dune", "author": "Frank Herbert", "isbn": "9780441013593"},
		{"title": "Dune again", "author": "Frank Herbert", "isbn": "9780441013593"},
		{"title": "", "author": "Nobody", "isbn": "000"}
	]`), 0o644))

	var out bytes.Buffer
	cmd := NewSeedCommand(cfg)
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-file", seedPath, "-verbose"}))

	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "+ #1 Dune by Frank Herbert")
	assert.Contains(t, out.String(), "= Dune again (isbn 9780441013593 already exists)")
	assert.Contains(t, out.String(), "Created: 1, skipped: 1, invalid: 1, total books: 1")
}

func TestLoadSeedFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"title":`), 0o644))

		_, err := LoadSeedFile(path)
		assert.Error(t, err)
	})
}

type brokenStore struct{}

func (brokenStore) Create(context.Context, string, string, string) (*entities.Book, error) {
	return nil, &books.StorageError{Op: "create book", Err: errors.New("disk full")}
}

func (brokenStore) Count(context.Context) (int64, error) { return 0, nil }

func TestSeedCommand_StopsOnStorageError(t *testing.T) {
	cmd := NewSeedCommand(config.Database{})

	_, err := cmd.seed(context.Background(), brokenStore{}, DefaultSeedBooks)

	var storageErr *books.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Contains(t, err.Error(), "Test Book 1")
}
