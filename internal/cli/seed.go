package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// SeedBook is one entry of a seed file.
type SeedBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// DefaultSeedBooks are inserted when no seed file is given.
var DefaultSeedBooks = []SeedBook{
	{Title: "Test Book 1", Author: "Test Author 1", ISBN: "1111111111"},
	{Title: "Test Book 2", Author: "Test Author 2", ISBN: "2222222222"},
}

// SeedResult summarises a seed run.
type SeedResult struct {
	Created int
	Skipped int // ISBN already present
	Invalid int // missing title, author or isbn
	Total   int64
}

// SeedCommand inserts sample books. Books whose ISBN already exists are skipped.
type SeedCommand struct {
	Database config.Database
	File     string
	Verbose  bool
	Out      io.Writer
}

func NewSeedCommand(cfg config.Database) *SeedCommand {
	return &SeedCommand{Database: cfg, Out: os.Stdout}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	bindDatabaseFlags(fs, &cmd.Database)
	fs.StringVar(&cmd.File, "file", "", "JSON file with an array of {title, author, isbn} objects (defaults to two sample books)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every book as it is processed")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert sample books. Existing ISBNs are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -file books.json -verbose\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	seeds := DefaultSeedBooks
	if cmd.File != "" {
		loaded, err := LoadSeedFile(cmd.File)
		if err != nil {
			return err
		}
		seeds = loaded
	}

	db, err := database.NewDatabase(cmd.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := books.NewRepository(db.DB, books.WithQueryTimeout(cmd.Database.QueryTimeout))
	result, err := cmd.seed(context.Background(), repo, seeds)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Created: %d, skipped: %d, invalid: %d, total books: %d\n",
		result.Created, result.Skipped, result.Invalid, result.Total)
	return nil
}

type seedStore interface {
	Create(ctx context.Context, title, author, isbn string) (*entities.Book, error)
	Count(ctx context.Context) (int64, error)
}

func (cmd *SeedCommand) seed(ctx context.Context, repo seedStore, seeds []SeedBook) (SeedResult, error) {
	var result SeedResult

	for _, s := range seeds {
		title, author, isbn := strings.TrimSpace(s.Title), strings.TrimSpace(s.Author), strings.TrimSpace(s.ISBN)
		if title == "" || author == "" || isbn == "" {
			result.Invalid++
			log.Warn().Str("title", s.Title).Str("isbn", s.ISBN).Msg("Skipping incomplete seed entry")
			continue
		}

		book, err := repo.Create(ctx, title, author, isbn)
		switch {
		case errors.Is(err, books.ErrConflict):
			result.Skipped++
			if cmd.Verbose {
				fmt.Fprintf(cmd.Out, "  = %s (isbn %s already exists)\n", title, isbn)
			}
		case err != nil:
			return result, fmt.Errorf("failed to seed %q: %w", title, err)
		default:
			result.Created++
			if cmd.Verbose {
				fmt.Fprintf(cmd.Out, "  + #%d %s by %s\n", book.ID, book.Title, book.Author)
			}
		}
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return result, err
	}
	result.Total = total

	return result, nil
}

// LoadSeedFile reads a JSON array of seed books.
func LoadSeedFile(path string) ([]SeedBook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []SeedBook
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return seeds, nil
}
