// Package books is the query/command layer for book records.
//
// It is the only code that builds statements against the books table. Every
// operation reads or writes the store directly; nothing is cached between
// calls. Failures come back as ErrNotFound, ErrConflict or *StorageError and
// are never logged here.
//
// # Usage
//
//	repo := books.NewRepository(db.DB, books.WithQueryTimeout(5*time.Second))
//	page, err := repo.List(ctx, books.ListQuery{Page: 2, Limit: 20, Filters: books.Filters{Author: "Tolkien"}})
package books

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// DefaultQueryTimeout bounds a single store call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// Repository handles all book database operations.
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
	now     func() time.Time
}

type Option func(*Repository)

// WithQueryTimeout sets the deadline applied to every store call.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(r *Repository) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{
		db:      db,
		timeout: DefaultQueryTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// timestamp is the current time in UTC at microsecond precision, which every
// supported engine stores without rounding.
func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// List returns one page of books, newest first, and the number of books
// matching the filters. The count and the page are two independent reads.
func (r *Repository) List(ctx context.Context, q ListQuery) (Page, error) {
	q = q.Normalize()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.filtered(ctx, q.Filters).Count(&total).Error; err != nil {
		return Page{}, classify("count books", err)
	}

	offset := q.Offset()
	if int64(offset) >= total {
		return Page{Books: []entities.Book{}, Total: total}, nil
	}

	var books []entities.Book
	err := r.filtered(ctx, q.Filters).
		Order("id DESC").
		Limit(q.Limit).
		Offset(offset).
		Find(&books).Error
	if err != nil {
		return Page{}, classify("list books", err)
	}
	if books == nil {
		books = []entities.Book{}
	}

	return Page{Books: books, Total: total}, nil
}

// filtered builds a fresh statement with one LIKE predicate per supplied filter.
func (r *Repository) filtered(ctx context.Context, f Filters) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Book{})
	if f.Title != "" {
		query = query.Where(`title LIKE ? ESCAPE '\'`, containsPattern(f.Title))
	}
	if f.Author != "" {
		query = query.Where(`author LIKE ? ESCAPE '\'`, containsPattern(f.Author))
	}
	if f.ISBN != "" {
		query = query.Where(`isbn LIKE ? ESCAPE '\'`, containsPattern(f.ISBN))
	}
	return query
}

// GetByID retrieves a book by its ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.getByID(ctx, id)
}

func (r *Repository) getByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, classify("get book", err)
	}
	return &book, nil
}

// Create inserts a new book. The unique ISBN index is the only duplicate
// check, so concurrent creates of the same ISBN cannot both succeed.
func (r *Repository) Create(ctx context.Context, title, author, isbn string) (*entities.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.timestamp()
	book := &entities.Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, classify("create book", err)
	}
	return book, nil
}

// Update applies the supplied fields and refreshes updated_at in a single
// statement, then re-reads the row.
func (r *Repository) Update(ctx context.Context, id uint, fields UpdateFields) (*entities.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	changes := map[string]any{"updated_at": r.timestamp()}
	if fields.Title != nil {
		changes["title"] = *fields.Title
	}
	if fields.Author != nil {
		changes["author"] = *fields.Author
	}
	if fields.ISBN != nil {
		changes["isbn"] = *fields.ISBN
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Book{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, classify("update book", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.getByID(ctx, id)
}

// Delete permanently removes a book. It reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return false, classify("delete book", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of stored books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&total).Error; err != nil {
		return 0, classify("count books", err)
	}
	return total, nil
}
