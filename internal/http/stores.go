package http

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.

// BookReader provides read access to books.
type BookReader interface {
	List(ctx context.Context, q books.ListQuery) (books.Page, error)
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
}

// BookWriter provides the mutating book operations.
type BookWriter interface {
	Create(ctx context.Context, title, author, isbn string) (*entities.Book, error)
	Update(ctx context.Context, id uint, fields books.UpdateFields) (*entities.Book, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// BookStore is everything the books API needs.
type BookStore interface {
	BookReader
	BookWriter
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
