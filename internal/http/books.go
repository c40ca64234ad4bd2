package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	msgBookNotFound   = "Book not found"
	msgDuplicateISBN  = "A book with this ISBN already exists"
	msgFieldsRequired = "Title, author, and ISBN are required"
	msgInvalidBody    = "Request body must be valid JSON"

	msgListFailed   = "Failed to retrieve books"
	msgGetFailed    = "Failed to retrieve book"
	msgCreateFailed = "Failed to create book"
	msgUpdateFailed = "Failed to update book"
	msgDeleteFailed = "Failed to delete book"
)

type BooksController struct {
	store         BookStore
	exposeDetails bool
}

// NewBooksController creates the books API controller. When exposeDetails is
// false, 500 responses carry no underlying error message.
func NewBooksController(store BookStore, exposeDetails bool) *BooksController {
	return &BooksController{store: store, exposeDetails: exposeDetails}
}

// ListBooks returns one page of books matching the optional filters
// GET /books?page=&limit=&title=&author=&isbn=
func (bc *BooksController) ListBooks(c *gin.Context) {
	query := books.ListQuery{
		Page:  queryPositiveInt(c, "page", books.DefaultPage),
		Limit: queryPositiveInt(c, "limit", books.DefaultLimit),
		Filters: books.Filters{
			Title:  c.Query("title"),
			Author: c.Query("author"),
			ISBN:   c.Query("isbn"),
		},
	}

	page, err := bc.store.List(c.Request.Context(), query)
	if err != nil {
		bc.respondStoreError(c, err, msgListFailed)
		return
	}

	data := page.Books
	if data == nil {
		data = []entities.Book{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: NewPagination(query.Page, query.Limit, page.Total),
	})
}

// GetBook returns a single book
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondNotFound(c, msgBookNotFound)
		return
	}

	book, err := bc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		bc.respondStoreError(c, err, msgGetFailed)
		return
	}

	respondData(c, http.StatusOK, book)
}

// CreateBook stores a new book
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, msgInvalidBody, nil)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			respondBadRequest(c, msgFieldsRequired, fieldErrs)
			return
		}
		respondBadRequest(c, msgFieldsRequired, nil)
		return
	}

	book, err := bc.store.Create(c.Request.Context(), req.Title, req.Author, req.ISBN)
	if err != nil {
		bc.respondStoreError(c, err, msgCreateFailed)
		return
	}

	respondData(c, http.StatusCreated, book)
}

// UpdateBook applies a partial update
// PUT /books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondNotFound(c, msgBookNotFound)
		return
	}

	// a missing body is an update with no fields
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, msgInvalidBody, nil)
		return
	}

	book, err := bc.store.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		bc.respondStoreError(c, err, msgUpdateFailed)
		return
	}

	respondData(c, http.StatusOK, book)
}

// DeleteBook permanently removes a book
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondNotFound(c, msgBookNotFound)
		return
	}

	removed, err := bc.store.Delete(c.Request.Context(), id)
	if err != nil {
		bc.respondStoreError(c, err, msgDeleteFailed)
		return
	}
	if !removed {
		respondNotFound(c, msgBookNotFound)
		return
	}

	respondNoContent(c)
}

// respondStoreError maps repository failures onto status codes.
func (bc *BooksController) respondStoreError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, books.ErrNotFound):
		respondNotFound(c, msgBookNotFound)
	case errors.Is(err, books.ErrConflict):
		respondConflict(c, msgDuplicateISBN)
	default:
		respondInternalError(c, err, message, bc.exposeDetails)
	}
}
