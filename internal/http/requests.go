package http

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/bookshelf/internal/database/books"
)

// CreateBookRequest is the body of POST /books.
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// Normalize trims surrounding whitespace from every field.
func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.ISBN = strings.TrimSpace(r.ISBN)
}

// Validate requires all three fields. The returned validation.Errors is keyed
// by JSON field name.
func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
		validation.Field(&r.ISBN, validation.Required.Error("isbn is required")),
	)
}

// UpdateBookRequest is the body of PUT /books/:id. Every field is optional.
type UpdateBookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	ISBN   *string `json:"isbn"`
}

// Fields converts the request into repository update fields. Values that are
// blank after trimming are dropped, so a stored field can never become empty.
func (r UpdateBookRequest) Fields() books.UpdateFields {
	return books.UpdateFields{
		Title:  nonBlank(r.Title),
		Author: nonBlank(r.Author),
		ISBN:   nonBlank(r.ISBN),
	}
}

func nonBlank(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
