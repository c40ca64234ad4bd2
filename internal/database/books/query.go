package books

import (
	"math"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Filters holds optional "contains" predicates. An empty field is not applied.
type Filters struct {
	Title  string
	Author string
	ISBN   string
}

// ListQuery selects one page of books matching all supplied filters.
type ListQuery struct {
	Page  int
	Limit int
	Filters
}

// Normalize replaces non-positive page and limit values with the defaults.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Offset is the number of rows skipped before the page starts. It saturates
// at math.MaxInt instead of wrapping for very large pages.
func (q ListQuery) Offset() int {
	q = q.Normalize()
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// Page is one slice of results plus the number of rows matching the filters.
// Total and Books come from two separate reads and may disagree under
// concurrent writes.
type Page struct {
	Books []entities.Book
	Total int64
}

// UpdateFields lists the columns a partial update should change. Nil means
// the column is left as is.
type UpdateFields struct {
	Title  *string
	Author *string
	ISBN   *string
}

// Empty reports whether no column was supplied.
func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Author == nil && f.ISBN == nil
}

// likeEscaper escapes LIKE wildcards so user input is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
