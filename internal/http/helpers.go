package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"` // validation errors or the underlying failure
}

// DataResponse wraps a single payload.
type DataResponse struct {
	Data any `json:"data"`
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// PaginatedResponse wraps one page of data with its pagination block.
type PaginatedResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes pages = ceil(total/limit) without overflowing for
// very large limits.
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = total / int64(limit)
		if total%int64(limit) != 0 {
			pages++
		}
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string, details any) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 response.
// The underlying message is only echoed when exposeDetails is set.
func respondInternalError(c *gin.Context, err error, message string, exposeDetails bool) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString(ContextKeyRequestID)).
		Str("operation", message).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")

	resp := ErrorResponse{Error: message}
	if exposeDetails {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// --- Success Response Helpers ---

// respondData sends a payload wrapped in {"data": ...}.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, DataResponse{Data: data})
}

// respondNoContent sends an empty 204 response.
func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// --- Parameter Parsing ---

// parseIDParam extracts a positive integer ID from URL parameters.
// Anything else cannot name an existing record, so the caller answers 404.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryPositiveInt reads an integer query parameter, falling back to def when
// it is absent, malformed, zero or negative.
func queryPositiveInt(c *gin.Context, name string, def int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return def
	}
	return value
}
