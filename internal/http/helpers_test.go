package http

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
}

func TestParseIDParam_Invalid(t *testing.T) {
	for _, value := range []string{"abc", "", "0", "-7", "3.14", "99999999999999999999"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: value}}

		id, ok := parseIDParam(c, "id")

		assert.False(t, ok, value)
		assert.Equal(t, uint(0), id, value)
	}
}

func TestQueryPositiveInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"n=5", 5},
		{"n=abc", 10},
		{"n=0", 10},
		{"n=-2", 10},
		{"n=1000", 1000},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

		assert.Equal(t, tt.want, queryPositiveInt(c, "n", 10), tt.query)
	}
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 0, Pages: 0}, NewPagination(1, 10, 0))
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 10, Pages: 1}, NewPagination(1, 10, 10))
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Total: 21, Pages: 3}, NewPagination(3, 10, 21))
	assert.Equal(t, Pagination{Page: 1, Limit: 1, Total: 2, Pages: 2}, NewPagination(1, 1, 2))
}

func TestNewPagination_HugeLimit(t *testing.T) {
	assert.Equal(t, int64(1), NewPagination(1, math.MaxInt, 2).Pages)
	assert.Equal(t, int64(0), NewPagination(1, math.MaxInt, 0).Pages)
	assert.Equal(t, int64(3), NewPagination(1, 10, 21).Pages)
}

func TestRespondInternalError(t *testing.T) {
	t.Run("includes details when allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/books", nil)

		respondInternalError(c, errors.New("boom"), "Failed to retrieve books", true)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to retrieve books","details":"boom"}`, w.Body.String())
	})

	t.Run("omits details when hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/books", nil)

		respondInternalError(c, errors.New("boom"), "Failed to retrieve books", false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to retrieve books"}`, w.Body.String())
	})
}
