// Package readonly provides a maintenance-mode switch that rejects writes.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyReadOnly is set on every request so handlers can tell the mode.
	ContextKeyReadOnly = "read_only"

	blockedMessage = "The service is in read-only mode"
)

// Middleware blocks write operations while read-only mode is on.
// GET, HEAD and OPTIONS always pass.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a gin middleware that answers 403 for writes when enabled.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
