package http

import "github.com/gin-gonic/gin"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookStore BookStore
	Database  Pinger

	// Application info
	Version string

	// ExposeErrorDetails echoes the underlying error in 500 bodies.
	// Off in production.
	ExposeErrorDetails bool

	// Browser clients
	CORSOrigins []string

	// Optional extra middleware (read-only mode), applied before routes
	Middleware []gin.HandlerFunc
}
