package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BooksPrefixes lists the mount points of the books API. /api/books serves
// the bundled web client.
var BooksPrefixes = []string{"/books", "/api/books"}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	router.Use(RequestID())
	router.Use(AccessLog())
	router.Use(Recovery())
	router.Use(SecurityHeaders())
	router.Use(CORS(cfg.CORSOrigins))
	for _, mw := range cfg.Middleware {
		router.Use(mw)
	}

	health := NewHealthController(cfg.Database, cfg.Version, cfg.ExposeErrorDetails)
	router.GET("/health", health.Status)

	booksController := NewBooksController(cfg.BookStore, cfg.ExposeErrorDetails)
	for _, prefix := range BooksPrefixes {
		registerBookRoutes(router.Group(prefix), booksController)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})

	return router
}

func registerBookRoutes(group *gin.RouterGroup, bc *BooksController) {
	group.GET("", bc.ListBooks)
	group.POST("", bc.CreateBook)
	group.GET("/:id", bc.GetBook)
	group.PUT("/:id", bc.UpdateBook)
	group.DELETE("/:id", bc.DeleteBook)
}
