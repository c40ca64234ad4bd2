package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/readonly"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewServer builds the http.Server for the configured address and timeouts.
func NewServer(handler http.Handler, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	srv := NewServer(router, cfg)

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill -9 can't be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}

	// in-flight requests are done, the store can go
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("Server exiting")
}

// NewRouterConfig wires the repository and database into the router dependencies.
func NewRouterConfig(cfg *config.Config, db *database.Database, version string) http_controllers.RouterConfig {
	repo := books.NewRepository(db.DB, books.WithQueryTimeout(cfg.Database.QueryTimeout))

	routerCfg := http_controllers.RouterConfig{
		BookStore:          repo,
		Database:           db,
		Version:            version,
		ExposeErrorDetails: !cfg.App.IsProduction(),
		CORSOrigins:        cfg.HTTP.CORSOrigins,
	}

	if cfg.App.ReadOnly {
		log.Warn().Msg("Read-only mode enabled - write operations will be blocked")
		routerCfg.Middleware = append(routerCfg.Middleware, readonly.NewMiddleware(true).Handler())
	}

	return routerCfg
}

func Run(cfg *config.Config, version string) {
	logging.Init(cfg.Log, cfg.App.Env)
	log.Info().Str("version", version).Str("env", cfg.App.Env).Msg("Starting bookshelf")

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	router := http_controllers.NewRouter(NewRouterConfig(cfg, db, version))

	onShutdown := func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}

	Serve(router, cfg, onShutdown)
}
