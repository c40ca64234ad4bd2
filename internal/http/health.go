package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	healthCheckTimeout = 2 * time.Second

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	checkOK            = "ok"
	checkNotConfigured = "not configured"
	checkFailed        = "error"
)

// HealthResponse is the body of GET /health. Checks maps a dependency name
// to "ok", "not configured" or an error description.
type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports whether the store answers a ping. The ping error
// is only echoed when exposeDetails is set, same as for 500 bodies.
type HealthController struct {
	db            Pinger
	version       string
	exposeDetails bool
}

func NewHealthController(db Pinger, version string, exposeDetails bool) *HealthController {
	return &HealthController{db: db, version: version, exposeDetails: exposeDetails}
}

// Status answers 200 when every configured dependency is reachable, 503 otherwise
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	dbCheck, healthy := h.checkDatabase(c.Request.Context())

	resp := HealthResponse{
		Status:  statusHealthy,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"database": dbCheck},
	}

	code := http.StatusOK
	if !healthy {
		resp.Status = statusUnhealthy
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, resp)
}

func (h *HealthController) checkDatabase(ctx context.Context) (string, bool) {
	if h.db == nil {
		return checkNotConfigured, true
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	err := h.db.Ping(ctx)
	if err == nil {
		return checkOK, true
	}

	log.Warn().Err(err).Msg("Health check: database ping failed")
	if h.exposeDetails {
		return checkFailed + ": " + err.Error(), false
	}
	return checkFailed, false
}
