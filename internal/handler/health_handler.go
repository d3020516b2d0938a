package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/mechgenz/mechgenz-api/internal/service"
	"github.com/mechgenz/mechgenz-api/pkg/config"
)

// HealthHandler serves the root banner, health checks and the
// Prometheus endpoint.
type HealthHandler struct {
	db      *sqlx.DB
	metrics *service.MetricsService
	cfg     *config.Config
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(db *sqlx.DB, metrics *service.MetricsService, cfg *config.Config) *HealthHandler {
	return &HealthHandler{db: db, metrics: metrics, cfg: cfg}
}

// Root answers the public banner used by uptime checks.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":            "MECHGENZ Contact Form API is running",
		"status":             "healthy",
		"timestamp":          time.Now().UTC(),
		"database_connected": h.databaseUp(c),
	})
}

// Health reports component status in detail.
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "disconnected"
	if h.databaseUp(c) {
		dbStatus = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"database":          dbStatus,
		"timestamp":         time.Now().UTC(),
		"resend_configured": h.cfg.Email.ResendAPIKey != "",
		"email_setup": gin.H{
			"admin_email":        h.cfg.Email.AdminEmail,
			"company_email":      h.cfg.Email.CompanyEmail,
			"dual_notifications": true,
		},
	})
}

// Prometheus serves the metrics endpoint.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

func (h *HealthHandler) databaseUp(c *gin.Context) bool {
	if h.db == nil {
		return false
	}
	return h.db.PingContext(c.Request.Context()) == nil
}
