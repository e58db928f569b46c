package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/markethub/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// Health handles GET /health. It reports degraded with a 503 when the
// database is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"version":  h.version,
		"database": dbStatus,
	})
}
