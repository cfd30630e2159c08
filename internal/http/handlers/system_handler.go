// System endpoints: health, liveness probe, and the API index.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports server and database status.
type HealthResponse struct {
	Status      string `json:"status"`
	Server      string `json:"server"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

func (h *Handlers) dbStatus() string {
	if h.status.Connected() {
		return "Connected"
	}
	return "Disconnected"
}

// Health godoc
// @ID          health
// @Summary     Health check
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /api/health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{
		Status:      "OK",
		Server:      "Running",
		Database:    h.dbStatus(),
		Environment: h.environment,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Test godoc
// @ID          test
// @Summary     Liveness probe
// @Tags        System
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      /api/test [get]
func (h *Handlers) Test(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"message":   "Backend is working",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  h.dbStatus(),
	})
}

// Index godoc
// @ID          index
// @Summary     API index
// @Tags        System
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      / [get]
func (h *Handlers) Index(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"message": "SaaSuno Backend API",
		"status":  "Live",
		"endpoints": gin.H{
			"root":   "/",
			"health": "/api/health",
			"test":   "/api/test",
			"contacts": gin.H{
				"submit": "POST /api/contacts",
				"list":   "GET /api/contacts",
				"get":    "GET /api/contacts/:id",
			},
			"admin": gin.H{
				"contacts":   "GET /api/admin/contacts",
				"statistics": "GET /api/admin/statistics",
			},
			"visitors": gin.H{
				"count":     "GET /api/visitors/count",
				"increment": "POST /api/visitors/increment",
				"reset":     "POST /api/visitors/reset",
			},
		},
		"database": h.dbStatus(),
	})
}
