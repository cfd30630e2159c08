// Visitor counter HTTP handlers.
//
// This file exposes the public endpoints for the site-wide visitor counter:
//   - GET  /api/visitors/count      (read)
//   - POST /api/visitors/increment  (add one visit)
//   - POST /api/visitors/reset      (token-gated destructive reset)
//
// When the database is unreachable, count and increment fall back to the
// process-local MemCounter; such responses carry `"source": "memory"` and
// `"demo": true` so callers know the value will not survive a restart.
package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saasuno/contact-backend/internal/domain"
	"github.com/saasuno/contact-backend/internal/services"
)

//
// DTOs
//

// VisitorResponse is the counter payload returned by all visitor endpoints.
type VisitorResponse struct {
	Success   bool   `json:"success"`
	Count     int64  `json:"count"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source,omitempty"` // "memory" in degraded mode
	Demo      bool   `json:"demo,omitempty"`
}

// ResetVisitorRequest is the JSON payload for the counter reset. NewCount
// defaults to the standard seed when absent.
type ResetVisitorRequest struct {
	Token    string `json:"token"`
	NewCount *int64 `json:"newCount"`
}

func visitorOK(c *gin.Context, count int64, msg string, memory bool) {
	resp := VisitorResponse{
		Success:   true,
		Count:     count,
		Message:   msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if memory {
		resp.Source = "memory"
		resp.Demo = true
	}
	ok(c, http.StatusOK, resp)
}

//
// Handlers
//

// VisitorCount godoc
// @ID          visitorCount
// @Summary     Current visitor count
// @Description Falls back to the in-memory counter when the database is down.
// @Tags        Visitors
// @Produce     json
// @Success     200  {object}  handlers.VisitorResponse
// @Router      /api/visitors/count [get]
func (h *Handlers) VisitorCount(c *gin.Context) {
	if !h.status.Connected() {
		visitorOK(c, h.mem.Count(), "Visitor count retrieved successfully", true)
		return
	}

	v, err := h.visitorSvc.Count(c.Request.Context())
	if err != nil {
		// Prefer the memory value over a hard error on this public path.
		visitorOK(c, h.mem.Count(), "Visitor count retrieved successfully", true)
		return
	}
	visitorOK(c, v.Count, "Visitor count retrieved successfully", false)
}

// VisitorIncrement godoc
// @ID          visitorIncrement
// @Summary     Record one visit
// @Description Falls back to the in-memory counter when the database is down.
// @Tags        Visitors
// @Produce     json
// @Success     200  {object}  handlers.VisitorResponse
// @Router      /api/visitors/increment [post]
func (h *Handlers) VisitorIncrement(c *gin.Context) {
	if !h.status.Connected() {
		visitorOK(c, h.mem.Increment(), "Visitor count incremented successfully", true)
		return
	}

	v, err := h.visitorSvc.Increment(c.Request.Context())
	if err != nil {
		visitorOK(c, h.mem.Increment(), "Visitor count incremented successfully", true)
		return
	}
	visitorOK(c, v.Count, "Visitor count incremented successfully", false)
}

// VisitorReset godoc
// @ID          visitorReset
// @Summary     Reset the visitor counter
// @Description Destructive: overwrites the count and clears the daily ledger. Requires the admin token in the body.
// @Tags        Visitors
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ResetVisitorRequest  true  "Token and optional new count"
// @Success     200  {object}  handlers.VisitorResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Token mismatch"
// @Router      /api/visitors/reset [post]
func (h *Handlers) VisitorReset(c *gin.Context) {
	var req ResetVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	newCount := int64(domain.VisitorSeed)
	if req.NewCount != nil {
		newCount = *req.NewCount
	}

	if !h.status.Connected() {
		// The durable service cannot check the token for us here.
		if subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.adminToken)) != 1 {
			fail(c, http.StatusForbidden, ErrCodeForbidden, "Unauthorized. Admin access required.")
			return
		}
		visitorOK(c, h.mem.Reset(newCount), "Visitor count reset successfully", true)
		return
	}

	v, err := h.visitorSvc.Reset(c.Request.Context(), newCount, req.Token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			fail(c, http.StatusForbidden, ErrCodeForbidden, "Unauthorized. Admin access required.")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCounterFailed, "Server Error")
		return
	}
	visitorOK(c, v.Count, "Visitor count reset successfully", false)
}
