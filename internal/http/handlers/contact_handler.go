// Public contact HTTP handlers.
//
// This file exposes the unauthenticated REST endpoints for contact-form
// submissions:
//   - POST /api/contacts      (submit)
//   - GET  /api/contacts      (list, newest first)
//   - GET  /api/contacts/:id  (fetch one)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses. When the database is
// unreachable the public paths degrade to demo responses instead of failing
// hard; responses served that way carry `"demo": true`.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saasuno/contact-backend/internal/domain"
	"github.com/saasuno/contact-backend/internal/repo"
	"github.com/saasuno/contact-backend/internal/services"
	"github.com/saasuno/contact-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ContactService defines contact-record operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ContactService interface {
	// Create validates and persists a new submission.
	Create(ctx context.Context, in services.ContactInput) (*domain.Contact, error)
	// ListPage returns a page of contacts matching filter and the total count.
	ListPage(ctx context.Context, f repo.ContactFilter, page, limit int) ([]domain.Contact, int64, error)
	// Get fetches a single contact by id.
	Get(ctx context.Context, id string) (*domain.Contact, error)
	// Update applies an allow-listed partial update.
	Update(ctx context.Context, id string, upd services.ContactUpdate) (*domain.Contact, error)
	// UpdateStatus mutates only the status field.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error)
	// Delete removes a contact permanently.
	Delete(ctx context.Context, id string) error
	// Statistics returns per-status totals plus the daily submission trend.
	Statistics(ctx context.Context) (*services.Statistics, error)
}

// VisitorService defines visitor-counter operations consumed by HTTP handlers.
type VisitorService interface {
	// Count returns the current counter, lazily creating the singleton row.
	Count(ctx context.Context) (*domain.Visitor, error)
	// Increment adds one visit and returns the updated counter.
	Increment(ctx context.Context) (*domain.Visitor, error)
	// Reset overwrites the count and clears the ledger; the caller token must
	// equal the configured admin secret.
	Reset(ctx context.Context, newCount int64, callerToken string) (*domain.Visitor, error)
}

// ConnStatus reports whether the backing store is reachable. Handlers consult
// it per request to choose between live and fallback behavior.
type ConnStatus interface {
	Connected() bool
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for contacts, admin operations, and the
// visitor counter. It depends on abstract service interfaces to keep
// transport concerns separate from business logic, plus the connection
// status and the in-memory fallback counter for degraded mode.
type Handlers struct {
	contactSvc ContactService
	visitorSvc VisitorService
	status     ConnStatus
	mem        *services.MemCounter

	adminToken  string
	environment string
}

// New constructs a Handlers instance bound to the given services.
//
// adminToken is needed directly only for the degraded-mode visitor reset,
// where the durable service cannot be consulted; environment is echoed by
// the health endpoint.
func New(contactSvc ContactService, visitorSvc VisitorService, status ConnStatus, mem *services.MemCounter, adminToken, environment string) *Handlers {
	return &Handlers{
		contactSvc:  contactSvc,
		visitorSvc:  visitorSvc,
		status:      status,
		mem:         mem,
		adminToken:  adminToken,
		environment: environment,
	}
}

//
// DTOs
//

// CreateContactRequest is the JSON payload for a public form submission.
type CreateContactRequest struct {
	Name    string `json:"name" example:"Ada Lovelace"`
	Email   string `json:"email" example:"ada@example.com"`
	Phone   string `json:"phone" example:"+44 20 7946 0000"`
	Company string `json:"company" example:"Analytical Engines Ltd"`
	Message string `json:"message" example:"Interested in a demo."`
}

// ContactResponse wraps a single contact record.
type ContactResponse struct {
	Success bool            `json:"success"`
	Data    *domain.Contact `json:"data"`
	Message string          `json:"message,omitempty"`
	Demo    bool            `json:"demo,omitempty"`
}

// ListContactsResponse wraps the public contact listing.
type ListContactsResponse struct {
	Success bool             `json:"success"`
	Count   int64            `json:"count"`
	Data    []domain.Contact `json:"data"`
	Demo    bool             `json:"demo,omitempty"`
}

//
// Helpers
//

// clampPagination parses and bounds page and limit query params to sane
// defaults and limits, returning (page, limit).
func clampPagination(c *gin.Context, defaultLimit int) (page, limit int) {
	const maxLimit = 100
	page = utils.AtoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return
}

// demoContacts is the synthetic payload served on the public listing when
// the database is unreachable.
func demoContacts() []domain.Contact {
	now := time.Now().UTC()
	return []domain.Contact{
		{
			ID:        "000000000000000000000002",
			Name:      "Demo Visitor",
			Email:     "demo@saasuno.example",
			Company:   "SaaSuno",
			Message:   "Sample enquiry shown while the database is offline.",
			Status:    domain.StatusPending,
			CreatedAt: now,
		},
		{
			ID:        "000000000000000000000001",
			Name:      "Demo Customer",
			Email:     "customer@saasuno.example",
			Company:   "Example Corp",
			Message:   "Earlier sample enquiry.",
			Status:    domain.StatusContacted,
			CreatedAt: now.AddDate(0, 0, -1),
		},
	}
}

//
// Handlers
//

// CreateContact godoc
// @ID          createContact
// @Summary     Submit a contact form
// @Description Stores a contact-form submission. When the database is down the payload is echoed back unpersisted with demo=true.
// @Tags        Contacts
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateContactRequest  true  "Submission payload"
// @Success     201  {object}  handlers.ContactResponse
// @Success     200  {object}  handlers.ContactResponse  "Demo mode (not persisted)"
// @Failure     400  {object}  handlers.ErrorResponse    "Validation error"
// @Router      /api/contacts [post]
func (h *Handlers) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if !h.status.Connected() {
		// Demo mode: acknowledge without persisting so the public form keeps
		// working during an outage.
		echo := &domain.Contact{
			ID:        domain.NewID(),
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			Company:   strings.TrimSpace(req.Company),
			Message:   strings.TrimSpace(req.Message),
			Status:    domain.StatusPending,
			CreatedAt: time.Now().UTC(),
		}
		ok(c, http.StatusOK, ContactResponse{
			Success: true,
			Data:    echo,
			Message: "Contact received (demo mode, not persisted)",
			Demo:    true,
		})
		return
	}

	created, err := h.contactSvc.Create(c.Request.Context(), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) || errors.Is(err, services.ErrEmailRequired) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "Server Error")
		return
	}

	ok(c, http.StatusCreated, ContactResponse{
		Success: true,
		Data:    created,
		Message: "Contact saved successfully",
	})
}

// ListContacts godoc
// @ID          listContacts
// @Summary     List contact submissions
// @Description Returns contacts newest first. Serves a synthetic demo payload when the database is down.
// @Tags        Contacts
// @Produce     json
// @Param       page   query  int  false  "Page number"       minimum(1) default(1)
// @Param       limit  query  int  false  "Items per page"    minimum(1) maximum(100) default(100)
// @Success     200  {object}  handlers.ListContactsResponse
// @Router      /api/contacts [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	if !h.status.Connected() {
		demo := demoContacts()
		ok(c, http.StatusOK, ListContactsResponse{
			Success: true,
			Count:   int64(len(demo)),
			Data:    demo,
			Demo:    true,
		})
		return
	}

	page, limit := clampPagination(c, 100)
	items, total, err := h.contactSvc.ListPage(c.Request.Context(), repo.ContactFilter{}, page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "Server Error")
		return
	}

	ok(c, http.StatusOK, ListContactsResponse{
		Success: true,
		Count:   total,
		Data:    items,
	})
}

// GetContact godoc
// @ID          getContact
// @Summary     Fetch a single contact
// @Tags        Contacts
// @Produce     json
// @Param       id  path  string  true  "Contact ID (24-char hex)"
// @Success     200  {object}  handlers.ContactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found (also when DB is down)"
// @Router      /api/contacts/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	id := c.Param("id")
	if !domain.IsValidID(id) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid contact ID format")
		return
	}

	// No sensible demo record exists for an arbitrary id.
	if !h.status.Connected() {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Contact not found")
		return
	}

	contact, err := h.contactSvc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrContactNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Contact not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "Server Error")
		}
		return
	}

	ok(c, http.StatusOK, ContactResponse{Success: true, Data: contact})
}
