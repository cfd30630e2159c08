// Admin contact HTTP handlers.
//
// This file exposes the bearer-gated REST endpoints for managing contact
// submissions:
//   - GET    /api/admin/contacts            (filtered listing, paginated)
//   - PATCH  /api/admin/contacts/:id        (allow-listed partial update)
//   - PATCH  /api/admin/contacts/:id/status (status-only update)
//   - DELETE /api/admin/contacts/:id        (permanent delete)
//   - GET    /api/admin/statistics          (totals + 7-day trend)
//
// The shared-secret gate itself lives in middleware.AdminAuth; every handler
// here assumes it already ran. Admin paths surface explicit errors rather
// than demo fallbacks: the caller is trusted and needs accurate signals, so
// a down database yields 500 "Server Error".
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saasuno/contact-backend/internal/domain"
	"github.com/saasuno/contact-backend/internal/repo"
	"github.com/saasuno/contact-backend/internal/services"
)

//
// DTOs
//

// UpdateContactRequest is the JSON payload for the general admin PATCH.
// Only these fields are mutable; anything else in the body is ignored.
// Absent fields (nil) are left unchanged.
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Message *string `json:"message"`
	Status  *string `json:"status"`
}

// UpdateStatusRequest is the JSON payload for the status-only PATCH.
type UpdateStatusRequest struct {
	Status string `json:"status" example:"contacted"`
}

// Pagination carries pagination metadata for admin list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// AdminListResponse wraps a filtered page of contacts.
type AdminListResponse struct {
	Success    bool             `json:"success"`
	Data       []domain.Contact `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// StatisticsResponse wraps the aggregate statistics payload.
type StatisticsResponse struct {
	Success bool                 `json:"success"`
	Data    *services.Statistics `json:"data"`
}

// DeleteResponse acknowledges a permanent delete.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

//
// Handlers
//

// AdminListContacts godoc
// @ID          adminListContacts
// @Summary     List contacts with filters (admin)
// @Description Exact status match plus case-insensitive substring search over name/email/company.
// @Tags        Admin
// @Security    AdminBearer
// @Produce     json
// @Param       status  query  string  false  "pending|contacted|rejected (other values ignored)"
// @Param       search  query  string  false  "Substring over name, email, company"
// @Param       page    query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit   query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.AdminListResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/admin/contacts [get]
func (h *Handlers) AdminListContacts(c *gin.Context) {
	if !h.status.Connected() {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Server Error")
		return
	}

	page, limit := clampPagination(c, 20)
	filter := repo.ContactFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	items, total, err := h.contactSvc.ListPage(c.Request.Context(), filter, page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "Server Error")
		return
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	ok(c, http.StatusOK, AdminListResponse{
		Success: true,
		Data:    items,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// AdminUpdateContact godoc
// @ID          adminUpdateContact
// @Summary     Update a contact (admin)
// @Description Applies an allow-listed partial update. Unknown body fields are discarded.
// @Tags        Admin
// @Security    AdminBearer
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Contact ID (24-char hex)"
// @Param       body  body  handlers.UpdateContactRequest  true  "Fields to change"
// @Success     200  {object}  handlers.ContactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id or invalid field"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/admin/contacts/{id} [patch]
func (h *Handlers) AdminUpdateContact(c *gin.Context) {
	if !h.status.Connected() {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Server Error")
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	contact, err := h.contactSvc.Update(c.Request.Context(), c.Param("id"), services.ContactUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
		Status:  req.Status,
	})
	if err != nil {
		h.failAdminWrite(c, err)
		return
	}

	ok(c, http.StatusOK, ContactResponse{
		Success: true,
		Data:    contact,
		Message: "Contact updated successfully",
	})
}

// AdminUpdateStatus godoc
// @ID          adminUpdateStatus
// @Summary     Update a contact's status (admin)
// @Tags        Admin
// @Security    AdminBearer
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Contact ID (24-char hex)"
// @Param       body  body  handlers.UpdateStatusRequest  true  "New status"
// @Success     200  {object}  handlers.ContactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Status outside pending|contacted|rejected"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/admin/contacts/{id}/status [patch]
func (h *Handlers) AdminUpdateStatus(c *gin.Context) {
	if !h.status.Connected() {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Server Error")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	contact, err := h.contactSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.failAdminWrite(c, err)
		return
	}

	ok(c, http.StatusOK, ContactResponse{
		Success: true,
		Data:    contact,
		Message: "Status updated successfully",
	})
}

// AdminDeleteContact godoc
// @ID          adminDeleteContact
// @Summary     Delete a contact (admin)
// @Description Irreversible. A second delete of the same id returns 404.
// @Tags        Admin
// @Security    AdminBearer
// @Produce     json
// @Param       id  path  string  true  "Contact ID (24-char hex)"
// @Success     200  {object}  handlers.DeleteResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/admin/contacts/{id} [delete]
func (h *Handlers) AdminDeleteContact(c *gin.Context) {
	if !h.status.Connected() {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Server Error")
		return
	}

	if err := h.contactSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.failAdminWrite(c, err)
		return
	}

	ok(c, http.StatusOK, DeleteResponse{
		Success: true,
		Message: "Contact deleted successfully",
	})
}

// AdminStatistics godoc
// @ID          adminStatistics
// @Summary     Contact statistics (admin)
// @Description Totals per status plus the daily submission counts of the last 7 days.
// @Tags        Admin
// @Security    AdminBearer
// @Produce     json
// @Success     200  {object}  handlers.StatisticsResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/admin/statistics [get]
func (h *Handlers) AdminStatistics(c *gin.Context) {
	if !h.status.Connected() {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Server Error")
		return
	}

	stats, err := h.contactSvc.Statistics(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, "Server Error")
		return
	}

	ok(c, http.StatusOK, StatisticsResponse{Success: true, Data: stats})
}

// failAdminWrite maps service errors of admin write paths onto HTTP results.
func (h *Handlers) failAdminWrite(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrNoUpdatableFields):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Contact not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Server Error")
	}
}
