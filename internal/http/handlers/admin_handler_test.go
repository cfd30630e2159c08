package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/saasuno/contact-backend/internal/domain"
	"github.com/saasuno/contact-backend/internal/repo"
	"github.com/saasuno/contact-backend/internal/services"
)

// ---------- GET /api/admin/contacts ----------

func TestAdminListContacts_PassesFilterAndPaginates(t *testing.T) {
	var gotFilter repo.ContactFilter
	var gotPage, gotLimit int
	svc := stubContactSvc{listPage: func(_ context.Context, f repo.ContactFilter, page, limit int) ([]domain.Contact, int64, error) {
		gotFilter, gotPage, gotLimit = f, page, limit
		return make([]domain.Contact, 10), 25, nil
	}}
	r := newTestRouter(svc, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodGet, "/api/admin/contacts?status=pending&search=acme&page=2&limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotFilter.Status != "pending" || gotFilter.Search != "acme" {
		t.Errorf("filter = %+v", gotFilter)
	}
	if gotPage != 2 || gotLimit != 10 {
		t.Errorf("page/limit = %d/%d", gotPage, gotLimit)
	}

	body := decode(t, w)
	p := body["pagination"].(map[string]any)
	if p["page"] != float64(2) || p["limit"] != float64(10) || p["total"] != float64(25) || p["pages"] != float64(3) {
		t.Errorf("pagination = %v", p)
	}
}

func TestAdminListContacts_ServerErrorWhenDBDown(t *testing.T) {
	r := newTestRouter(stubContactSvc{}, stubVisitorSvc{}, false)

	w := doJSON(t, r, http.MethodGet, "/api/admin/contacts", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("admin paths must not degrade: %d", w.Code)
	}
	if body := decode(t, w); body["message"] != "Server Error" {
		t.Errorf("message = %v", body["message"])
	}
}

// ---------- PATCH /api/admin/contacts/:id ----------

func TestAdminUpdateContact_ForwardsAllowListedFields(t *testing.T) {
	var got services.ContactUpdate
	svc := stubContactSvc{update: func(_ context.Context, id string, upd services.ContactUpdate) (*domain.Contact, error) {
		got = upd
		return &domain.Contact{ID: id, Name: *upd.Name, Status: domain.StatusPending}, nil
	}}
	r := newTestRouter(svc, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/contacts/64f1c0ffee64f1c0ffee64f1",
		gin.H{"name": "New Name", "company": "Acme", "bogus": "ignored"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if got.Name == nil || *got.Name != "New Name" {
		t.Errorf("name not forwarded: %+v", got)
	}
	if got.Company == nil || *got.Company != "Acme" {
		t.Errorf("company not forwarded: %+v", got)
	}
	if got.Email != nil || got.Status != nil {
		t.Errorf("absent fields must stay nil: %+v", got)
	}
}

func TestAdminUpdateContact_InvalidID(t *testing.T) {
	svc := stubContactSvc{update: func(_ context.Context, _ string, _ services.ContactUpdate) (*domain.Contact, error) {
		return nil, services.ErrInvalidID
	}}
	r := newTestRouter(svc, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/contacts/short", gin.H{"name": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAdminUpdateContact_NotFound(t *testing.T) {
	r := newTestRouter(stubContactSvc{}, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/contacts/64f1c0ffee64f1c0ffee64f1", gin.H{"name": "x"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

// ---------- PATCH /api/admin/contacts/:id/status ----------

func TestAdminUpdateStatus_OK(t *testing.T) {
	svc := stubContactSvc{updateStatus: func(_ context.Context, id, status string) (*domain.Contact, error) {
		return &domain.Contact{ID: id, Status: status}, nil
	}}
	r := newTestRouter(svc, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/contacts/64f1c0ffee64f1c0ffee64f1/status",
		gin.H{"status": "contacted"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	data := body["data"].(map[string]any)
	if data["status"] != "contacted" {
		t.Errorf("status = %v", data["status"])
	}
}

func TestAdminUpdateStatus_RejectsInvalidEnum(t *testing.T) {
	svc := stubContactSvc{updateStatus: func(_ context.Context, _, _ string) (*domain.Contact, error) {
		return nil, services.ErrInvalidStatus
	}}
	r := newTestRouter(svc, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/contacts/64f1c0ffee64f1c0ffee64f1/status",
		gin.H{"status": "archived"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

// ---------- DELETE /api/admin/contacts/:id ----------

func TestAdminDeleteContact_OK(t *testing.T) {
	svc := stubContactSvc{delete: func(_ context.Context, _ string) error { return nil }}
	r := newTestRouter(svc, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/contacts/64f1c0ffee64f1c0ffee64f1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decode(t, w); body["message"] != "Contact deleted successfully" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestAdminDeleteContact_NotFound(t *testing.T) {
	r := newTestRouter(stubContactSvc{}, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/contacts/64f1c0ffee64f1c0ffee64f1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

// ---------- GET /api/admin/statistics ----------

func TestAdminStatistics_OK(t *testing.T) {
	svc := stubContactSvc{statistics: func(_ context.Context) (*services.Statistics, error) {
		return &services.Statistics{
			StatusCounts: repo.StatusCounts{Total: 1, Contacted: 1},
			DailyStats:   []repo.DailyCount{{Date: "2026-08-30", Count: 1}},
		}, nil
	}}
	r := newTestRouter(svc, stubVisitorSvc{}, true)

	w := doJSON(t, r, http.MethodGet, "/api/admin/statistics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	data := body["data"].(map[string]any)
	if data["total"] != float64(1) || data["contacted"] != float64(1) || data["pending"] != float64(0) {
		t.Errorf("counts = %v", data)
	}
	daily := data["dailyStats"].([]any)
	if len(daily) != 1 {
		t.Errorf("dailyStats = %v", daily)
	}
}

func TestAdminStatistics_ServerErrorWhenDBDown(t *testing.T) {
	r := newTestRouter(stubContactSvc{}, stubVisitorSvc{}, false)

	w := doJSON(t, r, http.MethodGet, "/api/admin/statistics", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
