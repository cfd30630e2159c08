// Package services – ContactService
//
// This file implements the ContactService, which manages the lifecycle of
// contact-form submissions. It validates required fields, normalizes emails,
// enforces the three-way status enum, clamps pagination, and coordinates
// repository operations for creating, listing, updating, deleting, and
// aggregating contacts.
//
// Service-level errors (e.g., ErrContactNotFound) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/saasuno/contact-backend/internal/domain"
	"github.com/saasuno/contact-backend/internal/repo"
)

// ContactRepo defines the repository contract required by ContactService.
// Implementations are responsible for persistence of contact records.
type ContactRepo interface {
	// CreateContact inserts a new contact row with defaults applied.
	CreateContact(ctx context.Context, db *gorm.DB, name, email, phone, company, message string) (*domain.Contact, error)

	// ListContacts returns a page of contacts matching filter, newest first.
	ListContacts(ctx context.Context, db *gorm.DB, f repo.ContactFilter, offset, limit int) ([]domain.Contact, error)

	// CountContacts returns the pre-pagination total for filter.
	CountContacts(ctx context.Context, db *gorm.DB, f repo.ContactFilter) (int64, error)

	// GetContact fetches a contact by ID.
	GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.Contact, error)

	// UpdateContact applies column updates and returns the updated record.
	UpdateContact(ctx context.Context, db *gorm.DB, id string, updates map[string]any) (*domain.Contact, error)

	// DeleteContact removes a contact row.
	DeleteContact(ctx context.Context, db *gorm.DB, id string) error

	// CountContactsByStatus returns total and per-status counts.
	CountContactsByStatus(ctx context.Context, db *gorm.DB) (repo.StatusCounts, error)

	// DailyContactCounts returns per-day creation counts since the given time.
	DailyContactCounts(ctx context.Context, db *gorm.DB, since time.Time) ([]repo.DailyCount, error)
}

// ContactInput carries the fields accepted from a public form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

// ContactUpdate carries the allow-listed mutable fields of an admin update.
// Nil pointers mean "leave unchanged"; anything outside this set is never
// written, regardless of what the request body contained.
type ContactUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Message *string
	Status  *string
}

// Statistics is the aggregate payload behind the admin statistics endpoint.
type Statistics struct {
	repo.StatusCounts
	DailyStats []repo.DailyCount `json:"dailyStats"`
}

// ContactService provides contact-record operations: validated creation,
// filtered listing with pagination, allow-listed updates, deletion, and
// statistics aggregation.
type ContactService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the contact repository used by this service.
	Repo ContactRepo

	// TrendDays is the window of the daily statistics series.
	TrendDays int
}

// NewContactService constructs a ContactService with the default 7-day
// statistics window.
func NewContactService(db *gorm.DB, r ContactRepo) *ContactService {
	return &ContactService{DB: db, Repo: r, TrendDays: 7}
}

// Create validates and persists a new submission. Name and email are
// required; email is stored lower-cased; status and createdAt default in the
// repo layer.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*domain.Contact, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.Repo.CreateContact(ctx, s.DB, name, email,
		strings.TrimSpace(in.Phone), strings.TrimSpace(in.Company), strings.TrimSpace(in.Message))
}

// ListPage returns a page of contacts matching filter plus the total count.
// It applies defaults for invalid page/limit values.
func (s *ContactService) ListPage(ctx context.Context, f repo.ContactFilter, page, limit int) ([]domain.Contact, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	total, err := s.Repo.CountContacts(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Contact{}, 0, nil
	}

	items, err := s.Repo.ListContacts(ctx, s.DB, f, offset, limit)
	return items, total, err
}

// Get fetches a single contact by id.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	c, err := s.Repo.GetContact(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	return c, err
}

// Update applies an allow-listed partial update. Name and email, when
// present, must remain non-empty; email is lower-cased; status must be one
// of the enum values.
func (s *ContactService) Update(ctx context.Context, id string, upd ContactUpdate) (*domain.Contact, error) {
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}

	updates := make(map[string]any, 6)
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = name
	}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if email == "" {
			return nil, ErrEmailRequired
		}
		updates["email"] = email
	}
	if upd.Phone != nil {
		updates["phone"] = strings.TrimSpace(*upd.Phone)
	}
	if upd.Company != nil {
		updates["company"] = strings.TrimSpace(*upd.Company)
	}
	if upd.Message != nil {
		updates["message"] = strings.TrimSpace(*upd.Message)
	}
	if upd.Status != nil {
		if !domain.ValidStatus(*upd.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *upd.Status
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdatableFields
	}

	c, err := s.Repo.UpdateContact(ctx, s.DB, id, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	return c, err
}

// UpdateStatus mutates only the status field, rejecting values outside the
// enum.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	c, err := s.Repo.UpdateContact(ctx, s.DB, id, map[string]any{"status": status})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	return c, err
}

// Delete removes a contact permanently. Deleting an absent id (including a
// second delete of the same id) returns ErrContactNotFound.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return ErrInvalidID
	}
	err := s.Repo.DeleteContact(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContactNotFound
	}
	return err
}

// Statistics returns totals per status plus the daily submission trend over
// the configured window.
func (s *ContactService) Statistics(ctx context.Context) (*Statistics, error) {
	counts, err := s.Repo.CountContactsByStatus(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	days := s.TrendDays
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	daily, err := s.Repo.DailyContactCounts(ctx, s.DB, since)
	if err != nil {
		return nil, err
	}
	if daily == nil {
		daily = []repo.DailyCount{}
	}
	return &Statistics{StatusCounts: counts, DailyStats: daily}, nil
}
