// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Contact
// model.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/saasuno/contact-backend/internal/domain"
)

// ContactFilter narrows list and count queries. Status must be one of the
// three enum values to take effect; anything else is ignored (not rejected),
// matching the public filter contract. Search matches name, email, or
// company case-insensitively as a substring.
type ContactFilter struct {
	Status string
	Search string
}

// apply appends the filter's WHERE clauses to q.
func (f ContactFilter) apply(q *gorm.DB) *gorm.DB {
	if domain.ValidStatus(f.Status) {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?", pat, pat, pat)
	}
	return q
}

// CreateContact inserts a new contact row. Validation of required fields
// happens in the service layer; this assigns the id, default status, and
// creation timestamp.
func CreateContact(ctx context.Context, db *gorm.DB, name, email, phone, company, message string) (*domain.Contact, error) {
	c := &domain.Contact{
		ID:        domain.NewID(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Company:   company,
		Message:   message,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	return c, db.WithContext(ctx).Create(c).Error
}

// ListContacts returns a page of contacts matching filter, newest first.
func ListContacts(ctx context.Context, db *gorm.DB, f ContactFilter, offset, limit int) ([]domain.Contact, error) {
	var out []domain.Contact
	q := f.apply(db.WithContext(ctx).Model(&domain.Contact{})).
		Order("created_at DESC, id DESC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountContacts returns the number of contacts matching filter, before
// pagination.
func CountContacts(ctx context.Context, db *gorm.DB, f ContactFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Contact{})).Count(&total).Error
	return total, err
}

// GetContact fetches a contact by ID. Returns gorm.ErrRecordNotFound when
// absent; malformed ids are rejected upstream before any query is issued.
func GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.Contact, error) {
	var c domain.Contact
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContact applies the given column updates to an existing contact and
// returns the updated record. The caller is responsible for restricting
// updates to the allow-listed mutable fields.
func UpdateContact(ctx context.Context, db *gorm.DB, id string, updates map[string]any) (*domain.Contact, error) {
	res := db.WithContext(ctx).Model(&domain.Contact{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetContact(ctx, db, id)
}

// DeleteContact removes a contact row. Returns gorm.ErrRecordNotFound when
// no row matched, so a second delete of the same id fails the same way.
func DeleteContact(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
