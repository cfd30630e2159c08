// Package domain defines the persistence models for contact submissions and
// the visitor counter. These types are mapped with GORM and form the core
// data layer of the backend.
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"time"
)

// Contact statuses. A contact is always in exactly one of these states;
// writes with any other value are rejected at the service layer and by the
// DB check constraint.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusRejected  = "rejected"
)

// ValidStatus reports whether s is one of the three allowed contact statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusContacted, StatusRejected:
		return true
	}
	return false
}

// VisitorKey is the fixed identifier of the singleton visitor counter row.
const VisitorKey = "global_visitor_count"

// VisitorSeed is the initial visitor count used both for the durable counter
// and the in-memory fallback.
const VisitorSeed = 1024

// idRE matches the 24-character lowercase/uppercase hex form used for record
// identifiers (the wire format inherited by the public API contract).
var idRE = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID returns a new 24-character lowercase hex identifier.
func NewID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; a panic here means
		// the process has no usable entropy source at all.
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// IsValidID reports whether id has the expected 24-character hex form.
func IsValidID(id string) bool { return idRE.MatchString(id) }

// Contact represents one contact-form submission.
//
// Fields:
//   - ID: stable 24-hex primary key (char(24)).
//   - Name / Email: required; email is stored lower-cased.
//   - Phone / Company / Message: optional free text.
//   - Status: pending|contacted|rejected, defaults to pending.
//   - CreatedAt: submission time (UTC), set by the repo on create.
type Contact struct {
	ID        string    `json:"id"        gorm:"type:char(24);primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"     gorm:"type:varchar(255);not null;index"`
	Phone     string    `json:"phone,omitempty"   gorm:"type:varchar(64)"`
	Company   string    `json:"company,omitempty" gorm:"type:varchar(255)"`
	Message   string    `json:"message,omitempty" gorm:"type:text"`
	Status    string    `json:"status"    gorm:"type:varchar(16);not null;default:'pending';index;check:status IN ('pending','contacted','rejected')"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TableName returns the database table name for Contact.
func (Contact) TableName() string { return "contacts" }

// DailyVisit is one entry of the visitor daily ledger: all increments that
// happened on a single UTC calendar date.
type DailyVisit struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// Visitor is the process-wide singleton visitor counter, keyed by
// VisitorKey. At most one row exists per identifier (unique index); the
// daily ledger holds at most one entry per date and is pruned to 30 days on
// every write.
type Visitor struct {
	ID            string       `json:"id"            gorm:"type:char(24);primaryKey"`
	Identifier    string       `json:"identifier"    gorm:"type:varchar(64);not null;uniqueIndex"`
	Count         int64        `json:"count"         gorm:"not null;default:1024"`
	DailyVisits   []DailyVisit `json:"dailyVisits"   gorm:"serializer:json"`
	LastIncrement time.Time    `json:"lastIncrement"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TableName returns the database table name for Visitor.
func (Visitor) TableName() string { return "visitors" }
