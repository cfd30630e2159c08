// Package services – VisitorService and the in-memory fallback counter.
//
// VisitorService orchestrates the durable singleton counter: reads,
// serialized increments, and the token-gated destructive reset. MemCounter
// is the process-local degradation path used when the store is unreachable;
// it is injectable so tests (and handlers) can own isolated instances
// instead of sharing module-level state.
package services

import (
	"context"
	"crypto/subtle"
	"sync"

	"gorm.io/gorm"

	"github.com/saasuno/contact-backend/internal/domain"
)

// VisitorRepo defines the repository contract required by VisitorService.
type VisitorRepo interface {
	// GetOrInitVisitor returns the singleton row, creating it when absent.
	GetOrInitVisitor(ctx context.Context, db *gorm.DB) (*domain.Visitor, error)

	// IncrementVisitor applies one visit as a single logical update.
	IncrementVisitor(ctx context.Context, db *gorm.DB) (*domain.Visitor, error)

	// ResetVisitor overwrites the count and clears the daily ledger.
	ResetVisitor(ctx context.Context, db *gorm.DB, newCount int64) (*domain.Visitor, error)
}

// VisitorService provides operations over the durable visitor counter.
//
// Increments are serialized on mu: the underlying read/modify/write is a
// per-row transaction, and the mutex guarantees concurrent increments in
// this process never lose updates.
type VisitorService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the visitor repository used by this service.
	Repo VisitorRepo
	// AdminToken is the shared secret required by Reset.
	AdminToken string

	mu sync.Mutex
}

// NewVisitorService constructs a VisitorService.
func NewVisitorService(db *gorm.DB, r VisitorRepo, adminToken string) *VisitorService {
	return &VisitorService{DB: db, Repo: r, AdminToken: adminToken}
}

// Count returns the current counter, lazily creating the singleton row.
func (s *VisitorService) Count(ctx context.Context) (*domain.Visitor, error) {
	return s.Repo.GetOrInitVisitor(ctx, s.DB)
}

// Increment adds one visit and returns the updated counter.
func (s *VisitorService) Increment(ctx context.Context) (*domain.Visitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Repo.IncrementVisitor(ctx, s.DB)
}

// Reset overwrites the count and clears the ledger. The caller token must
// equal the configured admin secret; comparison is constant-time.
func (s *VisitorService) Reset(ctx context.Context, newCount int64, callerToken string) (*domain.Visitor, error) {
	if subtle.ConstantTimeCompare([]byte(callerToken), []byte(s.AdminToken)) != 1 {
		return nil, ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Repo.ResetVisitor(ctx, s.DB, newCount)
}

// MemCounter is the non-durable fallback visitor counter, seeded at 1024.
// Its value is lost on process restart; callers must not rely on it
// surviving one. Safe for concurrent use.
type MemCounter struct {
	mu    sync.Mutex
	count int64
}

// NewMemCounter returns a fallback counter seeded with the standard value.
func NewMemCounter() *MemCounter {
	return &MemCounter{count: domain.VisitorSeed}
}

// Count returns the current in-memory value.
func (m *MemCounter) Count() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Increment adds one and returns the new value.
func (m *MemCounter) Increment() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	return m.count
}

// Reset overwrites the value and returns it.
func (m *MemCounter) Reset(n int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count = n
	return m.count
}
