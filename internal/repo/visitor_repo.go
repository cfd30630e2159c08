// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the singleton
// visitor counter and its daily ledger.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/saasuno/contact-backend/internal/domain"
)

// ledgerDays is how far back daily buckets are retained.
const ledgerDays = 30

// GetOrInitVisitor returns the singleton counter row, creating it with the
// seed count and an empty ledger when absent. A concurrent create that loses
// the uniqueness race falls back to re-reading the winner's row.
func GetOrInitVisitor(ctx context.Context, db *gorm.DB) (*domain.Visitor, error) {
	var v domain.Visitor
	err := db.WithContext(ctx).Where("identifier = ?", domain.VisitorKey).First(&v).Error
	if err == nil {
		return &v, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	v = domain.Visitor{
		ID:            domain.NewID(),
		Identifier:    domain.VisitorKey,
		Count:         domain.VisitorSeed,
		DailyVisits:   []domain.DailyVisit{},
		LastIncrement: time.Now().UTC(),
	}
	if cerr := db.WithContext(ctx).Create(&v).Error; cerr != nil {
		// Lost the unique-index race: another request created the row first.
		if rerr := db.WithContext(ctx).Where("identifier = ?", domain.VisitorKey).First(&v).Error; rerr == nil {
			return &v, nil
		}
		return nil, cerr
	}
	return &v, nil
}

// IncrementVisitor applies one visit as a single logical update: count+1,
// lastIncrement refreshed, today's daily bucket created or incremented, and
// ledger entries older than 30 days pruned. The whole read/modify/write runs
// in one transaction; callers serialize concurrent increments (see
// services.VisitorService) so no update is lost.
func IncrementVisitor(ctx context.Context, db *gorm.DB) (*domain.Visitor, error) {
	var out *domain.Visitor
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := GetOrInitVisitor(ctx, tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		today := now.Format("2006-01-02")

		v.Count++
		v.LastIncrement = now

		bumped := false
		for i := range v.DailyVisits {
			if v.DailyVisits[i].Date == today {
				v.DailyVisits[i].Count++
				bumped = true
				break
			}
		}
		if !bumped {
			v.DailyVisits = append(v.DailyVisits, domain.DailyVisit{Date: today, Count: 1})
		}

		v.DailyVisits = pruneLedger(v.DailyVisits, now)

		if err := tx.Save(v).Error; err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// ResetVisitor overwrites the counter with newCount and clears the daily
// ledger. Destructive and non-additive; authorization happens in the service
// layer.
func ResetVisitor(ctx context.Context, db *gorm.DB, newCount int64) (*domain.Visitor, error) {
	var out *domain.Visitor
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := GetOrInitVisitor(ctx, tx)
		if err != nil {
			return err
		}
		v.Count = newCount
		v.DailyVisits = []domain.DailyVisit{}
		v.LastIncrement = time.Now().UTC()
		if err := tx.Save(v).Error; err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// pruneLedger drops buckets older than ledgerDays relative to now. Date keys
// are YYYY-MM-DD so a plain string comparison orders them correctly.
func pruneLedger(visits []domain.DailyVisit, now time.Time) []domain.DailyVisit {
	cutoff := now.AddDate(0, 0, -ledgerDays).Format("2006-01-02")
	kept := visits[:0]
	for _, dv := range visits {
		if dv.Date >= cutoff {
			kept = append(kept, dv)
		}
	}
	return kept
}
