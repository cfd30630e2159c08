// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the admin
// statistics endpoint: per-status totals and the daily submission trend.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/saasuno/contact-backend/internal/domain"
)

// StatusCounts holds the per-status breakdown of stored contacts.
type StatusCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Contacted int64 `json:"contacted"`
	Rejected  int64 `json:"rejected"`
}

// CountContactsByStatus returns the total number of contacts and the count
// in each status, in a single grouped query.
func CountContactsByStatus(ctx context.Context, db *gorm.DB) (StatusCounts, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, err
	}

	var out StatusCounts
	for _, r := range rows {
		out.Total += r.N
		switch r.Status {
		case domain.StatusPending:
			out.Pending = r.N
		case domain.StatusContacted:
			out.Contacted = r.N
		case domain.StatusRejected:
			out.Rejected = r.N
		}
	}
	return out, nil
}

// DailyCount is one bucket of the submission trend: the number of contacts
// created on a single UTC calendar date.
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// DailyContactCounts groups contacts created on or after since by calendar
// date (UTC), sorted ascending by date.
//
// CreatedAt values are stored in UTC, so the first ten characters of the
// serialized timestamp are exactly the YYYY-MM-DD date key. substr avoids
// strftime's pickiness about fractional-second formats.
func DailyContactCounts(ctx context.Context, db *gorm.DB, since time.Time) ([]DailyCount, error) {
	var out []DailyCount
	err := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Select("substr(created_at, 1, 10) AS date, COUNT(*) AS count").
		Where("created_at >= ?", since.UTC()).
		Group("substr(created_at, 1, 10)").
		Order("date ASC").
		Scan(&out).Error
	return out, err
}
