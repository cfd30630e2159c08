// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and the connection status flag
// consulted by handlers that degrade to demo responses.
package repo

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/saasuno/contact-backend/internal/domain"
)

// connectTimeout bounds the initial reachability check.
const connectTimeout = 5 * time.Second

// Status reports whether the backing store is reachable. It is shared
// between the bootstrap code and every request handler; reads and writes
// are atomic so per-request checks never block.
type Status struct {
	connected atomic.Bool
}

// Connected reports the current connection state.
func (s *Status) Connected() bool { return s.connected.Load() }

// SetConnected updates the connection state.
func (s *Status) SetConnected(v bool) { s.connected.Store(v) }

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all domain entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Contact{},
		&domain.Visitor{},
	)
}

// Connect opens the store at path, migrates the schema, and verifies
// reachability with a bounded ping. It never terminates the process: on any
// failure it logs a diagnostic checklist and returns a nil DB plus a Status
// reporting disconnected, so the service can keep serving degraded
// responses.
//
// When otelTracing is true the GORM OpenTelemetry plugin is attached so
// queries appear as spans under the active trace.
func Connect(ctx context.Context, path string, otelTracing bool) (*gorm.DB, *Status) {
	st := &Status{}

	log.Info().Str("db_path", path).Msg("connecting to database")

	db, err := OpenSQLite(path)
	if err == nil {
		err = AutoMigrate(db)
	}
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if sqlDB, derr := db.DB(); derr != nil {
			err = derr
		} else {
			err = sqlDB.PingContext(pingCtx)
		}
	}

	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		log.Warn().Msg("check: 1) the database file path exists and is writable")
		log.Warn().Msg("check: 2) credentials / file permissions are correct")
		log.Warn().Msg("check: 3) the host or volume is reachable (IP allow-list, network)")
		log.Warn().Msg("continuing without persistence; public endpoints serve demo data")
		return nil, st
	}

	if otelTracing {
		if perr := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); perr != nil {
			log.Warn().Err(perr).Msg("gorm otel plugin not attached")
		}
	}

	st.SetConnected(true)
	log.Info().Msg("database connected")
	return db, st
}
