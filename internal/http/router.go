// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Public paths degrade gracefully when the database is down; admin
//     paths stay strict behind the shared-secret gate
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/saasuno/contact-backend/internal/config"
	"github.com/saasuno/contact-backend/internal/domain"
	"github.com/saasuno/contact-backend/internal/http/handlers"
	"github.com/saasuno/contact-backend/internal/http/middleware"
	"github.com/saasuno/contact-backend/internal/repo"
	"github.com/saasuno/contact-backend/internal/services"
)

// contactRepoShim adapts the repository free functions to the
// services.ContactRepo interface expected by the ContactService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type contactRepoShim struct{}

// CreateContact proxies repo.CreateContact.
func (contactRepoShim) CreateContact(ctx context.Context, db *gorm.DB, name, email, phone, company, message string) (*domain.Contact, error) {
	return repo.CreateContact(ctx, db, name, email, phone, company, message)
}

// ListContacts proxies repo.ListContacts.
func (contactRepoShim) ListContacts(ctx context.Context, db *gorm.DB, f repo.ContactFilter, offset, limit int) ([]domain.Contact, error) {
	return repo.ListContacts(ctx, db, f, offset, limit)
}

// CountContacts proxies repo.CountContacts.
func (contactRepoShim) CountContacts(ctx context.Context, db *gorm.DB, f repo.ContactFilter) (int64, error) {
	return repo.CountContacts(ctx, db, f)
}

// GetContact proxies repo.GetContact.
func (contactRepoShim) GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.Contact, error) {
	return repo.GetContact(ctx, db, id)
}

// UpdateContact proxies repo.UpdateContact.
func (contactRepoShim) UpdateContact(ctx context.Context, db *gorm.DB, id string, updates map[string]any) (*domain.Contact, error) {
	return repo.UpdateContact(ctx, db, id, updates)
}

// DeleteContact proxies repo.DeleteContact.
func (contactRepoShim) DeleteContact(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteContact(ctx, db, id)
}

// CountContactsByStatus proxies repo.CountContactsByStatus.
func (contactRepoShim) CountContactsByStatus(ctx context.Context, db *gorm.DB) (repo.StatusCounts, error) {
	return repo.CountContactsByStatus(ctx, db)
}

// DailyContactCounts proxies repo.DailyContactCounts.
func (contactRepoShim) DailyContactCounts(ctx context.Context, db *gorm.DB, since time.Time) ([]repo.DailyCount, error) {
	return repo.DailyContactCounts(ctx, db, since)
}

// visitorRepoShim adapts the visitor repository free functions to
// services.VisitorRepo.
type visitorRepoShim struct{}

// GetOrInitVisitor proxies repo.GetOrInitVisitor.
func (visitorRepoShim) GetOrInitVisitor(ctx context.Context, db *gorm.DB) (*domain.Visitor, error) {
	return repo.GetOrInitVisitor(ctx, db)
}

// IncrementVisitor proxies repo.IncrementVisitor.
func (visitorRepoShim) IncrementVisitor(ctx context.Context, db *gorm.DB) (*domain.Visitor, error) {
	return repo.IncrementVisitor(ctx, db)
}

// ResetVisitor proxies repo.ResetVisitor.
func (visitorRepoShim) ResetVisitor(ctx context.Context, db *gorm.DB, newCount int64) (*domain.Visitor, error) {
	return repo.ResetVisitor(ctx, db, newCount)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. db may be nil when the store is unreachable; handlers consult
// status per request and fall back to demo responses on public paths.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. CORS, gzip, and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, status *repo.Status, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction. Contact submissions carry PII
	// (emails, phone numbers), so the access log scrubs them.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP, protecting the
	// unauthenticated form endpoint in particular.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 8) CORS posture. With a configured allow-list the browser frontend may
	// send credentials; without one we fall back to allow-all (credentials
	// must then stay off).
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Response compression ( /metrics stays uncompressed for scrapers)
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/status
	contactSvc := services.NewContactService(db, contactRepoShim{})
	visitorSvc := services.NewVisitorService(db, visitorRepoShim{}, cfg.AdminToken)
	mem := services.NewMemCounter()
	h := handlers.New(contactSvc, visitorSvc, status, mem, cfg.AdminToken, cfg.Environment)

	// System endpoints
	r.GET("/", h.Index)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/test", h.Test)

		// Public contact form
		api.POST("/contacts", h.CreateContact)
		api.GET("/contacts", h.ListContacts)
		api.GET("/contacts/:id", h.GetContact)

		// Visitor counter (reset carries its own token in the body)
		api.GET("/visitors/count", h.VisitorCount)
		api.POST("/visitors/increment", h.VisitorIncrement)
		api.POST("/visitors/reset", h.VisitorReset)

		// Admin surface behind the shared-secret bearer gate
		admin := api.Group("/admin", middleware.AdminAuth(cfg.AdminToken))
		{
			admin.GET("/contacts", h.AdminListContacts)
			admin.PATCH("/contacts/:id", h.AdminUpdateContact)
			admin.PATCH("/contacts/:id/status", h.AdminUpdateStatus)
			admin.DELETE("/contacts/:id", h.AdminDeleteContact)
			admin.GET("/statistics", h.AdminStatistics)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
