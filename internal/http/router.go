// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Role checks at the route-group level, data scoping in the services
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

	"github.com/Deepanshu8560/AgentList/internal/auth"
	"github.com/Deepanshu8560/AgentList/internal/config"
	"github.com/Deepanshu8560/AgentList/internal/domain"
	"github.com/Deepanshu8560/AgentList/internal/http/handlers"
	"github.com/Deepanshu8560/AgentList/internal/http/middleware"
	"github.com/Deepanshu8560/AgentList/internal/repo"
	"github.com/Deepanshu8560/AgentList/internal/services"
)

// authRepoShim adapts the repository free functions to the services.AuthRepo
// interface. This keeps services decoupled from the concrete repo package
// while reusing existing functions.
type authRepoShim struct{}

func (authRepoShim) GetAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error) {
	return repo.GetAdminByEmail(ctx, db, email)
}

func (authRepoShim) GetAgentByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Agent, error) {
	return repo.GetAgentByEmail(ctx, db, email)
}

func (authRepoShim) CreateAdmin(ctx context.Context, db *gorm.DB, name, email, passwordHash string) (*domain.Admin, error) {
	return repo.CreateAdmin(ctx, db, name, email, passwordHash)
}

// agentRepoShim adapts the repo functions to services.AgentRepo.
type agentRepoShim struct{}

func (agentRepoShim) CreateAgent(ctx context.Context, db *gorm.DB, name, email, mobile, passwordHash string) (*domain.Agent, error) {
	return repo.CreateAgent(ctx, db, name, email, mobile, passwordHash)
}

func (agentRepoShim) GetAgent(ctx context.Context, db *gorm.DB, id string) (*domain.Agent, error) {
	return repo.GetAgent(ctx, db, id)
}

func (agentRepoShim) GetAgentByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Agent, error) {
	return repo.GetAgentByEmail(ctx, db, email)
}

func (agentRepoShim) GetAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error) {
	return repo.GetAdminByEmail(ctx, db, email)
}

func (agentRepoShim) ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error) {
	return repo.ListAgents(ctx, db)
}

func (agentRepoShim) UpdateAgentFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	return repo.UpdateAgentFields(ctx, db, id, fields)
}

func (agentRepoShim) DeleteAgent(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteAgent(ctx, db, id)
}

func (agentRepoShim) DeleteAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string) (int64, error) {
	return repo.DeleteAssignmentsByAgent(ctx, db, agentID)
}

// distRepoShim adapts the repo functions to services.DistributionRepo.
type distRepoShim struct{}

func (distRepoShim) ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error) {
	return repo.ListAgents(ctx, db)
}

func (distRepoShim) CreateUpload(ctx context.Context, db *gorm.DB, filename string, totalRecords int, uploadedBy string) (*domain.Upload, error) {
	return repo.CreateUpload(ctx, db, filename, totalRecords, uploadedBy)
}

func (distRepoShim) CreateAssignments(ctx context.Context, db *gorm.DB, batch []domain.Assignment) error {
	return repo.CreateAssignments(ctx, db, batch)
}

func (distRepoShim) ListUploads(ctx context.Context, db *gorm.DB, limit int) ([]domain.Upload, error) {
	return repo.ListUploads(ctx, db, limit)
}

// asgRepoShim adapts the repo functions to services.AssignmentRepo.
type asgRepoShim struct{}

func (asgRepoShim) ListAssignments(ctx context.Context, db *gorm.DB, limit int) ([]domain.Assignment, error) {
	return repo.ListAssignments(ctx, db, limit)
}

func (asgRepoShim) ListAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string, limit int) ([]domain.Assignment, error) {
	return repo.ListAssignmentsByAgent(ctx, db, agentID, limit)
}

func (asgRepoShim) ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error) {
	return repo.ListAgents(ctx, db)
}

func (asgRepoShim) CountAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string) (int64, error) {
	return repo.CountAssignmentsByAgent(ctx, db, agentID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with lead-PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (sized for lead file uploads)
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit; uploads are the largest payloads we accept
	r.Use(limitBody(cfg.MaxUploadBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress JSON responses; assignment listings can get large
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (disabled by default; enable via SWAGGER_ENABLED)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/token manager
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := services.NewAuthService(db, authRepoShim{}, tokens)
	agentSvc := services.NewAgentService(db, agentRepoShim{})
	distSvc := services.NewDistributionService(db, distRepoShim{})
	asgSvc := services.NewAssignmentService(db, asgRepoShim{})
	h := handlers.New(authSvc, agentSvc, distSvc, asgSvc)

	api := groupWithPrefix(r, cfg.APIBasePath)

	// Public: session bootstrap
	api.POST("/auth/register-admin", h.RegisterAdmin)
	api.POST("/auth/login", h.Login)

	// Any authenticated principal; services scope the data by role
	authed := api.Group("", middleware.Authenticate(tokens))
	authed.GET("/assignments", h.ListAssignments)

	// Admin-only management surface
	admin := authed.Group("", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/agents", h.CreateAgent)
		admin.GET("/agents", h.ListAgents)
		admin.PUT("/agents/:id", h.UpdateAgent)
		admin.DELETE("/agents/:id", h.DeleteAgent)

		admin.POST("/uploads", h.UploadFile)
		admin.GET("/uploads", h.ListUploads)

		admin.GET("/assignments/stats", h.AssignmentStats)
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

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
