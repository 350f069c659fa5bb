// Package httpapi wires the HTTP transport (Gin) to the repository and
// service layers. It centralizes cross-cutting concerns such as tracing,
// correlation IDs, logging, panic recovery, error normalization, metrics,
// compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery →
//     error normalization)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/config"
	"github.com/tbourn/go-screentime-backend/internal/http/handlers"
	"github.com/tbourn/go-screentime-backend/internal/http/middleware"
	"github.com/tbourn/go-screentime-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. ErrorHandler: normalize failures attached by handlers
//  6. Body size limiter
//  7. Metrics
//  8. Gzip compression
//  9. Rate limiter (per IP)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Error normalization for failures attached via c.Error
	r.Use(handlers.ErrorHandler())

	// 6) Global body size limit (5 MiB; import batches are the largest payloads)
	r.Use(limitBody(5 << 20))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Compress report payloads
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 9) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
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

	// Fallbacks render the standard envelope.
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, handlers.NotFound("route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, handlers.NewAPIError(http.StatusMethodNotAllowed, "method not allowed"))
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: handlers ← service ← db
	importSvc := &services.ImportService{DB: db}
	h := handlers.New(db, importSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Departments
		api.POST("/departments", h.CreateDepartment)
		api.GET("/departments", h.ListDepartments)
		api.GET("/departments/:id", h.GetDepartment)
		api.PUT("/departments/:id", h.UpdateDepartment)
		api.DELETE("/departments/:id", h.DeleteDepartment)

		// Positions
		api.POST("/positions", h.CreatePosition)
		api.GET("/positions", h.ListPositions)
		api.GET("/positions/:id", h.GetPosition)
		api.PUT("/positions/:id", h.UpdatePosition)
		api.DELETE("/positions/:id", h.DeletePosition)

		// Employees
		api.POST("/employees", h.CreateEmployee)
		api.GET("/employees", h.ListEmployees)
		api.GET("/employees/:id", h.GetEmployee)
		api.PUT("/employees/:id", h.UpdateEmployee)
		api.DELETE("/employees/:id", h.DeleteEmployee)

		// Workstations
		api.POST("/workstations", h.CreateWorkstation)
		api.GET("/workstations", h.ListWorkstations)
		api.GET("/workstations/:id", h.GetWorkstation)
		api.PUT("/workstations/:id", h.UpdateWorkstation)
		api.DELETE("/workstations/:id", h.DeleteWorkstation)

		// Applications
		api.POST("/applications", h.CreateApplication)
		api.GET("/applications", h.ListApplications)
		api.GET("/applications/:id", h.GetApplication)
		api.PUT("/applications/:id", h.UpdateApplication)
		api.DELETE("/applications/:id", h.DeleteApplication)

		// Sessions (append-only)
		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/:id", h.GetSession)
		api.DELETE("/sessions/:id", h.DeleteSession)

		// Reports
		api.GET("/reports/employee-daily", h.EmployeeDailyReport)
		api.GET("/reports/department-daily", h.DepartmentDailyReport)
		api.GET("/reports/last-activity", h.LastActivityReport)
		api.GET("/reports/top-overworked", h.TopOverworkedReport)
		api.GET("/reports/department-load", h.DepartmentLoadReport)

		// Batch import
		api.POST("/batch-import/sessions", h.ImportSessions)
		api.GET("/batch-import/logs", h.ListImportLogs)
		api.GET("/batch-import/logs/:id", h.GetImportLog)
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
