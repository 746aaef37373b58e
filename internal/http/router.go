// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// rate limiting, CORS, and security headers.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing (phone-heavy API)
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per phone/IP)
//  8. CORS and security headers
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

	"github.com/kaunkarega/taskmatch-backend/internal/config"
	"github.com/kaunkarega/taskmatch-backend/internal/gateway"
	"github.com/kaunkarega/taskmatch-backend/internal/http/handlers"
	"github.com/kaunkarega/taskmatch-backend/internal/http/middleware"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine, then mounts the versioned public API under cfg.APIBasePath.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, sender gateway.Sender, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"Idempotency-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per phone/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByPhoneOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
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
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Compress transcripts and admin listings.
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← db/gateway/config
	otpSvc := &services.OTPService{
		DB:         db,
		Gateway:    sender,
		Template:   cfg.WhatsApp.OTPTemplate,
		CodeLength: cfg.OTPLength,
		TTL:        cfg.OTPTTL,
	}
	registerSvc := &services.RegisterService{DB: db}
	matchSvc := &services.MatchService{DB: db}
	taskSvc := &services.TaskService{DB: db, ReceiptTTL: cfg.ReceiptTTL}
	notifySvc := &services.NotifyService{
		DB:          db,
		Gateway:     sender,
		Template:    cfg.WhatsApp.JobTemplate,
		ChatBaseURL: cfg.ChatBaseURL,
	}
	chatSvc := &services.ChatService{DB: db, TTL: cfg.ChatTTL}
	msgSvc := &services.MessageService{DB: db, Chat: chatSvc}
	reviewSvc := &services.ReviewService{DB: db, Chat: chatSvc}
	adminSvc := &services.AdminService{DB: db}

	h := handlers.New(otpSvc, registerSvc, taskSvc, matchSvc, notifySvc, chatSvc, msgSvc, reviewSvc, adminSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Auth
		api.POST("/otp/send", h.SendOTP)
		api.POST("/otp/verify", h.VerifyOTP)

		// Registration
		api.POST("/register/provider", h.RegisterProvider)
		api.POST("/register/receiver", h.RegisterReceiver)

		// Tasks
		api.POST("/tasks", h.CreateTask)
		api.GET("/tasks/:id", h.GetTask)
		api.POST("/tasks/:id/notify", h.NotifyProviders)

		// Chat rooms
		api.POST("/chat/open", h.OpenChat)
		api.GET("/chat/open", h.OpenChatByQuery)
		api.GET("/rooms/:id/messages", h.ListRoomMessages)
		api.POST("/rooms/:id/messages", h.PostRoomMessage)

		// Reviews
		api.GET("/rooms/:id/review", h.GetReview)
		api.POST("/rooms/:id/review", h.SubmitReview)

		// Admin
		api.GET("/admin/stats", h.AdminStats)
		api.GET("/admin/chats", h.AdminListChats)
		api.GET("/admin/tasks", h.AdminListTasks)
		api.GET("/admin/tasks/unanswered", h.AdminUnansweredTasks)
		api.POST("/admin/rooms/:id/close", h.AdminCloseRoom)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader. Requests exceeding the cap fail on body read.
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
