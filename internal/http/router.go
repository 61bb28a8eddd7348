// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
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

	_ "github.com/mkarlsen/go-posts-backend/docs"
	"github.com/mkarlsen/go-posts-backend/internal/apperr"
	"github.com/mkarlsen/go-posts-backend/internal/config"
	"github.com/mkarlsen/go-posts-backend/internal/domain"
	"github.com/mkarlsen/go-posts-backend/internal/http/handlers"
	"github.com/mkarlsen/go-posts-backend/internal/http/middleware"
	"github.com/mkarlsen/go-posts-backend/internal/repo"
	"github.com/mkarlsen/go-posts-backend/internal/services"
)

// Repo shims adapt the repository free functions to the interfaces the
// services expect. This keeps services decoupled from the concrete repo
// package while reusing existing functions.

type userRepoShim struct{}

func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, id, email, username string, password []byte) (*domain.User, error) {
	return repo.CreateUser(ctx, db, id, email, username, password)
}

func (userRepoShim) GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmail(ctx, db, email)
}

func (userRepoShim) GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUserByID(ctx, db, id)
}

func (userRepoShim) UpdateUser(ctx context.Context, db *gorm.DB, id string, email, username *string) (*domain.User, error) {
	return repo.UpdateUser(ctx, db, id, email, username)
}

func (userRepoShim) DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteUser(ctx, db, id)
}

type sessionRepoShim struct{}

func (sessionRepoShim) CreateSession(ctx context.Context, db *gorm.DB, userID string) (*domain.Session, error) {
	return repo.CreateSession(ctx, db, userID)
}

func (sessionRepoShim) DeleteSession(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteSession(ctx, db, id)
}

type keyRepoShim struct{}

func (keyRepoShim) CreateKey(ctx context.Context, db *gorm.DB, userID string) (*domain.APIKey, error) {
	return repo.CreateKey(ctx, db, userID)
}

func (keyRepoShim) CountKeys(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountKeys(ctx, db, userID)
}

func (keyRepoShim) ListKeysPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.APIKey, error) {
	return repo.ListKeysPage(ctx, db, userID, offset, limit)
}

func (keyRepoShim) GetKey(ctx context.Context, db *gorm.DB, id, userID string) (*domain.APIKey, error) {
	return repo.GetKey(ctx, db, id, userID)
}

func (keyRepoShim) DeleteKey(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteKey(ctx, db, id, userID)
}

type postRepoShim struct{}

func (postRepoShim) CreatePost(ctx context.Context, db *gorm.DB, userID, title, content string) (*domain.Post, error) {
	return repo.CreatePost(ctx, db, userID, title, content)
}

func (postRepoShim) CountPosts(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountPosts(ctx, db)
}

func (postRepoShim) ListPostsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Post, error) {
	return repo.ListPostsPage(ctx, db, offset, limit)
}

func (postRepoShim) CountUserPosts(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountUserPosts(ctx, db, userID)
}

func (postRepoShim) ListUserPostsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Post, error) {
	return repo.ListUserPostsPage(ctx, db, userID, offset, limit)
}

func (postRepoShim) GetPost(ctx context.Context, db *gorm.DB, id string) (*domain.Post, error) {
	return repo.GetPost(ctx, db, id)
}

func (postRepoShim) UpdatePost(ctx context.Context, db *gorm.DB, id, userID string, title, content *string) (*domain.Post, error) {
	return repo.UpdatePost(ctx, db, id, userID, title, content)
}

func (postRepoShim) DeletePost(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeletePost(ctx, db, id, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. rlDefault limits every request per user/IP; rlAuth applies a
// tighter per-IP limit to the credential endpoints, where callers are
// anonymous by definition.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with credential scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. CORS, security headers, compression
//  8. Rate limiter (per user/IP)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, rlDefault, rlAuth *middleware.RateLimiter) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with credential redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to the standard 500 envelope
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(cfg.MaxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7a) CORS posture. Credentials (cookies) are only allowed with an
	// explicit origin allowlist; the wildcard posture never sends them.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Retry-After"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 7b) Security headers (HSTS only when enabled and request is HTTPS).
	// no-store: every authenticated response carries account data.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// 7c) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) Token-bucket rate limiter per user/IP
	r.Use(rlDefault.Handler())

	// Fallbacks
	r.NoRoute(func(c *gin.Context) { apperr.Respond(c, apperr.NoRoute()) })
	r.NoMethod(func(c *gin.Context) { apperr.Respond(c, apperr.NoMethod()) })

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	authSvc := services.NewAuthService(db, userRepoShim{}, sessionRepoShim{}, keyRepoShim{})
	authSvc.FoldUniques = cfg.UniqueCaseInsensitive
	postSvc := services.NewPostService(db, postRepoShim{})
	keySvc := services.NewKeyService(db, keyRepoShim{})

	ah := handlers.NewAuthHandlers(authSvc)
	ph := handlers.NewPostHandlers(postSvc)
	kh := handlers.NewKeyHandlers(keySvc)

	requireIdentity := middleware.RequireIdentity(db)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Credential endpoints: anonymous, tighter per-IP limit.
		authPub := api.Group("/auth", rlAuth.Handler())
		{
			authPub.POST("/register", ah.Register)
			authPub.POST("/login", ah.Login)
		}

		// Account endpoints behind authentication.
		auth := api.Group("/auth", requireIdentity)
		{
			auth.GET("/logout", ah.Logout)
			auth.GET("/me", ah.Me)
			auth.PUT("/me", ah.UpdateMe)
			auth.DELETE("/me", ah.DeleteMe)
		}

		// Posts: the feed and single posts are public, writes are not.
		api.GET("/posts", ph.ListPosts)
		api.GET("/posts/:id", ph.GetPost)

		posts := api.Group("/posts", requireIdentity)
		{
			posts.GET("/me", ph.ListMyPosts)
			posts.POST("", ph.CreatePost)
			posts.PUT("/:id", ph.UpdatePost)
			posts.DELETE("/:id", ph.DeletePost)
		}

		// API keys: always authenticated.
		keys := api.Group("/keys", requireIdentity)
		{
			keys.GET("", kh.ListKeys)
			keys.POST("", kh.CreateKey)
			keys.GET("/:id", kh.GetKey)
			keys.DELETE("/:id", kh.DeleteKey)
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

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
