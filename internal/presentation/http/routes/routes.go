package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/config"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/handler"
	"github.com/sangkips/ledger-api/internal/presentation/http/middleware"
	"github.com/sangkips/ledger-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Account        *handler.AccountHandler
	Party          *handler.PartyHandler
	Item           *handler.ItemHandler
	Transaction    *handler.TransactionHandler
	Report         *handler.ReportHandler
	Reconciliation *handler.ReconciliationHandler
	Reference      *handler.ReferenceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Per-tenant rate limiter
	rateLimiter := middleware.NewTenantRateLimiter(rateLimiterConfig(&deps.Cfg.RateLimit))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"rate_limiter": rateLimiter.Stats(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Reference data is public
		registerReferenceRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireTenant())
		protected.Use(rateLimiter.Middleware(middleware.BucketAPI))

		registerProtectedRoutes(protected, h, deps, rateLimiter)
	}

	return router
}

// rateLimiterConfig spreads each configured per-window budget evenly over the window
// and lets a client spend the whole budget at once.
func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Duration <= 0 {
		return rl
	}
	window := float64(cfg.Duration)
	if cfg.Requests > 0 {
		rl.Buckets[middleware.BucketAPI] = middleware.BucketLimit{RequestsPerSecond: float64(cfg.Requests) / window, Burst: cfg.Requests}
	}
	if cfg.ReportRequests > 0 {
		rl.Buckets[middleware.BucketReports] = middleware.BucketLimit{RequestsPerSecond: float64(cfg.ReportRequests) / window, Burst: cfg.ReportRequests}
	}
	rl.EntryTTL = 2 * time.Duration(cfg.Duration) * time.Second
	if rl.EntryTTL < 10*time.Minute {
		rl.EntryTTL = 10 * time.Minute
	}
	return rl
}

func registerReferenceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	ref := v1.Group("/reference")
	{
		ref.GET("/hsn-sac", h.Reference.SearchCodes)
		ref.GET("/hsn-sac/:code", h.Reference.GetCode)
		ref.GET("/states", h.Reference.States)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps, rateLimiter *middleware.TenantRateLimiter) {
	// Master data
	registerAccountRoutes(protected, h)
	registerPartyRoutes(protected, h)
	registerItemRoutes(protected, h)

	// Ledger
	registerTransactionRoutes(protected, h, deps)

	// Statements, tax reports and reconciliation read the whole ledger
	heavy := protected.Group("")
	heavy.Use(rateLimiter.Middleware(middleware.BucketReports))
	registerReportRoutes(heavy, h)
	registerReconciliationRoutes(heavy, h)
}

func registerAccountRoutes(protected *gin.RouterGroup, h *Handlers) {
	accounts := protected.Group("/accounts")
	{
		accounts.GET("", h.Account.List)
		accounts.POST("", h.Account.Create)
		accounts.GET("/:id", h.Account.Get)
		accounts.PUT("/:id", h.Account.Update)
		accounts.DELETE("/:id", h.Account.Delete)
	}
}

func registerPartyRoutes(protected *gin.RouterGroup, h *Handlers) {
	parties := protected.Group("/parties")
	{
		parties.GET("", h.Party.List)
		parties.POST("", h.Party.Create)
		parties.GET("/:id", h.Party.Get)
		parties.PUT("/:id", h.Party.Update)
		parties.DELETE("/:id", h.Party.Delete)
	}
}

func registerItemRoutes(protected *gin.RouterGroup, h *Handlers) {
	items := protected.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Commits and conversions replay the first response for a repeated Idempotency-Key
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
	})

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.POST("", idempotent, h.Transaction.Create)
		transactions.GET("/next-number/:type", h.Transaction.NextNumber)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PUT("/:id", h.Transaction.Update)
		transactions.DELETE("/:id", h.Transaction.Delete)
		transactions.POST("/:id/convert", idempotent, h.Transaction.Convert)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("", h.Report.List)
		reports.GET("/:name", h.Report.Get)
		reports.GET("/:name/export", h.Report.Export)
	}
}

func registerReconciliationRoutes(protected *gin.RouterGroup, h *Handlers) {
	recon := protected.Group("/reconciliation")
	{
		recon.POST("/gstr2a", h.Reconciliation.GSTR2A)
		recon.POST("/bank", h.Reconciliation.Bank)
	}
}
