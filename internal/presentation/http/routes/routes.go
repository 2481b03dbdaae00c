package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/petrodesk/station-api/internal/config"
	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/internal/presentation/http/handler"
	"github.com/petrodesk/station-api/internal/presentation/http/middleware"
	"github.com/petrodesk/station-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth           *handler.AuthHandler
	CashRecord     *handler.CashRecordHandler
	Reconciliation *handler.ReconciliationHandler
	Sale           *handler.SaleHandler
	Customer       *handler.CustomerHandler
	Product        *handler.ProductHandler
	Tank           *handler.TankHandler
	Supplier       *handler.SupplierHandler
	Delivery       *handler.DeliveryHandler
	Staff          *handler.StaffHandler
	Settings       *handler.SettingsHandler
	Dashboard      *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   middleware.DefaultRateLimiterConfig().CleanupInterval,
			EntryTTL:          middleware.DefaultRateLimiterConfig().EntryTTL,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Settlements and reconciliation
	registerSettlementRoutes(protected, h, idempotent)

	// Sales
	registerSaleRoutes(protected, h, idempotent)

	// Credit customers
	registerCustomerRoutes(protected, h, idempotent)

	// Inventory
	registerProductRoutes(protected, h)
	registerTankRoutes(protected, h)
	registerSupplierRoutes(protected, h)
	registerDeliveryRoutes(protected, h, idempotent)

	// Staff
	registerStaffRoutes(protected, h)

	// Dashboard and reports
	protected.GET("/dashboard", h.Dashboard.Stats)
	protected.GET("/reports/sales", h.Dashboard.SalesReport)

	// Admin-only
	registerAdminRoutes(protected, h)
}

func registerSettlementRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	settlements := protected.Group("/settlements")
	{
		settlements.GET("", h.CashRecord.List)
		settlements.POST("", idempotent, h.CashRecord.Create)
		settlements.GET("/:id", h.CashRecord.Get)
		settlements.PUT("/:id", h.CashRecord.Update)
		settlements.DELETE("/:id", h.CashRecord.Delete)
		settlements.GET("/:id/sync-status", h.Reconciliation.SyncStatus)

		// Reconciliation mutates balances, so it is restricted to supervisors
		settlements.POST("/:id/reconcile",
			middleware.RequireRole("admin", "manager"), idempotent, h.Reconciliation.Reconcile)
	}

	protected.POST("/reconciliation/run",
		middleware.RequireRole("admin", "manager"), h.Reconciliation.ReconcileAll)
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/void", middleware.RequireRole("admin", "manager"), h.Sale.Void)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole("admin", "manager"), h.Customer.Delete)
		customers.POST("/:id/payments", idempotent, h.Customer.RecordPayment)
		customers.POST("/:id/adjustments",
			middleware.RequireRole("admin", "manager"), idempotent, h.Customer.RecordAdjustment)
		customers.GET("/:id/ledger", h.Customer.Ledger)
		customers.GET("/:id/statement", h.Customer.Statement)
	}

	protected.GET("/credit-sales", h.Customer.ListCreditSales)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole("admin", "manager"), h.Product.Delete)
		products.POST("/:id/adjust-stock",
			middleware.RequireRole("admin", "manager"), h.Product.AdjustStock)
	}
}

func registerTankRoutes(protected *gin.RouterGroup, h *Handlers) {
	tanks := protected.Group("/tanks")
	{
		tanks.GET("", h.Tank.List)
		tanks.POST("", middleware.RequireRole("admin", "manager"), h.Tank.Create)
		tanks.GET("/:id", h.Tank.Get)
		tanks.PUT("/:id", middleware.RequireRole("admin", "manager"), h.Tank.Update)
		tanks.DELETE("/:id", middleware.RequireRole("admin"), h.Tank.Delete)
		tanks.POST("/:id/dip", h.Tank.Dip)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", middleware.RequireRole("admin", "manager"), h.Supplier.Delete)
	}
}

func registerDeliveryRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	deliveries := protected.Group("/deliveries")
	{
		deliveries.GET("", h.Delivery.List)
		deliveries.POST("", idempotent, h.Delivery.Create)
		deliveries.GET("/:id", h.Delivery.Get)
		deliveries.POST("/:id/receive", idempotent, h.Delivery.Receive)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	staff := protected.Group("/staff")
	{
		staff.GET("", h.Staff.List)
		staff.POST("", middleware.RequireRole("admin", "manager"), h.Staff.Create)
		staff.GET("/:id", h.Staff.Get)
		staff.PUT("/:id", middleware.RequireRole("admin", "manager"), h.Staff.Update)
		staff.DELETE("/:id", middleware.RequireRole("admin"), h.Staff.Delete)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/settings", h.Settings.Get)
		admin.PUT("/settings", h.Settings.Update)
		admin.POST("/users", h.Auth.CreateUser)
	}
}
