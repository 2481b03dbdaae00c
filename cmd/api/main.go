package main

import (
	"github.com/gin-gonic/gin"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/config"
	"github.com/petrodesk/station-api/internal/infrastructure/database"
	"github.com/petrodesk/station-api/internal/infrastructure/repository"
	"github.com/petrodesk/station-api/internal/jobs"
	"github.com/petrodesk/station-api/internal/presentation/http/handler"
	"github.com/petrodesk/station-api/internal/presentation/http/routes"
	"github.com/petrodesk/station-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logger.WithError(err).Warn("Failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	productRepo := repository.NewProductRepository(db)
	tankRepo := repository.NewTankRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	customerRepo := repository.NewCreditCustomerRepository(db)
	creditSaleRepo := repository.NewCreditSaleRepository(db)
	creditTxnRepo := repository.NewCreditTransactionRepository(db)
	cashRecordRepo := repository.NewCashRecordRepository(db)
	detailRepo := repository.NewCreditSaleDetailRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	staffService := service.NewStaffService(staffRepo, userRepo)
	productService := service.NewProductService(productRepo)
	tankService := service.NewTankService(tankRepo, productRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	deliveryService := service.NewDeliveryService(txManager, deliveryRepo, supplierRepo, tankRepo, productRepo)
	saleService := service.NewSaleService(txManager, saleRepo, saleItemRepo, productRepo, tankRepo, customerRepo, creditSaleRepo, creditTxnRepo, settingsRepo)
	creditService := service.NewCreditService(txManager, customerRepo, creditSaleRepo, creditTxnRepo, saleRepo)
	cashRecordService := service.NewCashRecordService(txManager, cashRecordRepo, detailRepo, staffRepo, customerRepo)
	reconciliationService := service.NewReconciliationService(txManager, cashRecordRepo, detailRepo, saleRepo, creditSaleRepo, creditTxnRepo, customerRepo, settingsRepo, userRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)
	reportService := service.NewReportService(customerRepo, creditTxnRepo, saleRepo, settingsRepo)

	// Start the nightly reconciliation sweep
	reconciliationJob := jobs.NewReconciliationJob(reconciliationService, &cfg.Reconciliation, logger)
	if err := reconciliationJob.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start reconciliation job")
	}
	defer reconciliationJob.Stop()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		CashRecord:     handler.NewCashRecordHandler(cashRecordService),
		Reconciliation: handler.NewReconciliationHandler(reconciliationService),
		Sale:           handler.NewSaleHandler(saleService),
		Customer:       handler.NewCustomerHandler(creditService, reportService),
		Product:        handler.NewProductHandler(productService),
		Tank:           handler.NewTankHandler(tankService),
		Supplier:       handler.NewSupplierHandler(supplierService),
		Delivery:       handler.NewDeliveryHandler(deliveryService),
		Staff:          handler.NewStaffHandler(staffService),
		Settings:       handler.NewSettingsHandler(settingsService),
		Dashboard:      handler.NewDashboardHandler(dashboardService, reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"port":    port,
		"env":     cfg.App.Env,
	}).Info("Starting server")

	if err := router.Run(":" + port); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}
