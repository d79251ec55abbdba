package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/cache"
	"github.com/sangkips/ledger-api/internal/infrastructure/database"
	"github.com/sangkips/ledger-api/internal/infrastructure/jobs"
	"github.com/sangkips/ledger-api/internal/infrastructure/reference"
	"github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/handler"
	"github.com/sangkips/ledger-api/internal/presentation/http/routes"
	"github.com/sangkips/ledger-api/pkg/logger"
	"github.com/sangkips/ledger-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.Configure(cfg.Log.Level, cfg.Log.Format)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// HSN/SAC tables are display enrichment only; a missing file degrades to no descriptions
	codes, err := reference.LoadCodes(cfg.Reference.HSNPath, cfg.Reference.SACPath)
	if err != nil {
		log.Warnf("Failed to load HSN/SAC codes: %v", err)
	} else {
		log.Infof("Loaded %d HSN/SAC codes", codes.Len())
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	loc := cfg.App.Location()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	itemRepo := repository.NewItemRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	ledgerStore := repository.NewLedgerStore(db)
	snapshotRepo := repository.NewSnapshotRepository(db, repository.WithReadIsolation(sql.LevelRepeatableRead))

	// Initialize services
	sequenceService := service.NewSequenceService(counterRepo, accountRepo)
	ledgerService := service.NewLedgerService(ledgerStore, txnRepo, partyRepo, accountRepo)
	accountService := service.NewAccountService(accountRepo)
	partyService := service.NewPartyService(partyRepo)
	itemService := service.NewItemService(itemRepo)
	statementService := service.NewStatementService(snapshotRepo, loc)
	if codes != nil {
		statementService.WithCodes(codes)
	}
	reconciliationService := service.NewReconciliationService(snapshotRepo, statementService)

	// Redis backs the optional report cache and the purge lock
	var locker jobs.Locker
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := cache.NewRedisClient(ctx, &cfg.Redis)
		cancel()
		if err != nil {
			log.Warnf("Redis unavailable, running without it: %v", err)
		} else {
			defer rdb.Close()
			locker = redislock.New(rdb)
			if cfg.ReportCache.Enabled {
				reportCache := cache.NewReportCache(rdb, cfg.ReportCache.TTL)
				statementService.WithCache(reportCache)
				ledgerService.WithReportInvalidator(reportCache)
				accountService.WithReportInvalidator(reportCache)
				partyService.WithReportInvalidator(reportCache)
				itemService.WithReportInvalidator(reportCache)
				log.Infof("Report cache enabled (ttl %s)", cfg.ReportCache.TTL)
			}
		}
	}

	jobCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	purger := jobs.NewIdempotencyPurger(idempotencyRepo, locker, cfg.Idempotency.PurgeInterval, log)
	go purger.Run(jobCtx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Account:        handler.NewAccountHandler(accountService),
		Party:          handler.NewPartyHandler(partyService),
		Item:           handler.NewItemHandler(itemService),
		Transaction:    handler.NewTransactionHandler(ledgerService, sequenceService, loc),
		Report:         handler.NewReportHandler(statementService),
		Reconciliation: handler.NewReconciliationHandler(reconciliationService, loc),
		Reference:      handler.NewReferenceHandler(codes),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting %s server on port %s (env %s)", cfg.App.Name, port, cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopJobs()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
}
