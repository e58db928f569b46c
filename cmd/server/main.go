package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
	identityapp "github.com/markethub/backend/internal/application/identity"
	ingestapp "github.com/markethub/backend/internal/application/ingest"
	orderingapp "github.com/markethub/backend/internal/application/ordering"
	partnerapp "github.com/markethub/backend/internal/application/partner"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/cache"
	"github.com/markethub/backend/internal/infrastructure/config"
	"github.com/markethub/backend/internal/infrastructure/event"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/infrastructure/notification"
	"github.com/markethub/backend/internal/infrastructure/persistence"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting MarketHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	mappingRepo := persistence.NewGormCategoryMappingRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	parameterRepo := persistence.NewGormParameterRepository(db.DB)
	productParameterRepo := persistence.NewGormProductParameterRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Idempotency store: Redis when reachable, in-memory otherwise
	idempotencyStore, err := cache.NewIdempotencyStore(cfg.Redis, log, true)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Event bus and post-commit handlers
	eventBus := event.NewInMemoryEventBus(log)

	sender, err := notification.NewSender(cfg.Notification, log)
	if err != nil {
		log.Fatal("Failed to initialize notification sender", zap.Error(err))
	}
	orderConfirmedHandler := orderingapp.NewOrderConfirmedHandler(userRepo, sender, log)
	for _, h := range event.WrapHandlersWithIdempotency(
		[]shared.EventHandler{orderConfirmedHandler}, idempotencyStore, log,
	) {
		eventBus.Subscribe(h)
	}
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)

	authService := identityapp.NewAuthService(userRepo, supplierRepo, jwtService, log)
	authService.SetEventPublisher(eventBus)

	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	supplierService.SetEventPublisher(eventBus)

	contactService := partnerapp.NewContactService(contactRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, supplierRepo, parameterRepo, productParameterRepo)

	ingestService := ingestapp.NewIngestService(categoryRepo, mappingRepo, productRepo, parameterRepo, productParameterRepo, log)
	ingestService.SetEventPublisher(eventBus)
	if cfg.Ingest.DedupOn {
		ingestService.SetDeduplication(idempotencyStore, cfg.Ingest.DedupTTL)
	}

	cartService := orderingapp.NewCartService(txScope, contactRepo)
	cartService.SetEventPublisher(eventBus)
	orderService := orderingapp.NewOrderService(orderRepo)
	orderService.SetEventPublisher(eventBus)

	// HTTP layer
	engine := router.New(router.Config{
		JWTService:  jwtService,
		HTTP:        cfg.HTTP,
		MaxFeedSize: cfg.Ingest.MaxFeedSize,
		Logger:      log,
		System:      handler.NewSystemHandler(db, version),
		Auth:        handler.NewAuthHandler(authService),
		Catalog:     handler.NewCatalogHandler(productService, categoryService),
		Cart:        handler.NewCartHandler(cartService),
		Order:       handler.NewOrderHandler(orderService),
		Contact:     handler.NewContactHandler(contactService),
		Supplier:    handler.NewSupplierHandler(supplierService, ingestService, cfg.Ingest.MaxFeedSize),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
