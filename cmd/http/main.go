package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"vintagecoffee/internal/auth"
	"vintagecoffee/internal/config"
	"vintagecoffee/internal/handler"
	"vintagecoffee/internal/logger"
	"vintagecoffee/internal/service"
	"vintagecoffee/internal/store"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	// 2. Setup Store
	ctx := context.Background()
	var st store.Store
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			zl.Fatal("connect to database", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			zl.Fatal("ping database", zap.Error(err))
		}
		st, err = store.NewPGStore(ctx, pool)
		if err != nil {
			zl.Fatal("prepare database store", zap.Error(err))
		}
		zl.Info("using postgres store")
	default:
		st, err = store.NewFileStore(cfg.DataDir)
		if err != nil {
			zl.Fatal("prepare file store", zap.Error(err))
		}
		zl.Info("using file store", zap.String("dir", cfg.DataDir))
	}

	// 3. Setup Logic
	authn := auth.New(st, cfg.JWTSecret, cfg.TokenTTL)
	if cfg.Staff.Email != "" {
		if err := authn.EnsureStaff(ctx, cfg.Staff.Name, cfg.Staff.Email, cfg.Staff.Password); err != nil {
			zl.Fatal("seed staff account", zap.Error(err))
		}
	}

	catalogSvc := service.NewCatalogService(st, zl)
	if err := catalogSvc.Seed(ctx); err != nil {
		zl.Fatal("seed catalog", zap.Error(err))
	}
	orderSvc := service.NewOrderService(st, zl)
	invoiceSvc := service.NewInvoiceService(st, cfg.TaxRateBP, zl)
	paymentSvc := service.NewPaymentService(st, orderSvc, zl)
	reviewSvc := service.NewReviewService(st, zl)

	h := handler.New(zl, authn, catalogSvc, orderSvc, invoiceSvc, paymentSvc, reviewSvc)

	// 4. Setup Server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 5. Run Server with Graceful Shutdown
	go func() {
		zl.Info("starting server", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	// Create a deadline to wait for.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exiting")
}
