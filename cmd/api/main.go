package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/invoices-dashboard/internal/auth"
	"github.com/Raymond9734/invoices-dashboard/internal/cache"
	"github.com/Raymond9734/invoices-dashboard/internal/config"
	"github.com/Raymond9734/invoices-dashboard/internal/db"
	"github.com/Raymond9734/invoices-dashboard/internal/handler"
	"github.com/Raymond9734/invoices-dashboard/internal/repository"
	"github.com/Raymond9734/invoices-dashboard/internal/service"
	"github.com/Raymond9734/invoices-dashboard/internal/validation"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting invoices dashboard API server")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Auth.Validate(); err != nil {
		logger.Error("invalid auth config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	database, err := db.New(db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	// An empty REDIS_URL keeps the listing cache in process
	var viewCache cache.Cache
	if cfg.Cache.RedisURL != "" {
		viewCache, err = cache.NewRedisCache(cache.RedisConfig{
			URL:    cfg.Cache.RedisURL,
			Prefix: cfg.Cache.Prefix,
			TTL:    cfg.Cache.TTL,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		viewCache = cache.NewMemoryCache(cfg.Cache.Prefix, cfg.Cache.TTL)
		logger.Warn("REDIS_URL not set, using in-process listing cache")
	}
	defer viewCache.Close()

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(database.DB)
	customerRepo := repository.NewCustomerRepository(database.DB)
	revenueRepo := repository.NewRevenueRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	// Initialize services
	invoiceSvc := service.NewInvoiceService(invoiceRepo, validation.NewInvoiceValidator(), viewCache, logger)
	dashboardSvc := service.NewDashboardService(invoiceRepo, customerRepo, revenueRepo, viewCache, logger)
	authSvc := service.NewAuthService(userRepo, validation.NewCredentialsValidator(), logger)

	sessions := auth.NewSessionManager(cfg.Auth.Secret, cfg.Auth.SessionTTL, cfg.Auth.SecureCookies)

	loginLimiter := handler.NewRateLimiter(cfg.Auth.LoginRatePerMin, cfg.Auth.LoginRatePerMin, logger)
	go resetPeriodically(loginLimiter, time.Hour)

	router := handler.NewRouter(handler.Routes{
		Health: handler.NewHealthHandler(map[string]handler.Checker{
			"database": database,
			"cache":    viewCache,
		}, logger),
		Auth:           handler.NewAuthHandler(authSvc, sessions, logger),
		Dashboard:      handler.NewDashboardHandler(dashboardSvc, logger),
		Invoices:       handler.NewInvoiceHandler(invoiceSvc, logger),
		Sessions:       sessions,
		LoginLimiter:   loginLimiter,
		Logger:         logger,
		AllowedOrigins: cfg.API.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}

func resetPeriodically(rl *handler.RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		rl.Reset()
	}
}
