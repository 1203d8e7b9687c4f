package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/innoventory/innoventory/internal/accounts"
	"github.com/innoventory/innoventory/internal/activity"
	"github.com/innoventory/innoventory/internal/analytics"
	"github.com/innoventory/innoventory/internal/app"
	"github.com/innoventory/innoventory/internal/auth"
	"github.com/innoventory/innoventory/internal/customers"
	"github.com/innoventory/innoventory/internal/invoices"
	"github.com/innoventory/innoventory/internal/observability"
	"github.com/innoventory/innoventory/internal/orders"
	"github.com/innoventory/innoventory/internal/platform/cache"
	"github.com/innoventory/innoventory/internal/platform/db"
	"github.com/innoventory/innoventory/internal/shared"
	"github.com/innoventory/innoventory/internal/vendors"
	"github.com/innoventory/innoventory/internal/worktypes"
	"github.com/innoventory/innoventory/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if cfg.AuthSecret == "" {
		logger.Warn("AUTH_SECRET not set, using the built-in development secret; tokens are forgeable")
	}
	if cfg.DemoMode {
		logger.Info("demo mode enabled: demo token and demo credential fallback are active")
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// A missing Redis only degrades the dashboard cache, so the server
	// still starts without it.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard cache disabled", slog.Any("error", err))
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	activityLogger := shared.NewActivityLogger(dbpool, logger)

	signer := auth.NewSigner(cfg.AuthSecret, cfg.AuthTokenTTL)
	verifier := auth.NewVerifier(cfg.AuthSecret, cfg.DemoMode)
	authMW := auth.Middleware{Verifier: verifier}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, logger)
	authHandler := auth.NewHandler(logger, authService, signer, authMW).WithMetrics(metrics)

	accountsRepo := accounts.NewRepository(dbpool)
	accountsService := accounts.NewService(accountsRepo, activityLogger)
	accountsHandler := accounts.NewHandler(logger, accountsService, authMW)

	customersRepo := customers.NewRepository(dbpool)
	customersService := customers.NewService(customersRepo, activityLogger)
	customersHandler := customers.NewHandler(logger, customersService, authMW)

	vendorsRepo := vendors.NewRepository(dbpool)
	vendorsService := vendors.NewService(vendorsRepo, activityLogger)
	vendorsHandler := vendors.NewHandler(logger, vendorsService, authMW)

	workTypesRepo := worktypes.NewRepository(dbpool)
	workTypesService := worktypes.NewService(workTypesRepo, activityLogger)
	workTypesHandler := worktypes.NewHandler(logger, workTypesService, authMW)

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(ordersRepo, activityLogger)
	ordersHandler := orders.NewHandler(logger, ordersService, authMW)

	mailClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := mailClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	invoicesRepo := invoices.NewRepository(dbpool)
	invoicesService := invoices.NewService(invoicesRepo, ordersRepo, mailClient, activityLogger, logger)
	invoicesHandler := invoices.NewHandler(logger, invoicesService, authMW)

	activityRepo := activity.NewRepository(dbpool)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(logger, activityService, authMW)

	analyticsRepo := analytics.NewRepository(dbpool)
	analyticsCache := analytics.NewCache(redisClient, cfg.DashboardCacheTTL)
	analyticsService := analytics.NewService(analyticsRepo, analyticsCache)
	analyticsHandler := analytics.NewHandler(logger, analyticsService, authMW)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthMiddleware:   authMW,
		AuthHandler:      authHandler,
		AccountsHandler:  accountsHandler,
		CustomersHandler: customersHandler,
		VendorsHandler:   vendorsHandler,
		WorkTypesHandler: workTypesHandler,
		OrdersHandler:    ordersHandler,
		InvoicesHandler:  invoicesHandler,
		ActivityHandler:  activityHandler,
		AnalyticsHandler: analyticsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
