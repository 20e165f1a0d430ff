package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shopledger/shopledger-backend/api/routes"
	"github.com/shopledger/shopledger-backend/internal/auth"
	"github.com/shopledger/shopledger-backend/internal/cron"
	"github.com/shopledger/shopledger-backend/internal/customers"
	"github.com/shopledger/shopledger-backend/internal/ledger"
	"github.com/shopledger/shopledger-backend/internal/notifications"
	"github.com/shopledger/shopledger-backend/internal/transactions"
	"github.com/shopledger/shopledger-backend/internal/vendors"
	"github.com/shopledger/shopledger-backend/pkg/config"
	"github.com/shopledger/shopledger-backend/pkg/db"
	"github.com/shopledger/shopledger-backend/pkg/logger"
	"github.com/shopledger/shopledger-backend/pkg/metrics"
	"github.com/shopledger/shopledger-backend/pkg/otp"
	"github.com/shopledger/shopledger-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := dbClient.AutoMigrate(context.Background(), logg); err != nil {
		logg.Error(context.Background(), "failed to migrate schema", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	otpStore, err := otp.NewStore(cfg.OTP, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create otp store", err)
		os.Exit(1)
	}

	vendorsRepo := vendors.NewRepository(dbClient.DB())
	customersRepo := customers.NewRepository(dbClient.DB())
	transactionsRepo := transactions.NewRepository(dbClient.DB())
	notificationsRepo := notifications.NewRepository(dbClient.DB())
	ledgerRepo := ledger.NewRepository(dbClient.DB())

	ledgerSvc, err := ledger.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}
	notificationsSvc, err := notifications.NewService(notificationsRepo, ledgerSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}
	customersSvc, err := customers.NewService(customersRepo, notificationsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}
	transactionsSvc, err := transactions.NewService(transactionsRepo, customersRepo, notificationsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create transactions service", err)
		os.Exit(1)
	}
	vendorsSvc, err := vendors.NewService(vendorsRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendors service", err)
		os.Exit(1)
	}
	authSvc, err := auth.NewService(vendorsRepo, customersRepo, otpStore, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	cronCtx, cancelCron := context.WithCancel(context.Background())
	defer cancelCron()
	startCron(cronCtx, cfg, logg, redisClient, notificationsRepo)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Auth:          authSvc,
			Vendors:       vendorsSvc,
			Customers:     customersSvc,
			Transactions:  transactionsSvc,
			Notifications: notificationsSvc,
			Ledger:        ledgerSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func startCron(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *redis.Client, notificationsRepo notifications.Repository) {
	cleanupJob, err := cron.NewNotificationCleanupJob(cron.NotificationCleanupJobParams{
		Logger:        logg,
		Repository:    notificationsRepo,
		RetentionDays: cfg.Notifications.RetentionDays,
	})
	if err != nil {
		logg.Error(ctx, "failed to create notification cleanup job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron"), 0)
	if err != nil {
		logg.Error(ctx, "failed to create cron lock", err)
		os.Exit(1)
	}

	cronSvc, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(cleanupJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Notifications.CleanupInterval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cron service", err)
		os.Exit(1)
	}

	go func() {
		if err := cronSvc.Run(ctx); err != nil && ctx.Err() == nil {
			logg.Error(ctx, "cron service stopped unexpectedly", err)
		}
	}()
}
