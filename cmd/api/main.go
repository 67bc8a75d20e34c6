package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/washifyapp/driver-backend/api/routes"
	"github.com/washifyapp/driver-backend/internal/catalog"
	"github.com/washifyapp/driver-backend/internal/ledger"
	"github.com/washifyapp/driver-backend/internal/orders"
	"github.com/washifyapp/driver-backend/internal/otp"
	"github.com/washifyapp/driver-backend/internal/pricing"
	"github.com/washifyapp/driver-backend/internal/vans"
	"github.com/washifyapp/driver-backend/pkg/config"
	"github.com/washifyapp/driver-backend/pkg/db"
	"github.com/washifyapp/driver-backend/pkg/logger"
	"github.com/washifyapp/driver-backend/pkg/metrics"
	"github.com/washifyapp/driver-backend/pkg/migrate"
	"github.com/washifyapp/driver-backend/pkg/redis"
	"github.com/washifyapp/driver-backend/pkg/sms"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
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

	smsClient, err := sms.NewClient(cfg.Twilio)
	if err != nil {
		logg.Error(context.Background(), "failed to create sms client", err)
		os.Exit(1)
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)
	otpMetrics := metrics.NewOTPMetrics(prometheus.DefaultRegisterer)

	otpService, err := otp.NewService(otp.ServiceParams{
		Repo:      otp.NewRepository(dbClient.DB()),
		Sender:    smsClient,
		OTPConfig: cfg.OTP,
		JWTConfig: cfg.JWT,
		Logger:    logg,
		Metrics:   otpMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create otp service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		ledger.NewRepository(dbClient.DB()),
		pricing.NewRepository(dbClient.DB()),
		dbClient,
		logg,
		orderMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	vansService, err := vans.NewService(vans.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create vans service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, otpService, ordersService, vansService, catalogService),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		graceCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(graceCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
