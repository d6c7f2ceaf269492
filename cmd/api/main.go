package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lamuse/classtee-backend/api/routes"
	"github.com/lamuse/classtee-backend/internal/address"
	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/internal/checkout"
	"github.com/lamuse/classtee-backend/internal/coupons"
	"github.com/lamuse/classtee-backend/internal/payments"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/internal/selection"
	"github.com/lamuse/classtee-backend/pkg/config"
	"github.com/lamuse/classtee-backend/pkg/db"
	"github.com/lamuse/classtee-backend/pkg/instance"
	"github.com/lamuse/classtee-backend/pkg/logger"
	"github.com/lamuse/classtee-backend/pkg/metrics"
	"github.com/lamuse/classtee-backend/pkg/migrate"
	"github.com/lamuse/classtee-backend/pkg/postal"
	"github.com/lamuse/classtee-backend/pkg/pubsub"
	"github.com/lamuse/classtee-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := map[string]redis.Pinger{}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()
	readiness["redis"] = redisClient

	products := catalog.Seed()
	if cfg.Catalog.UsesDB() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		readiness["db"] = dbClient

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}

		products, err = catalog.NewRepository(dbClient.DB()).LoadAll(ctx)
		if err != nil {
			logg.Error(ctx, "failed to load catalog", err)
			os.Exit(1)
		}
	}

	catalogService, err := catalog.NewService(products)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	registry := metrics.NewRegistry()
	storefront := metrics.NewStorefront(registry)
	engine := pricing.NewEngine(pricing.DefaultRules(), logg, storefront)

	couponValidator, err := coupons.NewStaticValidator(cfg.Coupons.Codes)
	if err != nil {
		logg.Error(ctx, "failed to load coupon codes", err)
		os.Exit(1)
	}

	draftStore, err := checkout.NewRedisDraftStore(redisClient, cfg.Checkout.DraftTTL, cfg.Checkout.ConfirmLockTTL)
	if err != nil {
		logg.Error(ctx, "failed to create draft store", err)
		os.Exit(1)
	}

	checkoutParams := checkout.ServiceParams{
		Store:    draftStore,
		Coupons:  couponValidator,
		Payments: payments.NewSimulator(cfg.Checkout, cfg.Bank),
		Metrics:  storefront,
		Logger:   logg,
	}
	if cfg.PubSub.Enabled() {
		psClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		readiness["pubsub"] = psClient

		events, err := pubsub.NewEventPublisher(pubsub.WrapPublisher(psClient.OrdersPublisher()))
		if err != nil {
			logg.Error(ctx, "failed to create event publisher", err)
			os.Exit(1)
		}
		checkoutParams.Events = events
	}

	checkoutService, err := checkout.NewService(checkoutParams)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	sessionStore, err := selection.NewRedisSessionStore(redisClient, cfg.Checkout.SessionTTL)
	if err != nil {
		logg.Error(ctx, "failed to create session store", err)
		os.Exit(1)
	}

	selectionService, err := selection.NewService(selection.ServiceParams{
		Catalog:  catalogService,
		Pricing:  engine,
		Store:    sessionStore,
		Checkout: checkoutService,
		Metrics:  storefront,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create selection service", err)
		os.Exit(1)
	}

	addressService := address.NewService(postal.NewClient(
		postal.WithBaseURL(cfg.Postal.BaseURL),
		postal.WithTimeout(cfg.Postal.Timeout),
	), logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"instance":       instance.GetID(),
		"catalog_source": cfg.Catalog.Source,
		"products":       len(products),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Services{
			Catalog:     catalogService,
			Pricing:     engine,
			Selection:   selectionService,
			Checkout:    checkoutService,
			Address:     addressService,
			Idempotency: redisClient,
			Readiness:   readiness,
			Metrics:     metrics.Handler(registry),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}
