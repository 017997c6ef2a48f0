package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gujjushop/backend/api/routes"
	"github.com/gujjushop/backend/internal/cart"
	"github.com/gujjushop/backend/internal/catalog"
	"github.com/gujjushop/backend/internal/identity"
	"github.com/gujjushop/backend/internal/orders"
	"github.com/gujjushop/backend/internal/seed"
	"github.com/gujjushop/backend/pkg/auth/session"
	"github.com/gujjushop/backend/pkg/config"
	"github.com/gujjushop/backend/pkg/logger"
	"github.com/gujjushop/backend/pkg/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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

	usersRepo := identity.NewRepository()
	catalogRepo := catalog.NewRepository()
	if cfg.Seed.Demo {
		seed.Load(usersRepo, catalogRepo)
		logg.Info(context.Background(), "demo data seeded")
	}

	sessionManager, err := session.NewManager(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	identityService, err := identity.NewService(usersRepo, sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService := cart.NewService()

	orderService, err := orders.NewService(cartService, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

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
		Handler: routes.New(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			Sessions:    sessionManager,
			Identity:    identityService,
			Users:       usersRepo,
			Catalog:     catalogService,
			Carts:       cartService,
			Orders:      orderService,
			Registry:    registry,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
