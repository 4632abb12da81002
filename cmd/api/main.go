package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alerandon/insurance-affiliates-app/internal/adapters/httpapi"
	memaffiliaterepo "github.com/alerandon/insurance-affiliates-app/internal/adapters/memory/affiliaterepo"
	postgres "github.com/alerandon/insurance-affiliates-app/internal/adapters/postgres"
	pgaffiliaterepo "github.com/alerandon/insurance-affiliates-app/internal/adapters/postgres/affiliaterepo"
	"github.com/alerandon/insurance-affiliates-app/internal/app/affiliates"
	platformclock "github.com/alerandon/insurance-affiliates-app/internal/platform/clock"
	"github.com/alerandon/insurance-affiliates-app/internal/platform/config"
	"github.com/alerandon/insurance-affiliates-app/internal/platform/logging"
	affiliaterepoport "github.com/alerandon/insurance-affiliates-app/internal/ports/out/affiliaterepo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config may itself be broken, so write plainly and exit.
		os.Stderr.WriteString("invalid config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)

	clk := platformclock.NewSystemClock()

	var (
		repo    affiliaterepoport.Repository
		cleanup func()
	)
	switch cfg.Storage.Backend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.Storage.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			logger.Error("postgres setup failed", "error", err)
			os.Exit(1)
		}
		cleanup = pool.Close
		repo = pgaffiliaterepo.NewRepo(pool)
	default:
		repo = memaffiliaterepo.NewRepo()
	}
	if cleanup != nil {
		defer cleanup()
	}

	svc := affiliates.NewService(repo, clk, cfg.Pagination.DefaultLimit)
	api := httpapi.NewServer(svc, logger)
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{Logger: logger})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening", "addr", srv.Addr, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
