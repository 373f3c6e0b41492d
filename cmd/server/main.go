package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/finance-tracker/infra/initializer"
	"github.com/amirasaad/finance-tracker/pkg/app"
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, closeDeps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := closeDeps(); err != nil {
			deps.Logger.Error("Failed to release dependencies", "error", err)
		}
	}()

	a := app.New(deps, cfg)
	startScheduler(ctx, a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return serve(ctx, webapi.SetupApp(a), addr, deps.Logger)
}

// startScheduler runs the recurring transaction check in the background
// until ctx is cancelled.
func startScheduler(ctx context.Context, a *app.App) bool {
	sc := a.Config.Scheduler
	if sc == nil || !sc.Enabled || sc.Interval <= 0 {
		return false
	}
	go a.RecurringService.Run(ctx, sc.Interval)
	return true
}

// serve listens on addr and shuts the server down once ctx is done.
func serve(ctx context.Context, fiberApp *fiber.App, addr string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fiberApp.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
