// Command api runs the wellness platform backend: the HTTP server with
// its background workers and scheduled jobs, plus database migration
// and seeding subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wellnest-hq/wellness-api/internal/config"
	"github.com/wellnest-hq/wellness-api/internal/database"
	"github.com/wellnest-hq/wellness-api/internal/handler"
	"github.com/wellnest-hq/wellness-api/internal/logger"
	"github.com/wellnest-hq/wellness-api/internal/middleware"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/router"
	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
)

func main() {
	root := &cobra.Command{
		Use:          "wellness-api",
		Short:        "School mental-wellness platform backend",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger service: %w", err)
	}
	log := logger.New(cfg, loggerService)

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.New(srv, middlewares, handlers)
	srv.SetupHTTPServer(e)

	scheduler := startScheduler(log, services)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	if loggerService != nil {
		loggerService.Shutdown(10 * time.Second)
	}

	log.Info().Msg("server stopped")
	return nil
}

// startScheduler runs the nightly maintenance jobs: streak summary
// refresh and the consent expiry sweep.
func startScheduler(log *zerolog.Logger, services *service.Services) *cron.Cron {
	scheduler := cron.New()

	// 02:00 server time, after the day's activity has settled.
	_, err := scheduler.AddFunc("0 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		refreshed, err := services.Engagement.RefreshAllSummaries(ctx)
		if err != nil {
			log.Error().Err(err).Msg("nightly streak refresh failed")
		} else {
			log.Info().Int("students", refreshed).Msg("nightly streak refresh done")
		}

		expired, err := services.Consents.SweepExpired(ctx)
		if err != nil {
			log.Error().Err(err).Msg("consent expiry sweep failed")
		} else {
			log.Info().Int("expired", expired).Msg("consent expiry sweep done")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to schedule nightly jobs")
	}

	scheduler.Start()
	return scheduler
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			loggerService, err := logger.NewLoggerService(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger service: %w", err)
			}
			log := logger.New(cfg, loggerService)

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			return database.Migrate(ctx, log, cfg)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			loggerService, err := logger.NewLoggerService(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger service: %w", err)
			}
			log := logger.New(cfg, loggerService)

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			return database.Seed(ctx, log, cfg)
		},
	}
}
