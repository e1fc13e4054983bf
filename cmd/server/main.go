package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/viral-agent/internal/client"
	"github.com/viral-agent/internal/config"
	"github.com/viral-agent/internal/ideas"
	"github.com/viral-agent/internal/server"
	"github.com/viral-agent/internal/storage"
	"github.com/viral-agent/internal/storage/sqlite"
	"github.com/viral-agent/internal/web"
	"github.com/viral-agent/pkg/logger"
)

// limiterSweepSchedule is how often idle rate limiter buckets are dropped
const limiterSweepSchedule = "@every 10m"

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	repo    storage.Repository
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "viral-agent-server",
		Short: "Web server for the viral video idea generator",
		Long: `Serves the idea generator front page and the JSON generation endpoint.
Run it as a service; it stops cleanly on SIGINT or SIGTERM.`,
		RunE: runServer,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	log.Info().Msg("Starting Viral Agent server")

	if cfg.History.Enabled {
		log.Info().Str("dsn", cfg.History.DSN).Msg("Generation history enabled")
		repo, err = sqlite.New(cfg.History.DSN)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer repo.Close()

		if err := repo.Migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	apiClient := client.New(cfg.APIBaseURL(), cfg.Web.RequestTimeout)
	page, err := web.NewPage(apiClient, log)
	if err != nil {
		return err
	}

	srv := server.New(cfg, server.Options{
		Generator:  ideas.NewGenerator(),
		Page:       page,
		Repository: repo,
	}, log)

	c := cron.New(cron.WithLogger(cronLogger{log}))

	_, err = c.AddFunc(limiterSweepSchedule, func() {
		if removed := srv.SweepLimiter(); removed > 0 {
			log.Debug().Int("removed", removed).Msg("Swept idle rate limiter buckets")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule limiter sweep: %w", err)
	}

	if repo != nil {
		_, err = c.AddFunc(cfg.History.CleanupCron, func() {
			cleanupHistory(context.Background(), cfg.History.RetentionDays)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule history cleanup: %w", err)
		}
		log.Info().Str("cron", cfg.History.CleanupCron).Msg("History cleanup job scheduled")
	}

	c.Start()
	defer c.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigChan:
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

// cleanupHistory deletes history rows older than the retention window
func cleanupHistory(ctx context.Context, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	removed, err := repo.DeleteGenerationsBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("History cleanup failed")
		return
	}
	log.Info().
		Int64("removed", removed).
		Time("cutoff", cutoff).
		Msg("History cleanup completed")
}

// cronLogger adapts our logger for cron
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
