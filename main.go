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

	"seteam/config"
	"seteam/database"
	"seteam/handlers"
	"seteam/logger"
	"seteam/middleware"
	"seteam/repository"

	"github.com/spf13/cobra"
)

var (
	envFile string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "seteam",
	Short: "SE Team Manager - track a sales engineering team",
	Long: `SE Team Manager keeps the team roster, 1-1 meetings, opportunities,
support cases, follow-ups, notes and the skill matrix in one place, and
exports selected records as PDF or CSV reports.

Run without a subcommand to start the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithOptions(config.LoadOptions{EnvFile: envFile})
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLogger(cfg.LogLevel)
		if cfg.GeneratedSecret {
			log.Warn("SECRET_KEY is not set, using a random key for this process")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Init(cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.WithField("driver", cfg.DatabaseDriver).Info("database migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Init(cfg); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		seeded, err := database.Seed(database.GetDB(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		if !seeded {
			log.Info("database already has team members, sample data skipped")
			return nil
		}
		log.Info("sample data loaded")
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for AUTH_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	// Runs without configuration so a hash can be made before .env exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := middleware.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func serve(ctx context.Context) error {
	if err := database.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	store := repository.New(database.GetDB())
	router, err := handlers.NewRouter(cfg, store, log, time.Now)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"port":   cfg.ServerPort,
			"driver": cfg.DatabaseDriver,
			"auth":   cfg.AuthEnabled(),
		}).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, hashPasswordCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
