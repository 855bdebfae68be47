package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/paaga/internal/api"
	"github.com/terraincognita07/paaga/internal/cli"
	"github.com/terraincognita07/paaga/internal/config"
	"github.com/terraincognita07/paaga/internal/db"
	"github.com/terraincognita07/paaga/internal/logging"
	"github.com/terraincognita07/paaga/internal/services"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "paaga",
		Short:         "200-day savings challenge service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCommand(), newResetPasswordCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Issue a temporary password for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadForDatabase()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return cli.RunResetPasswordCommand(cfg.Database.Path, email, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the account to reset")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	location, known := cfg.Location()
	if !known {
		logger.Warn("unknown time zone, falling back to UTC", zap.String("tz", cfg.Server.TimeZone))
	}
	secretKey, err := config.ResolveSecretKey(cfg.Auth.SecretKey)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("close database", zap.Error(err))
		}
	}()

	repositories := db.NewRepositories(database)
	audit := services.NewAuditRecorder(repositories.AuditLogs, logger, cfg.Audit.Buffer)
	defer audit.Close()

	handler, err := api.NewHandler(repositories, api.Options{
		SecretKey:    secretKey,
		CookieSecure: cfg.Server.CookieSecure,
		Location:     location,
		Logger:       logger,
		Audit:        audit,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler, api.AppOptions{
		AllowedOrigins: cfg.Origins(),
		AccessLog:      true,
	})

	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("paaga listening",
		zap.String("port", cfg.Server.Port),
		zap.String("db", cfg.Database.Path),
		zap.String("tz", location.String()),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
