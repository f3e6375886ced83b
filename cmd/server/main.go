package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JustJay7/smartlawyer/internal/api"
	"github.com/JustJay7/smartlawyer/internal/attachment"
	"github.com/JustJay7/smartlawyer/internal/auth"
	"github.com/JustJay7/smartlawyer/internal/cache"
	"github.com/JustJay7/smartlawyer/internal/config"
	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/JustJay7/smartlawyer/internal/preferences"
	"github.com/JustJay7/smartlawyer/internal/repository"
	"github.com/JustJay7/smartlawyer/internal/server"
	"github.com/JustJay7/smartlawyer/internal/validation"
	"github.com/JustJay7/smartlawyer/internal/watch"
	"github.com/JustJay7/smartlawyer/pkg/logger"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "smartlawyer",
		Short:        "SmartLawyer clients and cases service",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Initialize(cfg.DatabasePath)
			if err != nil {
				log.Error("Failed to initialize database", "error", err)
				return err
			}
			defer database.Close(db)

			prefs, err := preferences.Open(cfg.PreferencesPath, cache.NewCache(0))
			if err != nil {
				log.Error("Failed to open preferences", "error", err)
				return err
			}
			defer prefs.Close()
			prefs.WithDefaultLanguage(cfg.DefaultLanguage)

			hub := watch.NewHub()
			v := validation.New()
			srv := server.New(cfg, api.Deps{
				Clients:     repository.NewClientRepository(database.NewClientDAO(db, hub)),
				Cases:       repository.NewCaseRepository(database.NewCaseDAO(db, hub)),
				Preferences: prefs,
				Auth:        auth.NewService(prefs, v, log),
				Validator:   v,
				Attachments: attachment.NewStore(cfg.AttachmentsDir, cfg.AttachmentMaxBytes, log),
				Logger:      log,
			}, log)

			log.Info("Starting SmartLawyer",
				"version", version,
				"host", cfg.Host,
				"port", cfg.Port,
				"database", cfg.DatabasePath,
			)

			if err := srv.Run(); err != nil {
				log.Error("Server stopped with error", "error", err)
				return err
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Initialize(cfg.DatabasePath)
			if err != nil {
				log.Error("Failed to run migrations", "error", err)
				return err
			}
			defer database.Close(db)

			current, err := database.UserVersion(db)
			if err != nil {
				return err
			}
			log.Info("Database migrations completed successfully",
				"path", cfg.DatabasePath,
				"schemaVersion", current)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smartlawyer %s (schema v%d)\n", version, database.SchemaVersion)
		},
	}
}

func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
