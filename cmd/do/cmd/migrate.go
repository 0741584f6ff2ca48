package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/diary/internal/config"
	"github.com/templui/diary/internal/db"
	"github.com/templui/diary/internal/logger"
	"github.com/templui/diary/internal/repository"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema for DB_DRIVER",
	}

	cmd.AddCommand(
		migrateSubCmd("up", "Apply all pending migrations (mongo: ensure indexes)", migrateUp),
		migrateSubCmd("down", "Roll back the latest migration", sqlOnly(db.MigrateDown)),
		migrateSubCmd("status", "Print migration status", sqlOnly(db.MigrationStatus)),
	)
	return cmd
}

func migrateSubCmd(use, short string, run func(ctx context.Context, cfg *config.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(logger.Options{Development: true})

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			return run(ctx, cfg)
		},
	}
}

func migrateUp(ctx context.Context, cfg *config.Config) error {
	switch cfg.DBDriver {
	case "mongo":
		client, database, err := db.InitMongo(ctx, cfg.DBConnection, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		return repository.EnsureMongoIndexes(ctx, database)
	case "memory":
		return fmt.Errorf("the memory store has no schema")
	default:
		return sqlOnly(db.RunMigrations)(ctx, cfg)
	}
}

// sqlOnly opens the SQL database and hands its *sql.DB to fn.
func sqlOnly(fn func(*sql.DB, string) error) func(context.Context, *config.Config) error {
	return func(_ context.Context, cfg *config.Config) error {
		if cfg.DBDriver != "sqlite" && cfg.DBDriver != "pgx" {
			return fmt.Errorf("%s has no SQL migrations", cfg.DBDriver)
		}
		database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return err
		}
		defer database.Close()
		return fn(database.DB, cfg.DBDriver)
	}
}
