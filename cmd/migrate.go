package main

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	root "linkshield"
	"linkshield/internal/config"
	"linkshield/pkg/logger"
)

// migrateCommand constructs the 'migrate' subcommand. It applies the embedded
// schema migrations with goose and then brings the River job queue schema up
// to the latest version.
func migrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db := strg.DB.(*sql.DB)

			goose.SetBaseFS(root.Migrations)
			if err := goose.SetDialect("postgres"); err != nil {
				logger.Fatal(ctx, "could not set goose dialect", zap.Error(err))
			}
			if err := goose.Up(db, "migrations"); err != nil {
				logger.Fatal(ctx, "could not apply schema migrations", zap.Error(err))
			}

			migrateJobQueue(ctx, db)
		},
	}
}

// migrateJobQueue upgrades River's own tables when they are behind.
func migrateJobQueue(ctx context.Context, db *sql.DB) {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		logger.Fatal(ctx, "could not create job queue migrator", zap.Error(err))
	}

	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	existing, err := migrator.ExistingVersions(ctx)
	if err != nil {
		logger.Fatal(ctx, "could not read applied job queue migrations", zap.Error(err))
	}
	current := 0
	if len(existing) > 0 {
		current = existing[len(existing)-1].Version
	}

	if latest <= current {
		return
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
		TargetVersion: latest,
	}); err != nil {
		logger.Fatal(ctx, "could not migrate job queue schema", zap.Error(err))
	}
}
