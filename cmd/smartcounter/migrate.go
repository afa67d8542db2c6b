package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Spok95/smartcounter/internal/config"
	"github.com/Spok95/smartcounter/internal/infra/db"
	"github.com/Spok95/smartcounter/internal/infra/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres schema and exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is not set")
	}
	log := logger.New(cfg.App.Env)
	if err := db.Migrate(cfg.Postgres.DSN); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}
