package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/cli"
	"github.com/terraincognita07/bloom/internal/db"
	"go.uber.org/zap"
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if _, err := db.OpenSQLite(cfg.DBPath, log); err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	log.Info("database is up to date", zap.String("db", cfg.DBPath))
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	return cli.RunStatsCommand(cmd.OutOrStdout(), database, statsEmail, cfg.RiskPolicy)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	return cli.RunExportCommand(cmd.OutOrStdout(), database, exportEmail, exportFormat, exportFrom, exportTo)
}
