// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/boardkeep/boardkeep/internal/config"
	"github.com/boardkeep/boardkeep/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply all pending database migrations against the PostgreSQL
database. With --down, roll back all migrations instead (destructive).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, down)
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back all migrations (drops all data)")
	cmd.AddCommand(newMigrateStatusCmd())

	return cmd
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, err := newMigrator()
			if err != nil {
				return err
			}
			defer migrator.Close() //nolint:errcheck // status output already reported

			version, dirty, err := migrator.Version()
			if err != nil {
				return err
			}
			cmd.Printf("version: %d, dirty: %t\n", version, dirty)
			return nil
		},
	}
}

func runMigrate(cmd *cobra.Command, down bool) error {
	migrator, err := newMigrator()
	if err != nil {
		return err
	}
	defer migrator.Close() //nolint:errcheck // migration result already reported

	if down {
		cmd.Println("Rolling back all migrations...")
		if err := migrator.Down(); err != nil {
			return err
		}
		cmd.Println("Rollback completed")
		return nil
	}

	cmd.Println("Running migrations...")
	if err := migrator.Up(); err != nil {
		return err
	}
	cmd.Println("Migrations completed successfully")
	return nil
}

func newMigrator() (*store.Migrator, error) {
	databaseURL := os.Getenv(config.EnvDatabaseURL)
	if databaseURL == "" {
		databaseURL = os.Getenv(config.EnvDatabaseURLFallback)
	}
	if databaseURL == "" {
		return nil, oops.Code("CONFIG_INVALID").
			Errorf("%s environment variable is required", config.EnvDatabaseURL)
	}
	return store.NewMigrator(databaseURL)
}
