// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the BoardKeep CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boardkeep",
		Short: "BoardKeep - a multi-user project/todo tracker backend",
		Long: `BoardKeep is the backend for a kanban-style project/todo tracker:
account registration and login, per-user projects, and per-project todo
items, with every operation scoped to the authenticated owner.`,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
