package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/contaperu/contaperu-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplicar migraciones pendientes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd, func(m *postgres.Migrator) error { return m.Up() })
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [pasos]",
	Short: "Revertir migraciones (por defecto 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("pasos inválidos: %q", args[0])
			}
			steps = n
		}
		return withMigrator(cmd, func(m *postgres.Migrator) error { return m.Down(steps) })
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Versión actual del esquema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd, func(m *postgres.Migrator) error {
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%v\n", v, dirty)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func withMigrator(cmd *cobra.Command, fn func(*postgres.Migrator) error) error {
	e, done, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer done()
	m, err := postgres.NewMigrator(e.cfg.DB.MigrationURL(), e.log)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
