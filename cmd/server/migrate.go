package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DInduwara/Flood-management-system/internal/db"
)

func migrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.OpenNoMigrate(app.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer app.closeDB(d)
			applied, err := db.ApplyMigrations(d)
			if err != nil {
				return err
			}
			app.logger.Info("migrations applied", zap.Ints("versions", applied))
			if len(applied) == 0 {
				fmt.Fprintln(app.out, "Schema is up to date.")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(app.out, "Applied %04d\n", v)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.OpenNoMigrate(app.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer app.closeDB(d)
			v, err := db.RollbackLast(d)
			if err != nil {
				return err
			}
			if v == 0 {
				fmt.Fprintln(app.out, "Nothing to roll back.")
				return nil
			}
			app.logger.Info("migration rolled back", zap.Int("version", v))
			fmt.Fprintf(app.out, "Rolled back %04d\n", v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := db.OpenNoMigrate(app.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer app.closeDB(d)
			list, err := db.Status(d)
			if err != nil {
				return err
			}
			for _, m := range list {
				state := "pending"
				if m.Applied {
					state = "applied"
				}
				fmt.Fprintf(app.out, "%04d  %-20s %s\n", m.Version, m.Name, state)
			}
			return nil
		},
	})
	return cmd
}
