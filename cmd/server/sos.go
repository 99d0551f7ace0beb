package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DInduwara/Flood-management-system/internal/export"
)

func sosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sos",
		Short: "Work with submitted SOS requests",
	}
	cmd.AddCommand(sosExportCmd(app))
	return cmd
}

func sosExportCmd(app *App) *cobra.Command {
	var district, status, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write SOS requests to an .xlsx triage sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			intake, d, err := app.openIntake()
			if err != nil {
				return err
			}
			defer app.closeDB(d)

			list, err := intake.ListSosRequests(app.ctx, district, status)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("sos_requests_%s.xlsx", time.Now().Format("20060102_150405"))
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := export.WriteSosWorkbook(f, list, time.Now()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			app.logger.Info("sos export written", zap.String("path", out), zap.Int("rows", len(list)))
			fmt.Fprintf(app.out, "Wrote %d requests to %s\n", len(list), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&district, "district", "", "Only this district (case-insensitive)")
	cmd.Flags().StringVar(&status, "status", "", "Only this status")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default sos_requests_<timestamp>.xlsx)")
	return cmd
}
