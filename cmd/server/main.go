package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DInduwara/Flood-management-system/internal/config"
	"github.com/DInduwara/Flood-management-system/internal/db"
	"github.com/DInduwara/Flood-management-system/internal/logging"
	"github.com/DInduwara/Flood-management-system/internal/service"
	"github.com/DInduwara/Flood-management-system/repository"
)

// App holds what every command needs once flags are parsed.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	ctx    context.Context
	out    io.Writer
	dev    bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	app := &App{ctx: context.Background(), out: out}

	rootCmd := &cobra.Command{
		Use:           "floodsos",
		Short:         "Flood SOS intake backend",
		Long:          `Accepts SOS requests and help offers, and publishes the relief camp directory.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVar(&app.dev, "dev", false, "Use development defaults (JWT secret) when env is incomplete")

	rootCmd.AddCommand(serveCmd(app))
	rootCmd.AddCommand(migrateCmd(app))
	rootCmd.AddCommand(campsCmd(app))
	rootCmd.AddCommand(sosCmd(app))
	rootCmd.AddCommand(tokenCmd(app))
	return rootCmd
}

// init loads configuration and the logger.
func (a *App) init() error {
	var err error
	if a.dev {
		a.cfg, err = config.LoadWithDefaults()
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a.logger, err = logging.New(logging.Options{Env: a.cfg.Log.Env, Level: a.cfg.Log.Level, Dir: a.cfg.Log.Dir})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger.Debug("configuration loaded", zap.Stringer("config", a.cfg))
	return nil
}

// openIntake opens the database (applying migrations) and wires the service.
func (a *App) openIntake() (*service.Intake, *sql.DB, error) {
	d, err := db.Open(a.cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	intake := service.NewIntake(
		repository.NewSosRequestRepository(d),
		repository.NewHelpOfferRepository(d),
		repository.NewReliefCampRepository(d),
		a.logger,
	)
	return intake, d, nil
}

func (a *App) closeDB(d *sql.DB) {
	if err := d.Close(); err != nil {
		a.logger.Warn("close db", zap.Error(err))
	}
}
