package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	grpcserver "github.com/DInduwara/Flood-management-system/internal/grpc"
	"github.com/DInduwara/Flood-management-system/internal/httpapi"
)

func serveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC APIs until SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			intake, d, err := app.openIntake()
			if err != nil {
				return err
			}
			defer app.closeDB(d)

			if app.cfg.Log.Env == "production" {
				gin.SetMode(gin.ReleaseMode)
			}
			router := httpapi.NewRouter(intake, httpapi.Options{
				JWTSecret:      app.cfg.Auth.JWTSecret,
				AllowedOrigins: app.cfg.HTTP.AllowedOrigins,
				Logger:         app.logger,
			})
			httpSrv := &http.Server{
				Addr:              app.cfg.HTTP.Address,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			httpErr := make(chan error, 1)
			go func() {
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					httpErr <- err
				}
				close(httpErr)
			}()
			app.logger.Info("HTTP API listening", zap.String("address", app.cfg.HTTP.Address))

			var stopGRPC func(context.Context) error
			if app.cfg.GRPC.Address != "" {
				stopGRPC, err = grpcserver.StartGRPC(app.cfg, intake, app.logger)
				if err != nil {
					_ = httpSrv.Close()
					return fmt.Errorf("start grpc: %w", err)
				}
				app.logger.Info("gRPC server listening", zap.String("address", app.cfg.GRPC.Address))
			}

			ctx, stop := signal.NotifyContext(app.ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			select {
			case <-ctx.Done():
				app.logger.Info("shutting down")
			case err := <-httpErr:
				if err != nil {
					app.logger.Error("http server failed", zap.Error(err))
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.HTTP.ShutdownGrace())
			defer cancel()
			var errs []error
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("http shutdown: %w", err))
			}
			if stopGRPC != nil {
				if err := stopGRPC(shutdownCtx); err != nil {
					errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
				}
			}
			return errors.Join(errs...)
		},
	}
}
