package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DInduwara/Flood-management-system/internal/auth"
)

func tokenCmd(app *App) *cobra.Command {
	var name, kind string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator JWT for the coordination desk",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := auth.IssueToken(app.cfg.Auth.JWTSecret, name, kind, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Operator name (required)")
	cmd.Flags().StringVar(&kind, "kind", auth.KindOperator, "operator or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
