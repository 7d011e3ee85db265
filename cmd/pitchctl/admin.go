package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/pitch/internal/auth"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin <email>",
	Short: "Give a user the admin claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], true)
	},
}

var revokeAdminCmd = &cobra.Command{
	Use:   "revoke-admin <email>",
	Short: "Remove the admin claim from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], false)
	},
}

func setAdmin(cmd *cobra.Command, email string, admin bool) error {
	return withStore(cmd, func(ctx context.Context, s store.DocumentStore, log logger.Logger) error {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := auth.NewService(s, log, auth.Config{}).SetAdminClaim(ctx, email, admin); err != nil {
			return fmt.Errorf("set admin claim for %s: %w", email, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s admin=%t\n", email, admin)
		return nil
	})
}
