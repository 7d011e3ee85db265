// Command pitchctl runs offline maintenance against the document store:
// seeding the bundled content and managing the admin claim.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/pitch/internal/app"
	"github.com/MrSnakeDoc/pitch/internal/config"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/store"
	"github.com/MrSnakeDoc/pitch/internal/utils"
	"github.com/MrSnakeDoc/pitch/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "pitchctl",
	Short:         "Offline maintenance for the pitch site",
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(seedCmd, grantAdminCmd, revokeAdminCmd)
}

// withStore loads the configuration, opens the store and runs fn with it.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s store.DocumentStore, log logger.Logger) error) error {
	cfg := config.Load()
	log := app.NewLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	s, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer utils.CloseLogged(s, log, "document store")

	return fn(ctx, s, log)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
