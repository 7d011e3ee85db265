package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/seed"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the bundled content to empty collections",
	Long: `Writes every fixture (news, matches, videos, awards, navData) to the
configured store, one batch per collection. Collections that already hold
documents are skipped, so running it twice is safe.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, s store.DocumentStore, log logger.Logger) error {
			inserted, err := content.SeedAll(ctx, s, seed.NewLoader(seedDir), log)
			for _, coll := range seed.Collections {
				if n, ok := inserted[coll]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", coll, n)
				}
			}
			return err
		})
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "fixtures directory (default: bundled fixtures)")
}
