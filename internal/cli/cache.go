package cli

import (
	"fmt"

	"talent-match/internal/infrastructure/cache"

	"github.com/spf13/cobra"
)

func newCacheCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the embedding cache",
	}

	var pattern string
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached embeddings matching a key pattern",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			r := cache.NewRedis(ctx, e.cfg.Redis, e.logger)
			defer r.Close()

			if err := r.Ping(ctx); err != nil {
				return err
			}
			n, err := r.DeleteByPattern(ctx, pattern)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d keys\n", n)
			return nil
		},
	}
	purge.Flags().StringVarP(&pattern, "pattern", "p", "emb:*", "redis key pattern")

	cmd.AddCommand(purge)
	return cmd
}
