package cli

import (
	"errors"
	"fmt"
	"strings"

	"talent-match/internal/app"
	"talent-match/internal/insight"

	"github.com/spf13/cobra"
)

var errNoInsight = errors.New("no market insight for this role")

func newInsightsCmd(e *env) *cobra.Command {
	var title, industry, dataset string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Look up the market success rate and upskilling tracks for a job title",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			path := strings.TrimSpace(dataset)
			if path == "" {
				path = e.cfg.Insight.DatasetPath
			}

			p := insight.NewProvider(app.NewStorage(ctx, e.cfg.Storage, e.logger), path, e.logger)
			defer p.Shutdown()
			if err := p.Initialize(ctx); err != nil {
				return err
			}

			mi := p.Lookup(ctx, title, industry)
			if mi == nil {
				return fmt.Errorf("%w: %q", errNoInsight, title)
			}
			return printJSON(cmd.OutOrStdout(), mi)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "job title to look up")
	cmd.Flags().StringVarP(&industry, "industry", "i", "", "narrow the success rate to one industry")
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset reference (default INSIGHT_DATASET_PATH)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
