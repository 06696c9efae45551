package cli

import (
	"errors"
	"fmt"

	"talent-match/internal/app"
	"talent-match/internal/extract"

	"github.com/spf13/cobra"
)

var errNoText = errors.New("no text extracted")

func newExtractCmd(e *env) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the text extracted from a resume reference (local path or s3://bucket/key)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ex := extract.NewExtractor(app.NewStorage(ctx, e.cfg.Storage, e.logger), e.logger)

			text := ex.Extract(ctx, ref)
			if text == "" {
				return fmt.Errorf("%w from %q", errNoText, ref)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&ref, "ref", "r", "", "resume reference")
	_ = cmd.MarkFlagRequired("ref")
	return cmd
}
