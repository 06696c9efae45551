// Package cli implements matchctl, the operator tool for the matching service.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "matchctl"

// Actual version can be specified in build command.
var version = "unknown"

// env carries what every subcommand needs once the root flags are parsed.
type env struct {
	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree. Configuration comes from the environment (and .env);
// flags override the upload root and logging.
func NewRootCmd() *cobra.Command {
	e := &env{v: viper.New()}

	root := &cobra.Command{
		Use:           appName,
		Short:         "matchctl inspects and maintains the talent matching service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init()
		},
	}

	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	root.PersistentFlags().String("root", "", "upload root for local references (default UPLOAD_ROOT)")

	_ = e.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = e.v.BindPFlag("json", root.PersistentFlags().Lookup("json"))
	_ = e.v.BindPFlag("root", root.PersistentFlags().Lookup("root"))

	root.AddCommand(
		newInsightsCmd(e),
		newExtractCmd(e),
		newMigrateCmd(e),
		newSeedCmd(e),
		newCacheCmd(e),
		newTokenCmd(e),
		newVersionCmd(),
	)
	return root
}

// Execute runs matchctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (e *env) init() error {
	log, err := logger.New(e.v.GetBool("json"), e.v.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	e.logger = log

	e.cfg = config.LoadLenient()
	if root := e.v.GetString("root"); root != "" {
		e.cfg.Storage.UploadRoot = root
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", appName, version)
		},
	}
}
