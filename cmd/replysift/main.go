// Command replysift classifies reply mailboxes, extracts contacts and
// exports scored leads.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beeleads/replysift/internal/config"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "replysift",
		Short: "Triage email replies into categories and scored leads",
		Long: `replysift processes a directory of .eml reply messages: it classifies
each message, extracts contact details from promising categories, merges
them per address and scores the result as sales leads.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = zap.NewProduction()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(newRunCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newEnrichCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
