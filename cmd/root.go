package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andina-geotech/slopewatch/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "slopewatch",
	Short: "Open-pit slope monitoring dashboard backend",
	Long:  "Loads geotechnical event and safety alert workbooks, validates and normalizes every row, computes the dashboard aggregations, and serves or exports the result.",
	// Runtime failures are data problems, not usage problems; keep the
	// usage block out of the error output.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
