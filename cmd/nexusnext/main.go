package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/config"
)

var (
	flagConfig  string
	flagVerbose bool

	logger *zap.Logger
	cfg    config.Config
)

// rootCmd is the entry point for the nexusnext binary.
var rootCmd = &cobra.Command{
	Use:   "nexusnext",
	Short: "Nexusnext brand site and showcase",
	Long: `Nexusnext ships as one binary with two modes.

  serve    - the brand site: landing page, waitlist API, SQLite storage
  showcase - the animated brand experience: WebGPU scenes in a native window`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagVerbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(showcaseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
