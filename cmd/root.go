// Package cmd defines and implements the CLI commands for the hotelcrawl executable.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ionian-data/greeka-hotels-crawler/internal/logging"
	"github.com/ionian-data/greeka-hotels-crawler/pkg/config"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotelcrawl",
		Short: "A polite crawler for hotel listing sites.",
		Long: `hotelcrawl walks a paginated hotel listing, fetches every hotel's
detail page with retries and a fixed inter-request delay, and extracts
name, rating, reviews, contact details, and coordinates into CSV and
JSON outputs.`,

		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Config is loaded by now; switch the logger to the configured mode.
			logging.InitLogger(viper.GetBool("crawler.development_logging"))
		},
	}

	// Initialize Viper configuration before any command runs.
	cobra.OnInitialize(initConfigFile, config.InitConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./config.yaml)")

	cmd.AddCommand(newCrawlCmd())

	return cmd
}

func initConfigFile() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// Execute is the main entry point.
func Execute() {
	logging.InitLogger(false)

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
