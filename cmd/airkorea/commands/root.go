package commands

import (
	"airkorea/internal/config"
	"airkorea/internal/telemetry"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        config.Config
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file, defaults to the nearest airkorea.json5.")
}

var rootCmd = &cobra.Command{
	Use:           "airkorea",
	Short:         "airkorea extracts air quality readings from the airkorea mobile station page.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
