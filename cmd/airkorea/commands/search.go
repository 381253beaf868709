package commands

import (
	"airkorea/internal/client"
	"airkorea/internal/telemetry"

	"github.com/spf13/cobra"
)

var (
	searchLng  float64
	searchLat  float64
	searchJson bool
	searchDump string
)

func init() {
	searchCmd.Flags().Float64Var(&searchLng, "lng", 0, "Longitude of the location.")
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "Latitude of the location.")
	searchCmd.Flags().BoolVar(&searchJson, "json", false, "Print the result as json.")
	searchCmd.Flags().StringVar(&searchDump, "dump", "", "Directory to save the fetched page into, it can be replayed with the parse command.")
	searchCmd.MarkFlagRequired("lng")
	searchCmd.MarkFlagRequired("lat")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search --lng <longitude> --lat <latitude> [--json] [--dump <dir>]",
	Short: "Fetches the readings of the station nearest to a location.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tel, err := telemetry.Setup(ctx, "airkorea", cfg.Telemetry)
		if err != nil {
			return err
		}
		defer tel.Shutdown(ctx)

		opts, err := client.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}
		if searchDump != "" {
			opts.Dump, err = client.NewDirDump(searchDump)
			if err != nil {
				return err
			}
		}
		c, err := client.New(opts, telemetry.SlogAPI{})
		if err != nil {
			return err
		}
		status, err := c.Search(ctx, searchLng, searchLat)
		if err != nil {
			return err
		}

		if searchJson {
			return writeJson(cmd.OutOrStdout(), status)
		}
		renderStatus(cmd.OutOrStdout(), status)
		return nil
	},
}
