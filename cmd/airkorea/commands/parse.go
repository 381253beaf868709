package commands

import (
	"airkorea/internal/airkorea"
	"airkorea/pkg/hjson2json"
	"bytes"

	"github.com/spf13/cobra"
)

var (
	parseLayout string
	parseJson   bool
	parseStrict bool
)

func init() {
	parseCmd.Flags().StringVar(&parseLayout, "layout", "", "Page layout (timeseries, level), defaults to the configured one.")
	parseCmd.Flags().BoolVar(&parseJson, "json", false, "Print the result as json.")
	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "Decode chart payloads as json5 before falling back to the loose decoder.")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <page.html | -> [--layout <layout>] [--json]",
	Short: "Extracts readings from a saved station page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := parseLayout
		if name == "" {
			name = cfg.Layout
		}
		layout, err := airkorea.LayoutByName(name)
		if err != nil {
			return err
		}
		if ts, ok := layout.(airkorea.TimeSeriesLayout); ok && parseStrict {
			ts.Normalizer = hjson2json.Converter{}
			layout = ts
		}

		body, err := readInput(args[0])
		if err != nil {
			return err
		}
		status, err := airkorea.ParseWith(layout, bytes.NewReader(body))
		if err != nil {
			return err
		}

		if parseJson {
			return writeJson(cmd.OutOrStdout(), status)
		}
		renderStatus(cmd.OutOrStdout(), status)
		return nil
	},
}
