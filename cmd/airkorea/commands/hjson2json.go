package commands

import (
	"airkorea/pkg/hjson2json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(hjson2jsonCmd)
}

var hjson2jsonCmd = &cobra.Command{
	Use:   "hjson2json <file | ->",
	Short: "Converts a relaxed object literal (unquoted keys, single quotes, trailing commas) to json.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args[0])
		if err != nil {
			return err
		}
		out, err := hjson2json.Convert(string(input))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
