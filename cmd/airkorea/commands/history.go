package commands

import (
	"airkorea/internal/chrono"
	"airkorea/internal/store"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 24, "Number of snapshots to show, 0 shows all of them.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <station> [--limit <n>]",
	Short: "Shows recorded snapshots of a station, the name is matched loosely.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer db.Close()
		s := store.NewStore(db)

		stations, err := s.Stations(ctx)
		if err != nil {
			return err
		}
		station, ok := store.MatchStation(args[0], stations)
		if !ok {
			return fmt.Errorf("no recorded station matches %q", args[0])
		}

		history, err := s.History(ctx, station, historyLimit)
		if err != nil {
			return err
		}

		// columns follow the pollutant order of the newest snapshot
		var names []string
		if len(history) > 0 {
			for p := range history[0].Status.All() {
				names = append(names, p.Name)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), station)
		t := newTable(cmd.OutOrStdout())
		header := table.Row{"recorded", "observed"}
		for _, name := range names {
			header = append(header, name)
		}
		t.AppendHeader(header)

		for _, snapshot := range history {
			row := table.Row{
				snapshot.RecordedAt.In(chrono.KST()).Format("2006-01-02 15:04"),
				strings.TrimSpace(snapshot.Status.ObservedAt),
			}
			for _, name := range names {
				p, ok := snapshot.Status.Pollutant(name)
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, fmt.Sprintf("%s %s", formatReading(p.Latest()), p.Grade))
			}
			t.AppendRow(row)
		}
		t.Render()
		return nil
	},
}
