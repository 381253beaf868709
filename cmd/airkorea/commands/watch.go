package commands

import (
	"airkorea/internal/airkorea"
	"airkorea/internal/chrono"
	"airkorea/internal/client"
	"airkorea/internal/store"
	"airkorea/internal/telemetry"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

const report_watch_record = "watch.record"

var (
	watchLng  float64
	watchLat  float64
	watchCron string
)

func init() {
	watchCmd.Flags().Float64Var(&watchLng, "lng", 0, "Longitude of the location.")
	watchCmd.Flags().Float64Var(&watchLat, "lat", 0, "Latitude of the location.")
	watchCmd.Flags().StringVar(&watchCron, "cron", "5 * * * *", "Schedule (Asia/Seoul) on which to record a snapshot, stations publish hourly.")
	watchCmd.MarkFlagRequired("lng")
	watchCmd.MarkFlagRequired("lat")
	rootCmd.AddCommand(watchCmd)
}

type searcher interface {
	Search(ctx context.Context, lng, lat float64) (airkorea.AirStatus, error)
}

// recorder fetches the readings of one location and pushes them into a store.
type recorder struct {
	search   searcher
	store    store.Store
	time     chrono.TimeAPI
	tel      telemetry.API
	lng, lat float64
}

func (r recorder) record(ctx context.Context) error {
	status, err := r.search.Search(ctx, r.lng, r.lat)
	if err != nil {
		r.tel.ReportBroken(report_watch_record, err)
		return err
	}
	err = r.store.Push(ctx, store.Snapshot{
		RecordedAt: r.time.Now(),
		Status:     status,
	})
	if err != nil {
		r.tel.ReportBroken(report_watch_record, fmt.Errorf("push: %w", err))
		return err
	}
	r.tel.ReportCount(report_watch_record, int64(len(status.Pollutants)))
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch --lng <longitude> --lat <latitude> [--cron <spec>]",
	Short: "Records a snapshot of the nearest station on a schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		err := chrono.ValidateSpec(watchCron)
		if err != nil {
			return fmt.Errorf("invalid --cron: %w", err)
		}

		tel, err := telemetry.Setup(ctx, "airkorea", cfg.Telemetry)
		if err != nil {
			return err
		}
		defer tel.Shutdown(context.Background())

		api := telemetry.SlogAPI{}
		telemetry.InstrumentPerfStats(ctx, api, time.Minute)

		db, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer db.Close()

		c, err := client.NewFromConfig(cfg, api)
		if err != nil {
			return err
		}

		r := recorder{
			search: c,
			store:  store.NewStore(db),
			time:   chrono.NewStandardTime(),
			tel:    telemetry.NewScopedAPI("watch", api),
			lng:    watchLng,
			lat:    watchLat,
		}

		// the first snapshot is recorded right away
		err = r.record(ctx)
		if err != nil {
			slog.Warn("initial snapshot failed", "err", err)
		}

		cronner := chrono.NewStandardCron(api)
		err = cronner.Cron(watchCron, func() {
			r.record(ctx)
		})
		if err != nil {
			return err
		}
		slog.Info("watching", "lng", watchLng, "lat", watchLat, "cron", watchCron)

		<-ctx.Done()
		<-cronner.Stop().Done()
		return nil
	},
}
