package chrono

import (
	"airkorea/internal/telemetry"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedTime(t *testing.T) {
	instant := time.Date(2019, 4, 13, 9, 0, 0, 0, time.UTC)
	now := FixedTime(instant).Now()
	require.True(t, now.Equal(instant))
	require.Equal(t, 18, now.Hour())
	require.Equal(t, "Asia/Seoul", now.Location().String())
}

func TestValidateSpec(t *testing.T) {
	require.NoError(t, ValidateSpec("5 * * * *"))
	require.NoError(t, ValidateSpec("@every 10m"))
	require.Error(t, ValidateSpec("every hour"))
}

func TestCronLogger(t *testing.T) {
	recorder := &telemetry.Recorder{}
	logger := cronLogger{tel: recorder}

	logger.Info("start", "entries", 2)
	logger.Error(errors.New("boom"), "panic", "job", "search")

	debug := recorder.Events(telemetry.EventDebug)
	require.Len(t, debug, 1)
	require.Equal(t, "cron: start", debug[0].Id)
	require.Equal(t, []any{"entries: 2"}, debug[0].Params)

	broken := recorder.Events(telemetry.EventBroken)
	require.Len(t, broken, 1)
	require.Equal(t, "cron", broken[0].Id)
	require.EqualError(t, broken[0].Params[0].(error), "panic: boom")
	require.Equal(t, "job: search", broken[0].Params[1])
}

func TestStandardCron(t *testing.T) {
	recorder := &telemetry.Recorder{}
	cronner := NewStandardCron(recorder)
	defer cronner.Stop()

	fired := make(chan struct{}, 1)
	err := cronner.Cron("@every 1s", func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("cron job did not fire")
	}

	require.Error(t, cronner.Cron("not a spec", func() {}))
}
