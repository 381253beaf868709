package store

import (
	"airkorea/internal/airkorea"
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func some(v float64) *float64 {
	return &v
}

func openMemory(t *testing.T) Store {
	t.Helper()
	db, err := Open(Config{File: ":memory:"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func status(station, observedAt string, cai float64) airkorea.AirStatus {
	return airkorea.AirStatus{
		StationAddress: station,
		ObservedAt:     observedAt,
		Pollutants: []airkorea.Pollutant{
			{Name: "CAI", Grade: airkorea.GradeNormal, Readings: []*float64{some(cai - 1), some(cai)}},
			{Name: "SO2", Unit: "ppm", Grade: airkorea.GradeGood, Readings: []*float64{some(0.002), nil, some(0.003)}},
		},
	}
}

func TestOpenRequiresTarget(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

func TestPushHistory(t *testing.T) {
	store := openMemory(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		history, err := store.History(ctx, "unknown", 10)
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, history, 0)
	}

	base := time.Unix(1555146000, 0)
	pushes := []Snapshot{
		{RecordedAt: base, Status: status("세종 세종시 신흥동측정소", "2019-04-13 17시 기준", 80)},
		{RecordedAt: base.Add(time.Hour), Status: status("세종 세종시 신흥동측정소", "2019-04-13 18시 기준", 81)},
		{RecordedAt: base.Add(time.Hour), Status: status("서울 중구", "2019-04-13 18시 기준", 40)},
	}
	for _, snapshot := range pushes {
		err := store.Push(ctx, snapshot)
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := store.History(ctx, "세종 세종시 신흥동측정소", 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, history, 2)
	require.Equal(t, "2019-04-13 18시 기준", history[0].Status.ObservedAt)
	require.Equal(t, base.Add(time.Hour).Unix(), history[0].RecordedAt.Unix())
	if diff := cmp.Diff(pushes[1].Status, history[0].Status); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}

	limited, err := store.History(ctx, "세종 세종시 신흥동측정소", 1)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, limited, 1)
	require.Equal(t, "2019-04-13 18시 기준", limited[0].Status.ObservedAt)

	stations, err := store.Stations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"서울 중구", "세종 세종시 신흥동측정소"}, stations)
}

func TestPushReplacesSameObservation(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	base := time.Unix(1555146000, 0)
	err := store.Push(ctx, Snapshot{RecordedAt: base, Status: status("station", "2019-04-13 18시 기준", 80)})
	if err != nil {
		t.Fatal(err)
	}
	err = store.Push(ctx, Snapshot{RecordedAt: base.Add(time.Minute), Status: status("station", "2019-04-13 18시 기준", 81)})
	if err != nil {
		t.Fatal(err)
	}

	history, err := store.History(ctx, "station", 0)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, history, 1)
	cai, ok := history[0].Status.Pollutant("CAI")
	require.True(t, ok)
	require.Equal(t, 81.0, *cai.Latest())
}

func TestPushKeepsUntimedSnapshots(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	base := time.Unix(1555146000, 0)
	for i := 0; i < 3; i++ {
		snapshot := Snapshot{
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
			Status: airkorea.AirStatus{
				StationAddress: "station",
				Pollutants:     []airkorea.Pollutant{},
			},
		}
		err := store.Push(ctx, snapshot)
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := store.History(ctx, "station", 0)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, history, 3)
	require.Equal(t, base.Add(2*time.Hour).Unix(), history[0].RecordedAt.Unix())
	require.Len(t, history[0].Status.Pollutants, 0)
}

func TestMatchStation(t *testing.T) {
	stations := []string{"서울 중구", "세종 세종시 신흥동측정소", "Seoul Jung-gu"}

	testCases := []struct {
		query    string
		expected string
		ok       bool
	}{
		{query: "서울 중구", expected: "서울 중구", ok: true},
		{query: "서울중구", expected: "서울 중구", ok: true},
		{query: "신흥동", expected: "세종 세종시 신흥동측정소", ok: true},
		{query: "seoul jung gu", expected: "Seoul Jung-gu", ok: true},
		{query: "", ok: false},
		{query: "zzzzzzzz", ok: false},
	}

	for _, test := range testCases {
		actual, ok := MatchStation(test.query, stations)
		require.Equal(t, test.ok, ok, test.query)
		require.Equal(t, test.expected, actual, test.query)
	}
}
