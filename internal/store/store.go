package store

import (
	"airkorea/internal/airkorea"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var tracer = otel.Tracer("airkorea/internal/store")

type Config struct {
	// File is a local sqlite database, ":memory:" works for tests.
	File string `json:"file"`
	// Url is a remote libsql database, it takes precedence over File.
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// Open opens the configured database and applies the schema.
func Open(config Config) (*sql.DB, error) {
	var db *sql.DB
	var err error
	switch {
	case config.Url != "":
		db, err = openLibsql(config.Url, config.AuthToken)
	case config.File != "":
		db, err = openSqlite(config.File)
	default:
		return nil, fmt.Errorf("store: neither a file nor a url was specified")
	}
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return db, nil
}

func openLibsql(rawUrl, authToken string) (*sql.DB, error) {
	if authToken != "" {
		parsed, err := url.Parse(rawUrl)
		if err != nil {
			return nil, err
		}
		query := parsed.Query()
		query.Set("authToken", authToken)
		parsed.RawQuery = query.Encode()
		rawUrl = parsed.String()
	}
	return sql.Open("libsql", rawUrl)
}

func openSqlite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite only allows a single writer
	db.SetMaxOpenConns(1)
	if path != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Snapshot is an extraction result together with the time it was recorded.
type Snapshot struct {
	RecordedAt time.Time
	Status     airkorea.AirStatus
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Push records a snapshot. A snapshot with the same station and a non-empty
// observation time replaces the one recorded before it.
func (s Store) Push(ctx context.Context, snapshot Snapshot) error {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()

	status := snapshot.Status
	span.SetAttributes(
		attribute.String("station", status.StationAddress),
		attribute.String("observed_at", status.ObservedAt),
		attribute.Int("pollutants", len(status.Pollutants)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(span, err)
	}
	defer tx.Rollback()

	if status.ObservedAt != "" {
		_, err = tx.ExecContext(
			ctx,
			"delete from reading where snapshot_id in (select id from snapshot where station = ? and observed_at = ?)",
			status.StationAddress, status.ObservedAt,
		)
		if err != nil {
			return fail(span, err)
		}
		_, err = tx.ExecContext(
			ctx,
			"delete from snapshot where station = ? and observed_at = ?",
			status.StationAddress, status.ObservedAt,
		)
		if err != nil {
			return fail(span, err)
		}
	}

	var snapshotId int64
	err = tx.QueryRowContext(
		ctx,
		"insert into snapshot(station, observed_at, recorded_at) values (?, ?, ?) returning id",
		status.StationAddress, status.ObservedAt, snapshot.RecordedAt.Unix(),
	).Scan(&snapshotId)
	if err != nil {
		return fail(span, err)
	}

	for i, p := range status.Pollutants {
		series, err := json.Marshal(p.Readings)
		if err != nil {
			return fail(span, err)
		}
		grade, err := p.Grade.MarshalText()
		if err != nil {
			return fail(span, err)
		}
		_, err = tx.ExecContext(
			ctx,
			"insert into reading(snapshot_id, position, pollutant, unit, grade, series) values (?, ?, ?, ?, ?, ?)",
			snapshotId, i, p.Name, p.Unit, string(grade), string(series),
		)
		if err != nil {
			return fail(span, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fail(span, err)
	}
	return nil
}

// Stations lists every station that has at least one snapshot, sorted.
func (s Store) Stations(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Stations")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, "select distinct station from snapshot order by station")
	if err != nil {
		return nil, fail(span, err)
	}
	defer rows.Close()

	var stations []string
	for rows.Next() {
		var station string
		err := rows.Scan(&station)
		if err != nil {
			return nil, fail(span, err)
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(span, err)
	}
	return stations, nil
}

// History returns the latest `limit` snapshots of a station, newest first.
// A limit <= 0 returns all of them.
func (s Store) History(ctx context.Context, station string, limit int) ([]Snapshot, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	span.SetAttributes(
		attribute.String("station", station),
		attribute.Int("limit", limit),
	)

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(
		ctx,
		`select s.id, s.observed_at, s.recorded_at, r.pollutant, r.unit, r.grade, r.series
		from (
			select id, observed_at, recorded_at from snapshot
			where station = ?
			order by recorded_at desc, id desc
			limit ?
		) s
		left join reading r on r.snapshot_id = s.id
		order by s.recorded_at desc, s.id desc, r.position asc`,
		station, limit,
	)
	if err != nil {
		return nil, fail(span, err)
	}
	defer rows.Close()

	var history []Snapshot
	lastId := int64(-1)
	for rows.Next() {
		var id, recordedAt int64
		var observedAt string
		var pollutant, unit, grade, series sql.NullString
		err := rows.Scan(&id, &observedAt, &recordedAt, &pollutant, &unit, &grade, &series)
		if err != nil {
			return nil, fail(span, err)
		}

		// rows of one snapshot are adjacent because of the ordering
		if id != lastId {
			history = append(history, Snapshot{
				RecordedAt: time.Unix(recordedAt, 0),
				Status: airkorea.AirStatus{
					StationAddress: station,
					ObservedAt:     observedAt,
					Pollutants:     []airkorea.Pollutant{},
				},
			})
			lastId = id
		}
		if !pollutant.Valid {
			continue
		}

		p := airkorea.Pollutant{
			Name: pollutant.String,
			Unit: unit.String,
		}
		err = p.Grade.UnmarshalText([]byte(grade.String))
		if err != nil {
			return nil, fail(span, err)
		}
		err = json.Unmarshal([]byte(series.String), &p.Readings)
		if err != nil {
			return nil, fail(span, err)
		}
		current := &history[len(history)-1]
		current.Status.Pollutants = append(current.Status.Pollutants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(span, err)
	}
	return history, nil
}
