package commands

import (
	"airkorea/internal/airkorea"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func formatReading(v *float64) string {
	if v == nil {
		return "--"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatTrend renders the last n readings oldest first.
func formatTrend(readings []*float64, n int) string {
	if len(readings) > n {
		readings = readings[len(readings)-n:]
	}
	values := make([]string, len(readings))
	for i, v := range readings {
		values[i] = formatReading(v)
	}
	return strings.Join(values, " ")
}

func renderStatus(w io.Writer, status airkorea.AirStatus) {
	fmt.Fprintln(w, status.StationAddress)
	if status.ObservedAt != "" {
		fmt.Fprintln(w, status.ObservedAt)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"pollutant", "latest", "unit", "grade", "last 6h"})
	for p := range status.All() {
		t.AppendRow(table.Row{
			p.Name,
			formatReading(p.Latest()),
			p.Unit,
			p.Grade,
			formatTrend(p.Readings, 6),
		})
	}
	t.Render()
}

func writeJson(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// readInput reads the file at path, "-" is stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
