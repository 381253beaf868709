package airkorea

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Layout is one era of the station page markup. Every era produces the same
// AirStatus so callers do not care which one served the page.
type Layout interface {
	Name() string
	Extract(doc *goquery.Document) (AirStatus, error)
}

const (
	LayoutTimeSeries = "timeseries"
	LayoutLevel      = "level"
)

// LayoutByName resolves a configured layout name, "" is the time series
// layout.
func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutTimeSeries:
		return TimeSeriesLayout{}, nil
	case LayoutLevel:
		return LevelLayout{}, nil
	}
	return nil, fmt.Errorf("unknown page layout %q", name)
}

// Parse extracts an AirStatus from a page body using the time series layout.
func Parse(body string) (AirStatus, error) {
	return ParseWith(TimeSeriesLayout{}, strings.NewReader(body))
}

// ParseWith reads a whole page body from r and extracts it with layout.
func ParseWith(layout Layout, r io.Reader) (AirStatus, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return AirStatus{}, fmt.Errorf("%w: %w", ErrParsePage, err)
	}
	return layout.Extract(doc)
}
