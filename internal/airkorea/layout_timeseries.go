package airkorea

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

const chartCallName = "drawChart"

var (
	tsSelStation = cascadia.MustCompile(".tit")
	tsSelTime    = cascadia.MustCompile(".tim")
	tsSelItem    = cascadia.MustCompile(".item")
	tsSelLabel   = cascadia.MustCompile(".ti>.t1")
	tsSelGrade   = cascadia.MustCompile(".tx>.t")
	tsSelUnit    = cascadia.MustCompile(".ti .unit")

	tsDecoder = NewSeriesDecoder(chartCallName)
)

// TimeSeriesLayout is the page era that shows a 24 hour chart per pollutant.
// Card metadata comes from the DOM, the hourly values from the drawChart
// calls in the page script.
type TimeSeriesLayout struct {
	// Normalizer, when set, decodes each chart payload as a relaxed literal
	// first and only falls back to row splitting when that fails.
	Normalizer Normalizer
}

func (TimeSeriesLayout) Name() string {
	return LayoutTimeSeries
}

func (l TimeSeriesLayout) Extract(doc *goquery.Document) (AirStatus, error) {
	script, err := tsDecoder.FindScript(doc)
	if err != nil {
		return AirStatus{}, err
	}

	page := NewPage(doc)
	station := page.ExtractSingle(tsSelStation)
	observedAt := page.ExtractSingle(tsSelTime)
	metadata := ExtractMetadata(page.Blocks(tsSelItem), BlockSelectors{
		Label: tsSelLabel,
		Grade: tsSelGrade,
		Unit:  tsSelUnit,
	})

	return Assemble(station, observedAt, metadata, l.decode(script)), nil
}

func (l TimeSeriesLayout) decode(script string) [][]*float64 {
	if l.Normalizer == nil {
		return tsDecoder.Decode(script)
	}

	payloads := tsDecoder.Payloads(script)
	series := make([][]*float64, len(payloads))
	for i, p := range payloads {
		readings, err := DecodeRowsStrict(p, l.Normalizer)
		if err != nil {
			readings = DecodeRows(p)
		}
		series[i] = readings
	}
	return series
}
