package airkorea

import (
	"airkorea/pkg/textutil"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	lvSelStation = cascadia.MustCompile(".tit")
	lvSelItem    = cascadia.MustCompile(".item")
	lvSelLabel   = cascadia.MustCompile(".ti>.t1")
	lvSelLevel   = cascadia.MustCompile(".ti>.t2")
	lvSelGrade   = cascadia.MustCompile(".tx>.t")
)

// a level is the current value immediately followed by its unit, ex.
// "35㎍/㎥", "0.003ppm" or "74" for the composite index.
var levelRegex = regexp.MustCompile(`^([\d.\-]+)\s*(.*)$`)

// LevelLayout is the older page era that only shows the current level of
// each pollutant. It has no observation timestamp and no chart script.
type LevelLayout struct{}

func (LevelLayout) Name() string {
	return LayoutLevel
}

func (LevelLayout) Extract(doc *goquery.Document) (AirStatus, error) {
	page := NewPage(doc)
	station := page.ExtractFirstText(lvSelStation)

	var metadata []Metadata
	var series [][]*float64
	for _, b := range page.Blocks(lvSelItem) {
		name, ok := textutil.UnwrapParenthesized(b.ExtractAll(lvSelLabel))
		if !ok {
			continue
		}
		groups := levelRegex.FindStringSubmatch(b.ExtractAll(lvSelLevel))
		if len(groups) < 3 {
			continue
		}

		metadata = append(metadata, Metadata{
			Name:  name,
			Unit:  groups[2],
			Grade: ClassifyGrade(b.ExtractAll(lvSelGrade)),
		})
		series = append(series, []*float64{ParseReading(groups[1])})
	}

	return Assemble(station, "", metadata, series), nil
}
