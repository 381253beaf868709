package airkorea

import (
	"airkorea/internal/assert"
	"airkorea/pkg/htmlutil"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SeriesDecoder pulls numeric series out of chart seeding calls of the form
// `<call>([[v, ...],[v, ...],...]);`. It is a pattern matcher for that one
// emission shape, not a script or JSON parser: the rows are loose literals
// that are split on their "],[" boundaries.
type SeriesDecoder struct {
	callName  string
	callStart *regexp.Regexp
	call      *regexp.Regexp
}

func NewSeriesDecoder(callName string) SeriesDecoder {
	assert.NotEmptyStr(callName)
	quoted := regexp.QuoteMeta(callName)
	return SeriesDecoder{
		callName:  callName,
		callStart: regexp.MustCompile(`\b` + quoted + `\(\s*\[`),
		// row literals never contain ';', so a call can not swallow the
		// statements after it
		call: regexp.MustCompile(`^` + quoted + `\(\s*\[([^;]*?)\]\s*\)\s*;`),
	}
}

// FindScript returns the first inline script of doc that calls the
// decoder's function.
func (d SeriesDecoder) FindScript(doc *goquery.Document) (string, error) {
	for _, script := range htmlutil.InlineScripts(doc) {
		if strings.Contains(script, d.callName+"(") {
			return script, nil
		}
	}
	return "", fmt.Errorf("%w: no script calls %s", ErrScriptNotFound, d.callName)
}

// Payloads returns the captured row list of every call in script, in order.
// The script is cut at every call start and each piece is matched on its
// own. A malformed call yields an empty payload in its own slot, so the
// calls after it keep their positions.
func (d SeriesDecoder) Payloads(script string) []string {
	starts := d.callStart.FindAllStringIndex(script, -1)
	payloads := make([]string, len(starts))
	for i, start := range starts {
		end := len(script)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		m := d.call.FindStringSubmatch(script[start[0]:end])
		if m != nil {
			payloads[i] = m[1]
		}
	}
	return payloads
}

// Decode returns one series per call in script, in emission order.
func (d SeriesDecoder) Decode(script string) [][]*float64 {
	payloads := d.Payloads(script)
	series := make([][]*float64, len(payloads))
	for i, p := range payloads {
		series[i] = DecodeRows(p)
	}
	return series
}

var rowBoundary = regexp.MustCompile(`\]\s*,\s*\[`)

// DecodeRows splits a row list payload ("[74,'01'],[68,'02']") and parses
// the first token of each row. Rows whose first token is not a number are
// nil, the row count is always preserved.
func DecodeRows(payload string) []*float64 {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return []*float64{}
	}

	rows := rowBoundary.Split(payload, -1)
	readings := make([]*float64, len(rows))
	for i, row := range rows {
		token, _, _ := strings.Cut(cleanRow(row), ",")
		readings[i] = ParseReading(token)
	}
	return readings
}

func cleanRow(row string) string {
	row = strings.TrimSpace(row)
	row = strings.TrimRight(row, ", \t\r\n")
	row = strings.TrimLeft(row, "[ \t\r\n")
	row = strings.TrimRight(row, "] \t\r\n")
	return row
}

// ParseReading parses one numeric token, quoted or not. Blank, placeholder
// ("-", "--") and non-finite tokens are nil.
func ParseReading(token string) *float64 {
	token = strings.TrimSpace(token)
	// only a matching pair is a quote, a lone quote is left for ParseFloat
	// to reject
	if len(token) >= 2 && (token[0] == '\'' || token[0] == '"') && token[len(token)-1] == token[0] {
		token = strings.TrimSpace(token[1 : len(token)-1])
	}
	if token == "" {
		return nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Normalizer converts a relaxed script literal into strict JSON.
type Normalizer interface {
	Convert(s string) (string, error)
}

// DecodeRowsStrict decodes a row list payload by normalizing it into JSON
// first. It fails when the payload is not a well formed list of lists, in
// which case DecodeRows is the fallback.
func DecodeRowsStrict(payload string, n Normalizer) ([]*float64, error) {
	assert.NotNil(n)

	if strings.TrimSpace(payload) == "" {
		return []*float64{}, nil
	}

	converted, err := n.Convert("[" + payload + "]")
	if err != nil {
		return nil, fmt.Errorf("normalize rows: %w", err)
	}
	var rows [][]any
	err = json.Unmarshal([]byte(converted), &rows)
	if err != nil {
		return nil, fmt.Errorf("unmarshal rows: %w", err)
	}

	readings := make([]*float64, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch v := row[0].(type) {
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				readings[i] = &v
			}
		case string:
			readings[i] = ParseReading(v)
		}
	}
	return readings, nil
}
