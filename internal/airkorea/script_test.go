package airkorea

import (
	"airkorea/pkg/hjson2json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestDecodeRows(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected []*float64
	}{
		{
			name:     "plain",
			payload:  "[74,'19시'],[68,'20시'],[63,'21시']",
			expected: []*float64{some(74), some(68), some(63)},
		},
		{
			name:     "quoted tokens",
			payload:  "['0.004','19시'],[\"0.003\",'20시']",
			expected: []*float64{some(0.004), some(0.003)},
		},
		{
			name:     "whitespace between rows",
			payload:  "[ 1 , 'a' ] ,\n\t[ 2 , 'b' ]",
			expected: []*float64{some(1), some(2)},
		},
		{
			name:     "placeholders",
			payload:  "[1],['-'],[--],[''],[],[NaN],[Infinity],[5]",
			expected: []*float64{some(1), nil, nil, nil, nil, nil, nil, some(5)},
		},
		{
			name:     "embedded unit suffix",
			payload:  "['0.004ppm'],[0.003, 'ppm']",
			expected: []*float64{nil, some(0.003)},
		},
		{
			name:     "trailing comma",
			payload:  "[1],[2],[3],",
			expected: []*float64{some(1), some(2), some(3)},
		},
		{
			name:     "missing closing bracket",
			payload:  "[1],[2],[3",
			expected: []*float64{some(1), some(2), some(3)},
		},
		{
			name:     "empty leading token",
			payload:  "[,5],[6,]",
			expected: []*float64{nil, some(6)},
		},
		{
			name:     "quoted token cut at its inner comma",
			payload:  "['1,5','a'],[2,'b']",
			expected: []*float64{nil, some(2)},
		},
		{
			name:     "unbalanced quotes",
			payload:  "['7],[8'],[\"9'],[10]",
			expected: []*float64{nil, nil, nil, some(10)},
		},
		{
			name:     "negative and exponent",
			payload:  "[-1.5],[1e-3]",
			expected: []*float64{some(-1.5), some(0.001)},
		},
		{
			name:     "empty",
			payload:  "  ",
			expected: []*float64{},
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, DecodeRows(test.payload), test.name)
	}
}

func TestDecodeRowsPreservesOrder(t *testing.T) {
	var rows []string
	var expected []*float64
	for i := 0; i < 24; i++ {
		if i%5 == 3 {
			rows = append(rows, "['-','x']")
			expected = append(expected, nil)
			continue
		}
		rows = append(rows, "["+strings.Repeat("1", i%3+1)+",'x']")
		v := map[int]float64{1: 1, 2: 11, 3: 111}[i%3+1]
		expected = append(expected, some(v))
	}

	readings := DecodeRows(strings.Join(rows, ","))
	require.Len(t, readings, 24)
	require.Equal(t, expected, readings)
}

func TestSeriesDecoderDecode(t *testing.T) {
	d := NewSeriesDecoder("drawChart")

	script := `
		var chartIdx = 0;
		function noise() { return [[9,9]]; }
		drawChart([[74,'19시'],[81,'20시']]);
		chartIdx++;
		redrawChart([[1]]);
		drawChart( [ [0.004,'19시'],['-','20시'],[0.003,'21시'] ] ) ;
		drawChart([[1],[2]]);
		drawChart([]);
	`
	series := d.Decode(script)
	require.Equal(t, [][]*float64{
		{some(74), some(81)},
		{some(0.004), nil, some(0.003)},
		{some(1), some(2)},
		{},
	}, series)
}

func TestSeriesDecoderTruncated(t *testing.T) {
	d := NewSeriesDecoder("drawChart")

	testCases := []struct {
		name     string
		script   string
		expected [][]*float64
	}{
		{
			name:   "missing outer bracket",
			script: `drawChart([[1],[2],[3]);drawChart([[4]]);`,
			expected: [][]*float64{
				{some(1), some(2), some(3)},
				{some(4)},
			},
		},
		{
			name:   "missing both closing brackets",
			script: "drawChart([[1],[2);\nchartIdx = 1;\ndrawChart([[3],[4]]);\ndrawChart([[5],[6]]);",
			expected: [][]*float64{
				{},
				{some(3), some(4)},
				{some(5), some(6)},
			},
		},
		{
			name:   "unterminated last call",
			script: "drawChart([[1],[2]]);\ndrawChart([[3],[4]",
			expected: [][]*float64{
				{some(1), some(2)},
				{},
			},
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, d.Decode(test.script), test.name)
	}
}

func TestSeriesDecoderMalformedCallKeepsPairing(t *testing.T) {
	d := NewSeriesDecoder("drawChart")
	series := d.Decode("drawChart([[1],[2);\nchartIdx = 1;\ndrawChart([[3],[4]]);\ndrawChart([[5],[6]]);")

	status := Assemble("station", "", []Metadata{
		{Name: "PM10", Grade: GradeGood},
		{Name: "O3", Grade: GradeNormal},
		{Name: "SO2", Grade: GradeBad},
	}, series)

	require.Len(t, status.Pollutants, 2)
	o3, ok := status.Pollutant("O3")
	require.True(t, ok)
	require.Equal(t, []*float64{some(3), some(4)}, o3.Readings)
	so2, ok := status.Pollutant("SO2")
	require.True(t, ok)
	require.Equal(t, []*float64{some(5), some(6)}, so2.Readings)
	_, ok = status.Pollutant("PM10")
	require.False(t, ok)
}

func TestSeriesDecoderNoCalls(t *testing.T) {
	d := NewSeriesDecoder("drawChart")
	require.Empty(t, d.Decode("var a = [[1],[2]];"))
	require.Empty(t, d.Payloads(""))
}

func TestFindScript(t *testing.T) {
	d := NewSeriesDecoder("drawChart")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head>
		<script src="/js/chart.js">drawChart([[1]]);</script>
		<script>var a = 1;</script>
	</head><body><script>drawChart([[2]]);</script></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	script, err := d.FindScript(doc)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "drawChart([[2]]);", script)

	doc, err = goquery.NewDocumentFromReader(strings.NewReader(`<html><body><script>var a = 1;</script></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.FindScript(doc)
	require.ErrorIs(t, err, ErrScriptNotFound)
}

func TestParseReading(t *testing.T) {
	require.Equal(t, some(81), ParseReading(" '81' "))
	require.Equal(t, some(0.003), ParseReading(`"0.003"`))
	require.Nil(t, ParseReading("-"))
	require.Nil(t, ParseReading("NaN"))
	require.Nil(t, ParseReading("+Inf"))
	require.Nil(t, ParseReading("12시"))
}

func TestDecodeRowsStrict(t *testing.T) {
	n := hjson2json.Converter{}

	readings, err := DecodeRowsStrict("[74,'19시'],['0.003','20시'],['-','21시'],[]", n)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []*float64{some(74), some(0.003), nil, nil}, readings)

	// agrees with the row splitter on well formed payloads
	payload := "[0.004,'19시'],[0.003,'20시'],['0.005','21시'],"
	strict, err := DecodeRowsStrict(payload, n)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, DecodeRows(payload), strict)

	_, err = DecodeRowsStrict("[1],[2],[3", n)
	require.Error(t, err)

	_, err = DecodeRowsStrict("1,2,3", n)
	require.Error(t, err)

	empty, err := DecodeRowsStrict("", n)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, empty)
}
