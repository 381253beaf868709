package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const page = `<html><head>
<script src="/static/jquery.js"></script>
<script>var a = 1;</script>
</head><body>
<p class="tit">
	세종 세종시 신흥동측정소
	<a href="#">변경</a>
</p>
<div class="ti"><span class="t2">
	0.003
	<em class="unit"> ppm </em>
	<script>ignored()</script>
</span></div>
<script>
drawChart([[1],[2]]);
</script>
</body></html>`

func parse(t testing.TB) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestTrimmedText(t *testing.T) {
	doc := parse(t)
	require.Equal(t, "세종 세종시 신흥동측정소변경", TrimmedText(doc.Find(".tit").Get(0)))
	require.Equal(t, "0.003ppm", SelectionText(doc.Find(".t2")))
	require.Equal(t, "", SelectionText(doc.Find(".missing")))
}

func TestFirstText(t *testing.T) {
	doc := parse(t)
	require.Equal(t, "세종 세종시 신흥동측정소", FirstText(doc.Find(".tit").Get(0)))
	require.Equal(t, "", FirstText(nil))
}

func TestInlineScripts(t *testing.T) {
	doc := parse(t)
	scripts := InlineScripts(doc)
	require.Len(t, scripts, 3)
	require.Equal(t, "var a = 1;", scripts[0])
	require.Equal(t, "ignored()", scripts[1])
	require.Contains(t, scripts[2], "drawChart([[1],[2]]);")
}

func TestGetText(t *testing.T) {
	doc := parse(t)
	require.Contains(t, GetText(doc.Find(".tit").Get(0)), "변경")
	require.Equal(t, "", GetText(nil))
}
