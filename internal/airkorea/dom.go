package airkorea

import (
	"airkorea/pkg/htmlutil"
	"airkorea/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Page is the DOM side of extraction over a parsed document. It only reads
// from the document so it is safe to use alongside the script decoder.
type Page struct {
	doc *goquery.Document
}

func NewPage(doc *goquery.Document) Page {
	return Page{doc: doc}
}

// ExtractSingle returns the trimmed, concatenated text of the first node
// matching m, or "" when nothing matches.
func (p Page) ExtractSingle(m goquery.Matcher) string {
	return extractSingle(p.doc.Selection, m)
}

// ExtractFirstText returns only the first non-blank text child of the first
// node matching m.
func (p Page) ExtractFirstText(m goquery.Matcher) string {
	match := p.doc.FindMatcher(m).First()
	if match.Length() == 0 {
		return ""
	}
	return htmlutil.FirstText(match.Get(0))
}

// Blocks returns one Block per node matching m, in document order.
func (p Page) Blocks(m goquery.Matcher) []Block {
	var blocks []Block
	p.doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, Block{sel: s})
	})
	return blocks
}

// Block is one repeated card on the page, usually one pollutant.
type Block struct {
	sel *goquery.Selection
}

func (b Block) ExtractSingle(m goquery.Matcher) string {
	return extractSingle(b.sel, m)
}

// ExtractAll concatenates the trimmed text of every node under the block
// that matches m.
func (b Block) ExtractAll(m goquery.Matcher) string {
	return htmlutil.SelectionText(b.sel.FindMatcher(m))
}

func extractSingle(sel *goquery.Selection, m goquery.Matcher) string {
	match := sel.FindMatcher(m).First()
	if match.Length() == 0 {
		return ""
	}
	return textutil.CollapseWhitespace(htmlutil.SelectionText(match))
}

// Metadata is what a card says about a pollutant besides its numbers.
type Metadata struct {
	Name  string
	Unit  string
	Grade Grade
}

// BlockSelectors addresses the fields of one card.
type BlockSelectors struct {
	// Label holds a display label with the code in parentheses,
	// ex. "미세먼지(PM10)".
	Label goquery.Matcher
	Grade goquery.Matcher
	Unit  goquery.Matcher
}

// ExtractMetadata reads every block with sels. Blocks whose label carries
// no parenthesized code are informational cards that share the pollutant
// card markup and are dropped.
func ExtractMetadata(blocks []Block, sels BlockSelectors) []Metadata {
	var out []Metadata
	for _, b := range blocks {
		name, ok := textutil.UnwrapParenthesized(b.ExtractSingle(sels.Label))
		if !ok {
			continue
		}
		out = append(out, Metadata{
			Name:  name,
			Unit:  b.ExtractSingle(sels.Unit),
			Grade: ClassifyGrade(b.ExtractSingle(sels.Grade)),
		})
	}
	return out
}
