package htmlutil

import (
	"airkorea/pkg/textutil"
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the raw text of node and all its descendants.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func collectTextNodes(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*out = append(*out, node.Data)
		return
	}
	// script and style bodies are never visible text
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectTextNodes(child, out)
	}
}

// TrimmedText trims every text node under node and concatenates them without
// a separator.
func TrimmedText(node *html.Node) string {
	var fragments []string
	collectTextNodes(node, &fragments)
	return textutil.JoinTrimmed(fragments)
}

// SelectionText is TrimmedText over every node in sel, concatenated in
// document order.
func SelectionText(sel *goquery.Selection) string {
	var out strings.Builder
	for _, n := range sel.Nodes {
		out.WriteString(TrimmedText(n))
	}
	return out.String()
}

// FirstText returns the first non-blank direct text child of node, trimmed.
func FirstText(node *html.Node) string {
	if node == nil {
		return ""
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			continue
		}
		text := textutil.Clean(child.Data)
		if text != "" {
			return text
		}
	}
	return ""
}

// InlineScripts returns the text of every <script> element without a src
// attribute, in document order.
func InlineScripts(doc *goquery.Document) []string {
	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		scripts = append(scripts, GetText(s.Get(0)))
	})
	return scripts
}
