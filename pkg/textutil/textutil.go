package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var innerWhitespace = regexp.MustCompile(`\s\s+`)

// NormalizeName lowercases a name and strips all whitespace from it so that
// display labels can be compared loosely.
func NormalizeName(name string) string {
	name = strings.ToLower(Clean(name))
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// RemoveNonPrintable drops control and other non-printable characters
// (zero width spaces, BOMs, etc.) while keeping regular spaces.
func RemoveNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == ' ' {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Clean NFC-normalizes a fragment, strips non-printable characters and trims
// surrounding whitespace. Hangul served decomposed (jamo sequences) is
// recomposed so that prefix comparisons behave.
func Clean(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	s = RemoveNonPrintable(s)
	return strings.TrimSpace(s)
}

// CollapseWhitespace cleans s and replaces every inner run of whitespace
// with a single space.
func CollapseWhitespace(s string) string {
	return innerWhitespace.ReplaceAllString(Clean(s), " ")
}

// JoinTrimmed cleans every fragment and concatenates them with no separator,
// fragments that are empty after cleaning are skipped.
func JoinTrimmed(fragments []string) string {
	var out strings.Builder
	for _, f := range fragments {
		out.WriteString(Clean(f))
	}
	return out.String()
}

var parenthesizedRegex = regexp.MustCompile(`\(([^()]+)\)`)

// UnwrapParenthesized returns the inner content of the first parenthesized
// group in s, ex. "미세먼지(PM10)" -> "PM10". ok is false when s has no
// non-empty group.
func UnwrapParenthesized(s string) (inner string, ok bool) {
	groups := parenthesizedRegex.FindStringSubmatch(s)
	if len(groups) < 2 {
		return "", false
	}
	inner = strings.TrimSpace(groups[1])
	if inner == "" {
		return "", false
	}
	return inner, true
}
