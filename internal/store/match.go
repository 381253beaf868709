package store

import (
	"airkorea/pkg/textutil"
	"strings"

	"github.com/antzucaro/matchr"
)

// minSimilarity is the lowest Jaro-Winkler score accepted as a match.
const minSimilarity = 0.7

// MatchStation finds the station most similar to query. An exact or
// substring match (ignoring case and whitespace) always wins over a fuzzy
// one.
func MatchStation(query string, stations []string) (string, bool) {
	normalized := textutil.NormalizeName(query)
	if normalized == "" {
		return "", false
	}

	for _, station := range stations {
		if textutil.NormalizeName(station) == normalized {
			return station, true
		}
	}
	for _, station := range stations {
		if strings.Contains(textutil.NormalizeName(station), normalized) {
			return station, true
		}
	}

	var mostSimilarity float64
	var mostSimilar string
	for _, station := range stations {
		similarity := matchr.JaroWinkler(normalized, textutil.NormalizeName(station), false)
		if similarity > mostSimilarity {
			mostSimilarity = similarity
			mostSimilar = station
		}
	}
	if mostSimilarity < minSimilarity {
		return "", false
	}
	return mostSimilar, true
}
