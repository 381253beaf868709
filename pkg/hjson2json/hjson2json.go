// Package hjson2json converts relaxed, human written object literals (single
// quotes, unquoted keys, trailing commas, comments) into strict JSON.
package hjson2json

import (
	"encoding/json"
	"fmt"

	"github.com/titanous/json5"
)

// Converter implements airkorea.Normalizer.
type Converter struct {
	// Indent is the per-level indent of the output, empty means compact.
	Indent string
}

// Convert is Converter{Indent: "  "}.Convert.
func Convert(s string) (string, error) {
	return Converter{Indent: "  "}.Convert(s)
}

func (c Converter) Convert(s string) (string, error) {
	var value any
	err := json5.Unmarshal([]byte(s), &value)
	if err != nil {
		return "", fmt.Errorf("hjson2json: decode: %w", err)
	}

	var out []byte
	if c.Indent == "" {
		out, err = json.Marshal(value)
	} else {
		out, err = json.MarshalIndent(value, "", c.Indent)
	}
	if err != nil {
		return "", fmt.Errorf("hjson2json: encode: %w", err)
	}
	return string(out), nil
}
