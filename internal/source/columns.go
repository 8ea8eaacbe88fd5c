// Package source reads utility billing exports (CSV/XLSX) into typed billing rows.
package source

import (
	"strconv"
	"strings"
)

// normalizeCol strips parentheses and lowercases for cross-format column matching.
// "Total discount peak (ILS)" → "total discount peak ils"
func normalizeCol(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return s
}

// mapColumnsNormalized builds a normalized column name → index map.
func mapColumnsNormalized(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// parseFloat64Or parses a string as a float64, returning def if parsing fails.
func parseFloat64Or(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// trimIDField strips surrounding whitespace and the apostrophes/quotes the
// export wraps around identifier cells to keep spreadsheets from eating
// leading zeros.
func trimIDField(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}
