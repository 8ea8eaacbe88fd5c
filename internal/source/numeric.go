package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/billflow-cli/internal/model"
)

// numericKeywords selects which columns get comma-stripped numeric
// normalization. The match is a case-insensitive substring test on the column
// name. This exact set mirrors the upstream export convention; widening it
// would silently reinterpret text columns.
var numericKeywords = []string{
	"cost", "consumption", "discount", "charge", "credit",
	"distribution", "supply", "kva", "fine",
}

func isNumericColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range numericKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// cleanNumber strips thousands-separator commas and maps the literal "nan"
// placeholder to zero.
func cleanNumber(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || strings.EqualFold(s, "nan") {
		return "0"
	}
	return s
}

// NormalizeNumericColumns converts keyword-selected columns in place to plain
// numeric strings. A column where any cell fails to parse is left entirely
// unconverted and reported as a diagnostic; a skipped column is a known source
// of subtly wrong totals downstream and must not pass silently.
func NormalizeNumericColumns(g *Grid) []model.Diagnostic {
	var diags []model.Diagnostic

	for col, name := range g.Header {
		if !isNumericColumn(name) {
			continue
		}

		cleaned := make([]string, len(g.Rows))
		ok := true
		for i, row := range g.Rows {
			if col >= len(row) {
				cleaned[i] = "0"
				continue
			}
			c := cleanNumber(row[col])
			if _, err := strconv.ParseFloat(c, 64); err != nil {
				ok = false
				break
			}
			cleaned[i] = c
		}

		if !ok {
			diags = append(diags, model.Diagnostic{
				Kind:   model.DiagNumericColumnSkipped,
				Detail: fmt.Sprintf("column %q left unconverted: non-numeric cell", name),
			})
			continue
		}

		for i, row := range g.Rows {
			if col < len(row) {
				row[col] = cleaned[i]
			}
		}
	}

	return diags
}
