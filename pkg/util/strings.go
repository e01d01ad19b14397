package util

import "strings"

// NormalizeColumn lower-cases and trims a raw header cell, stripping any UTF-8
// BOM or zero-width characters spreadsheets like to prepend.
func NormalizeColumn(col string) string {
	col = strings.TrimSpace(col)
	col = strings.TrimPrefix(col, "\uFEFF")
	col = strings.TrimLeft(col, "\u200B\u200C\u200D\u2060\uFEFF")
	return strings.ToLower(strings.TrimSpace(col))
}
