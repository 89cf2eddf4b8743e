package utils

import (
	"strings"
)

// CSVEscape quotes a field when it contains a comma, double quote or
// newline, doubling embedded quotes. This layout is consumed by external
// spreadsheet tooling; keep it stable.
func CSVEscape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
