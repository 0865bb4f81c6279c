package validators

import (
	"strings"
	"unicode/utf8"
)

// Column sizes for free-text identifiers.
const (
	NationalIDMaxLen = 14
	HealthCardMaxLen = 30
)

// FitsColumn reports whether the trimmed s fits a varchar(size) column.
// Postgres counts characters, not bytes.
func FitsColumn(s string, size int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= size
}
