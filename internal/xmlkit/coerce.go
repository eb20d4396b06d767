package xmlkit

import (
	"strconv"
	"strings"
)

// Coerce applies the shared three-tier scalar fallback: trim
// whitespace, try integer, try float, else keep the trimmed text.
// Unparsable values are not an error; the string fallback is the only
// failure mode. Every converter leaf goes through this so the same
// literal coerces identically everywhere (" 61 " is always int 61).
func Coerce(value string) any {
	s := strings.TrimSpace(value)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// CoerceText trims whitespace without numeric interpretation, for
// fields that are text by contract (dates, labels).
func CoerceText(value string) string {
	return strings.TrimSpace(value)
}
