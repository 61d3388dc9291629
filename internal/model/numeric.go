package model

import (
	"strconv"
	"strings"
)

// ParseNumeric parses a ratio/percentage field as disclosed in filings.
// Thousands separators are stripped; a trailing percent sign divides the
// value by 100 ("17.78%" -> 0.1778, "0.178" -> 0.178). Returns false for
// blank or unparsable input so malformed values can be excluded from
// statistics instead of aborting them.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if percent {
		v /= 100
	}
	return v, true
}

// ParseNumericPtr is ParseNumeric returning nil for missing values,
// matching the Report field representation.
func ParseNumericPtr(s string) *float64 {
	v, ok := ParseNumeric(s)
	if !ok {
		return nil
	}
	return &v
}

// FormatNumeric renders a numeric field pointer for tabular output.
func FormatNumeric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
