package util

import (
	"fmt"
	"strconv"
	"strings"
)

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// CollapseWhitespace replaces runs of whitespace (including newlines) with a
// single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AbbreviateCount renders a count in a compact human-readable form:
// 999 -> "999", 1000 -> "1K", 12345 -> "12.3K", 2500000 -> "2.5M".
func AbbreviateCount(n int) string {
	if n < 0 {
		return "-" + AbbreviateCount(-n)
	}
	if n < 1000 {
		return strconv.Itoa(n)
	}

	value := float64(n)
	suffix := "K"
	switch {
	case n >= 1_000_000_000:
		value /= 1_000_000_000
		suffix = "B"
	case n >= 1_000_000:
		value /= 1_000_000
		suffix = "M"
	default:
		value /= 1000
	}

	formatted := strconv.FormatFloat(value, 'f', 1, 64)
	formatted = strings.TrimSuffix(formatted, ".0")
	return formatted + suffix
}

// FormatCount renders a count with thousands separators: 12345 -> "12,345".
func FormatCount(n int) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var builder strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		builder.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if builder.Len() > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// FormatRatio renders a 2-decimal ratio without trailing zeros: 100.0 -> "100",
// 0.5 -> "0.5", 1.25 -> "1.25".
func FormatRatio(ratio float64) string {
	s := fmt.Sprintf("%.2f", ratio)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
