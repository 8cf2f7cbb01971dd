package domain

import "strings"

// Source identifies which resolution path produced (or should produce) a
// profile record.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

func (s Source) String() string {
	return string(s)
}

// ProfileQuery is the single inbound request shape. Handle is expected to be
// normalized via NormalizeHandle before use.
type ProfileQuery struct {
	Handle     string `json:"handle"`
	Preference Source `json:"source_preference"`
}

// NormalizeHandle strips any leading "@" characters, trims surrounding
// whitespace and lowercases the handle. The operation is idempotent.
func NormalizeHandle(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimLeft(trimmed, "@")
	return strings.ToLower(strings.TrimSpace(trimmed))
}
