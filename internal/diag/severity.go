package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic. Lower values are more severe.
type Severity uint8

const (
	// SevError is for problems that make the output incorrect.
	SevError Severity = iota
	// SevWarning is for problems that the author should address.
	SevWarning
	SevInformation
	SevHint
)

// MoreSevereThan reports whether s is strictly more severe than other.
func (s Severity) MoreSevereThan(other Severity) bool {
	return s < other
}

// AtLeast reports whether s is as severe as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool {
	return s <= threshold
}

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevInformation:
		return "information"
	case SevHint:
		return "hint"
	}
	return "unknown"
}

// Label is the word printed by console output: compilers conventionally say
// "note" and "notice" for the two lowest levels.
func (s Severity) Label() string {
	switch s {
	case SevInformation:
		return "note"
	case SevHint:
		return "notice"
	}
	return s.String()
}

// ParseSeverity converts a configuration string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SevError, nil
	case "warning", "warn":
		return SevWarning, nil
	case "information", "info", "note":
		return SevInformation, nil
	case "hint", "notice":
		return SevHint, nil
	}
	return SevWarning, fmt.Errorf("invalid severity: %q (expected: error|warning|information|hint)", s)
}
