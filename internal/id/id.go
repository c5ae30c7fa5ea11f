package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatGroup returns a transaction group ID like "2025-01-001".
func FormatGroup(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// FormatLine returns a line ID like "2025-01-001a" (line 0='a', 1='b', etc.).
func FormatLine(group string, line int) string {
	return group + string(rune('a'+line))
}

// Parse splits a line or group ID into year, month and sequence.
func Parse(lineID string) (year, month, seq int, err error) {
	parts := strings.SplitN(Group(lineID), "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid line ID format: %q", lineID)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in line ID %q: %w", lineID, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in line ID %q", lineID)
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in line ID %q: %w", lineID, err)
	}
	return year, month, seq, nil
}

// Group strips the line suffix from a line ID.
// "2025-01-001a" -> "2025-01-001"
func Group(lineID string) string {
	i := len(lineID)
	for i > 0 && lineID[i-1] >= 'a' && lineID[i-1] <= 'z' {
		i--
	}
	return lineID[:i]
}
