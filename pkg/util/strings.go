package util

import (
    "fmt"
    "strconv"
    "strings"
)

// ParsePositiveInt parses a base-10 integer that must be > 0.
// Surrounding whitespace is ignored; anything else is an error.
func ParsePositiveInt(s string) (int, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return 0, fmt.Errorf("empty value")
    }
    v, err := strconv.Atoi(s)
    if err != nil {
        return 0, fmt.Errorf("not an integer: %q", s)
    }
    if v <= 0 {
        return 0, fmt.Errorf("must be positive, got %d", v)
    }
    return v, nil
}

// SplitCSV splits a comma separated list, trimming blanks and dropping empty items.
func SplitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
