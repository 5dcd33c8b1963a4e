package util

import (
	"errors"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
// ".." only counts as traversal next to a separator or standing alone; dots
// inside a name ("my..cv.pdf") are legitimate.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == ".." || strings.Contains(s, "../") || strings.Contains(s, `..\`) ||
		strings.HasSuffix(s, "/..") || strings.HasSuffix(s, `\..`) {
		return "", errors.New("invalid file name")
	}
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// NameSlug reduces a candidate name to a storage-safe fragment: every run
// of characters outside [A-Za-z0-9] collapses to a single underscore.
func NameSlug(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
