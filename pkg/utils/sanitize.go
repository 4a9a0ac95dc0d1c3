package utils

import "strings"

const DefaultName = "Wanderer"

// SanitizeName keeps letters, digits, spaces, underscores and hyphens.
// Anything that sanitizes down to nothing becomes the default wanderer.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return DefaultName
	}
	return out
}
