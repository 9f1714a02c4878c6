package services

import (
	"strings"
)

// slugify lowercases the title and collapses every run of non-alphanumeric
// characters into a single dash. Titles that slug down to nothing fall back
// to "item" so the collision probe still has a base to work with.
func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "item"
	}
	return slug
}
