package titles

import (
	"strings"
	"unicode"
)

// Normalize strips punctuation that confuses Windows filenames and trims
// surrounding whitespace.
func Normalize(title string) string {
	cleaned := strings.ReplaceAll(title, ":", "")
	cleaned = strings.ReplaceAll(cleaned, "?", "")
	return strings.TrimSpace(cleaned)
}

// Key returns a lowercase alphanumeric-only key for exact-but-forgiving
// name comparisons (platform directories, platform ownership lookups).
func Key(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MediaKey builds the normalized key used for fuzzy filename comparison:
// separators become spaces, the Unicode right single quote becomes an
// ASCII apostrophe, then Normalize and lowercase.
func MediaKey(value string) string {
	cleaned := strings.ReplaceAll(value, "_", " ")
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	cleaned = strings.ReplaceAll(cleaned, "’", "'")
	return strings.ToLower(Normalize(cleaned))
}

// SafeFilename converts a title into a filesystem-friendly filename with
// the given extension (without the dot). Blank titles fall back to "icon".
func SafeFilename(title, suffix string) string {
	base := Normalize(title)
	if base == "" {
		base = "icon"
	}

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	safe := b.String()
	for strings.Contains(safe, "--") {
		safe = strings.ReplaceAll(safe, "--", "-")
	}
	safe = strings.Trim(safe, "-")
	if safe == "" {
		safe = "icon"
	}
	return safe + "." + suffix
}
