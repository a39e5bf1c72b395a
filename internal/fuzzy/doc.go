// Package fuzzy implements the bounded Damerau-Levenshtein distance and
// the best-match search used to pair game titles with loosely named
// media files.
package fuzzy
