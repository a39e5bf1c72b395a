package fuzzy

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/desertthunder/lbx/internal/titles"
)

// DefaultMaxDistance bounds how far a filename may drift from the title
// before it stops counting as a match.
const DefaultMaxDistance = 2

// FindBestMatch searches folder recursively for the file whose stem is
// closest to the title under the bounded distance. Ties keep the first
// file encountered in enumeration order and an exact match returns
// immediately. Returns "" when nothing lands within maxDistance.
func FindBestMatch(folder, title string, extensions []string, maxDistance int) string {
	target := titles.MediaKey(title)

	bestPath := ""
	bestDistance := maxDistance + 1

	for _, ext := range extensions {
		suffix := "." + strings.ToLower(ext)

		_ = filepath.WalkDir(folder, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil // unreadable entries are simply not matches
			}
			name := entry.Name()
			if !strings.HasSuffix(strings.ToLower(name), suffix) {
				return nil
			}

			stem := strings.TrimSuffix(name, name[len(name)-len(suffix):])
			distance := Distance(target, titles.MediaKey(stem), maxDistance)
			if distance >= bestDistance {
				return nil
			}
			bestDistance = distance
			bestPath = path
			if distance == 0 {
				return fs.SkipAll
			}
			return nil
		})
		if bestDistance == 0 {
			break
		}
	}

	if bestDistance <= maxDistance {
		return bestPath
	}
	return ""
}
