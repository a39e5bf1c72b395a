// Package imaging produces the derived media assets: covers normalized
// to a canonical aspect ratio and square icons thumbnailed from covers.
// Both operations are idempotent and skip work when the output is newer
// than its source.
package imaging
