// Package models defines the data model for the library conversion:
// the normalized output records (Game, Playlist, Folder) and the
// intermediate relationship rows parsed from the source export.
package models
