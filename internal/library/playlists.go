package library

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lbx/internal/models"
	"github.com/desertthunder/lbx/internal/shared"
)

type playlistDoc struct {
	Name    string `xml:"Name"`
	MixedID string `xml:"Id"`
	UpperID string `xml:"ID"`
	Members []struct {
		GameID string `xml:"GameId"`
	} `xml:"PlaylistGame"`
}

// ParsePlaylists parses every playlist descriptor under dir in sorted
// filename order. Members are resolved against gamesByOrigin; unknown
// members are dropped silently. Descriptors without an origin id are
// skipped. A missing directory yields no playlists.
func ParsePlaylists(dir string, gamesByOrigin map[string]string, logger *log.Logger) []models.Playlist {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("playlist directory unavailable", "dir", dir, "error", err)
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var playlists []models.Playlist
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable playlist", "file", name, "error", err)
			continue
		}

		var doc playlistDoc
		if err := xml.Unmarshal(data, &doc); err != nil {
			logger.Warn("skipping malformed playlist", "file", name, "error", err)
			continue
		}

		originID := strings.TrimSpace(doc.MixedID)
		if originID == "" {
			originID = strings.TrimSpace(doc.UpperID)
		}
		if originID == "" {
			logger.Warn("skipping playlist without an id", "file", name)
			continue
		}

		playlistName := strings.TrimSpace(doc.Name)
		if playlistName == "" {
			playlistName = strings.TrimSuffix(name, filepath.Ext(name))
		}

		gameIDs := []string{}
		for _, member := range doc.Members {
			if id, ok := gamesByOrigin[strings.TrimSpace(member.GameID)]; ok {
				gameIDs = append(gameIDs, id)
			}
		}

		playlists = append(playlists, models.Playlist{
			ID:          shared.GenerateID(),
			Name:        playlistName,
			GameIDs:     gameIDs,
			LaunchBoxID: originID,
		})
	}

	return playlists
}
