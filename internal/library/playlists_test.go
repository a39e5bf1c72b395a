package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/lbx/internal/shared"
)

func TestParsePlaylists(t *testing.T) {
	logger := shared.NewLogger(os.Stderr)

	t.Run("members resolved against known games", func(t *testing.T) {
		dir := t.TempDir()
		writeDescriptor(t, dir, "Favorites.xml", `<LaunchBox>
  <Playlist>
    <Name>Favorites</Name>
  </Playlist>
  <Name>Favorites</Name>
  <Id>pl-1</Id>
  <PlaylistGame><GameId>lb-1</GameId></PlaylistGame>
  <PlaylistGame><GameId>lb-missing</GameId></PlaylistGame>
</LaunchBox>`)

		playlists := ParsePlaylists(dir, map[string]string{"lb-1": "game-1"}, logger)
		if len(playlists) != 1 {
			t.Fatalf("parsed %d playlists, want 1", len(playlists))
		}
		pl := playlists[0]
		if pl.Name != "Favorites" || pl.LaunchBoxID != "pl-1" {
			t.Errorf("playlist = %+v", pl)
		}
		if pl.ID == "" {
			t.Error("playlist has no generated id")
		}
		if len(pl.GameIDs) != 1 || pl.GameIDs[0] != "game-1" {
			t.Errorf("GameIDs = %v, want [game-1]", pl.GameIDs)
		}
	})

	t.Run("name falls back to the file stem", func(t *testing.T) {
		dir := t.TempDir()
		writeDescriptor(t, dir, "Hidden Gems.xml", `<LaunchBox><Id>pl-2</Id></LaunchBox>`)

		playlists := ParsePlaylists(dir, nil, logger)
		if len(playlists) != 1 || playlists[0].Name != "Hidden Gems" {
			t.Fatalf("playlists = %+v", playlists)
		}
		if playlists[0].GameIDs == nil {
			t.Error("empty member set should stay non-nil")
		}
	})

	t.Run("playlist without an id is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeDescriptor(t, dir, "NoId.xml", `<LaunchBox><Name>No Id</Name></LaunchBox>`)

		if playlists := ParsePlaylists(dir, nil, logger); len(playlists) != 0 {
			t.Errorf("playlists = %+v, want none", playlists)
		}
	})

	t.Run("malformed playlist is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeDescriptor(t, dir, "Bad.xml", "<LaunchBox><Id>")
		writeDescriptor(t, dir, "Good.xml", `<LaunchBox><Id>pl-3</Id></LaunchBox>`)

		playlists := ParsePlaylists(dir, nil, logger)
		if len(playlists) != 1 || playlists[0].LaunchBoxID != "pl-3" {
			t.Errorf("playlists = %+v, want only pl-3", playlists)
		}
	})

	t.Run("sorted filename order", func(t *testing.T) {
		dir := t.TempDir()
		writeDescriptor(t, dir, "Zelda Picks.xml", `<LaunchBox><Id>pl-z</Id></LaunchBox>`)
		writeDescriptor(t, dir, "Arcade.xml", `<LaunchBox><Id>pl-a</Id></LaunchBox>`)

		playlists := ParsePlaylists(dir, nil, logger)
		if len(playlists) != 2 || playlists[0].LaunchBoxID != "pl-a" || playlists[1].LaunchBoxID != "pl-z" {
			t.Errorf("playlists = %+v, want pl-a then pl-z", playlists)
		}
	})

	t.Run("missing directory yields nothing", func(t *testing.T) {
		if playlists := ParsePlaylists(filepath.Join(t.TempDir(), "absent"), nil, logger); playlists != nil {
			t.Errorf("playlists = %+v, want nil", playlists)
		}
	})
}
