package library

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/lbx/internal/models"
	"github.com/desertthunder/lbx/internal/shared"
)

// MediaResolver locates the media assets for one game.
type MediaResolver interface {
	Resolve(title, platform string) models.MediaSet
}

// PlatformResult holds everything parsed out of one platform descriptor.
type PlatformResult struct {
	Platform string
	Games    []models.Game
	// ByOrigin maps LaunchBox game ids to generated game ids, for
	// playlist member resolution.
	ByOrigin map[string]string
}

type launchboxGame struct {
	Title           string `xml:"Title"`
	SortTitle       string `xml:"SortTitle"`
	ReleaseDate     string `xml:"ReleaseDate"`
	Developer       string `xml:"Developer"`
	Publisher       string `xml:"Publisher"`
	Genre           string `xml:"Genre"`
	Notes           string `xml:"Notes"`
	RomPath         string `xml:"RomPath"`
	ApplicationPath string `xml:"ApplicationPath"`
	CommandLine     string `xml:"CommandLine"`
	UpperID         string `xml:"ID"`
	MixedID         string `xml:"Id"`
}

type platformDoc struct {
	Games []launchboxGame `xml:"Game"`
}

// ParsePlatformFile parses one platform descriptor. The platform name is
// the file stem. onGame, when non-nil, runs once per parsed game.
func ParsePlatformFile(path string, resolver MediaResolver, onGame func()) (*PlatformResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseFailed, err)
	}

	var doc platformDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrParseFailed, filepath.Base(path), err)
	}

	platform := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result := &PlatformResult{
		Platform: platform,
		Games:    make([]models.Game, 0, len(doc.Games)),
		ByOrigin: make(map[string]string),
	}

	for _, node := range doc.Games {
		game := newGame(node, platform, resolver)
		if game.LaunchBoxID != "" {
			result.ByOrigin[game.LaunchBoxID] = game.ID
		}
		result.Games = append(result.Games, game)
		if onGame != nil {
			onGame()
		}
	}

	return result, nil
}

// newGame maps one descriptor node onto a Game, resolving media as it
// goes. Blank descriptor fields stay zero so the formatter can omit
// them.
func newGame(node launchboxGame, platform string, resolver MediaResolver) models.Game {
	title := strings.TrimSpace(node.Title)
	if title == "" {
		title = "Unknown Game"
	}
	sortTitle := strings.TrimSpace(node.SortTitle)
	if sortTitle == "" {
		sortTitle = title
	}

	game := models.Game{
		ID:          shared.GenerateID(),
		Name:        title,
		SortingName: sortTitle,
		Platform:    platform,
		ReleaseYear: yearOf(node.ReleaseDate),
		Description: strings.TrimSpace(node.Notes),
		LaunchBoxID: originID(node),
	}

	if dev := strings.TrimSpace(node.Developer); dev != "" {
		game.Developers = []string{dev}
	}
	if pub := strings.TrimSpace(node.Publisher); pub != "" {
		game.Publishers = []string{pub}
	}
	game.Genres = splitGenres(node.Genre)

	if rom := strings.TrimSpace(node.RomPath); rom != "" {
		game.Roms = []models.Rom{{Path: rom}}
	}
	if exe := strings.TrimSpace(node.ApplicationPath); exe != "" {
		game.PlayAction = &models.PlayAction{
			Path:       exe,
			Arguments:  strings.TrimSpace(node.CommandLine),
			WorkingDir: filepath.Dir(exe),
		}
	}

	media := resolver.Resolve(title, platform)
	game.Image = media.Cover
	game.Icon = media.Icon
	game.BackgroundImage = media.Background
	game.Screenshots = media.Screenshots
	game.Videos = media.Videos
	game.Manual = media.Manual

	return game
}

func originID(node launchboxGame) string {
	if id := strings.TrimSpace(node.UpperID); id != "" {
		return id
	}
	return strings.TrimSpace(node.MixedID)
}

// yearOf keeps the leading year of a descriptor release date, which is
// either a bare year or an ISO timestamp.
func yearOf(releaseDate string) string {
	date := strings.TrimSpace(releaseDate)
	if len(date) > 4 {
		return date[:4]
	}
	return date
}

func splitGenres(raw string) []string {
	var genres []string
	for _, part := range strings.Split(raw, ";") {
		if g := strings.TrimSpace(part); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
