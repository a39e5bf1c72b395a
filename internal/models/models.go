package models

import "fmt"

// Rom is a single ROM entry attached to a game.
type Rom struct {
	Path string
}

// PlayAction describes how a game is launched.
type PlayAction struct {
	Path       string
	Arguments  string
	WorkingDir string
}

// MediaSet holds the resolved media paths for one game. Each field is
// resolved at most once; empty values mean the asset was not found.
type MediaSet struct {
	Cover       string
	Icon        string
	Background  string
	Screenshots []string
	Videos      []string
	Manual      string
}

// Game is a normalized game record ready for serialization.
//
// Required fields are ID, Name and Platform; everything else is optional
// and omitted from output when blank.
type Game struct {
	ID              string
	Name            string
	SortingName     string
	Platform        string
	ReleaseYear     string
	Developers      []string
	Publishers      []string
	Genres          []string
	Description     string
	Roms            []Rom
	PlayAction      *PlayAction
	Image           string
	BackgroundImage string
	Icon            string
	Screenshots     []string
	Videos          []string
	Manual          string
	LaunchBoxID     string
}

// Validate checks the invariants established at the parse boundary.
func (g *Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game %q has no id", g.Name)
	}
	if g.Name == "" {
		return fmt.Errorf("game %s has no name", g.ID)
	}
	if g.Platform == "" {
		return fmt.Errorf("game %q has no platform", g.Name)
	}
	return nil
}

// Playlist is a normalized playlist record. GameIDs holds the generated
// IDs of members whose origin identifier was seen during game parsing;
// it may be empty but is never nil after parsing.
type Playlist struct {
	ID          string
	Name        string
	Description string
	GameIDs     []string
	LaunchBoxID string
}

// Validate checks the invariants established at the parse boundary.
func (p *Playlist) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("playlist %q has no id", p.Name)
	}
	if p.LaunchBoxID == "" {
		return fmt.Errorf("playlist %q has no origin id", p.Name)
	}
	return nil
}

// Folder is one node of the output folder tree. GameIDs is set only for
// platform nodes that directly own games and for playlist nodes; Children
// is set only when the node has child folders. A Folder with neither is a
// valid leaf.
type Folder struct {
	ID       string
	Name     string
	GameIDs  []string
	Children []Folder
}

// ParentRow is one row of the relationship descriptor. Every field is
// optional; which fields are populated together decides the edge kinds
// the row contributes.
type ParentRow struct {
	Platform       string // child platform name
	PlaylistID     string // child playlist origin id
	Category       string // child category name
	ParentPlatform string // parent platform name
	ParentCategory string // parent category name
}
