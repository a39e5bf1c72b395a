// package formatter serializes the export models into the YAML shape
// the importer on the other side expects: keys in declaration order and
// every string double-quoted.
package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/lbx/internal/models"
)

// WriteGames writes the game list document to path.
func WriteGames(path string, games []models.Game) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range games {
		seq.Content = append(seq.Content, gameNode(&games[i]))
	}
	return writeDocument(path, seq)
}

// WritePlaylists writes the playlist document to path.
func WritePlaylists(path string, playlists []models.Playlist) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range playlists {
		seq.Content = append(seq.Content, playlistNode(&playlists[i]))
	}
	return writeDocument(path, seq)
}

// WriteFolders writes the folder tree document to path. The document is
// a sequence holding the single root folder.
func WriteFolders(path string, root models.Folder) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{folderNode(root)}}
	return writeDocument(path, seq)
}

// gameNode emits a game mapping. Optional fields that are blank are
// left out entirely rather than serialized as empty values.
func gameNode(g *models.Game) *yaml.Node {
	m := mapping()
	addString(m, "Id", g.ID)
	addString(m, "Name", g.Name)
	addString(m, "SortingName", g.SortingName)
	addString(m, "Platform", g.Platform)
	addString(m, "ReleaseYear", g.ReleaseYear)
	addStringList(m, "Developers", g.Developers)
	addStringList(m, "Publishers", g.Publishers)
	addStringList(m, "Genres", g.Genres)
	addString(m, "Description", g.Description)

	if len(g.Roms) > 0 {
		roms := &yaml.Node{Kind: yaml.SequenceNode}
		for _, rom := range g.Roms {
			entry := mapping()
			add(entry, "Path", scalar(rom.Path))
			roms.Content = append(roms.Content, entry)
		}
		add(m, "Roms", roms)
	}
	if g.PlayAction != nil {
		action := mapping()
		add(action, "Path", scalar(g.PlayAction.Path))
		add(action, "Arguments", scalar(g.PlayAction.Arguments))
		add(action, "WorkingDir", scalar(g.PlayAction.WorkingDir))
		add(m, "PlayAction", action)
	}

	addString(m, "Image", g.Image)
	addString(m, "BackgroundImage", g.BackgroundImage)
	addString(m, "Icon", g.Icon)
	addStringList(m, "Screenshots", g.Screenshots)
	addStringList(m, "Videos", g.Videos)
	addString(m, "Manual", g.Manual)
	addString(m, "LaunchBoxId", g.LaunchBoxID)
	return m
}

// playlistNode emits a playlist mapping. An absent description is
// serialized as an explicit null and an empty member list stays an
// empty sequence, keeping every key present.
func playlistNode(p *models.Playlist) *yaml.Node {
	m := mapping()
	add(m, "Id", scalar(p.ID))
	add(m, "Name", scalar(p.Name))
	if p.Description == "" {
		add(m, "Description", nullScalar())
	} else {
		add(m, "Description", scalar(p.Description))
	}
	members := &yaml.Node{Kind: yaml.SequenceNode, Style: 0}
	for _, id := range p.GameIDs {
		members.Content = append(members.Content, scalar(id))
	}
	if len(p.GameIDs) == 0 {
		members.Style = yaml.FlowStyle
	}
	add(m, "GameIds", members)
	add(m, "LaunchBoxId", scalar(p.LaunchBoxID))
	return m
}

// folderNode emits a folder mapping. A nil GameIDs slice marks a folder
// that never holds games directly (categories) and the key is left out;
// a non-nil slice is always emitted, as an empty flow sequence when a
// playlist has no resolvable members.
func folderNode(f models.Folder) *yaml.Node {
	m := mapping()
	add(m, "Id", scalar(f.ID))
	add(m, "Name", scalar(f.Name))
	if f.GameIDs != nil {
		members := &yaml.Node{Kind: yaml.SequenceNode}
		for _, id := range f.GameIDs {
			members.Content = append(members.Content, scalar(id))
		}
		if len(f.GameIDs) == 0 {
			members.Style = yaml.FlowStyle
		}
		add(m, "GameIds", members)
	}
	if len(f.Children) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, child := range f.Children {
			children.Content = append(children.Content, folderNode(child))
		}
		add(m, "Children", children)
	}
	return m
}

func writeDocument(path string, root *yaml.Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func add(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}

func addString(m *yaml.Node, key, value string) {
	if value != "" {
		add(m, key, scalar(value))
	}
}

func addStringList(m *yaml.Node, key string, values []string) {
	if len(values) == 0 {
		return
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, value := range values {
		seq.Content = append(seq.Content, scalar(value))
	}
	add(m, key, seq)
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
		Style: yaml.DoubleQuotedStyle,
	}
}

func nullScalar() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
