package library

import (
	"fmt"
	"sort"

	"github.com/desertthunder/lbx/internal/models"
	"github.com/desertthunder/lbx/internal/shared"
	"github.com/desertthunder/lbx/internal/titles"
)

// treeBuilder expands relationship edges into the output folder tree.
type treeBuilder struct {
	rel *Relationships
	// gamesByPlatformKey maps normalized platform keys to game ids.
	gamesByPlatformKey map[string][]string
	playlistsByOrigin  map[string]models.Playlist
	// visiting tracks the nodes on the current expansion path so a
	// relationship cycle fails instead of recursing forever.
	visiting map[string]bool
}

// BuildTree expands the relationship edges into a single folder rooted
// at rootCategory. The root must appear either as a declared root
// category or as a parent of subcategories; otherwise
// [shared.ErrRootCategoryNotFound] is returned and the caller skips
// the folder output.
func BuildTree(rootCategory string, rel *Relationships, gamesByPlatformKey map[string][]string, playlists []models.Playlist) (*models.Folder, error) {
	if !rel.RootCategories[rootCategory] {
		if _, ok := rel.CategoryCategories[rootCategory]; !ok {
			return nil, fmt.Errorf("%w: %q", shared.ErrRootCategoryNotFound, rootCategory)
		}
	}

	byOrigin := make(map[string]models.Playlist, len(playlists))
	for _, pl := range playlists {
		byOrigin[pl.LaunchBoxID] = pl
	}

	b := &treeBuilder{
		rel:                rel,
		gamesByPlatformKey: gamesByPlatformKey,
		playlistsByOrigin:  byOrigin,
		visiting:           make(map[string]bool),
	}

	root, err := b.categoryFolder(rootCategory)
	if err != nil {
		return nil, err
	}
	return &root, nil
}

func (b *treeBuilder) categoryFolder(name string) (models.Folder, error) {
	key := "category/" + name
	if b.visiting[key] {
		return models.Folder{}, fmt.Errorf("%w: category %q", shared.ErrCycleDetected, name)
	}
	b.visiting[key] = true
	defer delete(b.visiting, key)

	folder := models.Folder{ID: shared.GenerateID(), Name: name}

	for _, sub := range sorted(b.rel.CategoryCategories[name]) {
		child, err := b.categoryFolder(sub)
		if err != nil {
			return models.Folder{}, err
		}
		folder.Children = append(folder.Children, child)
	}
	for _, platform := range sorted(b.rel.CategoryPlatforms[name]) {
		child, err := b.platformFolder(platform)
		if err != nil {
			return models.Folder{}, err
		}
		folder.Children = append(folder.Children, child)
	}
	for _, originID := range b.rel.CategoryPlaylists[name] {
		if child, ok := b.playlistFolder(originID); ok {
			folder.Children = append(folder.Children, child)
		}
	}

	return folder, nil
}

func (b *treeBuilder) platformFolder(name string) (models.Folder, error) {
	key := "platform/" + name
	if b.visiting[key] {
		return models.Folder{}, fmt.Errorf("%w: platform %q", shared.ErrCycleDetected, name)
	}
	b.visiting[key] = true
	defer delete(b.visiting, key)

	folder := models.Folder{ID: shared.GenerateID(), Name: name}
	if ids, ok := b.gamesByPlatformKey[titles.Key(name)]; ok {
		folder.GameIDs = sorted(ids)
	}

	for _, originID := range b.rel.PlatformPlaylists[name] {
		if child, ok := b.playlistFolder(originID); ok {
			folder.Children = append(folder.Children, child)
		}
	}
	for _, sub := range sorted(b.rel.PlatformPlatforms[name]) {
		child, err := b.platformFolder(sub)
		if err != nil {
			return models.Folder{}, err
		}
		folder.Children = append(folder.Children, child)
	}

	return folder, nil
}

// playlistFolder reuses the playlist's generated id so the folder node
// and the playlist document describe the same entity.
func (b *treeBuilder) playlistFolder(originID string) (models.Folder, bool) {
	pl, ok := b.playlistsByOrigin[originID]
	if !ok {
		return models.Folder{}, false
	}
	return models.Folder{ID: pl.ID, Name: pl.Name, GameIDs: sorted(pl.GameIDs)}, true
}

func sorted(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
