package library

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/lbx/internal/models"
	"github.com/desertthunder/lbx/internal/shared"
)

// Relationships holds the edges extracted from the relationship
// descriptor. Child lists are de-duplicated and keep encounter order.
// Playlist children are origin ids.
type Relationships struct {
	CategoryCategories map[string][]string
	CategoryPlatforms  map[string][]string
	CategoryPlaylists  map[string][]string
	PlatformPlatforms  map[string][]string
	PlatformPlaylists  map[string][]string
	RootCategories     map[string]bool
}

func newRelationships() *Relationships {
	return &Relationships{
		CategoryCategories: make(map[string][]string),
		CategoryPlatforms:  make(map[string][]string),
		CategoryPlaylists:  make(map[string][]string),
		PlatformPlatforms:  make(map[string][]string),
		PlatformPlaylists:  make(map[string][]string),
		RootCategories:     make(map[string]bool),
	}
}

type parentsDoc struct {
	Rows []struct {
		PlatformName               string `xml:"PlatformName"`
		PlaylistID                 string `xml:"PlaylistId"`
		PlatformCategoryName       string `xml:"PlatformCategoryName"`
		ParentPlatformName         string `xml:"ParentPlatformName"`
		ParentPlatformCategoryName string `xml:"ParentPlatformCategoryName"`
	} `xml:"Parent"`
}

// ParseParents reads the relationship descriptor into rows. A missing
// file is reported as [shared.ErrDescriptorNotFound] so callers can
// degrade to a game-only export.
func ParseParents(path string) ([]models.ParentRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDescriptorNotFound, err)
	}

	var doc parentsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrParseFailed, path, err)
	}

	rows := make([]models.ParentRow, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		rows = append(rows, models.ParentRow{
			Platform:       strings.TrimSpace(row.PlatformName),
			PlaylistID:     strings.TrimSpace(row.PlaylistID),
			Category:       strings.TrimSpace(row.PlatformCategoryName),
			ParentPlatform: strings.TrimSpace(row.ParentPlatformName),
			ParentCategory: strings.TrimSpace(row.ParentPlatformCategoryName),
		})
	}
	return rows, nil
}

// Classify sorts rows into the edge buckets. Each rule applies
// independently, so one row may contribute several edges. Playlist
// edges referring to an id outside knownPlaylists are dropped.
func Classify(rows []models.ParentRow, knownPlaylists map[string]bool) *Relationships {
	rel := newRelationships()

	for _, row := range rows {
		if row.Category != "" && row.ParentCategory == "" && row.Platform == "" && row.PlaylistID == "" {
			rel.RootCategories[row.Category] = true
		}
		if row.Category != "" && row.ParentCategory != "" {
			addEdge(rel.CategoryCategories, row.ParentCategory, row.Category)
		}
		if row.Platform != "" && row.ParentCategory != "" {
			addEdge(rel.CategoryPlatforms, row.ParentCategory, row.Platform)
		}
		if row.PlaylistID != "" && row.ParentCategory != "" && knownPlaylists[row.PlaylistID] {
			addEdge(rel.CategoryPlaylists, row.ParentCategory, row.PlaylistID)
		}
		if row.PlaylistID != "" && row.ParentPlatform != "" && knownPlaylists[row.PlaylistID] {
			addEdge(rel.PlatformPlaylists, row.ParentPlatform, row.PlaylistID)
		}
		if row.Platform != "" && row.ParentPlatform != "" {
			addEdge(rel.PlatformPlatforms, row.ParentPlatform, row.Platform)
		}
	}

	return rel
}

func addEdge(edges map[string][]string, parent, child string) {
	for _, existing := range edges[parent] {
		if existing == child {
			return
		}
	}
	edges[parent] = append(edges[parent], child)
}
