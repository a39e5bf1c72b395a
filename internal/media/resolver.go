package media

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lbx/internal/fuzzy"
	"github.com/desertthunder/lbx/internal/imaging"
	"github.com/desertthunder/lbx/internal/models"
	"github.com/desertthunder/lbx/internal/shared"
	"github.com/desertthunder/lbx/internal/titles"
)

// Subfolder priority lists searched for single image assets. Earlier
// entries win.
var (
	coverFolders = []string{
		"Box - Front",
		"Fanart - Box - Front",
		"Box - Front - Reconstructed",
		"Fanart - Box - Front - Reconstructed",
		"Box - 3D",
		"Box - Full",
	}
	iconFolders       = []string{"Icon", "Clear Logo"}
	backgroundFolders = []string{
		"Fanart - Background",
		"Background",
		"Banner",
		"Steam Banner",
		"Amazon Background",
		"Epic Games Background",
		"Origin Background",
		"Uplay Background",
	}
)

const screenshotFolder = "Screenshot - Gameplay"

var (
	screenshotExtensions = []string{"png", "jpg", "jpeg", "webp"}
	videoExtensions      = []string{"mp4", "avi", "mkv", "webm"}
	manualExtensions     = []string{"pdf", "txt", "cbz", "cbr"}
)

// Cache stores previously resolved asset paths keyed by
// (platform, title, asset). Implementations may fail transiently;
// the resolver treats every cache error as a miss.
type Cache interface {
	Get(platform, title, asset string) (string, error)
	Put(platform, title, asset, path string) error
}

// Resolver locates media assets for games. A nil cache disables
// persistent path caching.
type Resolver struct {
	config     *shared.Config
	normalizer *imaging.Normalizer
	cache      Cache
	logger     *log.Logger
}

// NewResolver wires a Resolver from its dependencies.
func NewResolver(config *shared.Config, normalizer *imaging.Normalizer, cache Cache, logger *log.Logger) *Resolver {
	return &Resolver{config: config, normalizer: normalizer, cache: cache, logger: logger}
}

// Resolve gathers every asset category for one game. Each category is
// searched at most once; absent assets stay empty and never fail the
// caller.
func (r *Resolver) Resolve(title, platform string) models.MediaSet {
	var set models.MediaSet
	bases := r.imageBases(platform)

	cover := r.resolveAsset(platform, title, "cover", func() string {
		return r.firstFrom(bases, title, coverFolders)
	})
	if cover != "" {
		if normalized := r.normalizer.NormalizeCover(title, cover, 0); normalized != "" {
			set.Cover = normalized
		} else {
			set.Cover = cover
		}
	}

	set.Icon = r.resolveAsset(platform, title, "icon", func() string {
		return r.firstFrom(bases, title, iconFolders)
	})
	if set.Icon == "" && set.Cover != "" {
		set.Icon = r.normalizer.GenerateIcon(title, set.Cover)
	}

	set.Background = r.resolveAsset(platform, title, "background", func() string {
		return r.firstFrom(bases, title, backgroundFolders)
	})

	screenshotDirs := make([]string, 0, len(bases)+1)
	for _, base := range bases {
		screenshotDirs = append(screenshotDirs, filepath.Join(base, screenshotFolder))
	}
	screenshotDirs = append(screenshotDirs, filepath.Join(r.config.ImagesDir(), screenshotFolder))
	set.Screenshots = gather(title, screenshotDirs, screenshotExtensions)

	set.Videos = gather(title, r.assetRootDirs(r.config.VideosDir(), platform), videoExtensions)

	set.Manual = r.resolveAsset(platform, title, "manual", func() string {
		manuals := gather(title, r.assetRootDirs(r.config.ManualsDir(), platform), manualExtensions)
		if len(manuals) == 0 {
			return ""
		}
		return manuals[0]
	})

	return set
}

// resolveAsset consults the cache before running search and records a
// hit afterwards. Cached paths that no longer exist on disk are
// treated as misses.
func (r *Resolver) resolveAsset(platform, title, asset string, search func() string) string {
	if r.cache != nil {
		cached, err := r.cache.Get(platform, title, asset)
		switch {
		case err != nil:
			r.logger.Warn("media cache read failed", "asset", asset, "title", title, "error", err)
		case cached != "":
			if _, statErr := os.Stat(cached); statErr == nil {
				return cached
			}
		}
	}

	path := search()
	if path != "" && r.cache != nil {
		if err := r.cache.Put(platform, title, asset, path); err != nil {
			r.logger.Warn("media cache write failed", "asset", asset, "title", title, "error", err)
		}
	}
	return path
}

// imageBases returns the platform-specific directories under the image
// root, probing the plain root first and the two grouping folders
// LaunchBox uses after that.
func (r *Resolver) imageBases(platform string) []string {
	images := r.config.ImagesDir()

	var bases []string
	if dir := findPlatformDir(images, platform); dir != "" {
		bases = append(bases, dir)
	}
	for _, extra := range []string{
		filepath.Join(images, "Platforms"),
		filepath.Join(images, "Platform Categories"),
	} {
		if dir := findPlatformDir(extra, platform); dir != "" && !slices.Contains(bases, dir) {
			bases = append(bases, dir)
		}
	}
	return bases
}

// assetRootDirs returns the search directories for a non-image asset
// root: the platform subdirectory when one exists, then the root
// itself.
func (r *Resolver) assetRootDirs(root, platform string) []string {
	var dirs []string
	if dir := findPlatformDir(root, platform); dir != "" {
		dirs = append(dirs, dir)
	}
	return append(dirs, root)
}

// firstFrom walks the subfolder priority list and returns the first
// image found for the title, falling back to the shared (unscoped)
// subfolder under the image root after the platform-scoped ones.
func (r *Resolver) firstFrom(bases []string, title string, subfolders []string) string {
	for _, sub := range subfolders {
		for _, base := range bases {
			if path := r.findFirstImage(filepath.Join(base, sub), title); path != "" {
				return path
			}
		}
		if path := r.findFirstImage(filepath.Join(r.config.ImagesDir(), sub), title); path != "" {
			return path
		}
	}
	return ""
}

// findFirstImage returns the first file under folder whose name starts
// with one of the title's candidates, preferring earlier extensions
// and earlier candidates. When no direct match exists a single fuzzy
// pass runs over the folder.
func (r *Resolver) findFirstImage(folder, title string) string {
	if _, err := os.Stat(folder); err != nil {
		return ""
	}
	files := listFiles(folder)
	for _, ext := range r.config.Media.ImageExtensions {
		suffix := "." + ext
		for _, candidate := range titles.Candidates(title) {
			for _, file := range files {
				name := filepath.Base(file)
				if strings.HasPrefix(name, candidate) && strings.HasSuffix(name, suffix) {
					return file
				}
			}
		}
	}
	return fuzzy.FindBestMatch(folder, title, r.config.Media.ImageExtensions, fuzzy.DefaultMaxDistance)
}

// gather collects every matching file across folders, de-duplicated by
// path, in discovery order.
func gather(title string, folders, extensions []string) []string {
	candidates := titles.Candidates(title)

	var matches []string
	seen := make(map[string]struct{})
	for _, folder := range folders {
		for _, file := range listFiles(folder) {
			if !matchesAny(filepath.Base(file), candidates, extensions) {
				continue
			}
			if _, ok := seen[file]; ok {
				continue
			}
			seen[file] = struct{}{}
			matches = append(matches, file)
		}
	}
	return matches
}

func matchesAny(name string, candidates, extensions []string) bool {
	for _, ext := range extensions {
		if !strings.HasSuffix(name, "."+ext) {
			continue
		}
		for _, candidate := range candidates {
			if strings.HasPrefix(name, candidate) {
				return true
			}
		}
	}
	return false
}

// findPlatformDir locates the directory for a platform under root. The
// exact name is tried first, then a normalized-key comparison against
// the children, over root itself and the two LaunchBox grouping
// folders.
func findPlatformDir(root, platform string) string {
	if platform == "" {
		return ""
	}
	if _, err := os.Stat(root); err != nil {
		return ""
	}
	for _, base := range []string{root, filepath.Join(root, "Platforms"), filepath.Join(root, "Platform Categories")} {
		if _, err := os.Stat(base); err != nil {
			continue
		}
		if dir := matchPlatform(base, platform); dir != "" {
			return dir
		}
	}
	return ""
}

func matchPlatform(base, platform string) string {
	direct := filepath.Join(base, platform)
	if _, err := os.Stat(direct); err == nil {
		return direct
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return ""
	}
	target := titles.Key(platform)
	for _, entry := range entries {
		if entry.IsDir() && titles.Key(entry.Name()) == target {
			return filepath.Join(base, entry.Name())
		}
	}
	return ""
}

// listFiles returns every regular file under folder recursively, in
// lexical walk order. A missing folder yields nothing.
func listFiles(folder string) []string {
	var files []string
	_ = filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}
