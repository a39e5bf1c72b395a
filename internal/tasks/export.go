package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lbx/internal/formatter"
	"github.com/desertthunder/lbx/internal/library"
	"github.com/desertthunder/lbx/internal/models"
	"github.com/desertthunder/lbx/internal/shared"
	"github.com/desertthunder/lbx/internal/titles"
)

// ExportEngine runs the full export pipeline: platform descriptors in
// parallel, then playlists, then the folder tree, then the output
// documents.
type ExportEngine struct {
	config   *shared.Config
	resolver library.MediaResolver
	logger   *log.Logger
}

// NewExportEngine creates an ExportEngine from its dependencies.
func NewExportEngine(config *shared.Config, resolver library.MediaResolver, logger *log.Logger) *ExportEngine {
	return &ExportEngine{config: config, resolver: resolver, logger: logger}
}

// ExportResult contains everything produced by one export run.
type ExportResult struct {
	Games          []models.Game
	Playlists      []models.Playlist
	Root           *models.Folder // nil when the folder tree was skipped
	Platforms      int
	FoldersWritten bool
}

// platformJob carries one descriptor through the worker pool.
type platformJob struct {
	path   string
	result *library.PlatformResult
	err    error
}

// Run executes the export. Platform descriptors are parsed by a bounded
// worker pool; per-game progress flows through an internal channel
// drained by a single aggregator goroutine, so no counter is shared
// between workers. Results merge in sorted descriptor order regardless
// of completion order.
func (e *ExportEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*ExportResult, error) {
	files, err := e.platformFiles()
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, scanUpdate(len(files)))

	parsed, err := e.parsePlatforms(ctx, progress, files)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Platforms: len(files)}
	gamesByOrigin := make(map[string]string)
	gamesByPlatformKey := make(map[string][]string)

	for _, file := range files {
		res := parsed[file]
		result.Games = append(result.Games, res.Games...)
		for origin, id := range res.ByOrigin {
			gamesByOrigin[origin] = id
		}
		key := titles.Key(res.Platform)
		for _, game := range res.Games {
			gamesByPlatformKey[key] = append(gamesByPlatformKey[key], game.ID)
		}
	}

	result.Playlists = library.ParsePlaylists(e.config.PlaylistsDir(), gamesByOrigin, e.logger)
	e.sendProgress(progress, playlistsUpdate(len(result.Playlists)))

	root, err := e.buildFolders(progress, result.Playlists, gamesByPlatformKey)
	if err != nil {
		return nil, err
	}
	result.Root = root

	if err := e.writeOutputs(progress, result); err != nil {
		return nil, err
	}

	e.sendProgress(progress, doneUpdate(len(result.Games), len(result.Playlists)))
	return result, nil
}

// platformFiles enumerates the platform descriptors in sorted order. A
// missing directory or an empty set is fatal for the whole run.
func (e *ExportEngine) platformFiles() ([]string, error) {
	dir := e.config.PlatformsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: platforms dir %s: %v", shared.ErrDescriptorNotFound, dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no platform descriptors in %s", shared.ErrNoPlatforms, dir)
	}
	return files, nil
}

// parsePlatforms fans the descriptors out over the worker pool and
// collects every result. The first failing descriptor, in sorted
// order, aborts the run.
func (e *ExportEngine) parsePlatforms(ctx context.Context, progress chan<- ProgressUpdate, files []string) (map[string]*library.PlatformResult, error) {
	workers := e.workerCount(len(files))
	jobs := make(chan string, len(files))
	results := make(chan platformJob, len(files))
	ticks := make(chan int, 256)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go e.parseWorker(ctx, &wg, jobs, results, ticks)
	}

	go func() {
		for _, file := range files {
			jobs <- file
		}
		close(jobs)
	}()

	aggregatorDone := make(chan struct{})
	go func() {
		count := 0
		for n := range ticks {
			count += n
			e.sendProgress(progress, gameParsedUpdate(count))
		}
		close(aggregatorDone)
	}()

	go func() {
		wg.Wait()
		close(ticks)
		close(results)
	}()

	parsed := make(map[string]*library.PlatformResult, len(files))
	errsByPath := make(map[string]error)
	completed := 0
	for job := range results {
		completed++
		if job.err != nil {
			errsByPath[job.path] = job.err
			continue
		}
		parsed[job.path] = job.result
		e.sendProgress(progress, platformParsedUpdate(completed, len(files), job.result.Platform, len(job.result.Games)))
	}
	<-aggregatorDone

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := errsByPath[file]; err != nil {
			return nil, fmt.Errorf("platform descriptor %s: %w", filepath.Base(file), err)
		}
	}
	return parsed, nil
}

// parseWorker drains the jobs channel, reporting each parsed game on
// the ticks channel.
func (e *ExportEngine) parseWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan string, results chan<- platformJob, ticks chan<- int) {
	defer wg.Done()

	for path := range jobs {
		select {
		case <-ctx.Done():
			results <- platformJob{path: path, err: ctx.Err()}
			continue
		default:
		}

		res, err := library.ParsePlatformFile(path, e.resolver, func() { ticks <- 1 })
		results <- platformJob{path: path, result: res, err: err}
	}
}

// workerCount bounds the pool by descriptor count, CPU count and the
// configured override.
func (e *ExportEngine) workerCount(jobs int) int {
	workers := jobs
	if cpus := runtime.NumCPU(); workers > cpus {
		workers = cpus
	}
	if override := e.config.Export.Workers; override > 0 && workers > override {
		workers = override
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// buildFolders resolves relationships into the folder tree. A missing
// relationship descriptor or an unknown root category degrades to a
// game-only export; a relationship cycle fails the run.
func (e *ExportEngine) buildFolders(progress chan<- ProgressUpdate, playlists []models.Playlist, gamesByPlatformKey map[string][]string) (*models.Folder, error) {
	rows, err := library.ParseParents(e.config.ParentsFile())
	if err != nil {
		if errors.Is(err, shared.ErrDescriptorNotFound) {
			e.logger.Warn("relationship descriptor not found, skipping folder tree", "path", e.config.ParentsFile())
			return nil, nil
		}
		return nil, err
	}

	known := make(map[string]bool, len(playlists))
	for _, pl := range playlists {
		known[pl.LaunchBoxID] = true
	}
	rel := library.Classify(rows, known)

	rootCategory := e.config.Export.RootCategory
	root, err := library.BuildTree(rootCategory, rel, gamesByPlatformKey, playlists)
	if err != nil {
		if errors.Is(err, shared.ErrRootCategoryNotFound) {
			e.logger.Warn("root category not found in relationships, skipping folder tree", "root", rootCategory)
			return nil, nil
		}
		return nil, err
	}

	e.sendProgress(progress, foldersUpdate(rootCategory))
	return root, nil
}

func (e *ExportEngine) writeOutputs(progress chan<- ProgressUpdate, result *ExportResult) error {
	outputs := e.config.Outputs

	e.sendProgress(progress, writeUpdate(1, 3, outputs.Games))
	if err := formatter.WriteGames(outputs.Games, result.Games); err != nil {
		return err
	}

	e.sendProgress(progress, writeUpdate(2, 3, outputs.Playlists))
	if err := formatter.WritePlaylists(outputs.Playlists, result.Playlists); err != nil {
		return err
	}

	if result.Root != nil {
		e.sendProgress(progress, writeUpdate(3, 3, outputs.Folders))
		if err := formatter.WriteFolders(outputs.Folders, *result.Root); err != nil {
			return err
		}
		result.FoldersWritten = true
	}
	return nil
}

func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
