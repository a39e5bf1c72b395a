package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/desertthunder/lbx/internal/imaging"
	"github.com/desertthunder/lbx/internal/media"
	"github.com/desertthunder/lbx/internal/repositories"
	"github.com/desertthunder/lbx/internal/shared"
	"github.com/desertthunder/lbx/internal/tasks"
)

// progressLogRate bounds how many per-game progress lines reach the log
// per second during a plain (non-TUI) export.
const progressLogRate = 5

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, exportCommand, mediaCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Export parses the library and writes the output documents, rendering
// progress as throttled log lines.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	config, err := r.exportConfig(cmd)
	if err != nil {
		return err
	}

	engine, closeEngine, err := r.buildEngine(config)
	if err != nil {
		return err
	}
	defer closeEngine()

	progress := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		limiter := rate.NewLimiter(progressLogRate, 1)
		for update := range progress {
			if update.Phase == tasks.ParseGames && update.Data == nil && !limiter.Allow() {
				continue
			}
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, runErr := engine.Run(ctx, progress)
	close(progress)
	wg.Wait()
	if runErr != nil {
		return runErr
	}

	r.writePlainln("Exported %d games from %d platforms → %s",
		len(result.Games), result.Platforms, config.Outputs.Games)
	r.writePlainln("Exported %d playlists → %s", len(result.Playlists), config.Outputs.Playlists)
	if result.FoldersWritten {
		r.writePlainln("Exported folder tree rooted at %q → %s",
			config.Export.RootCategory, config.Outputs.Folders)
	} else {
		r.writePlainln("Folder tree skipped")
	}
	return nil
}

// MediaProbe resolves the assets for one title and prints them.
func (r *Runner) MediaProbe(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: a title is required", shared.ErrMissingArgument)
	}
	platform := cmd.String("platform")

	resolver, closeResolver, err := r.buildResolver(r.config)
	if err != nil {
		return err
	}
	defer closeResolver()

	set := resolver.Resolve(title, platform)
	r.writePlainln("cover:      %s", orNone(set.Cover))
	r.writePlainln("icon:       %s", orNone(set.Icon))
	r.writePlainln("background: %s", orNone(set.Background))
	for _, shot := range set.Screenshots {
		r.writePlainln("screenshot: %s", shot)
	}
	for _, video := range set.Videos {
		r.writePlainln("video:      %s", video)
	}
	r.writePlainln("manual:     %s", orNone(set.Manual))
	return nil
}

// MediaPurge drops every cached media resolution.
func (r *Runner) MediaPurge(ctx context.Context, cmd *cli.Command) error {
	if r.config.Database.Path == "" {
		return fmt.Errorf("%w: media cache is disabled (database.path is empty)", shared.ErrInvalidInput)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	count, err := repositories.NewMediaCacheRepository(db).Purge()
	if err != nil {
		return err
	}
	r.writePlainln("Purged %d cached media entries", count)
	return nil
}

// SetupDatabase creates the config file when absent and initializes the
// cache database.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	if config.Database.Path == "" {
		r.logger.Info("media cache disabled, setup complete")
		return nil
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// exportConfig applies command-line overrides on top of the loaded
// configuration and validates the result.
func (r *Runner) exportConfig(cmd *cli.Command) (*shared.Config, error) {
	config := r.config
	if path := cmd.String("config"); path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := shared.LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	if workers := cmd.Int("workers"); workers > 0 {
		config.Export.Workers = workers
	}
	if root := cmd.String("root"); root != "" {
		config.Export.RootCategory = root
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// buildEngine wires the export engine and the resources behind it. The
// returned closer releases the cache database when one is open.
func (r *Runner) buildEngine(config *shared.Config) (*tasks.ExportEngine, func(), error) {
	resolver, closeResolver, err := r.buildResolver(config)
	if err != nil {
		return nil, nil, err
	}
	return tasks.NewExportEngine(config, resolver, r.logger), closeResolver, nil
}

// buildResolver wires a media resolver with the optional sqlite-backed
// path cache. Cache failures degrade to an uncached resolver.
func (r *Runner) buildResolver(config *shared.Config) (*media.Resolver, func(), error) {
	normalizer := imaging.NewNormalizer(config.Media, r.logger)

	var cache media.Cache
	closer := func() {}
	if config.Database.Path != "" {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			r.logger.Warn("cache database unavailable, continuing without cache", "error", err)
		} else if err := shared.RunMigrations(db); err != nil {
			r.logger.Warn("cache migrations failed, continuing without cache", "error", err)
			db.Close()
		} else {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			cache = repositories.NewMediaCacheRepository(db)
			closer = func() { db.Close() }
		}
	}

	return media.NewResolver(config, normalizer, cache, r.logger), closer, nil
}

func orNone(path string) string {
	if path == "" {
		return "(none)"
	}
	return path
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
