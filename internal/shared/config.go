package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	LibraryRoot string         `toml:"library_root"`
	Paths       PathsConfig    `toml:"paths"`
	Outputs     OutputConfig   `toml:"outputs"`
	Export      ExportConfig   `toml:"export"`
	Media       MediaConfig    `toml:"media"`
	Database    DatabaseConfig `toml:"database"`
}

// PathsConfig contains descriptor and media locations relative to the library root.
type PathsConfig struct {
	Platforms string `toml:"platforms"`
	Playlists string `toml:"playlists"`
	Parents   string `toml:"parents"`
	Images    string `toml:"images"`
	Videos    string `toml:"videos"`
	Manuals   string `toml:"manuals"`
}

// OutputConfig contains destinations for the generated YAML documents.
type OutputConfig struct {
	Games     string `toml:"games"`
	Playlists string `toml:"playlists"`
	Folders   string `toml:"folders"`
}

// ExportConfig contains tunables for the export run itself.
type ExportConfig struct {
	RootCategory string `toml:"root_category"`
	Workers      int    `toml:"workers"` // 0 means one worker per CPU
}

// MediaConfig contains media resolution and image normalization settings.
type MediaConfig struct {
	ImageExtensions []string    `toml:"image_extensions"`
	Icon            IconConfig  `toml:"icon"`
	Cover           CoverConfig `toml:"cover"`
}

// IconConfig describes generated square icons derived from covers.
type IconConfig struct {
	Dir  string `toml:"dir"`
	Size int    `toml:"size"`
}

// CoverConfig describes normalized cover output.
type CoverConfig struct {
	Dir        string  `toml:"dir"`
	MinWidth   int     `toml:"min_width"`
	MinHeight  int     `toml:"min_height"`
	MaxStretch float64 `toml:"max_stretch"`
}

// DatabaseConfig contains resolution cache settings. An empty path disables caching.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive an export run.
func (c *Config) Validate() error {
	if c.LibraryRoot == "" {
		return fmt.Errorf("%w: library_root is required", ErrInvalidConfig)
	}
	if c.Export.RootCategory == "" {
		return fmt.Errorf("%w: export.root_category is required", ErrInvalidConfig)
	}
	if len(c.Media.ImageExtensions) == 0 {
		return fmt.Errorf("%w: media.image_extensions must not be empty", ErrInvalidConfig)
	}
	if c.Media.Cover.MinWidth <= 0 || c.Media.Cover.MinHeight <= 0 {
		return fmt.Errorf("%w: media.cover dimensions must be positive", ErrInvalidConfig)
	}
	if c.Media.Cover.MaxStretch <= 0 {
		return fmt.Errorf("%w: media.cover.max_stretch must be positive", ErrInvalidConfig)
	}
	if c.Media.Icon.Size <= 0 {
		return fmt.Errorf("%w: media.icon.size must be positive", ErrInvalidConfig)
	}
	return nil
}

// PlatformsDir returns the absolute platform descriptor directory.
func (c *Config) PlatformsDir() string { return c.libraryPath(c.Paths.Platforms) }

// PlaylistsDir returns the absolute playlist descriptor directory.
func (c *Config) PlaylistsDir() string { return c.libraryPath(c.Paths.Playlists) }

// ParentsFile returns the absolute relationship descriptor path.
func (c *Config) ParentsFile() string { return c.libraryPath(c.Paths.Parents) }

// ImagesDir returns the absolute image asset root.
func (c *Config) ImagesDir() string { return c.libraryPath(c.Paths.Images) }

// VideosDir returns the absolute video asset root.
func (c *Config) VideosDir() string { return c.libraryPath(c.Paths.Videos) }

// ManualsDir returns the absolute manual asset root.
func (c *Config) ManualsDir() string { return c.libraryPath(c.Paths.Manuals) }

func (c *Config) libraryPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.LibraryRoot, rel)
}
