package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/lbx/internal/shared"
)

func testConfig(t *testing.T) *shared.Config {
	t.Helper()
	root := t.TempDir()
	out := t.TempDir()
	config := shared.DefaultConfig()
	config.LibraryRoot = root
	config.Outputs = shared.OutputConfig{
		Games:     filepath.Join(out, "games.yaml"),
		Playlists: filepath.Join(out, "playlists.yaml"),
		Folders:   filepath.Join(out, "folders.yaml"),
	}
	config.Media.Icon.Dir = filepath.Join(out, "icons")
	config.Media.Cover.Dir = filepath.Join(out, "covers")
	return config
}

func seedPlatform(t *testing.T, config *shared.Config) {
	t.Helper()
	dir := config.PlatformsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	descriptor := `<LaunchBox><Game><Title>Doom</Title><ID>lb-doom</ID></Game></LaunchBox>`
	if err := os.WriteFile(filepath.Join(dir, "MS-DOS.xml"), []byte(descriptor), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output == nil {
				t.Error("expected default output to be set")
			}
		})
	})

	t.Run("register exposes every command", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := map[string]bool{"setup": false, "export": false, "media": false, "tui": false}
		for _, cmd := range commands {
			if _, ok := want[cmd.Name]; ok {
				want[cmd.Name] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("command %s not registered", name)
			}
		}
	})

	t.Run("Export", func(t *testing.T) {
		t.Run("writes the output documents", func(t *testing.T) {
			config := testConfig(t)
			seedPlatform(t, config)
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Config: config, Output: output})

			cmd := exportCommand(runner)
			err := cmd.Run(context.Background(), []string{
				"export", "--config", filepath.Join(t.TempDir(), "absent.toml"),
			})
			if err != nil {
				t.Fatal(err)
			}

			if _, err := os.Stat(config.Outputs.Games); err != nil {
				t.Errorf("games output missing: %v", err)
			}
			if _, err := os.Stat(config.Outputs.Playlists); err != nil {
				t.Errorf("playlists output missing: %v", err)
			}
			if !strings.Contains(output.String(), "Exported 1 games") {
				t.Errorf("unexpected summary: %q", output.String())
			}
			if !strings.Contains(output.String(), "Folder tree skipped") {
				t.Errorf("missing skip notice: %q", output.String())
			}
		})

		t.Run("missing platforms dir fails", func(t *testing.T) {
			config := testConfig(t)
			runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}})

			cmd := exportCommand(runner)
			err := cmd.Run(context.Background(), []string{
				"export", "--config", filepath.Join(t.TempDir(), "absent.toml"),
			})
			if err == nil {
				t.Fatal("expected an error")
			}
		})

		t.Run("root flag overrides the configuration", func(t *testing.T) {
			config := testConfig(t)
			seedPlatform(t, config)
			runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}})

			cmd := exportCommand(runner)
			err := cmd.Run(context.Background(), []string{
				"export",
				"--config", filepath.Join(t.TempDir(), "absent.toml"),
				"--root", "Consoles",
			})
			if err != nil {
				t.Fatal(err)
			}
			if config.Export.RootCategory != "Consoles" {
				t.Errorf("RootCategory = %q, want Consoles", config.Export.RootCategory)
			}
		})
	})

	t.Run("MediaProbe", func(t *testing.T) {
		t.Run("prints resolved assets", func(t *testing.T) {
			config := testConfig(t)
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Config: config, Output: output})

			cmd := mediaCommand(runner)
			err := cmd.Run(context.Background(), []string{"media", "probe", "-p", "MS-DOS", "Doom"})
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(output.String(), "cover:") {
				t.Errorf("unexpected output: %q", output.String())
			}
			if !strings.Contains(output.String(), "(none)") {
				t.Errorf("empty library should resolve nothing: %q", output.String())
			}
		})

		t.Run("requires a title", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &bytes.Buffer{}})

			cmd := mediaCommand(runner)
			err := cmd.Run(context.Background(), []string{"media", "probe"})
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	})

	t.Run("SetupDatabase creates the config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		cmd := setupCommand(runner)
		if err := cmd.Run(context.Background(), []string{"setup", "--config", configPath}); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("config file missing: %v", err)
		}
	})

	t.Run("MediaPurge fails when the cache is disabled", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &bytes.Buffer{}})

		cmd := mediaCommand(runner)
		if err := cmd.Run(context.Background(), []string{"media", "purge"}); err == nil {
			t.Fatal("expected an error")
		}
	})
}
