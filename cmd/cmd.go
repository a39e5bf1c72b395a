// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// exportCommand runs the full library export
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "export",
		Aliases: []string{"run"},
		Usage:   "Parse the LaunchBox library and write the YAML documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Maximum parallel platform parsers (0 = one per CPU)",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Root category for the folder tree",
			},
		},
		Action: r.Export,
	}
}

// mediaCommand handles media resolution utilities
func mediaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "media",
		Usage: "Media resolution utilities",
		Commands: []*cli.Command{
			{
				Name:  "probe",
				Usage: "Resolve and print the assets for a single title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "title",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "platform",
						Aliases: []string{"p"},
						Usage:   "Platform name used to scope the search",
					},
				},
				Action: r.MediaProbe,
			},
			{
				Name:   "purge",
				Usage:  "Drop every cached media resolution",
				Action: r.MediaPurge,
			},
		},
	}
}

// setupCommand initializes config and the cache database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the cache database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}

// tuiCommand launches the interactive export
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Run the export with an interactive progress display",
		Action: r.TUI,
	}
}
