// Package cli defines the bookshelf command line.
package cli

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
)

// Actions are the operations the commands dispatch to.
type Actions struct {
	Serve func(cfg *config.Config, version string)
	Seed  func(ctx context.Context, cfg *config.Config) error
}

// DefaultActions runs the real server and seeder.
func DefaultActions() Actions {
	return Actions{
		Serve: entrypoint.Run,
		Seed:  entrypoint.RunSeed,
	}
}

// NewApp builds the root command. Without a subcommand it serves the API.
func NewApp(version string, actions Actions) *cli.Command {
	serve := func(ctx context.Context, cmd *cli.Command) error {
		actions.Serve(config.NewConfig(), version)
		return nil
	}

	return &cli.Command{
		Name:    "bookshelf",
		Usage:   "Read-only authors and books API",
		Version: version,
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server (default if no command given)",
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "Replace all authors and books with the built-in fixture",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Give up if seeding has not finished within this duration",
						Value: time.Minute,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
					defer cancel()
					return actions.Seed(ctx, config.NewConfig())
				},
			},
		},
	}
}
