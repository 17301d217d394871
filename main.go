package main

import (
	"context"
	"os"

	"github.com/mrlokans/bookshelf/internal/cli"
	"github.com/mrlokans/bookshelf/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	app := cli.NewApp(Version, cli.DefaultActions())
	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.Error().Err(err).Str("commit", Commit).Msg("bookshelf failed")
		os.Exit(1)
	}
}
