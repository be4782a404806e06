// Command get-text prints the text regions found in an image as a single
// list of (box, text, confidence) tuples.
package main

import (
	"context"
	"os"

	"github.com/ironsheep/image-text-extract/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	app := cli.New("get-text", cli.VariantRaw)
	app.Version = Version
	app.BuildTime = BuildTime
	app.GitCommit = GitCommit

	os.Exit(app.Run(context.Background(), os.Args[1:]))
}
