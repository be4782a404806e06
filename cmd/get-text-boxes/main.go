// Command get-text-boxes prints one line per text region found in an image,
// as "(p1-p2),(p3-p4);text;confidence", and writes each region's bounding box
// to stderr.
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
	app := cli.New("get-text-boxes", cli.VariantBoxes)
	app.Version = Version
	app.BuildTime = BuildTime
	app.GitCommit = GitCommit

	os.Exit(app.Run(context.Background(), os.Args[1:]))
}
