package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ironsheep/image-text-extract/internal/imaging"
	"github.com/ironsheep/image-text-extract/internal/logging"
	"github.com/ironsheep/image-text-extract/internal/ocr"
	"github.com/ironsheep/image-text-extract/internal/report"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitUnreadable = 1 // the path could not be opened as an image
	ExitFailure    = 2 // usage error, engine failure or output error
)

// Variant selects the output layout.
type Variant int

const (
	// VariantRaw prints the whole detection list as one value on stdout.
	VariantRaw Variant = iota
	// VariantBoxes prints one report line per detection on stdout and the
	// matching bounding box on stderr.
	VariantBoxes
)

// Output formats for VariantRaw.
const (
	FormatRepr = "repr"
	FormatJSON = "json"
)

// languages and accelerated are fixed for every run.
var languages = []string{"fr", "en"}

const accelerated = true

// NewReaderFunc constructs the OCR engine for a run.
type NewReaderFunc func(cfg ocr.Config) (ocr.Reader, error)

// NewTesseractReader is the default NewReaderFunc.
func NewTesseractReader(cfg ocr.Config) (ocr.Reader, error) {
	r, err := ocr.NewTesseract(cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// App is one text extraction command.
type App struct {
	Name    string
	Variant Variant

	// Version information, normally set by ldflags in main.
	Version   string
	BuildTime string
	GitCommit string

	Stdout io.Writer
	Stderr io.Writer

	NewReader NewReaderFunc
}

// New returns an App wired to the process streams and the Tesseract engine.
func New(name string, variant Variant) *App {
	return &App{
		Name:      name,
		Variant:   variant,
		Version:   "dev",
		BuildTime: "unknown",
		GitCommit: "unknown",
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		NewReader: NewTesseractReader,
	}
}

type options struct {
	format     string
	level      string
	preprocess bool
	tessdata   string
	logLevel   string
	version    bool
	help       bool
}

// Run executes the command with args (without the program name) and
// returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	var opts options
	fs := pflag.NewFlagSet(a.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if a.Variant == VariantRaw {
		fs.StringVar(&opts.format, "format", FormatRepr, "output format: repr or json")
	}
	fs.StringVar(&opts.level, "level", ocr.LevelLine.String(), "region granularity: line, word or block")
	fs.BoolVar(&opts.preprocess, "preprocess", false, "clean up the image (grayscale, upscale, contrast, invert) before OCR")
	fs.StringVar(&opts.tessdata, "tessdata", "", "directory containing *.traineddata (default: TESSDATA_PREFIX)")
	fs.StringVar(&opts.logLevel, "log-level", logging.LevelFromEnv(), "log level: debug, info, warn or error")
	fs.BoolVarP(&opts.version, "version", "v", false, "print version information")
	fs.BoolVarP(&opts.help, "help", "h", false, "print this help message")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(a.Stderr, "%s: %v\n", a.Name, err)
		a.usage(a.Stderr, fs)
		return ExitFailure
	}

	if opts.help {
		a.usage(a.Stdout, fs)
		return ExitOK
	}
	if opts.version {
		a.printVersion()
		return ExitOK
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(a.Stderr, "%s: expected exactly one image path, got %d arguments\n", a.Name, fs.NArg())
		a.usage(a.Stderr, fs)
		return ExitFailure
	}
	path := fs.Arg(0)

	level, err := ocr.ParseLevel(opts.level)
	if err != nil {
		fmt.Fprintf(a.Stderr, "%s: %v\n", a.Name, err)
		return ExitFailure
	}
	if a.Variant == VariantRaw && opts.format != FormatRepr && opts.format != FormatJSON {
		fmt.Fprintf(a.Stderr, "%s: unknown format %q (want %s or %s)\n", a.Name, opts.format, FormatRepr, FormatJSON)
		return ExitFailure
	}

	if _, ok := logging.ParseLevel(opts.logLevel); !ok {
		fmt.Fprintf(a.Stderr, "%s: unknown log level %q (want %s, %s, %s or %s; set by --log-level or %s)\n",
			a.Name, opts.logLevel, logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError, logging.EnvLevel)
		return ExitFailure
	}

	log := logging.New(a.Stderr, opts.logLevel)
	defer log.Sync()
	log.Debugw("starting", "command", a.Name, "version", a.Version, "commit", a.GitCommit)

	return a.extract(ctx, log, path, opts, level)
}

// extract runs the open → recognize → print pipeline.
func (a *App) extract(ctx context.Context, log *zap.SugaredLogger, path string, opts options, level ocr.Level) int {
	h, err := imaging.Open(path)
	if err != nil {
		log.Debugw("cannot open image", "path", path, "error", err)
		return ExitUnreadable
	}
	defer func() {
		if err := h.Close(); err != nil {
			log.Debugw("failed to close image", "path", path, "error", err)
		}
	}()

	info := h.Info()
	log.Debugw("image opened",
		"path", path,
		"format", info.Format,
		"width", info.Width,
		"height", info.Height,
		"bytes", info.FileSizeBytes,
	)

	reader, err := a.NewReader(ocr.Config{
		Languages:      languages,
		Accelerated:    accelerated,
		Level:          level,
		TessdataPrefix: opts.tessdata,
		Logger:         log,
	})
	if err != nil {
		return a.fail(err)
	}

	in := ocr.Input{Path: path}
	// Boxes come back in the space of the image the engine saw; when it
	// differs from the file they are mapped back onto srcBounds.
	var srcBounds, ocrBounds image.Rectangle
	if opts.preprocess {
		img, err := h.Image()
		if err != nil {
			log.Debugw("cannot decode image", "path", path, "error", err)
			return ExitUnreadable
		}
		pre := imaging.Preprocess(img, imaging.DefaultPreprocessOptions())
		data, err := imaging.EncodePNG(pre)
		if err != nil {
			return a.fail(err)
		}
		in = ocr.Input{Image: data}
		srcBounds, ocrBounds = img.Bounds(), pre.Bounds()
		log.Debugw("image preprocessed", "from", srcBounds.Size(), "to", ocrBounds.Size())
	}

	dets, err := reader.ReadText(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	if ocrBounds != srcBounds {
		for i := range dets {
			dets[i].Box = dets[i].Box.Rescale(ocrBounds, srcBounds)
		}
	}
	log.Debugw("text extracted", "detections", len(dets))

	switch {
	case a.Variant == VariantBoxes:
		err = report.WriteBoxes(a.Stdout, a.Stderr, dets)
	case opts.format == FormatJSON:
		err = report.WriteJSON(a.Stdout, dets)
	default:
		err = report.WriteRaw(a.Stdout, dets)
	}
	if err != nil {
		return a.fail(err)
	}
	return ExitOK
}

// fail prints err with its stack trace, when it has one, and returns ExitFailure.
func (a *App) fail(err error) int {
	fmt.Fprintf(a.Stderr, "%s: %+v\n", a.Name, err)
	return ExitFailure
}

func (a *App) usage(w io.Writer, fs *pflag.FlagSet) {
	var what string
	switch a.Variant {
	case VariantBoxes:
		what = "print one line per text region: (p1-p2),(p3-p4);text;confidence"
	default:
		what = "print the text regions found in an image"
	}
	fmt.Fprintf(w, "%s - %s\n\n", a.Name, what)
	fmt.Fprintf(w, "Usage: %s [options] <image>\n\n", a.Name)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", logging.EnvLevel)
	fmt.Fprintln(w, "  TESSDATA_PREFIX=<dir>        Tesseract language data directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status: 0 on success, 1 if the image cannot be read, 2 on any other error.")
}

func (a *App) printVersion() {
	fmt.Fprintf(a.Stdout, "%s %s\n", a.Name, a.Version)
	fmt.Fprintf(a.Stdout, "  Build time: %s\n", a.BuildTime)
	fmt.Fprintf(a.Stdout, "  Git commit: %s\n", a.GitCommit)

	info := ocr.GetEngineInfo()
	if !info.Available {
		fmt.Fprintf(a.Stdout, "  OCR engine: unavailable (%s)\n", info.Error)
		return
	}
	fmt.Fprintf(a.Stdout, "  OCR engine: %s (tesseract %s)\n", info.Backend, info.Version)
	if len(info.Languages) > 0 {
		fmt.Fprintf(a.Stdout, "  Languages:  %s\n", strings.Join(info.Languages, ", "))
	}
}
