package ocr

import (
	"context"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrEngineUnavailable is returned when the binary was built without an OCR backend.
var ErrEngineUnavailable = errors.New("ocr engine unavailable: built without cgo/tesseract support")

// Point is a pixel coordinate with the origin at the top-left of the image.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the point as "[x, y]".
func (p Point) String() string {
	return "[" + strconv.Itoa(p.X) + ", " + strconv.Itoa(p.Y) + "]"
}

// Quad is the bounding quadrilateral of a detected region, ordered
// top-left, top-right, bottom-right, bottom-left.
type Quad [4]Point

// QuadFromRect returns the four corners of r in Quad order.
func QuadFromRect(r image.Rectangle) Quad {
	return Quad{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// String renders the quad as "[[x1, y1], [x2, y2], [x3, y3], [x4, y4]]".
func (q Quad) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range q {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Rescale maps q from the coordinate space of an image with bounds from onto
// one with bounds to, rounding to the nearest pixel. An empty from leaves q
// unchanged.
func (q Quad) Rescale(from, to image.Rectangle) Quad {
	if from.Empty() {
		return q
	}
	sx := float64(to.Dx()) / float64(from.Dx())
	sy := float64(to.Dy()) / float64(from.Dy())
	var out Quad
	for i, p := range q {
		out[i] = Point{
			X: to.Min.X + int(math.Round(float64(p.X-from.Min.X)*sx)),
			Y: to.Min.Y + int(math.Round(float64(p.Y-from.Min.Y)*sy)),
		}
	}
	return out
}

// Detection is one recognized text region.
type Detection struct {
	// Box is the region's bounding quadrilateral in the coordinates of the
	// image file that was read.
	Box Quad `json:"box"`

	// Text is the recognized text on a single line.
	Text string `json:"text"`

	// Confidence is the engine's recognition confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// Input is a single image submitted for recognition. Exactly one of Path or
// Image should be set; Image wins when both are.
type Input struct {
	// Path is read by the engine itself.
	Path string

	// Image holds encoded image bytes (PNG, JPEG, TIFF...).
	Image []byte
}

// Reader recognizes text regions in an image.
type Reader interface {
	ReadText(ctx context.Context, in Input) ([]Detection, error)
}

// Level is the granularity of the returned regions.
type Level int

const (
	// LevelLine returns one region per text line.
	LevelLine Level = iota
	// LevelWord returns one region per word.
	LevelWord
	// LevelBlock returns one region per block of text.
	LevelBlock
)

func (l Level) String() string {
	switch l {
	case LevelLine:
		return "line"
	case LevelWord:
		return "word"
	case LevelBlock:
		return "block"
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel converts "line", "word" or "block" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "":
		return LevelLine, nil
	case "word":
		return LevelWord, nil
	case "block":
		return LevelBlock, nil
	}
	return 0, fmt.Errorf("unknown detection level %q (want line, word or block)", s)
}

// Config configures a Reader.
type Config struct {
	// Languages are ISO 639-1 codes ("fr", "en") or Tesseract codes ("fra").
	Languages []string

	// Accelerated requests hardware-accelerated inference when the backend
	// supports it.
	Accelerated bool

	// Level selects the region granularity.
	Level Level

	// TessdataPrefix overrides the directory holding *.traineddata files.
	// Empty means Tesseract's default (TESSDATA_PREFIX or the build path).
	TessdataPrefix string

	// Logger receives debug output. Nil disables logging.
	Logger *zap.SugaredLogger
}

// tesseractLanguages maps ISO 639-1 codes to Tesseract traineddata names.
var tesseractLanguages = map[string]string{
	"ar": "ara",
	"de": "deu",
	"en": "eng",
	"es": "spa",
	"fr": "fra",
	"it": "ita",
	"ja": "jpn",
	"ko": "kor",
	"nl": "nld",
	"pl": "pol",
	"pt": "por",
	"ru": "rus",
	"zh": "chi_sim",
}

// TesseractLanguages converts langs to Tesseract codes, keeping their order.
// Codes that are already Tesseract names pass through unchanged.
func TesseractLanguages(langs []string) ([]string, error) {
	if len(langs) == 0 {
		return nil, errors.New("at least one language is required")
	}

	out := make([]string, 0, len(langs))
	seen := make(map[string]bool, len(langs))
	for _, lang := range langs {
		code := strings.ToLower(strings.TrimSpace(lang))
		if mapped, ok := tesseractLanguages[code]; ok {
			code = mapped
		} else if !isTesseractCode(code) {
			return nil, errors.Errorf("unsupported language %q", lang)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}

func isTesseractCode(code string) bool {
	for _, v := range tesseractLanguages {
		if v == code {
			return true
		}
	}
	return false
}

// normalizeConfidence converts a Tesseract confidence (0-100, negative when
// unknown) into the 0-1 range.
func normalizeConfidence(c float64) float64 {
	c /= 100
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// singleLine collapses every run of whitespace in s, line breaks included,
// into one space. Block regions come back from Tesseract with a newline
// between their lines.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c Config) logger() *zap.SugaredLogger {
	if c.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.Logger
}

// EngineInfo describes the OCR backend compiled into the binary.
type EngineInfo struct {
	Available bool     `json:"available"`
	Backend   string   `json:"backend"`
	Version   string   `json:"version,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Error     string   `json:"error,omitempty"`
}
