//go:build cgo

package ocr

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"
)

const backendName = "gosseract"

// Tesseract is a Reader backed by the Tesseract engine through gosseract.
//
// A new gosseract client is created for every ReadText call and closed
// before it returns, so a Tesseract value holds no native resources.
type Tesseract struct {
	cfg   Config
	langs []string
	level gosseract.PageIteratorLevel
}

// NewTesseract validates cfg and returns a Tesseract reader.
//
// Language data is not loaded here; gosseract initializes the engine lazily,
// so a missing traineddata file surfaces as an error from ReadText.
func NewTesseract(cfg Config) (*Tesseract, error) {
	langs, err := TesseractLanguages(cfg.Languages)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ocr configuration")
	}

	var level gosseract.PageIteratorLevel
	switch cfg.Level {
	case LevelLine:
		level = gosseract.RIL_TEXTLINE
	case LevelWord:
		level = gosseract.RIL_WORD
	case LevelBlock:
		level = gosseract.RIL_BLOCK
	default:
		return nil, errors.Errorf("invalid ocr configuration: unsupported level %v", cfg.Level)
	}

	log := cfg.logger()
	if cfg.Accelerated {
		// gosseract exposes no device selection; Tesseract picks OpenCL
		// on its own when it was built with it.
		log.Debugw("accelerated inference requested; tesseract decides the device", "backend", backendName)
	}
	log.Debugw("ocr reader configured",
		"backend", backendName,
		"languages", strings.Join(langs, "+"),
		"level", cfg.Level.String(),
		"tessdata", cfg.TessdataPrefix,
	)

	return &Tesseract{cfg: cfg, langs: langs, level: level}, nil
}

// ReadText runs recognition on in and returns the detected regions in the
// order Tesseract iterates them (top to bottom, left to right).
//
// Runs of whitespace, line breaks included, collapse to a single space and
// regions whose text ends up empty are dropped. Confidence is
// converted from Tesseract's 0-100 scale and clamped to [0, 1].
func (t *Tesseract) ReadText(ctx context.Context, in Input) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	// Keep Tesseract's own diagnostics off stderr.
	if err := client.DisableOutput(); err != nil {
		return nil, errors.Wrap(err, "failed to silence tesseract output")
	}

	if t.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.cfg.TessdataPrefix); err != nil {
			return nil, errors.Wrap(err, "failed to set tessdata path")
		}
	}

	if err := client.SetLanguage(t.langs...); err != nil {
		return nil, errors.Wrap(err, "failed to set language")
	}

	switch {
	case len(in.Image) > 0:
		if err := client.SetImageFromBytes(in.Image); err != nil {
			return nil, errors.Wrap(err, "failed to set image")
		}
	case in.Path != "":
		if err := client.SetImage(in.Path); err != nil {
			return nil, errors.Wrap(err, "failed to set image")
		}
	default:
		return nil, errors.New("ocr input has neither a path nor image data")
	}

	boxes, err := client.GetBoundingBoxes(t.level)
	if err != nil {
		return nil, errors.Wrap(err, "OCR failed")
	}

	detections := make([]Detection, 0, len(boxes))
	for _, box := range boxes {
		text := singleLine(box.Word)
		if text == "" {
			continue
		}
		detections = append(detections, Detection{
			Box:        QuadFromRect(box.Box),
			Text:       text,
			Confidence: normalizeConfidence(box.Confidence),
		})
	}

	t.cfg.logger().Debugw("ocr finished", "regions", len(boxes), "detections", len(detections))
	return detections, nil
}

// GetEngineInfo reports the linked Tesseract version and the languages
// installed in the default tessdata directory.
func GetEngineInfo() EngineInfo {
	info := EngineInfo{
		Available: true,
		Backend:   backendName,
		Version:   gosseract.Version(),
	}
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Languages = langs
	return info
}
