//go:build !cgo

package ocr

import (
	"context"

	"github.com/pkg/errors"
)

const backendName = "none"

// Tesseract is unavailable in builds without cgo. NewTesseract always fails.
type Tesseract struct{}

// NewTesseract returns ErrEngineUnavailable.
func NewTesseract(cfg Config) (*Tesseract, error) {
	if _, err := TesseractLanguages(cfg.Languages); err != nil {
		return nil, errors.Wrap(err, "invalid ocr configuration")
	}
	return nil, errors.WithStack(ErrEngineUnavailable)
}

// ReadText returns ErrEngineUnavailable.
func (t *Tesseract) ReadText(ctx context.Context, in Input) ([]Detection, error) {
	return nil, errors.WithStack(ErrEngineUnavailable)
}

// GetEngineInfo reports that no backend is compiled in.
func GetEngineInfo() EngineInfo {
	return EngineInfo{
		Available: false,
		Backend:   backendName,
		Error:     ErrEngineUnavailable.Error(),
	}
}
