// Package ocr provides Optical Character Recognition (OCR) using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) behind the
// Reader interface. A Reader takes an image path or encoded image bytes and
// returns one Detection per text region: a bounding quadrilateral, the
// recognized text and a confidence score.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng tesseract-ocr-fra
//   - macOS: brew install tesseract tesseract-lang
//
// Builds without cgo compile a stub whose NewTesseract returns
// ErrEngineUnavailable.
//
// # Languages
//
// Config.Languages accepts ISO 639-1 codes ("fr", "en"), which are mapped to
// Tesseract names ("fra", "eng"). Tesseract names are accepted as-is.
// Multiple languages are combined, in order, as "fra+eng".
//
// # Regions
//
// Tesseract reports axis-aligned rectangles. Each one becomes a Quad ordered
// top-left, top-right, bottom-right, bottom-left. The default granularity is
// one region per text line (LevelLine); LevelWord and LevelBlock are also
// available.
//
// # Accelerated Execution
//
// Config.Accelerated records that hardware acceleration was requested.
// gosseract has no device switch, so the request is logged and Tesseract
// uses OpenCL only if it was built with it.
//
// # Error Handling
//
// Engine errors are wrapped with github.com/pkg/errors and carry a stack
// trace; print them with %+v to see it. Typical causes:
//   - Unsupported language codes
//   - Missing traineddata files
//   - Images Tesseract (leptonica) cannot read
package ocr
