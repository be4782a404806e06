package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// PreprocessOptions controls the cleanup applied to an image before OCR.
type PreprocessOptions struct {
	// MinHeight upscales images shorter than this many pixels, preserving the
	// aspect ratio. Zero disables upscaling.
	MinHeight int

	// Contrast is the bild contrast change in the range -1 to 1. Zero leaves
	// contrast untouched.
	Contrast float64

	// AutoInvert inverts images whose border is darker than their middle
	// lightness, so that text ends up dark on light.
	AutoInvert bool

	// Threshold binarizes the image at this gray level. Zero disables it.
	Threshold uint8
}

// DefaultPreprocessOptions returns the settings used by --preprocess.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		MinHeight:  900,
		Contrast:   0.15,
		AutoInvert: true,
	}
}

// darkBorderLightness is the CIE L* value below which a border is "dark".
const darkBorderLightness = 0.5

// Preprocess converts img into a grayscale image tuned for Tesseract.
//
// The steps are applied in this order:
//  1. Grayscale conversion
//  2. Lanczos upscale to MinHeight
//  3. Contrast adjustment
//  4. Inversion when the border is dark (AutoInvert)
//  5. Binarization (Threshold)
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	var out image.Image = imaging.Grayscale(img)

	if opts.MinHeight > 0 && out.Bounds().Dy() < opts.MinHeight {
		out = imaging.Resize(out, 0, opts.MinHeight, imaging.Lanczos)
	}

	if opts.Contrast != 0 {
		out = adjust.Contrast(out, opts.Contrast)
	}

	if opts.AutoInvert && BorderLightness(out) < darkBorderLightness {
		out = imaging.Invert(out)
	}

	if opts.Threshold > 0 {
		out = segment.Threshold(out, opts.Threshold)
	}

	return out
}

// BorderLightness returns the mean CIE L* lightness (0 to 1) of the pixels on
// the outermost rows and columns of img. Scanned text sits on the page
// background, so the border is a good estimate of the background tone.
func BorderLightness(img image.Image) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 1
	}

	var sum float64
	var n int
	sample := func(x, y int) {
		c, ok := colorful.MakeColor(img.At(x, y))
		if !ok {
			// Fully transparent pixels count as white paper.
			sum++
			n++
			return
		}
		l, _, _ := c.Lab()
		sum += l
		n++
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		sample(x, b.Min.Y)
		if b.Dy() > 1 {
			sample(x, b.Max.Y-1)
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		sample(b.Min.X, y)
		if b.Dx() > 1 {
			sample(b.Max.X-1, y)
		}
	}

	return sum / float64(n)
}

// EncodePNG encodes img as PNG for engines that take image bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
