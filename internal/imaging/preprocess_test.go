package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFramedImage returns a w x h image filled with bg and a fg block in the middle.
func newFramedImage(w, h int, bg, fg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	inner := image.Rect(w/4, h/4, 3*w/4, 3*h/4)
	draw.Draw(img, inner, image.NewUniform(fg), image.Point{}, draw.Src)
	return img
}

func grayAt(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestBorderLightness(t *testing.T) {
	light := newFramedImage(40, 20, color.White, color.Black)
	dark := newFramedImage(40, 20, color.Black, color.White)

	assert.InDelta(t, 1.0, BorderLightness(light), 0.01)
	assert.InDelta(t, 0.0, BorderLightness(dark), 0.01)
}

func TestBorderLightness_Tiny(t *testing.T) {
	one := image.NewGray(image.Rect(0, 0, 1, 1))
	one.SetGray(0, 0, color.Gray{Y: 255})
	assert.InDelta(t, 1.0, BorderLightness(one), 0.01)

	assert.Equal(t, 1.0, BorderLightness(image.NewGray(image.Rect(0, 0, 0, 0))))
}

func TestPreprocess_Upscale(t *testing.T) {
	img := newFramedImage(60, 30, color.White, color.Black)

	out := Preprocess(img, PreprocessOptions{MinHeight: 90})
	assert.Equal(t, 180, out.Bounds().Dx())
	assert.Equal(t, 90, out.Bounds().Dy())
}

func TestPreprocess_NoUpscaleWhenTallEnough(t *testing.T) {
	img := newFramedImage(60, 30, color.White, color.Black)

	out := Preprocess(img, PreprocessOptions{MinHeight: 10})
	assert.Equal(t, img.Bounds().Size(), out.Bounds().Size())
}

func TestPreprocess_AutoInvert(t *testing.T) {
	dark := newFramedImage(40, 40, color.Black, color.White)

	out := Preprocess(dark, PreprocessOptions{AutoInvert: true})
	assert.Equal(t, uint8(255), grayAt(out, 0, 0), "background should become white")
	assert.Equal(t, uint8(0), grayAt(out, 20, 20), "text block should become black")

	light := newFramedImage(40, 40, color.White, color.Black)
	out = Preprocess(light, PreprocessOptions{AutoInvert: true})
	assert.Equal(t, uint8(255), grayAt(out, 0, 0))
}

func TestPreprocess_Threshold(t *testing.T) {
	img := newFramedImage(40, 40, color.Gray{Y: 200}, color.Gray{Y: 60})

	out := Preprocess(img, PreprocessOptions{Threshold: 128})
	gray, ok := out.(*image.Gray)
	require.True(t, ok, "threshold output should be *image.Gray, got %T", out)
	assert.Equal(t, uint8(255), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(20, 20).Y)
}

func TestPreprocess_Defaults(t *testing.T) {
	opts := DefaultPreprocessOptions()
	assert.Equal(t, 900, opts.MinHeight)
	assert.True(t, opts.AutoInvert)
	assert.Zero(t, opts.Threshold)

	out := Preprocess(newFramedImage(100, 50, color.Black, color.White), opts)
	assert.Equal(t, 900, out.Bounds().Dy())
	assert.Greater(t, grayAt(out, 0, 0), uint8(200))
}

func TestEncodePNG(t *testing.T) {
	img := newFramedImage(16, 8, color.White, color.Black)

	data, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
