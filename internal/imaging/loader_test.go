package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a solid-color PNG and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	require.NoError(t, err)
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestOpen(t *testing.T) {
	path := createTestImage(t, 100, 50, color.White)
	defer os.Remove(path)

	h, err := Open(path)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, path, h.Path())

	info := h.Info()
	assert.Equal(t, 100, info.Width)
	assert.Equal(t, 50, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Greater(t, info.FileSizeBytes, int64(0))
}

func TestOpen_NonExistentFile(t *testing.T) {
	_, err := Open("/nonexistent/path/image.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var accessErr *AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, "/nonexistent/path/image.png", accessErr.Path)
}

func TestOpen_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("this is not an image"), 0644))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
	assert.Contains(t, err.Error(), "decode image header")
}

func TestOpen_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestOpen_FormatFromContents(t *testing.T) {
	// A PNG stored under a .jpg name is still reported as PNG.
	src := createTestImage(t, 10, 10, color.Black)
	defer os.Remove(src)
	data, err := os.ReadFile(src)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scan.jpg")
	require.NoError(t, os.WriteFile(path, data, 0644))

	h, err := Open(path)
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, "png", h.Info().Format)
}

func TestOpen_JPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	path := filepath.Join(t.TempDir(), "photo.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())

	h, err := Open(path)
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, "jpeg", h.Info().Format)
}

func TestHandle_Image(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	path := createTestImage(t, 20, 10, red)
	defer os.Remove(path)

	h, err := Open(path)
	require.NoError(t, err)
	defer h.Close()

	img, err := h.Image()
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())

	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)

	// Second call returns the same decoded image.
	again, err := h.Image()
	require.NoError(t, err)
	assert.Same(t, img, again)
}

func TestHandle_ImageAfterClose(t *testing.T) {
	path := createTestImage(t, 5, 5, color.White)
	defer os.Remove(path)

	h, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	_, err = h.Image()
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestHandle_CloseTwice(t *testing.T) {
	path := createTestImage(t, 5, 5, color.White)
	defer os.Remove(path)

	h, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, h.Close())
	assert.NoError(t, h.Close())
}
