package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrUnreadable matches every error returned by Open.
var ErrUnreadable = errors.New("image is missing, unreadable or not a supported format")

// AccessError reports why a path could not be opened as an image.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("open image %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnreadable) succeed for any AccessError.
func (e *AccessError) Is(target error) bool { return target == ErrUnreadable }

// Handle is an opened image file.
//
// Open reads only the image header, so a Handle is cheap to obtain for
// validation. Pixels are decoded on the first call to Image. The file stays
// open until Close is called; callers should defer Close right after a
// successful Open.
//
// A Handle is not safe for concurrent use.
type Handle struct {
	path   string
	file   *os.File
	config image.Config
	format string
	size   int64

	img    image.Image
	closed bool
}

// Open opens path and checks that it holds a decodable image.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are PNG, JPEG,
//     GIF, BMP, TIFF and WebP.
//
// Returns:
//   - *Handle: The opened image. The caller must Close it.
//   - error: An *AccessError if the file does not exist, cannot be read, or
//     does not start with a known image header.
func Open(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, &AccessError{Path: path, Err: multierr.Append(err, f.Close())}
	}
	if stat.IsDir() {
		return nil, &AccessError{Path: path, Err: multierr.Append(errors.New("is a directory"), f.Close())}
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		err = fmt.Errorf("failed to decode image header: %w", err)
		return nil, &AccessError{Path: path, Err: multierr.Append(err, f.Close())}
	}

	return &Handle{
		path:   path,
		file:   f,
		config: cfg,
		format: format,
		size:   stat.Size(),
	}, nil
}

// Path returns the path the handle was opened with.
func (h *Handle) Path() string { return h.path }

// Image decodes and returns the full image, applying EXIF orientation.
// The decoded image is kept for subsequent calls.
func (h *Handle) Image() (image.Image, error) {
	if h.img != nil {
		return h.img, nil
	}
	if h.closed {
		return nil, &AccessError{Path: h.path, Err: os.ErrClosed}
	}

	if _, err := h.file.Seek(0, io.SeekStart); err != nil {
		return nil, &AccessError{Path: h.path, Err: err}
	}
	img, err := imaging.Decode(h.file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &AccessError{Path: h.path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	h.img = img
	return img, nil
}

// Close releases the underlying file. It is safe to call more than once.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.file.Close()
}

// Info contains metadata about an opened image file.
type Info struct {
	// Width is the image width in pixels, as declared by the header.
	Width int `json:"width"`

	// Height is the image height in pixels, as declared by the header.
	Height int `json:"height"`

	// Format is the name of the decoder that recognized the file
	// ("png", "jpeg", "gif", "bmp", "tiff", "webp").
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info returns the header metadata read by Open. It does not decode pixels.
//
// Unlike a lookup by extension, Format reflects the actual file contents, so a
// PNG saved as "scan.jpg" reports "png".
func (h *Handle) Info() Info {
	return Info{
		Width:         h.config.Width,
		Height:        h.config.Height,
		Format:        h.format,
		FileSizeBytes: h.size,
	}
}
