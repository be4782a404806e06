// Package imaging opens image files for text extraction and prepares their
// pixels for the OCR engine.
//
// # Opening Images
//
// Open validates a path by reading only the image header, the same way an
// image viewer checks a file before showing it. The returned Handle keeps the
// file open until Close is called; pixels are decoded on demand by
// Handle.Image, with EXIF orientation applied.
//
// Supported formats: PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Error Handling
//
// Every error returned by Open (and by Handle.Image) is an *AccessError and
// matches ErrUnreadable with errors.Is:
//   - File does not exist or cannot be read
//   - Path is a directory
//   - Header is not a known image format
//
// # Preprocessing
//
// Preprocess is optional. It turns the image into grayscale, upscales small
// scans, boosts contrast, inverts light-on-dark images and can binarize.
// These steps help Tesseract on photos and screenshots but are not needed for
// clean scans.
package imaging
