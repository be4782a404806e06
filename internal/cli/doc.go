// Package cli implements the get-text and get-text-boxes commands.
//
// Both commands take a single image path, validate that it opens as an
// image, run the OCR engine over the path with French and English enabled and
// hardware acceleration requested, and print the detections:
//
//   - get-text (VariantRaw) prints the detection list as one value.
//   - get-text-boxes (VariantBoxes) prints one report line per detection on
//     stdout and that detection's bounding box on stderr.
//
// A path that cannot be opened or decoded exits with status 1 and prints
// nothing. Engine failures are printed with their stack trace and exit with
// status 2, as do usage errors.
package cli
