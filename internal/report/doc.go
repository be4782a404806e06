// Package report formats OCR detections for output.
//
// Two layouts are supported:
//
//   - Raw (WriteRaw, WriteJSON): the whole detection list as one value.
//   - Box report (WriteBoxes): one line per detection on the output stream,
//     in the form "(p1-p2),(p3-p4);text;confidence", plus the bounding quad
//     on a separate diagnostic stream.
//
// ParseLine and ParseReport read the box report back, for consumers that
// drive the extractor as a subprocess.
package report
