package report

import (
	"io"
	"strings"

	"github.com/ironsheep/image-text-extract/internal/ocr"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// FormatLine renders one detection as a report line (without newline):
//
//	([x1, y1]-[x2, y2]),([x3, y3]-[x4, y4]);text;confidence
//
// The first group is the top edge (top-left to top-right), the second the
// bottom edge (bottom-right to bottom-left). Line breaks in the text are
// written as spaces so that every detection stays on one line.
func FormatLine(d ocr.Detection) string {
	p := d.Box
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(p[0].String())
	b.WriteByte('-')
	b.WriteString(p[1].String())
	b.WriteString("),(")
	b.WriteString(p[2].String())
	b.WriteByte('-')
	b.WriteString(p[3].String())
	b.WriteString(");")
	b.WriteString(lineBreaks.Replace(d.Text))
	b.WriteByte(';')
	b.WriteString(FormatConfidence(d.Confidence))
	return b.String()
}

// WriteBoxes writes the box report. For every detection, in order, the
// bounding quad goes to diag and the report line to out, one line each.
func WriteBoxes(out, diag io.Writer, dets []ocr.Detection) error {
	for _, d := range dets {
		if _, err := io.WriteString(diag, d.Box.String()+"\n"); err != nil {
			return err
		}
		if _, err := io.WriteString(out, FormatLine(d)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
