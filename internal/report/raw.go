package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/image-text-extract/internal/ocr"
)

// WriteRaw writes all detections as a single list of (box, text, confidence)
// tuples followed by a newline:
//
//	[([[10, 20], [50, 20], [50, 40], [10, 40]], 'TEST', 0.97)]
//
// Zero detections produce "[]".
func WriteRaw(w io.Writer, dets []ocr.Detection) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('[')
	for i, d := range dets {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteByte('(')
		bw.WriteString(d.Box.String())
		bw.WriteString(", ")
		bw.WriteString(quote(d.Text))
		bw.WriteString(", ")
		bw.WriteString(FormatConfidence(d.Confidence))
		bw.WriteByte(')')
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

// WriteJSON writes detections as an indented JSON array.
func WriteJSON(w io.Writer, dets []ocr.Detection) error {
	if dets == nil {
		dets = []ocr.Detection{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dets); err != nil {
		return fmt.Errorf("failed to encode detections: %w", err)
	}
	return nil
}

// FormatConfidence renders c as the shortest decimal that round-trips,
// always with a fractional part ("1.0", "0.5", "0.9731").
func FormatConfidence(c float64) string {
	s := strconv.FormatFloat(c, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// quote renders s as a single-quoted literal. Double quotes are used instead
// when s contains a single quote and no double quote.
//
// Non-printable runes are escaped as \xNN, \uNNNN or \UNNNNNNNN depending on
// their size. Bytes that are not valid UTF-8 are written as \xNN.
func quote(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02x`, s[i])
			i++
			continue
		}
		i += size

		switch {
		case r == rune(q) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case strconv.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
