package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/image-text-extract/internal/ocr"
)

// Line is a parsed box report line.
type Line struct {
	// Segments holds the point pairs of the box field, in order.
	// Lines written by FormatLine have two: the top and bottom edges.
	Segments [][2]ocr.Point
	Text     string
	// Confidence is the confidence field as written.
	Confidence float64
}

// ParseLine parses a line produced by FormatLine.
//
// The text field is everything between the first and the last ';', so text
// that itself contains ';' survives. Negative coordinates are accepted.
func ParseLine(s string) (Line, error) {
	s = strings.TrimRight(s, "\r\n")
	first := strings.IndexByte(s, ';')
	last := strings.LastIndexByte(s, ';')
	if first < 0 || first == last {
		return Line{}, fmt.Errorf("invalid report line %q: want box;text;confidence", s)
	}

	segments, err := parseSegments(s[:first])
	if err != nil {
		return Line{}, err
	}

	conf, err := strconv.ParseFloat(strings.TrimSpace(s[last+1:]), 64)
	if err != nil {
		return Line{}, fmt.Errorf("invalid confidence in %q: %w", s, err)
	}

	return Line{
		Segments:   segments,
		Text:       s[first+1 : last],
		Confidence: conf,
	}, nil
}

// ParseReport parses every non-empty line read from r.
func ParseReport(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		line, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return lines, nil
}

// parseSegments parses "([x, y]-[x, y]),([x, y]-[x, y])".
func parseSegments(field string) ([][2]ocr.Point, error) {
	inner := strings.TrimSpace(field)
	if !strings.HasPrefix(inner, "(") || !strings.HasSuffix(inner, ")") {
		return nil, fmt.Errorf("invalid box field %q", field)
	}
	inner = inner[1 : len(inner)-1]

	groups := strings.Split(inner, "),(")
	segments := make([][2]ocr.Point, 0, len(groups))
	for _, g := range groups {
		left, right, ok := strings.Cut(g, "]-[")
		if !ok {
			return nil, fmt.Errorf("invalid point pair %q", g)
		}
		p1, err := parsePoint(left)
		if err != nil {
			return nil, err
		}
		p2, err := parsePoint(right)
		if err != nil {
			return nil, err
		}
		segments = append(segments, [2]ocr.Point{p1, p2})
	}
	return segments, nil
}

// parsePoint parses "[x, y" or "x, y]" or "[x, y]"; spaces are ignored.
func parsePoint(s string) (ocr.Point, error) {
	raw := strings.ReplaceAll(strings.Trim(s, "[]"), " ", "")
	xs, ys, ok := strings.Cut(raw, ",")
	if !ok {
		return ocr.Point{}, fmt.Errorf("invalid point %q", s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return ocr.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return ocr.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return ocr.Point{X: x, Y: y}, nil
}
