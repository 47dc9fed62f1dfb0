package sink

import (
	"strings"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatHTML Format = "html"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatHTML, FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ParseFormat maps a flag value to a Format. Empty means html.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatHTML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be html, svg, png, pdf or json)", s)
}

// ParseFormats parses a list of formats, dropping duplicates and keeping order.
func ParseFormats(ss []string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, s := range ss {
		f, err := ParseFormat(s)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []Format{FormatHTML}
	}
	return out, nil
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + string(f) }

// NeedsConverter reports whether the format shells out to rsvg-convert.
func (f Format) NeedsConverter() bool { return f == FormatPNG || f == FormatPDF }
