// Package theme holds the brand palette and typography shared by every
// dashboard component.
//
// A [Theme] is a plain value. Components receive it as an argument and copy
// it; nothing in okrdash keeps a package-level mutable palette. Use
// [Default] for the Lions Intelligence brand and [Theme.With] to derive a
// variant from descriptor overrides.
package theme

import (
	"regexp"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// Color is a CSS color: "#rgb", "#rrggbb" or a named color.
type Color string

// Theme is the immutable palette and typography for one report.
type Theme struct {
	Background Color // page and plot background
	Accent     Color // brand gold: progress, targets, primary series
	Text       Color // brand white: titles, neutral series
	Muted      Color // brand gray: ticks, borders, gridlines
	Surface    Color // gauge dial background
	Track      Color // gauge "remaining" step
	Alert      Color // threshold markers and target lines
	Grid       Color // axis gridlines

	// Palette colours ring segments after the first, which always uses Accent.
	Palette []Color

	FontFamily string
	FontSize   float64 // base font size in px
	TitleSize  float64 // panel title size in px
	HeaderSize float64 // report title size in px
	ValueSize  float64 // gauge readout size in px
}

// Default returns the Lions Intelligence brand theme.
func Default() Theme {
	return Theme{
		Background: "#0a0a0a",
		Accent:     "#D4A84B",
		Text:       "#ffffff",
		Muted:      "#6b7280",
		Surface:    "#1a1a1a",
		Track:      "#2a2a2a",
		Alert:      "red",
		Grid:       "#283442",
		Palette:    []Color{"#222222", "#3a3a3a", "#525252", "#6b7280"},
		FontFamily: "Segoe UI, system-ui, sans-serif",
		FontSize:   11,
		TitleSize:  14,
		HeaderSize: 28,
		ValueSize:  36,
	}
}

// Overrides lists theme fields a report descriptor may replace.
// Zero values leave the base theme untouched.
type Overrides struct {
	Background string   `toml:"background" yaml:"background" json:"background,omitempty"`
	Accent     string   `toml:"accent" yaml:"accent" json:"accent,omitempty"`
	Text       string   `toml:"text" yaml:"text" json:"text,omitempty"`
	Muted      string   `toml:"muted" yaml:"muted" json:"muted,omitempty"`
	Alert      string   `toml:"alert" yaml:"alert" json:"alert,omitempty"`
	Palette    []string `toml:"palette" yaml:"palette" json:"palette,omitempty"`
	FontFamily string   `toml:"font_family" yaml:"font_family" json:"font_family,omitempty"`
	FontSize   float64  `toml:"font_size" yaml:"font_size" json:"font_size,omitempty"`
	TitleSize  float64  `toml:"title_size" yaml:"title_size" json:"title_size,omitempty"`
	HeaderSize float64  `toml:"header_size" yaml:"header_size" json:"header_size,omitempty"`
}

// With returns a copy of t with the non-zero overrides applied.
// The result is validated; t itself is never modified.
func (t Theme) With(o Overrides) (Theme, error) {
	out := t
	out.Palette = append([]Color(nil), t.Palette...)

	set := func(dst *Color, v string) {
		if v != "" {
			*dst = Color(v)
		}
	}
	set(&out.Background, o.Background)
	set(&out.Accent, o.Accent)
	set(&out.Text, o.Text)
	set(&out.Muted, o.Muted)
	set(&out.Alert, o.Alert)

	if len(o.Palette) > 0 {
		out.Palette = make([]Color, len(o.Palette))
		for i, c := range o.Palette {
			out.Palette[i] = Color(c)
		}
	}
	if o.FontFamily != "" {
		out.FontFamily = o.FontFamily
	}
	if o.FontSize > 0 {
		out.FontSize = o.FontSize
	}
	if o.TitleSize > 0 {
		out.TitleSize = o.TitleSize
	}
	if o.HeaderSize > 0 {
		out.HeaderSize = o.HeaderSize
	}

	if err := out.Validate(); err != nil {
		return Theme{}, err
	}
	return out, nil
}

// SegmentColor returns the fill for the i-th ring segment.
func (t Theme) SegmentColor(i int) Color {
	if i == 0 || len(t.Palette) == 0 {
		return t.Accent
	}
	return t.Palette[(i-1)%len(t.Palette)]
}

// Validate checks every color and size in the theme.
func (t Theme) Validate() error {
	named := map[string]Color{
		"background": t.Background,
		"accent":     t.Accent,
		"text":       t.Text,
		"muted":      t.Muted,
		"surface":    t.Surface,
		"track":      t.Track,
		"alert":      t.Alert,
		"grid":       t.Grid,
	}
	for _, field := range []string{"background", "accent", "text", "muted", "surface", "track", "alert", "grid"} {
		if err := ValidateColor(named[field]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "theme %s", field)
		}
	}
	for i, c := range t.Palette {
		if err := ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "theme palette[%d]", i)
		}
	}
	if t.FontFamily != "" && !fontFamilyRegex.MatchString(t.FontFamily) {
		return errors.New(errors.ErrCodeInvalidInput, "theme font family %q may only hold names, quotes, commas and spaces", t.FontFamily)
	}
	if t.FontSize <= 0 || t.TitleSize <= 0 || t.HeaderSize <= 0 || t.ValueSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "theme font sizes must be positive")
	}
	return nil
}

var (
	hexColorRegex   = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	namedColorRegex = regexp.MustCompile(`^[a-z]{3,20}$`)

	// fontFamilyRegex admits a CSS font stack such as `'Segoe UI', sans-serif`.
	fontFamilyRegex = regexp.MustCompile(`^[A-Za-z0-9 ,'_-]+$`)
)

// ValidateColor accepts "#rgb", "#rrggbb" and lower-case CSS color names.
func ValidateColor(c Color) error {
	s := string(c)
	if hexColorRegex.MatchString(s) || namedColorRegex.MatchString(s) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid color %q", s)
}
