// Package annotate places every piece of text that is not part of a panel's
// own drawing: cell titles, gauge subtitles, the report header, the logo box
// and live overlay badges.
//
// Offsets are resolved once, from rules keyed by panel kind, before anything
// is drawn. The renderer treats the resulting [Layer] as read-only.
package annotate

import (
	"fmt"
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// Align is the horizontal anchor of an annotation.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// VAlign is the vertical anchor of an annotation.
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Z-orders used by the positioner. Higher draws later.
const (
	ZTitle     = 10
	ZSubtitle  = 11
	ZHeader    = 20
	ZBadge     = 30
	ZBadgeText = 31
)

// Annotation is one positioned text run in paper coordinates (y up).
type Annotation struct {
	Text     string
	X, Y     float64
	Align    Align
	VAlign   VAlign
	FontSize float64
	Color    theme.Color
	Bold     bool
	Z        int
}

// Badge is the bordered rectangle drawn beneath an overlay's text.
type Badge struct {
	Rect   layout.Rect
	Fill   theme.Color
	Stroke theme.Color
	Z      int
}

// Header is the report title block.
type Header struct {
	Title string
	X, Y  float64 // top-centre anchor
}

// LogoBox places the logo, anchored at its top centre.
type LogoBox struct {
	X, Y          float64
	Width, Height float64
}

// Rect returns the box in paper coordinates.
func (l LogoBox) Rect() layout.Rect {
	return layout.Rect{X0: l.X - l.Width/2, Y0: l.Y - l.Height, X1: l.X + l.Width/2, Y1: l.Y}
}

// Layer is everything the positioner produced, in drawing order.
type Layer struct {
	annotations []Annotation
	badges      []Badge
	logo        *LogoBox
}

// Annotations returns the text runs sorted by Z, ties in placement order.
func (l *Layer) Annotations() []Annotation { return slices.Clone(l.annotations) }

// Badges returns the overlay badges in declaration order.
func (l *Layer) Badges() []Badge { return slices.Clone(l.badges) }

// Logo returns the logo box, if the report has one.
func (l *Layer) Logo() (LogoBox, bool) {
	if l.logo == nil {
		return LogoBox{}, false
	}
	return *l.logo, true
}

// Position resolves every annotation for plan and overlays.
//
// Cell titles go first, then gauge subtitles, then overlays, and the header
// block last so that no per-title rule can move it.
func Position(plan *layout.Plan, overlays []panel.Overlay, th theme.Theme, cfg Config) (*Layer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Layer{}
	cells := plan.Cells()

	for _, c := range cells {
		if c.Title == "" {
			continue
		}
		l.annotations = append(l.annotations, Annotation{
			Text:     c.Title,
			X:        c.Rect.CenterX(),
			Y:        c.Rect.Y1 + cfg.TitleOffset(c.Kind()),
			Align:    AlignCenter,
			VAlign:   VAlignBottom,
			FontSize: th.TitleSize,
			Color:    th.Text,
			Bold:     true,
			Z:        ZTitle,
		})
	}

	for _, c := range cells {
		g, ok := c.Panel.(panel.Gauge)
		if !ok || g.Subtitle() == "" {
			continue
		}
		l.annotations = append(l.annotations, Annotation{
			Text:     g.Subtitle(),
			X:        c.Rect.CenterX(),
			Y:        c.Rect.Y1 - cfg.SubtitleGap,
			Align:    AlignCenter,
			VAlign:   VAlignTop,
			FontSize: th.FontSize,
			Color:    th.Muted,
			Z:        ZSubtitle,
		})
	}

	if err := l.placeOverlays(overlays, th, cfg.OverlayOffsets); err != nil {
		return nil, err
	}

	if err := l.placeHeader(cells, th, cfg); err != nil {
		return nil, err
	}

	slices.SortStableFunc(l.annotations, func(a, b Annotation) int { return a.Z - b.Z })
	return l, nil
}

func (l *Layer) placeHeader(cells []layout.Cell, th theme.Theme, cfg Config) error {
	top, owner := highestPanelTop(cells)

	if cfg.Header.Title != "" {
		if err := errors.ValidateText("header title", cfg.Header.Title); err != nil {
			return err
		}
		if owner != "" && cfg.Header.Y < top {
			return errors.New(errors.ErrCodeLayoutConflict,
				"header at y=%.3f sits below the top of cell %s (y=%.3f)", cfg.Header.Y, owner, top)
		}
		l.annotations = append(l.annotations, Annotation{
			Text:     cfg.Header.Title,
			X:        cfg.Header.X,
			Y:        cfg.Header.Y,
			Align:    AlignCenter,
			VAlign:   VAlignTop,
			FontSize: th.HeaderSize,
			Color:    th.Text,
			Z:        ZHeader,
		})
	}

	if cfg.Logo != nil {
		logo := *cfg.Logo
		if r := logo.Rect(); owner != "" && r.Y0 < top {
			return errors.New(errors.ErrCodeLayoutConflict,
				"logo bottom at y=%.3f sits below the top of cell %s (y=%.3f)", r.Y0, owner, top)
		}
		l.logo = &logo
	}
	return nil
}

// highestPanelTop returns the highest top edge among cells holding a panel.
func highestPanelTop(cells []layout.Cell) (float64, string) {
	var (
		top   float64
		owner string
	)
	for i, c := range cells {
		if c.Empty() || (owner != "" && c.Rect.Y1 <= top) {
			continue
		}
		top = c.Rect.Y1
		owner = cellName(i, c)
	}
	return top, owner
}

func cellName(i int, c layout.Cell) string {
	if c.Title != "" {
		return fmt.Sprintf("%d (%q)", i, c.Title)
	}
	return fmt.Sprintf("%d", i)
}
