package annotate

import (
	"math"
	"strconv"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

const separator = "|"

// piece is one text run inside a badge.
type piece struct {
	text  string
	color theme.Color
	bold  bool
}

// overlayPieces lays out label, value, separator, value, ... left to right.
func overlayPieces(o panel.Overlay, th theme.Theme) []piece {
	ps := []piece{{text: o.Label(), color: th.Muted}}
	for i, r := range o.Readings() {
		if i > 0 {
			ps = append(ps, piece{text: separator, color: th.Muted})
		}
		ps = append(ps, piece{text: FormatReading(r), color: th.Accent, bold: true})
	}
	return ps
}

// FormatReading renders a reading as "48", "22.6%" or "DAU 48". Values keep
// at most one decimal.
func FormatReading(r panel.Reading) string {
	s := strconv.FormatFloat(math.Round(r.Value*10)/10, 'f', -1, 64) + r.Unit.Suffix()
	if r.Label != "" {
		s = r.Label + " " + s
	}
	return s
}

func (l *Layer) placeOverlays(overlays []panel.Overlay, th theme.Theme, offsets []float64) error {
	placed := make([]layout.Rect, 0, len(overlays))
	for i, o := range overlays {
		at := o.Placement()
		rect := layout.Rect{X0: at.X, Y0: at.Y - at.Height, X1: at.X + at.Width, Y1: at.Y}

		for j, prev := range placed {
			if rect.Overlaps(prev) {
				return errors.New(errors.ErrCodeLayoutConflict,
					"overlay %d (%q) intersects overlay %d", i, o.Label(), j)
			}
		}
		placed = append(placed, rect)

		pieces := overlayPieces(o, th)
		if len(pieces) > len(offsets) {
			return errors.New(errors.ErrCodeLayoutConflict,
				"overlay %d (%q) has %d text pieces but only %d offsets", i, o.Label(), len(pieces), len(offsets))
		}

		l.badges = append(l.badges, Badge{Rect: rect, Fill: th.Surface, Stroke: th.Accent, Z: ZBadge})
		for k, p := range pieces {
			l.annotations = append(l.annotations, Annotation{
				Text:     p.text,
				X:        rect.X0 + offsets[k]*rect.Width(),
				Y:        rect.CenterY(),
				Align:    AlignLeft,
				VAlign:   VAlignMiddle,
				FontSize: th.FontSize + 2,
				Color:    p.color,
				Bold:     p.bold,
				Z:        ZBadgeText,
			})
		}
	}
	return nil
}
