package render

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// ringLabelGap is the distance in pixels between the ring and its outside labels.
const ringLabelGap = 14

// ringMargin is the share of the cell's short side left around the ring for
// its labels.
const ringMargin = 0.1

func drawRing(buf *bytes.Buffer, b box, r panel.Ring, th theme.Theme) error {
	segs := r.Segments()
	var total float64
	for _, s := range segs {
		total += s.Value
	}

	// go-chart drops zero slices before colouring, so the palette lists only
	// the colours of the slices it will draw.
	var values []chart.Value
	var colors []drawing.Color
	for i, s := range segs {
		if s.Value <= 0 {
			continue
		}
		c := chartColor(th.SegmentColor(i))
		colors = append(colors, c)
		values = append(values, chart.Value{Value: s.Value, Style: chart.Style{FillColor: c}})
	}

	w, h := chartSize(b)
	pad := int(float64(min(w, h)) * ringMargin)
	pie := chart.PieChart{
		Width:        w,
		Height:       h,
		DPI:          72,
		ColorPalette: palette{th: th, series: colors},
		Background:   chart.Style{Padding: chart.Box{Top: pad, Right: pad, Bottom: pad, Left: pad}},
		SliceStyle:   chart.Style{StrokeColor: chartColor(th.Text), StrokeWidth: 1},
		Values:       values,
		Elements: []chart.Renderable{
			ringHole(r.Hole(), chartColor(th.Background)),
			ringLabels(segs, total, th),
		},
	}
	return embedChart(buf, b, panel.KindRing, pie.Render)
}

// ringHole covers the centre of the pie, turning it into a ring with an
// inner radius of hole times the outer one.
func ringHole(hole float64, bg drawing.Color) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, _ chart.Style) {
		if hole <= 0 {
			return
		}
		cx, cy := cb.Center()
		radius := float64(min(cb.Width(), cb.Height()) >> 1)
		chart.Style{FillColor: bg}.WriteToRenderer(r)
		defer r.ResetStyle()
		r.Circle(radius*hole, cx, cy)
	}
}

// ringLabels writes "Label NN%" outside each segment in declared order.
func ringLabels(segs []panel.Segment, total float64, th theme.Theme) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		cx, cy := cb.Center()
		radius := float64(min(cb.Width(), cb.Height())>>1) + ringLabelGap
		st := textStyleFor(th, th.Text)
		st.Font = defaults.Font

		var acc float64
		for _, s := range segs {
			share := s.Value / total
			angle := chart.RadianAdd(chart.PercentToRadians(acc+share/2), math.Pi/2)
			x, y := chart.CirclePoint(cx, cy, radius, angle)
			text := escapeXML(fmt.Sprintf("%s %s%%", s.Label, label(share*100)))

			tb := chart.Draw.MeasureText(r, text, st)
			switch {
			case x < cx-1:
				x -= tb.Width()
			case x <= cx+1:
				x -= tb.Width() / 2
			}
			chart.Draw.Text(r, text, x, y+tb.Height()/2, st)
			acc += share
		}
	}
}
