package render

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// barFill is the share of a category slot taken by its two bars.
const barFill = 0.7

// barSeries draws one bar per category. The current bars sit left of the
// category centre and the target bars right of it.
type barSeries struct {
	name   string
	values []float64
	r      panel.Range
	right  bool
	style  chart.Style
}

func (s barSeries) GetName() string           { return s.name }
func (s barSeries) GetYAxis() chart.YAxisType { return leftAxis }
func (s barSeries) GetStyle() chart.Style     { return s.style }
func (s barSeries) Validate() error           { return nil }

func (s barSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	slot := xr.Translate(1) - xr.Translate(0)
	bw := max(1, int(float64(slot)*barFill/2))
	base := cb.Bottom - yr.Translate(s.r.Min)
	fill := chart.Style{FillColor: s.style.StrokeColor}
	for i, v := range s.values {
		cx := cb.Left + xr.Translate(float64(i))
		left := cx - bw
		if s.right {
			left = cx
		}
		top := cb.Bottom - yr.Translate(min(max(v, s.r.Min), s.r.Max))
		chart.Draw.Box(r, chart.Box{Top: min(top, base), Bottom: max(top, base), Left: left, Right: left + bw}, fill)
	}
}

func drawComparison(buf *bytes.Buffer, b box, c panel.Comparison, th theme.Theme) error {
	ax := c.Axis()
	ch := cartesian(b, c.Categories(), ax, th)
	ch.Series = []chart.Series{
		barSeries{
			name:   escapeXML(c.CurrentLabel()),
			values: c.Current(),
			r:      ax.Range,
			style:  chart.Style{StrokeColor: chartColor(th.Text), StrokeWidth: 3},
		},
		barSeries{
			name:   escapeXML(c.TargetLabel()),
			values: c.Target(),
			r:      ax.Range,
			right:  true,
			style:  chart.Style{StrokeColor: chartColor(th.Accent), StrokeWidth: 3},
		},
	}
	ch.Elements = []chart.Renderable{legend(&ch, th)}
	return embedChart(buf, b, panel.KindComparison, ch.Render)
}
