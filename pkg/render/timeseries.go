package render

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

const defaultLineWidth = 2

func drawTimeSeries(buf *bytes.Buffer, b box, ts panel.TimeSeries, th theme.Theme) error {
	cats := ts.Categories()
	primary := ts.PrimaryAxis()
	ch := cartesian(b, cats, primary, th)
	secondary, hasSecondary := ts.SecondaryAxis()
	if hasSecondary {
		ch.YAxis = secondaryAxis(secondary, th)
	}

	series := []chart.Series{axisFrame{}}

	if target, ok := ts.Target(); ok {
		xs := make([]float64, len(target.Values))
		ys := make([]float64, len(target.Values))
		for i, v := range target.Values {
			xs[i] = float64(i)
			ys[i] = min(max(v, primary.Range.Min), primary.Range.Max)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    escapeXML(target.Name),
			YAxis:   leftAxis,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(th.Alert, 2, panel.DashDot, false),
		})
	}

	for _, s := range ts.Series() {
		ax, yAxis := primary, leftAxis
		if s.Secondary {
			ax, yAxis = secondary, rightAxis
		}
		width := s.Style.Width
		if width == 0 {
			width = defaultLineWidth
		}
		style := lineStyle(th.Resolve(s.Style.Role), width, s.Style.Dash, s.Style.Markers)

		// Only the first run carries the name, so a gapped series has one
		// legend entry.
		for i, r := range runs(s.Values, ax.Range) {
			name := ""
			if i == 0 {
				name = escapeXML(s.Name)
			}
			series = append(series, chart.ContinuousSeries{
				Name:    name,
				YAxis:   yAxis,
				XValues: r.xs,
				YValues: r.ys,
				Style:   style,
			})
		}
	}

	ch.Series = series
	if ts.ShowLegend() {
		ch.Elements = []chart.Renderable{legend(&ch, th)}
	}
	return embedChart(buf, b, panel.KindTimeSeries, ch.Render)
}

func lineStyle(c theme.Color, width float64, d panel.Dash, markers bool) chart.Style {
	st := chart.Style{
		StrokeColor:     chartColor(c),
		StrokeWidth:     width,
		StrokeDashArray: dashes(d, width),
	}
	if markers {
		st.DotColor = chartColor(c)
		st.DotWidth = width + 2
	}
	return st
}
