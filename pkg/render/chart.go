package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// chartPadding is the space in pixels between a cell edge and its chart.
const chartPadding = 8

// Panel axes map onto go-chart's: the panel's primary scale is drawn on the
// left, which go-chart calls its secondary axis.
const (
	leftAxis  = chart.YAxisSecondary
	rightAxis = chart.YAxisPrimary
)

// maxTicks bounds the number of labelled gridlines per axis.
const maxTicks = 6

// niceSteps are the mantissas tick spacing is rounded up to.
var niceSteps = []float64{1, 2, 2.5, 5, 10}

// ticks returns evenly spaced values covering r at a "nice" interval.
func ticks(r panel.Range) []float64 {
	raw := r.Span() / maxTicks
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag * niceSteps[len(niceSteps)-1]
	for _, m := range niceSteps {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}

	start := math.Ceil(r.Min/step) * step
	var out []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > r.Max+step*1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

// scale is a go-chart range that supplies its own ticks, so the chart never
// widens the declared axis range to fit generated ones.
type scale struct {
	*chart.ContinuousRange
	ticks []chart.Tick
}

func (s *scale) GetTicks(chart.Renderer, chart.Style, chart.ValueFormatter) []chart.Tick {
	return s.ticks
}

// valueScale covers ax.Range with labelled nice ticks.
func valueScale(ax panel.Axis) *scale {
	s := &scale{ContinuousRange: &chart.ContinuousRange{Min: ax.Range.Min, Max: ax.Range.Max}}
	for _, v := range ticks(ax.Range) {
		s.ticks = append(s.ticks, chart.Tick{Value: v, Label: escapeXML(label(v) + ax.Suffix)})
	}
	return s
}

// categoryScale puts category i at x = i, centred in a slot of width one.
func categoryScale(cats []string) *scale {
	s := &scale{ContinuousRange: &chart.ContinuousRange{Min: -0.5, Max: float64(len(cats)) - 0.5}}
	for i, c := range cats {
		s.ticks = append(s.ticks, chart.Tick{Value: float64(i), Label: escapeXML(c)})
	}
	return s
}

// chartColor converts a validated theme colour. go-chart knows few colour
// names, so names resolve through the full CSS table.
func chartColor(c theme.Color) drawing.Color {
	if rgba, ok := colornames.Map[string(c)]; ok {
		return drawing.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
	}
	return drawing.ParseColor(string(c))
}

// palette colours go-chart's frame from the theme. Series colours come from
// series, falling back to the ring segment colours.
type palette struct {
	th     theme.Theme
	series []drawing.Color
}

func (p palette) BackgroundColor() drawing.Color       { return chartColor(p.th.Background) }
func (p palette) BackgroundStrokeColor() drawing.Color { return chartColor(p.th.Background) }
func (p palette) CanvasColor() drawing.Color           { return chartColor(p.th.Background) }
func (p palette) CanvasStrokeColor() drawing.Color     { return chartColor(p.th.Background) }
func (p palette) AxisStrokeColor() drawing.Color       { return chartColor(p.th.Muted) }
func (p palette) TextColor() drawing.Color             { return chartColor(p.th.Muted) }

func (p palette) GetSeriesColor(i int) drawing.Color {
	if i < len(p.series) {
		return p.series[i]
	}
	return chartColor(p.th.SegmentColor(i))
}

// axisFrame draws nothing. go-chart only measures its secondary axis when a
// series is mapped to it, and the panel's primary axis lives there.
type axisFrame struct{}

func (axisFrame) GetName() string           { return "" }
func (axisFrame) GetYAxis() chart.YAxisType { return leftAxis }
func (axisFrame) GetStyle() chart.Style     { return chart.Style{} }
func (axisFrame) Validate() error           { return nil }

func (axisFrame) Render(chart.Renderer, chart.Box, chart.Range, chart.Range, chart.Style) {
}

func textStyleFor(th theme.Theme, c theme.Color) chart.Style {
	return chart.Style{FontColor: chartColor(c), FontSize: th.FontSize}
}

// cartesian returns a chart with categories along x and ax on the left.
// The right axis is hidden until a caller gives it a secondary scale.
func cartesian(b box, cats []string, ax panel.Axis, th theme.Theme) chart.Chart {
	w, h := chartSize(b)
	pad := chart.Box{Top: chartPadding, Right: chartPadding, Bottom: chartPadding, Left: chartPadding}
	if ax.Title != "" {
		// go-chart does not reserve room for a left axis title.
		pad.Left += int(th.FontSize) + chart.DefaultYAxisMargin
	}

	axisStyle := textStyleFor(th, th.Muted)
	axisStyle.StrokeColor = chartColor(th.Muted)
	axisStyle.StrokeWidth = 1
	grid := chart.Style{StrokeColor: chartColor(th.Grid), StrokeWidth: 1}

	return chart.Chart{
		Width:        w,
		Height:       h,
		DPI:          72,
		ColorPalette: palette{th: th},
		Background:   chart.Style{Padding: pad},
		XAxis: chart.XAxis{
			Style:          axisStyle,
			Range:          categoryScale(cats),
			GridMajorStyle: chart.Hidden(),
			GridMinorStyle: chart.Hidden(),
		},
		YAxisSecondary: chart.YAxis{
			Name:           escapeXML(ax.Title),
			NameStyle:      textStyleFor(th, th.Text),
			Style:          axisStyle,
			Range:          valueScale(ax),
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		YAxis: chart.YAxis{
			Style:          chart.Hidden(),
			Range:          valueScale(ax),
			GridMajorStyle: chart.Hidden(),
			GridMinorStyle: chart.Hidden(),
		},
	}
}

// secondaryAxis shows ax on the right of a cartesian chart.
func secondaryAxis(ax panel.Axis, th theme.Theme) chart.YAxis {
	st := textStyleFor(th, th.Muted)
	st.StrokeColor = chartColor(th.Muted)
	st.StrokeWidth = 1
	return chart.YAxis{
		Name:           escapeXML(ax.Title),
		NameStyle:      textStyleFor(th, th.Text),
		Style:          st,
		Range:          valueScale(ax),
		GridMajorStyle: chart.Hidden(),
		GridMinorStyle: chart.Hidden(),
	}
}

func legend(ch *chart.Chart, th theme.Theme) chart.Renderable {
	st := textStyleFor(th, th.Text)
	st.FillColor = chartColor(th.Background)
	st.StrokeColor = chartColor(th.Muted)
	st.StrokeWidth = 1
	return chart.Legend(ch, st)
}

// dashes maps a line dash to a stroke-dasharray scaled by width.
func dashes(d panel.Dash, width float64) []float64 {
	switch d {
	case panel.DashDash:
		return []float64{width * 3, width * 2}
	case panel.DashDot:
		return []float64{width, width * 1.5}
	}
	return nil
}

// run is a stretch of consecutive present points.
type run struct {
	xs, ys []float64
}

// runs splits values at absent points so a gap is never bridged. Values are
// clamped to r.
func runs(values []metrics.Value, r panel.Range) []run {
	var out []run
	open := false
	for i, v := range values {
		y, ok := v.Get()
		if !ok {
			open = false
			continue
		}
		if !open {
			out = append(out, run{})
			open = true
		}
		cur := &out[len(out)-1]
		cur.xs = append(cur.xs, float64(i))
		cur.ys = append(cur.ys, min(max(y, r.Min), r.Max))
	}
	return out
}

func chartSize(b box) (int, int) {
	return max(1, int(math.Round(b.w))), max(1, int(math.Round(b.h)))
}

// embedChart renders a chart and writes it into buf as a nested <svg>
// covering b.
func embedChart(buf *bytes.Buffer, b box, kind panel.Kind, render func(chart.RendererProvider, io.Writer) error) error {
	var out bytes.Buffer
	if err := render(chart.SVG, &out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "draw %s chart", kind)
	}
	svg := out.Bytes()
	vb := bytes.Index(svg, []byte("viewBox="))
	if !bytes.HasPrefix(svg, []byte("<svg ")) || vb < 0 {
		return errors.New(errors.ErrCodeInternal, "%s chart output has no svg root", kind)
	}
	w, h := chartSize(b)
	fmt.Fprintf(buf, `  <svg class="chart chart-%s" x="%s" y="%s" width="%d" height="%d" `, kind, num(b.x), num(b.y), w, h)
	buf.Write(bytes.TrimSpace(svg[vb:]))
	buf.WriteByte('\n')
	return nil
}
