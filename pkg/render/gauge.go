package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

const (
	gaugeBand      = 0.28 // band thickness as a fraction of the radius
	gaugeThreshold = 0.75 // threshold marker length as a fraction of the band
	gaugeTicks     = 5
)

// dial is the geometry of a half-circle gauge.
type dial struct {
	cx, cy, r float64
}

// point returns the position at fraction f along the dial, left to right, at radius rr.
func (d dial) point(f, rr float64) (float64, float64) {
	theta := math.Pi * (1 - f)
	return d.cx + rr*math.Cos(theta), d.cy - rr*math.Sin(theta)
}

// band writes a stroked arc between fractions f0 and f1.
func (d dial) band(buf *bytes.Buffer, f0, f1 float64, color theme.Color, class string) {
	if f1 <= f0 {
		return
	}
	rr := d.r * (1 - gaugeBand/2)
	x0, y0 := d.point(f0, rr)
	x1, y1 := d.point(f1, rr)
	fmt.Fprintf(buf, `  <path class="%s" d="M%s,%s A%s,%s 0 0 1 %s,%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		class, num(x0), num(y0), num(rr), num(rr), num(x1), num(y1), color, num(d.r*gaugeBand))
}

func drawGauge(buf *bytes.Buffer, b box, g panel.Gauge, th theme.Theme) {
	ax := g.Axis()
	suffix := g.Unit().Suffix()

	d := dial{cx: b.centerX(), r: min(b.w*0.4, b.h*0.72)}
	d.cy = b.y + b.h*0.2 + d.r

	value, target := ax.Fraction(g.Value()), ax.Fraction(g.Target())

	d.band(buf, 0, 1, th.Surface, "gauge-bg")
	d.band(buf, 0, value, th.Accent, "gauge-progress")
	d.band(buf, value, target, th.Track, "gauge-remaining")

	// border along the outer edge
	x0, y0 := d.point(0, d.r)
	x1, y1 := d.point(1, d.r)
	fmt.Fprintf(buf, `  <path d="M%s,%s A%s,%s 0 0 1 %s,%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		num(x0), num(y0), num(d.r), num(d.r), num(x1), num(y1), th.Muted)

	inner := d.r * (1 - gaugeBand/2 - gaugeBand*gaugeThreshold/2)
	outer := d.r * (1 - gaugeBand/2 + gaugeBand*gaugeThreshold/2)
	tx0, ty0 := d.point(target, inner)
	tx1, ty1 := d.point(target, outer)
	fmt.Fprintf(buf, `  <line class="gauge-threshold" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="4"/>`+"\n",
		num(tx0), num(ty0), num(tx1), num(ty1), th.Alert)

	tick := textStyle{size: th.FontSize, color: th.Muted, anchor: "middle", baseline: "middle", class: "tick"}
	for i := 0; i <= gaugeTicks; i++ {
		f := float64(i) / gaugeTicks
		x, y := d.point(f, d.r+14)
		writeText(buf, x, y, label(ax.Min+f*ax.Span())+suffix, tick)
	}

	writeText(buf, d.cx, d.cy, label(g.Value())+suffix, textStyle{
		size: th.ValueSize, color: th.Text, anchor: "middle", class: "gauge-value",
	})

	// A positive delta is the gap still to close; zero or negative means the
	// target has been reached.
	arrow, color := "▲", th.Accent
	if g.Delta() > 0 {
		arrow, color = "▼", th.Alert
	}
	writeText(buf, d.cx, d.cy-th.ValueSize*1.1, arrow+label(math.Abs(g.Delta())), textStyle{
		size: th.ValueSize * 0.5, color: color, anchor: "middle", class: "gauge-delta",
	})
}
