package panel

import (
	"math"
	"testing"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/theme"
)

func wantInvalidPanel(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, errors.ErrCodeInvalidPanel) {
		t.Fatalf("error = %v, want INVALID_PANEL", err)
	}
}

func TestNewGauge(t *testing.T) {
	g, err := NewGauge(GaugeSpec{Value: 65, Target: 95, Delta: metrics.Delta(65, 95), Unit: metrics.UnitPercent})
	if err != nil {
		t.Fatalf("NewGauge() error: %v", err)
	}
	if g.Kind() != KindGauge {
		t.Errorf("Kind() = %v, want gauge", g.Kind())
	}
	if g.Value() != 65 || g.Target() != 95 || g.Delta() != 30 {
		t.Errorf("gauge = %v/%v/%v, want 65/95/30", g.Value(), g.Target(), g.Delta())
	}
	if g.Axis() != PercentRange {
		t.Errorf("Axis() = %v, want [0,100]", g.Axis())
	}
}

func TestNewGaugeErrors(t *testing.T) {
	tests := []struct {
		name string
		spec GaugeSpec
	}{
		{"value above range", GaugeSpec{Value: 120, Target: 95, Delta: -25, Unit: metrics.UnitPercent}},
		{"target below range", GaugeSpec{Value: 10, Target: -5, Delta: -15, Unit: metrics.UnitPercent}},
		{"delta mismatch", GaugeSpec{Value: 65, Target: 95, Delta: 0, Unit: metrics.UnitPercent}},
		{"count without axis", GaugeSpec{Value: 5, Target: 10, Delta: 5, Unit: metrics.UnitCount}},
		{"empty axis", GaugeSpec{Value: 5, Target: 5, Delta: 0, Unit: metrics.UnitCount, Axis: &Range{Min: 10, Max: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGauge(tt.spec)
			wantInvalidPanel(t, err)
		})
	}
}

func TestNewGaugeCountAxis(t *testing.T) {
	g, err := NewGauge(GaugeSpec{Value: 28, Target: 10, Delta: metrics.Delta(28, 10), Unit: metrics.UnitCount, Axis: &Range{Max: 60}})
	if err != nil {
		t.Fatalf("NewGauge() error: %v", err)
	}
	if g.Delta() != -18 {
		t.Errorf("Delta() = %v, want -18", g.Delta())
	}
}

func weeks() []string {
	return []string{"3mo ago", "2mo ago", "1mo ago", "Current", "+1mo", "+2mo", "+3mo"}
}

func TestNewTimeSeries(t *testing.T) {
	ts, err := NewTimeSeries(TimeSeriesSpec{
		Categories: weeks(),
		Series: []Series{
			{Name: "% Within SLA", Values: metrics.Values(58, 62, 65, 72, 78, 85, 90)},
			{Name: "Weekly ticket volume", Values: metrics.Values(52, 44, 36, 28, 20, 14, 8), Secondary: true,
				Style: LineStyle{Role: theme.RoleText, Dash: DashDash}},
		},
		Target:        &ReferenceLine{Name: "SLA Target", Values: []float64{90, 90, 90, 90, 90, 90, 90}},
		Primary:       Axis{Title: "% Within SLA", Range: PercentRange},
		SecondaryAxis: &Axis{Title: "Weekly ticket volume", Range: Range{Max: 60}},
	})
	if err != nil {
		t.Fatalf("NewTimeSeries() error: %v", err)
	}
	if len(ts.Series()) != 2 {
		t.Errorf("Series() len = %d, want 2", len(ts.Series()))
	}
	if _, ok := ts.SecondaryAxis(); !ok {
		t.Error("SecondaryAxis() missing")
	}
	if line, ok := ts.Target(); !ok || len(line.Values) != 7 {
		t.Errorf("Target() = %v, %v", line, ok)
	}
}

func TestNewTimeSeriesLengthMismatch(t *testing.T) {
	_, err := NewTimeSeries(TimeSeriesSpec{
		Categories: weeks(),
		Series:     []Series{{Name: "short", Values: metrics.Values(1, 2, 3, 4, 5, 6)}},
		Primary:    Axis{Range: PercentRange},
	})
	wantInvalidPanel(t, err)
}

func TestNewTimeSeriesErrors(t *testing.T) {
	seven := metrics.Values(1, 2, 3, 4, 5, 6, 7)
	tests := []struct {
		name string
		spec TimeSeriesSpec
	}{
		{"no categories", TimeSeriesSpec{Series: []Series{{Name: "a"}}, Primary: Axis{Range: PercentRange}}},
		{"no series", TimeSeriesSpec{Categories: weeks(), Primary: Axis{Range: PercentRange}}},
		{"secondary without axis", TimeSeriesSpec{
			Categories: weeks(),
			Series:     []Series{{Name: "a", Values: seven, Secondary: true}},
			Primary:    Axis{Range: PercentRange},
		}},
		{"short target line", TimeSeriesSpec{
			Categories: weeks(),
			Series:     []Series{{Name: "a", Values: seven}},
			Target:     &ReferenceLine{Name: "t", Values: []float64{15}},
			Primary:    Axis{Range: PercentRange},
		}},
		{"bad axis", TimeSeriesSpec{
			Categories: weeks(),
			Series:     []Series{{Name: "a", Values: seven}},
			Primary:    Axis{Range: Range{Min: 40, Max: 0}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeSeries(tt.spec)
			wantInvalidPanel(t, err)
		})
	}
}

func TestTimeSeriesKeepsGaps(t *testing.T) {
	values := []metrics.Value{metrics.Present(10), metrics.Present(16), metrics.Present(6), metrics.Present(3),
		metrics.Absent(), metrics.Absent(), metrics.Absent()}
	ts, err := NewTimeSeries(TimeSeriesSpec{
		Categories: weeks(),
		Series:     []Series{{Name: "DAU / MAU (actual)", Values: values}},
		Primary:    Axis{Range: Range{Max: 40}},
	})
	if err != nil {
		t.Fatalf("NewTimeSeries() error: %v", err)
	}

	got := ts.Series()[0].Values
	if !got[3].IsPresent() || got[4].IsPresent() {
		t.Errorf("gaps not preserved: %v", got)
	}

	// Mutating the returned copy must not affect the panel.
	got[0] = metrics.Absent()
	if !ts.Series()[0].Values[0].IsPresent() {
		t.Error("panel mutated through Series() result")
	}
}

func TestNewRing(t *testing.T) {
	if _, err := NewRing([]Segment{{"AI Assistant", 28}, {"Search bar", 71}}, DefaultHole); err != nil {
		t.Errorf("NewRing([28 71]) error: %v (sum 99 is within tolerance)", err)
	}

	_, err := NewRing([]Segment{{"AI Assistant", 28}, {"Search bar", 60}}, DefaultHole)
	wantInvalidPanel(t, err)
}

func TestNewRingErrors(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		hole     float64
	}{
		{"empty", nil, 0.5},
		{"negative", []Segment{{"a", 110}, {"b", -10}}, 0.5},
		{"hole too big", []Segment{{"a", 100}}, 1},
		{"hole negative", []Segment{{"a", 100}}, -0.1},
		{"hole NaN", []Segment{{"a", 100}}, math.NaN()},
		{"segment NaN", []Segment{{"a", 100}, {"b", math.NaN()}}, 0.5},
		{"segment Inf", []Segment{{"a", math.Inf(1)}}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRing(tt.segments, tt.hole)
			wantInvalidPanel(t, err)
		})
	}
}

func TestRingKeepsDeclaredOrder(t *testing.T) {
	r, err := NewRing([]Segment{{"small", 10}, {"large", 90}}, 0.65)
	if err != nil {
		t.Fatalf("NewRing() error: %v", err)
	}
	segs := r.Segments()
	if segs[0].Label != "small" || segs[1].Label != "large" {
		t.Errorf("Segments() = %v, want declared order", segs)
	}
}

func TestNewComparison(t *testing.T) {
	c, err := NewComparison(ComparisonSpec{
		Categories: []string{"A", "B"},
		Current:    []float64{80, 70},
		Target:     []float64{95, 90},
		Axis:       Axis{Range: PercentRange},
	})
	if err != nil {
		t.Fatalf("NewComparison() error: %v", err)
	}
	if c.Kind() != KindComparison || len(c.Categories()) != 2 {
		t.Errorf("unexpected comparison: %v %v", c.Kind(), c.Categories())
	}

	_, err = NewComparison(ComparisonSpec{
		Categories: []string{"A", "B"},
		Current:    []float64{80},
		Target:     []float64{95, 90},
		Axis:       Axis{Range: PercentRange},
	})
	wantInvalidPanel(t, err)
}

func TestNewOverlay(t *testing.T) {
	at := Placement{X: 0.78, Y: 1.08, Width: 0.22, Height: 0.05}
	o, err := NewOverlay("LIVE", []Reading{{"WAU", 196, metrics.UnitCount}, {"DAU", 48, metrics.UnitCount}}, at)
	if err != nil {
		t.Fatalf("NewOverlay() error: %v", err)
	}
	if o.Kind() != KindOverlay || len(o.Readings()) != 2 {
		t.Errorf("unexpected overlay: %v %v", o.Kind(), o.Readings())
	}

	_, err = NewOverlay("", []Reading{{"WAU", 196, metrics.UnitCount}}, at)
	wantInvalidPanel(t, err)
	_, err = NewOverlay("LIVE", nil, at)
	wantInvalidPanel(t, err)
	_, err = NewOverlay("LIVE", []Reading{{"WAU", 196, metrics.UnitCount}}, Placement{X: 0.5, Y: 1})
	wantInvalidPanel(t, err)
}

func TestNewOverlayRejectsNonFinitePlacement(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	readings := []Reading{{"DAU", 48, metrics.UnitCount}}
	tests := []struct {
		name     string
		at       Placement
		readings []Reading
	}{
		{"width NaN", Placement{X: 0.5, Y: 1, Width: nan, Height: 0.05}, readings},
		{"height NaN", Placement{X: 0.5, Y: 1, Width: 0.2, Height: nan}, readings},
		{"width Inf", Placement{X: 0.5, Y: 1, Width: inf, Height: 0.05}, readings},
		{"x NaN", Placement{X: nan, Y: 1, Width: 0.2, Height: 0.05}, readings},
		{"y Inf", Placement{X: 0.5, Y: -inf, Width: 0.2, Height: 0.05}, readings},
		{"reading NaN", Placement{X: 0.5, Y: 1, Width: 0.2, Height: 0.05}, []Reading{{"DAU", nan, metrics.UnitCount}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOverlay("LIVE", tt.readings, tt.at)
			wantInvalidPanel(t, err)
		})
	}
}

func TestRangeFraction(t *testing.T) {
	r := Range{Min: 0, Max: 60}
	if got := r.Fraction(30); got != 0.5 {
		t.Errorf("Fraction(30) = %v, want 0.5", got)
	}
	if got := r.Fraction(90); got != 1 {
		t.Errorf("Fraction(90) = %v, want 1 (clamped)", got)
	}
}
