package panel

import (
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// Dash is a line dash pattern.
type Dash string

const (
	DashSolid Dash = "solid"
	DashDash  Dash = "dash"
	DashDot   Dash = "dot"
)

// ParseDash maps a descriptor string to a Dash. Empty means solid.
func ParseDash(s string) (Dash, error) {
	switch Dash(s) {
	case "":
		return DashSolid, nil
	case DashSolid, DashDash, DashDot:
		return Dash(s), nil
	}
	return "", invalid("unknown dash %q (must be solid, dash or dot)", s)
}

// LineStyle controls how one series is stroked.
type LineStyle struct {
	Role    theme.Role
	Dash    Dash
	Width   float64
	Markers bool
}

// Series is one named line. Absent points break the line.
type Series struct {
	Name      string
	Values    []metrics.Value
	Secondary bool // plot against the secondary axis
	Style     LineStyle
}

// ReferenceLine is a horizontal target drawn across every category.
type ReferenceLine struct {
	Name   string
	Values []float64
}

// TimeSeriesSpec is the input to [NewTimeSeries].
type TimeSeriesSpec struct {
	Categories    []string
	Series        []Series
	Target        *ReferenceLine
	Primary       Axis
	SecondaryAxis *Axis
	ShowLegend    bool
}

// TimeSeries plots one or more series over ordered categories.
type TimeSeries struct {
	spec TimeSeriesSpec
}

// NewTimeSeries validates s: every series and the target line must have one
// point per category, and secondary series need a secondary axis.
func NewTimeSeries(s TimeSeriesSpec) (TimeSeries, error) {
	n := len(s.Categories)
	if n == 0 {
		return TimeSeries{}, invalid("time series has no categories")
	}
	for i, c := range s.Categories {
		if err := errors.ValidateText("category", c); err != nil {
			return TimeSeries{}, errors.Wrap(errors.ErrCodeInvalidPanel, err, "time series category %d", i)
		}
	}
	if len(s.Series) == 0 {
		return TimeSeries{}, invalid("time series has no series")
	}
	if err := s.Primary.validate("primary axis"); err != nil {
		return TimeSeries{}, err
	}

	out := TimeSeriesSpec{
		Categories: slices.Clone(s.Categories),
		Primary:    s.Primary,
		ShowLegend: s.ShowLegend,
	}
	for _, sr := range s.Series {
		if len(sr.Values) != n {
			return TimeSeries{}, invalid("series %q has %d points, want %d (one per category)", sr.Name, len(sr.Values), n)
		}
		if sr.Secondary && s.SecondaryAxis == nil {
			return TimeSeries{}, invalid("series %q is on the secondary axis but none is declared", sr.Name)
		}
		if sr.Style.Width < 0 {
			return TimeSeries{}, invalid("series %q has negative line width", sr.Name)
		}
		sr.Values = slices.Clone(sr.Values)
		out.Series = append(out.Series, sr)
	}
	if s.Target != nil {
		if len(s.Target.Values) != n {
			return TimeSeries{}, invalid("target line %q has %d points, want %d", s.Target.Name, len(s.Target.Values), n)
		}
		out.Target = &ReferenceLine{Name: s.Target.Name, Values: slices.Clone(s.Target.Values)}
	}
	if s.SecondaryAxis != nil {
		if err := s.SecondaryAxis.validate("secondary axis"); err != nil {
			return TimeSeries{}, err
		}
		ax := *s.SecondaryAxis
		out.SecondaryAxis = &ax
	}
	return TimeSeries{spec: out}, nil
}

func (t TimeSeries) Kind() Kind { return KindTimeSeries }

// Categories returns the x-axis labels in declared order.
func (t TimeSeries) Categories() []string { return slices.Clone(t.spec.Categories) }

// Series returns copies of every series in declared order.
func (t TimeSeries) Series() []Series {
	out := make([]Series, len(t.spec.Series))
	for i, s := range t.spec.Series {
		s.Values = slices.Clone(s.Values)
		out[i] = s
	}
	return out
}

// Target returns the reference line, if any.
func (t TimeSeries) Target() (ReferenceLine, bool) {
	if t.spec.Target == nil {
		return ReferenceLine{}, false
	}
	return ReferenceLine{Name: t.spec.Target.Name, Values: slices.Clone(t.spec.Target.Values)}, true
}

func (t TimeSeries) PrimaryAxis() Axis { return t.spec.Primary }

// SecondaryAxis returns the right-hand axis, if declared.
func (t TimeSeries) SecondaryAxis() (Axis, bool) {
	if t.spec.SecondaryAxis == nil {
		return Axis{}, false
	}
	return *t.spec.SecondaryAxis, true
}

func (t TimeSeries) ShowLegend() bool { return t.spec.ShowLegend }
