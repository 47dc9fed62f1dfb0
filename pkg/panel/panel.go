// Package panel defines the dashboard's panel variants.
//
// Every variant is built by a validating constructor and exposes read-only
// accessors, so once a panel exists its render-relevant fields are fixed.
// The layout grid never looks inside a panel; it only needs [Panel.Kind] to
// let the annotation positioner apply per-kind title rules.
//
// Variants:
//   - [Gauge]: one scalar against a target, drawn as a dial
//   - [TimeSeries]: one or more lines over ordered categories, optionally on two scales
//   - [Comparison]: grouped current/target bars per category
//   - [Ring]: share-of-whole segments summing to 100
//   - [Overlay]: a live readout pinned to document coordinates, outside the grid
package panel

import (
	"fmt"
	"math"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
)

// Kind tags a panel variant.
type Kind string

const (
	KindGauge      Kind = "gauge"
	KindTimeSeries Kind = "timeseries"
	KindComparison Kind = "comparison"
	KindRing       Kind = "ring"
	KindOverlay    Kind = "overlay"
)

// Panel is implemented by every variant.
type Panel interface {
	Kind() Kind
}

// Range is a closed numeric interval used for axes and dials.
type Range struct {
	Min, Max float64
}

// PercentRange is the axis of every percentage panel unless overridden.
var PercentRange = Range{Min: 0, Max: 100}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Fraction maps v into [0,1] along the range, clamping values outside it.
func (r Range) Fraction(v float64) float64 {
	f := (v - r.Min) / r.Span()
	return math.Max(0, math.Min(1, f))
}

func (r Range) validate(what string) error {
	if !finite(r.Min) || !finite(r.Max) {
		return invalid("%s range [%v, %v] is not finite", what, r.Min, r.Max)
	}
	if r.Max <= r.Min {
		return invalid("%s range [%v, %v] is empty", what, r.Min, r.Max)
	}
	return nil
}

func (r Range) String() string { return fmt.Sprintf("[%v, %v]", r.Min, r.Max) }

// Axis describes one value scale of a chart panel.
type Axis struct {
	Title  string
	Range  Range
	Suffix string // tick label suffix, e.g. "%"
}

func (a Axis) validate(what string) error {
	if err := errors.ValidateText(what+" title", a.Title); err != nil {
		return err
	}
	return a.Range.validate(what)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidPanel, format, args...)
}

func unitRange(unit metrics.Unit, axis *Range) (Range, error) {
	if axis != nil {
		if err := axis.validate("axis"); err != nil {
			return Range{}, err
		}
		return *axis, nil
	}
	if unit == metrics.UnitPercent {
		return PercentRange, nil
	}
	return Range{}, invalid("%s values need an explicit axis range", unit)
}
