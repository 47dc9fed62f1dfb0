package metrics

import (
	"math"
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// Unit is the measurement unit of a metric.
type Unit string

const (
	UnitPercent Unit = "percent"
	UnitCount   Unit = "count"
	UnitRatio   Unit = "ratio"
)

// ParseUnit maps a descriptor string to a Unit. Empty means percent.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "", UnitPercent:
		return UnitPercent, nil
	case UnitCount, UnitRatio:
		return Unit(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidMetric, "unknown unit %q (must be percent, count or ratio)", s)
}

// Suffix is the display suffix for values in this unit.
func (u Unit) Suffix() string {
	if u == UnitPercent {
		return "%"
	}
	return ""
}

// Target is the goal attached to a metric: one constant or one value per point.
type Target struct {
	Unit   Unit
	Values []float64
}

// Metric is a named scalar or sequence with a unit and an optional target.
// Metrics are built once by [NewScalar] or [NewSeries] and never change;
// accessors return copies.
type Metric struct {
	name   string
	unit   Unit
	values []Value
	target *Target
}

// NewScalar builds a single-valued metric.
func NewScalar(name string, unit Unit, v float64) (Metric, error) {
	return NewSeries(name, unit, []Value{Present(v)})
}

// NewSeries builds a sequence metric. Gaps are allowed; every present point
// must be valid for the unit.
func NewSeries(name string, unit Unit, values []Value) (Metric, error) {
	if err := errors.ValidateMetricName(name); err != nil {
		return Metric{}, err
	}
	if len(values) == 0 {
		return Metric{}, errors.New(errors.ErrCodeInvalidMetric, "metric %q has no values", name)
	}
	for i, v := range values {
		x, ok := v.Get()
		if !ok {
			continue
		}
		if err := checkRange(name, unit, x); err != nil {
			return Metric{}, errors.Wrap(errors.ErrCodeInvalidMetric, err, "metric %q point %d", name, i)
		}
	}
	return Metric{name: name, unit: unit, values: slices.Clone(values)}, nil
}

// WithTarget returns a copy of m carrying target. The target must share m's
// unit and be either one constant or one value per point.
func (m Metric) WithTarget(unit Unit, values ...float64) (Metric, error) {
	if unit != m.unit {
		return Metric{}, errors.New(errors.ErrCodeInvalidMetric,
			"metric %q: target unit %s does not match metric unit %s", m.name, unit, m.unit)
	}
	if len(values) != 1 && len(values) != len(m.values) {
		return Metric{}, errors.New(errors.ErrCodeInvalidMetric,
			"metric %q: target has %d values, want 1 or %d", m.name, len(values), len(m.values))
	}
	for i, x := range values {
		if err := checkRange(m.name, unit, x); err != nil {
			return Metric{}, errors.Wrap(errors.ErrCodeInvalidMetric, err, "metric %q target %d", m.name, i)
		}
	}
	out := m
	out.target = &Target{Unit: unit, Values: slices.Clone(values)}
	return out, nil
}

func (m Metric) Name() string { return m.name }
func (m Metric) Unit() Unit   { return m.unit }
func (m Metric) Len() int     { return len(m.values) }

// Values returns a copy of the metric's points.
func (m Metric) Values() []Value { return slices.Clone(m.values) }

// Scalar returns the single value of a scalar metric.
func (m Metric) Scalar() (float64, error) {
	if len(m.values) != 1 {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "metric %q is a series of %d points, want a scalar", m.name, len(m.values))
	}
	x, ok := m.values[0].Get()
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "metric %q has no value", m.name)
	}
	return x, nil
}

// Numbers returns every point as a plain number, failing on gaps.
func (m Metric) Numbers() ([]float64, error) {
	out := make([]float64, len(m.values))
	for i, v := range m.values {
		x, ok := v.Get()
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidMetric, "metric %q point %d is absent", m.name, i)
		}
		out[i] = x
	}
	return out, nil
}

// Target returns the metric's target, if any.
func (m Metric) Target() (Target, bool) {
	if m.target == nil {
		return Target{}, false
	}
	return Target{Unit: m.target.Unit, Values: slices.Clone(m.target.Values)}, true
}

// TargetScalar returns a constant target.
func (m Metric) TargetScalar() (float64, error) {
	if m.target == nil {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "metric %q has no target", m.name)
	}
	if len(m.target.Values) != 1 {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "metric %q has a per-point target, want a constant", m.name)
	}
	return m.target.Values[0], nil
}

// TargetSeries expands the target to one value per point, using [TargetLine]
// for constant targets.
func (m Metric) TargetSeries() ([]float64, error) {
	if m.target == nil {
		return nil, errors.New(errors.ErrCodeInvalidMetric, "metric %q has no target", m.name)
	}
	if len(m.target.Values) == 1 {
		return TargetLine(m.target.Values[0], len(m.values))
	}
	return slices.Clone(m.target.Values), nil
}

func checkRange(name string, unit Unit, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return errors.New(errors.ErrCodeInvalidMetric, "value %v is not finite", x)
	}
	switch unit {
	case UnitPercent:
		if _, err := Percent(name, x); err != nil {
			return err
		}
	case UnitCount, UnitRatio:
		if x < 0 {
			return errors.New(errors.ErrCodeInvalidMetric, "%s value %v is negative", unit, x)
		}
	default:
		return errors.New(errors.ErrCodeInvalidMetric, "unknown unit %q", unit)
	}
	return nil
}
