package panel

import (
	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
)

// GaugeSpec is the input to [NewGauge].
type GaugeSpec struct {
	Value  float64
	Target float64
	// Delta must equal metrics.Delta(Value, Target).
	Delta    float64
	Unit     metrics.Unit
	Axis     *Range // defaults to [0,100] for percentages
	Subtitle string // small caption under the panel title
}

// Gauge is a single value against a target, drawn as a dial.
type Gauge struct {
	spec GaugeSpec
	axis Range
}

// NewGauge validates s: value and target must lie on the dial.
func NewGauge(s GaugeSpec) (Gauge, error) {
	axis, err := unitRange(s.Unit, s.Axis)
	if err != nil {
		return Gauge{}, err
	}
	if !axis.Contains(s.Value) {
		return Gauge{}, invalid("gauge value %v outside %v", s.Value, axis)
	}
	if !axis.Contains(s.Target) {
		return Gauge{}, invalid("gauge target %v outside %v", s.Target, axis)
	}
	if s.Delta != metrics.Delta(s.Value, s.Target) {
		return Gauge{}, invalid("gauge delta %v does not match target %v - value %v", s.Delta, s.Target, s.Value)
	}
	if err := errors.ValidateText("gauge subtitle", s.Subtitle); err != nil {
		return Gauge{}, err
	}
	s.Axis = nil
	return Gauge{spec: s, axis: axis}, nil
}

func (g Gauge) Kind() Kind         { return KindGauge }
func (g Gauge) Value() float64     { return g.spec.Value }
func (g Gauge) Target() float64    { return g.spec.Target }
func (g Gauge) Delta() float64     { return g.spec.Delta }
func (g Gauge) Unit() metrics.Unit { return g.spec.Unit }
func (g Gauge) Axis() Range        { return g.axis }
func (g Gauge) Subtitle() string   { return g.spec.Subtitle }
