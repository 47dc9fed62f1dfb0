package panel

import (
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
)

// Reading is one scalar shown in a live overlay.
type Reading struct {
	Label string
	Value float64
	Unit  metrics.Unit
}

// Placement pins an overlay badge to paper coordinates (0..1, y up).
// X and Y are the badge's top-left corner.
type Placement struct {
	X, Y          float64
	Width, Height float64
}

// Overlay is an always-on-top readout that is not bound to a grid cell.
type Overlay struct {
	label     string
	readings  []Reading
	placement Placement
}

// NewOverlay validates the label, readings and placement.
func NewOverlay(label string, readings []Reading, at Placement) (Overlay, error) {
	if label == "" {
		return Overlay{}, invalid("overlay needs a label")
	}
	if err := errors.ValidateText("overlay label", label); err != nil {
		return Overlay{}, errors.Wrap(errors.ErrCodeInvalidPanel, err, "overlay")
	}
	if len(readings) == 0 {
		return Overlay{}, invalid("overlay %q has no readings", label)
	}
	for _, r := range readings {
		if err := errors.ValidateText("overlay reading", r.Label); err != nil {
			return Overlay{}, errors.Wrap(errors.ErrCodeInvalidPanel, err, "overlay %q", label)
		}
		if !finite(r.Value) {
			return Overlay{}, invalid("overlay %q reading %q is not a number", label, r.Label)
		}
	}
	if !finite(at.X) || !finite(at.Y) {
		return Overlay{}, invalid("overlay %q badge position (%v, %v) is not finite", label, at.X, at.Y)
	}
	if !(at.Width > 0) || !(at.Height > 0) || !finite(at.Width) || !finite(at.Height) {
		return Overlay{}, invalid("overlay %q badge has no area", label)
	}
	return Overlay{label: label, readings: slices.Clone(readings), placement: at}, nil
}

func (o Overlay) Kind() Kind           { return KindOverlay }
func (o Overlay) Label() string        { return o.label }
func (o Overlay) Readings() []Reading  { return slices.Clone(o.readings) }
func (o Overlay) Placement() Placement { return o.placement }
