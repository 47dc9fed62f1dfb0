package panel

import (
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// ComparisonSpec is the input to [NewComparison].
type ComparisonSpec struct {
	Categories   []string
	Current      []float64
	Target       []float64
	CurrentLabel string
	TargetLabel  string
	Axis         Axis
}

// Comparison draws a current and a target bar for every category.
type Comparison struct {
	spec ComparisonSpec
}

// NewComparison validates s: one current and one target value per category.
func NewComparison(s ComparisonSpec) (Comparison, error) {
	n := len(s.Categories)
	if n == 0 {
		return Comparison{}, invalid("comparison has no categories")
	}
	if len(s.Current) != n {
		return Comparison{}, invalid("comparison has %d current values for %d categories", len(s.Current), n)
	}
	if len(s.Target) != n {
		return Comparison{}, invalid("comparison has %d target values for %d categories", len(s.Target), n)
	}
	for _, label := range append([]string{s.CurrentLabel, s.TargetLabel}, s.Categories...) {
		if err := errors.ValidateText("comparison label", label); err != nil {
			return Comparison{}, errors.Wrap(errors.ErrCodeInvalidPanel, err, "comparison")
		}
	}
	if err := s.Axis.validate("comparison axis"); err != nil {
		return Comparison{}, err
	}
	return Comparison{spec: ComparisonSpec{
		Categories:   slices.Clone(s.Categories),
		Current:      slices.Clone(s.Current),
		Target:       slices.Clone(s.Target),
		CurrentLabel: s.CurrentLabel,
		TargetLabel:  s.TargetLabel,
		Axis:         s.Axis,
	}}, nil
}

func (c Comparison) Kind() Kind           { return KindComparison }
func (c Comparison) Categories() []string { return slices.Clone(c.spec.Categories) }
func (c Comparison) Current() []float64   { return slices.Clone(c.spec.Current) }
func (c Comparison) Target() []float64    { return slices.Clone(c.spec.Target) }
func (c Comparison) CurrentLabel() string { return c.spec.CurrentLabel }
func (c Comparison) TargetLabel() string  { return c.spec.TargetLabel }
func (c Comparison) Axis() Axis           { return c.spec.Axis }
