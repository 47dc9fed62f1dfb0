package metrics

import (
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// Set is an ordered, read-only collection of metrics addressed by name.
type Set struct {
	byName map[string]Metric
	order  []string
}

// NewSet builds a set, rejecting duplicate names.
func NewSet(ms ...Metric) (*Set, error) {
	s := &Set{byName: make(map[string]Metric, len(ms))}
	for _, m := range ms {
		if _, dup := s.byName[m.Name()]; dup {
			return nil, errors.New(errors.ErrCodeInvalidMetric, "duplicate metric %q", m.Name())
		}
		s.byName[m.Name()] = m
		s.order = append(s.order, m.Name())
	}
	return s, nil
}

// Get returns the named metric.
func (s *Set) Get(name string) (Metric, error) {
	m, ok := s.byName[name]
	if !ok {
		return Metric{}, errors.New(errors.ErrCodeInvalidMetric, "unknown metric %q", name)
	}
	return m, nil
}

// Names returns metric names in declaration order.
func (s *Set) Names() []string { return slices.Clone(s.order) }

// Len returns the number of metrics.
func (s *Set) Len() int { return len(s.order) }

// RuleKind selects a derivation.
type RuleKind string

const (
	// RuleStickiness derives DAU/MAU from two count scalars.
	RuleStickiness RuleKind = "stickiness"
	// RuleComplement derives 100-p from one percent scalar.
	RuleComplement RuleKind = "complement"
	// RuleShare derives part/whole from two count scalars.
	RuleShare RuleKind = "share"
)

// Rule declares one derived metric.
type Rule struct {
	Name   string
	Kind   RuleKind
	Inputs []string
	// Target optionally attaches a constant percent target to the result.
	Target *float64
}

// Derive applies rules in order and returns a new set holding the inputs
// followed by every derived metric. Later rules may use earlier results.
func Derive(s *Set, rules []Rule) (*Set, error) {
	all := make([]Metric, 0, s.Len()+len(rules))
	for _, name := range s.order {
		all = append(all, s.byName[name])
	}
	cur, err := NewSet(all...)
	if err != nil {
		return nil, err
	}

	for _, r := range rules {
		m, err := applyRule(cur, r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMetric, err, "derive %q", r.Name)
		}
		all = append(all, m)
		if cur, err = NewSet(all...); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func applyRule(s *Set, r Rule) (Metric, error) {
	scalars, err := ruleInputs(s, r)
	if err != nil {
		return Metric{}, err
	}

	var v float64
	switch r.Kind {
	case RuleStickiness:
		v, err = Stickiness(scalars[0], scalars[1])
	case RuleComplement:
		v, err = Complement(scalars[0])
	case RuleShare:
		v, err = Share(scalars[0], scalars[1])
	}
	if err != nil {
		return Metric{}, err
	}

	m, err := NewScalar(r.Name, UnitPercent, v)
	if err != nil {
		return Metric{}, err
	}
	if r.Target != nil {
		return m.WithTarget(UnitPercent, *r.Target)
	}
	return m, nil
}

func ruleInputs(s *Set, r Rule) ([]float64, error) {
	want := map[RuleKind]int{RuleStickiness: 2, RuleComplement: 1, RuleShare: 2}
	n, ok := want[r.Kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidMetric, "unknown derivation %q", r.Kind)
	}
	if len(r.Inputs) != n {
		return nil, errors.New(errors.ErrCodeInvalidMetric, "%s takes %d inputs, got %d", r.Kind, n, len(r.Inputs))
	}

	out := make([]float64, n)
	for i, name := range r.Inputs {
		m, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		if r.Kind == RuleComplement && m.Unit() != UnitPercent {
			return nil, errors.New(errors.ErrCodeInvalidMetric, "complement input %q must be a percentage", name)
		}
		if out[i], err = m.Scalar(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
