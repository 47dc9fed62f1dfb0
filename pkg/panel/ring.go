package panel

import (
	"math"
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
)

// DefaultHole is the ring's inner radius as a fraction of the outer radius.
const DefaultHole = 0.65

// Segment is one labelled share of a ring.
type Segment struct {
	Label string
	Value float64
}

// Ring shows segments of a whole in declared order. Segments are never
// re-sorted by value.
type Ring struct {
	segments []Segment
	hole     float64
}

// NewRing validates that segments sum to 100 within tolerance and that hole
// lies in [0,1).
func NewRing(segments []Segment, hole float64) (Ring, error) {
	if len(segments) == 0 {
		return Ring{}, invalid("ring has no segments")
	}
	if !(hole >= 0 && hole < 1) {
		return Ring{}, invalid("ring hole %v outside [0,1)", hole)
	}
	values := make([]float64, len(segments))
	for i, s := range segments {
		if !(s.Value >= 0) || math.IsInf(s.Value, 0) {
			return Ring{}, invalid("ring segment %q has negative value %v", s.Label, s.Value)
		}
		if err := errors.ValidateText("ring label", s.Label); err != nil {
			return Ring{}, errors.Wrap(errors.ErrCodeInvalidPanel, err, "ring segment %d", i)
		}
		values[i] = s.Value
	}
	if sum, ok := metrics.SumsToHundred(values); !ok {
		return Ring{}, invalid("ring segments sum to %v, want 100 ± %v", sum, metrics.ShareTolerance)
	}
	return Ring{segments: slices.Clone(segments), hole: hole}, nil
}

func (r Ring) Kind() Kind          { return KindRing }
func (r Ring) Segments() []Segment { return slices.Clone(r.segments) }
func (r Ring) Hole() float64       { return r.hole }
