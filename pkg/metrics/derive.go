package metrics

import (
	"math"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// ShareTolerance is how far a share split may drift from 100 before it is
// rejected. Whole-percent inputs such as [28 71] lose up to one point to
// rounding.
const ShareTolerance = 1.0

// Percent validates that v is a percentage in [0,100].
func Percent(name string, v float64) (float64, error) {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "%s: percentage %v outside [0,100]", name, v)
	}
	return v, nil
}

// Stickiness returns DAU/MAU as a whole percentage, rounded half to even.
func Stickiness(dailyActive, monthlyActive float64) (float64, error) {
	if monthlyActive <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "stickiness: monthly active users %v must be positive", monthlyActive)
	}
	if dailyActive < 0 {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "stickiness: daily active users %v is negative", dailyActive)
	}
	return Percent("stickiness", math.RoundToEven(dailyActive/monthlyActive*100))
}

// Complement returns the other half of a two-way percentage split.
func Complement(p float64) (float64, error) {
	if _, err := Percent("complement", p); err != nil {
		return 0, err
	}
	return 100 - p, nil
}

// Share returns part as a percentage of whole.
func Share(part, whole float64) (float64, error) {
	if whole <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "share: whole %v must be positive", whole)
	}
	if part < 0 {
		return 0, errors.New(errors.ErrCodeInvalidMetric, "share: part %v is negative", part)
	}
	return Percent("share", part/whole*100)
}

// Delta returns how far current is from target. It is positive while the
// target is still ahead and negative once it has been overshot.
func Delta(current, target float64) float64 {
	return target - current
}

// TargetLine returns a constant reference series of length n.
func TargetLine(target float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidMetric, "target line needs at least one point, got %d", n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = target
	}
	return out, nil
}

// SumsToHundred reports whether values add up to 100 within the share tolerance.
func SumsToHundred(values []float64) (float64, bool) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum, math.Abs(sum-100) <= ShareTolerance
}
