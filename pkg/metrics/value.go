package metrics

import (
	"math"
	"strconv"
)

// Value is one point of a metric: a number or an explicit gap.
type Value struct {
	v  float64
	ok bool
}

// Present returns a Value holding x.
func Present(x float64) Value { return Value{v: x, ok: true} }

// Absent returns a Value marking a missing point.
func Absent() Value { return Value{} }

// Get returns the number and whether it is present.
func (v Value) Get() (float64, bool) { return v.v, v.ok }

// IsPresent reports whether v holds a number.
func (v Value) IsPresent() bool { return v.ok }

// String formats v for messages; absent points print as "absent".
func (v Value) String() string {
	if !v.ok {
		return "absent"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

// Values wraps plain numbers as present values.
func Values(xs ...float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = Present(x)
	}
	return out
}

// FromPointers converts optional numbers to values. nil and NaN become Absent,
// which is how descriptors spell gaps (YAML null, TOML nan).
func FromPointers(ps []*float64) []Value {
	out := make([]Value, len(ps))
	for i, p := range ps {
		if p == nil || math.IsNaN(*p) {
			out[i] = Absent()
			continue
		}
		out[i] = Present(*p)
	}
	return out
}
