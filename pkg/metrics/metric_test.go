package metrics

import (
	"math"
	"testing"

	"github.com/matzehuels/okrdash/pkg/errors"
)

func TestNewSeriesPercentRange(t *testing.T) {
	tests := []struct {
		name    string
		values  []Value
		wantErr bool
	}{
		{"in range", Values(0, 58, 100), false},
		{"with gaps", []Value{Present(10), Absent(), Absent()}, false},
		{"above", Values(58, 101), true},
		{"below", Values(-1), true},
		{"nan", Values(math.NaN()), true},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeries("resolution", UnitPercent, tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSeries() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidMetric) {
				t.Errorf("code = %v, want INVALID_METRIC", errors.GetCode(err))
			}
		})
	}
}

func TestCountsAllowAbove100(t *testing.T) {
	m, err := NewScalar("total_seats", UnitCount, 867)
	if err != nil {
		t.Fatalf("NewScalar() error: %v", err)
	}
	if v, _ := m.Scalar(); v != 867 {
		t.Errorf("Scalar() = %v, want 867", v)
	}
}

func TestWithTarget(t *testing.T) {
	m, _ := NewScalar("seat_util", UnitPercent, 65)

	withTarget, err := m.WithTarget(UnitPercent, 95)
	if err != nil {
		t.Fatalf("WithTarget() error: %v", err)
	}
	if got, _ := withTarget.TargetScalar(); got != 95 {
		t.Errorf("TargetScalar() = %v, want 95", got)
	}
	if _, ok := m.Target(); ok {
		t.Error("WithTarget mutated the original metric")
	}

	if _, err := m.WithTarget(UnitCount, 95); !errors.Is(err, errors.ErrCodeInvalidMetric) {
		t.Errorf("unit mismatch error = %v, want INVALID_METRIC", err)
	}
	if _, err := m.WithTarget(UnitPercent, 120); !errors.Is(err, errors.ErrCodeInvalidMetric) {
		t.Errorf("out of range target error = %v, want INVALID_METRIC", err)
	}
}

func TestTargetSeries(t *testing.T) {
	m, _ := NewSeries("resolution", UnitPercent, Values(58, 62, 65, 72, 78))
	m, err := m.WithTarget(UnitPercent, 90)
	if err != nil {
		t.Fatalf("WithTarget() error: %v", err)
	}
	line, err := m.TargetSeries()
	if err != nil {
		t.Fatalf("TargetSeries() error: %v", err)
	}
	if len(line) != 5 || line[0] != 90 || line[4] != 90 {
		t.Errorf("TargetSeries() = %v, want five 90s", line)
	}

	teams, _ := NewSeries("team_adoption", UnitPercent, Values(80, 70, 12))
	if _, err := teams.WithTarget(UnitPercent, 95, 90); err == nil {
		t.Error("target of length 2 for 3 points should fail")
	}
}

func TestValuesAreCopied(t *testing.T) {
	in := Values(1, 2, 3)
	m, _ := NewSeries("x", UnitCount, in)
	in[0] = Present(99)

	out := m.Values()
	if v, _ := out[0].Get(); v != 1 {
		t.Errorf("metric changed after caller mutated input: %v", v)
	}
	out[1] = Absent()
	if !m.Values()[1].IsPresent() {
		t.Error("metric changed after caller mutated Values() result")
	}
}

func TestFromPointers(t *testing.T) {
	ten, nan := 10.0, math.NaN()
	vs := FromPointers([]*float64{&ten, nil, &nan})
	if !vs[0].IsPresent() || vs[1].IsPresent() || vs[2].IsPresent() {
		t.Errorf("FromPointers() = %v, want [10 absent absent]", vs)
	}
}

func TestParseUnit(t *testing.T) {
	if u, err := ParseUnit(""); err != nil || u != UnitPercent {
		t.Errorf("ParseUnit(\"\") = %v, %v; want percent", u, err)
	}
	if _, err := ParseUnit("furlongs"); err == nil {
		t.Error("ParseUnit(furlongs) should fail")
	}
}
