package layout

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/panel"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func testGauge(t *testing.T) panel.Panel {
	t.Helper()
	g, err := panel.NewGauge(panel.GaugeSpec{Value: 65, Target: 95, Delta: 30, Unit: metrics.UnitPercent})
	if err != nil {
		t.Fatalf("NewGauge() error: %v", err)
	}
	return g
}

func TestBuildClassicGrid(t *testing.T) {
	shape := Shape{Rows: 3, Cols: 2, RowWeights: []float64{0.14, 0.43, 0.43}, HSpacing: 0.12, VSpacing: 0.28}
	g := testGauge(t)
	plan, err := Build(shape, []Request{
		{ColSpan: 2},
		{Title: "Adoption", Panel: g},
		{Title: "Retention", Panel: g},
		{Title: "Resolution", Panel: g},
		{Title: "Teams", Panel: g},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	cells := plan.Cells()
	if len(cells) != 5 {
		t.Fatalf("got %d cells, want 5", len(cells))
	}

	header := cells[0]
	if !header.Empty() {
		t.Error("header cell should be empty")
	}
	if !near(header.Rect.X0, 0) || !near(header.Rect.X1, 1) {
		t.Errorf("header spans x %v..%v, want 0..1", header.Rect.X0, header.Rect.X1)
	}
	if !near(header.Rect.Y1, 1) {
		t.Errorf("header top = %v, want 1", header.Rect.Y1)
	}

	// avail = 1 - 0.28*2 = 0.44; header height = 0.14*0.44
	if !near(header.Rect.Height(), 0.14*0.44) {
		t.Errorf("header height = %v, want %v", header.Rect.Height(), 0.14*0.44)
	}

	want := []Position{{1, 0}, {1, 1}, {2, 0}, {2, 1}}
	for i, p := range want {
		c := cells[i+1]
		if c.Row != p.Row || c.Col != p.Col {
			t.Errorf("cell %d at (%d,%d), want (%d,%d)", i+1, c.Row, c.Col, p.Row, p.Col)
		}
	}

	// colWidth = (1 - 0.12)/2 = 0.44
	if !near(cells[2].Rect.X0, 0.56) || !near(cells[2].Rect.X1, 1) {
		t.Errorf("right column x = %v..%v, want 0.56..1", cells[2].Rect.X0, cells[2].Rect.X1)
	}
	if !near(cells[3].Rect.Y0, 0) {
		t.Errorf("bottom row y0 = %v, want 0", cells[3].Rect.Y0)
	}
}

func TestColSpanFillsRow(t *testing.T) {
	plan, err := Build(Shape{Rows: 2, Cols: 2}, []Request{{ColSpan: 2}, {}, {}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	cells := plan.Cells()
	if cells[0].ColSpan != 2 || !near(cells[0].Rect.Width(), 1) {
		t.Errorf("spanning cell width = %v, want 1", cells[0].Rect.Width())
	}
	if cells[1].Row != 1 || cells[2].Row != 1 {
		t.Errorf("following cells should start the next row, got rows %d and %d", cells[1].Row, cells[2].Row)
	}
}

func TestExplicitPosition(t *testing.T) {
	plan, err := Build(Shape{Rows: 2, Cols: 2}, []Request{
		{At: &Position{Row: 1, Col: 1}, Title: "corner"},
		{Title: "first free"},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	cells := plan.Cells()
	if cells[0].Row != 1 || cells[0].Col != 1 {
		t.Errorf("explicit cell at (%d,%d), want (1,1)", cells[0].Row, cells[0].Col)
	}
	if cells[1].Row != 0 || cells[1].Col != 0 {
		t.Errorf("auto cell at (%d,%d), want (0,0)", cells[1].Row, cells[1].Col)
	}
}

func TestBuildConflicts(t *testing.T) {
	live, err := panel.NewOverlay("LIVE", []panel.Reading{{Label: "DAU", Value: 48}}, panel.Placement{X: 0.7, Y: 1, Width: 0.2, Height: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		reqs []Request
	}{
		{"span leaves grid", []Request{{ColSpan: 3}}},
		{"row span leaves grid", []Request{{At: &Position{Row: 1, Col: 0}, RowSpan: 2}}},
		{"negative position", []Request{{At: &Position{Row: -1, Col: 0}}}},
		{"overlap", []Request{{ColSpan: 2}, {At: &Position{Row: 0, Col: 1}}}},
		{"too many requests", []Request{{}, {}, {}, {}, {}}},
		{"overlay in a cell", []Request{{Title: "Live", Panel: live}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Shape{Rows: 2, Cols: 2}, tt.reqs)
			if !errors.Is(err, errors.ErrCodeLayoutConflict) {
				t.Fatalf("error = %v, want LAYOUT_CONFLICT", err)
			}
		})
	}
}

func TestBuildInvalidShape(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
	}{
		{"no rows", Shape{Rows: 0, Cols: 2}},
		{"weights count", Shape{Rows: 3, Cols: 1, RowWeights: []float64{0.5, 0.5}}},
		{"weights sum", Shape{Rows: 2, Cols: 1, RowWeights: []float64{0.5, 0.6}}},
		{"zero weight", Shape{Rows: 2, Cols: 1, RowWeights: []float64{0, 1}}},
		{"spacing too large", Shape{Rows: 3, Cols: 1, VSpacing: 0.5}},
		{"negative spacing", Shape{Rows: 1, Cols: 2, HSpacing: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.shape, nil)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestCellsNeverOverlap(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 200; iter++ {
		shape := Shape{
			Rows:     1 + rng.IntN(5),
			Cols:     1 + rng.IntN(4),
			HSpacing: rng.Float64() * 0.1,
			VSpacing: rng.Float64() * 0.1,
		}
		var reqs []Request
		for n := rng.IntN(shape.Rows*shape.Cols + 1); n > 0; n-- {
			reqs = append(reqs, Request{RowSpan: 1 + rng.IntN(2), ColSpan: 1 + rng.IntN(2)})
		}

		plan, err := Build(shape, reqs)
		if err != nil {
			if !errors.Is(err, errors.ErrCodeLayoutConflict) {
				t.Fatalf("iter %d: unexpected error %v", iter, err)
			}
			continue
		}

		cells := plan.Cells()
		for i := range cells {
			r := cells[i].Rect
			if r.X0 < -eps || r.X1 > 1+eps || r.Y0 < -eps || r.Y1 > 1+eps {
				t.Fatalf("iter %d: cell %d rect %+v outside the page", iter, i, r)
			}
			for j := i + 1; j < len(cells); j++ {
				if r.Overlaps(cells[j].Rect) {
					t.Fatalf("iter %d: cells %d and %d overlap: %+v %+v", iter, i, j, r, cells[j].Rect)
				}
			}
		}
	}
}

func TestPlanIsImmutable(t *testing.T) {
	weights := []float64{0.5, 0.5}
	plan, err := Build(Shape{Rows: 2, Cols: 1, RowWeights: weights}, []Request{{Title: "a"}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	weights[0] = 0.9
	plan.Cells()[0].Title = "changed"
	plan.Shape().RowWeights[1] = 0.1

	if got := plan.Shape().RowWeights; got[0] != 0.5 || got[1] != 0.5 {
		t.Errorf("RowWeights = %v, want [0.5 0.5]", got)
	}
	if plan.Cells()[0].Title != "a" {
		t.Error("Cells() exposed internal state")
	}
}
