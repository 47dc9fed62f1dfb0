package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/panel"
)

// weightTolerance bounds the rounding error allowed in row weights.
const weightTolerance = 1e-6

// Shape declares the grid a report is laid out on.
type Shape struct {
	Rows, Cols int
	// RowWeights are relative row heights summing to 1. Empty means equal rows.
	RowWeights []float64
	// HSpacing and VSpacing are the gaps between columns and rows as
	// fractions of the document width and height.
	HSpacing, VSpacing float64
}

// Position addresses a grid slot.
type Position struct {
	Row, Col int
}

// Request asks for one cell. A nil Panel reserves an empty cell.
type Request struct {
	At      *Position
	RowSpan int
	ColSpan int
	Title   string
	Panel   panel.Panel
}

// Cell is a placed request.
type Cell struct {
	Row, Col         int
	RowSpan, ColSpan int
	Title            string
	Panel            panel.Panel
	Rect             Rect
}

// Empty reports whether the cell holds no panel.
func (c Cell) Empty() bool { return c.Panel == nil }

// Kind returns the panel kind, or "" for an empty cell.
func (c Cell) Kind() panel.Kind {
	if c.Panel == nil {
		return ""
	}
	return c.Panel.Kind()
}

// Plan is the immutable result of [Build].
type Plan struct {
	shape   Shape
	weights []float64
	cells   []Cell
}

// Shape returns the grid shape the plan was built from.
func (p *Plan) Shape() Shape {
	s := p.shape
	s.RowWeights = slices.Clone(p.weights)
	return s
}

// Cells returns the placed cells in request order.
func (p *Plan) Cells() []Cell { return slices.Clone(p.cells) }

// Build places reqs on the grid described by shape.
func Build(shape Shape, reqs []Request) (*Plan, error) {
	weights, err := validateShape(shape)
	if err != nil {
		return nil, err
	}

	g := newGrid(shape.Rows, shape.Cols)
	cells := make([]Cell, 0, len(reqs))
	for i, r := range reqs {
		if err := errors.ValidateText("cell title", r.Title); err != nil {
			return nil, err
		}
		if r.Panel != nil && r.Panel.Kind() == panel.KindOverlay {
			return nil, errors.New(errors.ErrCodeLayoutConflict,
				"cell %d (%q): overlays are pinned to the document and cannot occupy a grid cell", i, r.Title)
		}
		rowSpan, colSpan := max(r.RowSpan, 1), max(r.ColSpan, 1)

		var pos Position
		if r.At != nil {
			pos = *r.At
		} else {
			free, ok := g.nextFree()
			if !ok {
				return nil, errors.New(errors.ErrCodeLayoutConflict,
					"cell %d (%q): no free cell left in %dx%d grid", i, r.Title, shape.Rows, shape.Cols)
			}
			pos = free
		}

		if err := g.reserve(i, pos, rowSpan, colSpan); err != nil {
			return nil, errors.Wrap(errors.ErrCodeLayoutConflict, err, "cell %d (%q)", i, r.Title)
		}

		cells = append(cells, Cell{
			Row:     pos.Row,
			Col:     pos.Col,
			RowSpan: rowSpan,
			ColSpan: colSpan,
			Title:   r.Title,
			Panel:   r.Panel,
			Rect:    cellRect(shape, weights, pos, rowSpan, colSpan),
		})
	}

	s := shape
	s.RowWeights = nil
	return &Plan{shape: s, weights: weights, cells: cells}, nil
}

func validateShape(s Shape) ([]float64, error) {
	if s.Rows < 1 || s.Cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid must have at least one row and column, got %dx%d", s.Rows, s.Cols)
	}
	if err := validateSpacing("horizontal", s.HSpacing, s.Cols); err != nil {
		return nil, err
	}
	if err := validateSpacing("vertical", s.VSpacing, s.Rows); err != nil {
		return nil, err
	}

	if len(s.RowWeights) == 0 {
		weights := make([]float64, s.Rows)
		for i := range weights {
			weights[i] = 1 / float64(s.Rows)
		}
		return weights, nil
	}
	if len(s.RowWeights) != s.Rows {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid has %d rows but %d row weights", s.Rows, len(s.RowWeights))
	}
	var sum float64
	for i, w := range s.RowWeights {
		if !(w > 0) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row weight %d is %v, must be positive", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightTolerance {
		return nil, errors.New(errors.ErrCodeInvalidInput, "row weights sum to %v, want 1.0", sum)
	}
	return slices.Clone(s.RowWeights), nil
}

func validateSpacing(axis string, s float64, n int) error {
	if !(s >= 0 && s < 1) {
		return errors.New(errors.ErrCodeInvalidInput, "%s spacing %v outside [0,1)", axis, s)
	}
	if s*float64(n-1) >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "%s spacing %v leaves no room for %d cells", axis, s, n)
	}
	return nil
}

// cellRect converts a grid region into paper coordinates.
func cellRect(s Shape, weights []float64, pos Position, rowSpan, colSpan int) Rect {
	colWidth := (1 - s.HSpacing*float64(s.Cols-1)) / float64(s.Cols)
	x0 := float64(pos.Col) * (colWidth + s.HSpacing)
	x1 := float64(pos.Col+colSpan-1)*(colWidth+s.HSpacing) + colWidth

	avail := 1 - s.VSpacing*float64(s.Rows-1)
	top := 1.0
	for r := 0; r < pos.Row; r++ {
		top -= weights[r]*avail + s.VSpacing
	}
	bottom := top
	for r := pos.Row; r < pos.Row+rowSpan; r++ {
		bottom -= weights[r] * avail
		if r > pos.Row {
			bottom -= s.VSpacing
		}
	}
	return Rect{X0: x0, Y0: bottom, X1: x1, Y1: top}
}
