package layout

import "fmt"

// grid tracks which request owns each slot.
type grid struct {
	rows, cols int
	owner      [][]int
}

func newGrid(rows, cols int) *grid {
	owner := make([][]int, rows)
	for r := range owner {
		owner[r] = make([]int, cols)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}
	return &grid{rows: rows, cols: cols, owner: owner}
}

// nextFree returns the first unowned slot in row-major order.
func (g *grid) nextFree() (Position, bool) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.owner[r][c] < 0 {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// reserve claims the region for request id, or reports why it cannot.
func (g *grid) reserve(id int, pos Position, rowSpan, colSpan int) error {
	if pos.Row < 0 || pos.Col < 0 || pos.Row+rowSpan > g.rows || pos.Col+colSpan > g.cols {
		return fmt.Errorf(
			"span rows %d-%d, cols %d-%d leaves the %dx%d grid",
			pos.Row, pos.Row+rowSpan-1, pos.Col, pos.Col+colSpan-1, g.rows, g.cols)
	}
	for r := pos.Row; r < pos.Row+rowSpan; r++ {
		for c := pos.Col; c < pos.Col+colSpan; c++ {
			if other := g.owner[r][c]; other >= 0 {
				return fmt.Errorf(
					"slot (%d,%d) already taken by cell %d", r, c, other)
			}
		}
	}
	for r := pos.Row; r < pos.Row+rowSpan; r++ {
		for c := pos.Col; c < pos.Col+colSpan; c++ {
			g.owner[r][c] = id
		}
	}
	return nil
}
