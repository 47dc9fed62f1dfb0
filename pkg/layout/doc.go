// Package layout reserves rectangles for dashboard panels on a row/column grid.
//
// # Overview
//
// [Build] takes a grid [Shape] (rows, columns, relative row heights, spacing
// fractions) and an ordered list of [Request] values and returns an
// immutable [Plan]. The grid never looks inside a panel: it only checks that
// the requested spans fit and do not overlap, then computes each cell's
// rectangle in paper coordinates.
//
// # Coordinates
//
// Paper coordinates run from 0 to 1 on both axes with the origin at the
// bottom-left, so row 0 sits at the top of the document. Columns share the
// width equally; rows share the height in proportion to their weights after
// the vertical spacing is taken out:
//
//	rowHeight[i] = weight[i] * (1 - vSpacing*(rows-1))
//	colWidth     = (1 - hSpacing*(cols-1)) / cols
//
// # Placement
//
// Requests are placed in order. A request with an explicit [Position] goes
// exactly there; one without takes the next free cell in row-major order.
// Spans default to 1. A full-width header is a request with ColSpan equal to
// the column count and no panel:
//
//	plan, err := layout.Build(layout.Shape{Rows: 3, Cols: 2, RowWeights: []float64{0.14, 0.43, 0.43},
//	    VSpacing: 0.28, HSpacing: 0.12}, []layout.Request{
//	    {ColSpan: 2},                        // header row
//	    {Title: "Adoption", Panel: gauge},   // row 1, col 0
//	    {Title: "Retention", Panel: habit},  // row 1, col 1
//	})
//
// # Errors
//
// A span that leaves the grid, overlaps an earlier cell, or a request that
// finds no free cell fails with LAYOUT_CONFLICT. Malformed shapes (row
// weights that do not sum to 1, spacing that leaves no room) fail with
// INVALID_INPUT.
package layout
