// Package render draws a laid-out dashboard as one self-contained SVG document.
//
// # Overview
//
// [Render] walks a [layout.Plan] and an [annotate.Layer] and writes, in order:
//
//  1. The page background in the theme's background colour
//  2. Each grid cell's panel, drawn into the cell's rectangle
//  3. The logo, embedded as a base64 data URI
//  4. Overlay badges and annotations, in ascending Z order
//
// Panel drawing rules (time series, comparison and ring are drawn with
// go-chart, each into a nested <svg> at its cell; the gauge is drawn directly):
//
//   - Gauge: a half-dial with a "progress" step up to the value, a
//     "remaining" step from the value to the target, a threshold marker at the
//     target, the numeric readout and a delta indicator
//   - TimeSeries: one line per series with optional markers, an optional
//     secondary scale on the right and an optional dashed target line. Absent
//     points break the line instead of being interpolated
//   - Comparison: grouped bars, current in the neutral text colour and target
//     in the accent colour, in declared category order
//   - Ring: a donut with the configured hole, segments clockwise from three
//     o'clock in declared order, never re-sorted by value
//
// # Determinism
//
// Rendering the same inputs twice yields identical bytes: coordinates are
// written with fixed precision, nothing iterates a map, and the document ID
// stamped on the root element is a name-based UUID (version 5) of the body.
//
//	doc, err := render.Render(plan, layer,
//	    render.WithTheme(theme.Default()),
//	    render.WithLogo(logo),
//	)
//	os.WriteFile("okr.svg", doc.SVG, 0o644)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, doc.SVG)
//	png, err := render.ToPNG(ctx, doc.SVG, 2.0) // 2x scale
package render
