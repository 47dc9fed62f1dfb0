// Package sink encodes a rendered dashboard into its output formats.
//
// # Overview
//
// A "sink" takes the [render.Document] produced by [render.Render] and
// turns it into bytes for one [Format]:
//
//   - html: the SVG inlined into a single page with inline styles (default)
//   - svg: the document as-is
//   - png, pdf: converted with rsvg-convert, cached by document hash
//   - json: the layout plan and positioned annotations, for inspection or
//     downstream tooling
//
// Basic usage:
//
//	enc := sink.NewEncoder(sink.WithCache(c, keyer), sink.WithScale(2))
//	data, err := enc.Encode(ctx, sink.FormatHTML, sink.Input{Doc: doc, Plan: plan, Layer: layer})
//
// PNG and PDF output require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
