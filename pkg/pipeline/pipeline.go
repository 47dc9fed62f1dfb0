// Package pipeline runs a report descriptor through the dashboard engine.
//
// A run is one synchronous pass over seven stages:
//
//  1. Derive: build the declared metrics and apply derivation rules
//  2. Panels: turn cells and overlays into validated panels
//  3. Layout: place cells on the grid
//  4. Position: resolve titles, the header block and overlay badges
//  5. Asset: read the logo
//  6. Render: draw the SVG document and encode every requested format
//  7. Export: write the artifacts to disk (only when an output path is set)
//
// The first failing stage aborts the run, so a bad descriptor never leaves a
// partial document behind. Errors are wrapped with the stage name
// ("layout: LAYOUT_CONFLICT: ...") and keep their code for [errors.Is].
//
// # Usage
//
//	rep, err := report.Open("extended")
//	runner := pipeline.NewRunner(sink.NewEncoder(), logger)
//	res, err := runner.Execute(ctx, rep, pipeline.Options{
//	    Formats: []sink.Format{sink.FormatHTML, sink.FormatPNG},
//	    Output:  "out/okr-dashboard",
//	})
//
// [Runner.Compose] stops after the asset stage; the CLI's validate command
// uses it to check a descriptor without rendering.
//
// [errors.Is]: github.com/matzehuels/okrdash/pkg/errors.Is
package pipeline

import (
	"time"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/asset"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/observability"
	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/render"
	"github.com/matzehuels/okrdash/pkg/render/sink"
	"github.com/matzehuels/okrdash/pkg/report"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// Options controls one run.
type Options struct {
	// Formats to encode. Empty means HTML only.
	Formats []sink.Format

	// Output is the destination path without extension; each format appends
	// its own. Empty keeps the artifacts in memory.
	Output string
}

// Result holds everything a run produced.
type Result struct {
	Report   *report.Report
	Metrics  *metrics.Set
	Plan     *layout.Plan
	Overlays []panel.Overlay
	Theme    theme.Theme
	Layer    *annotate.Layer
	Logo     *asset.Asset // nil when the descriptor names none
	Document *render.Document

	// Artifacts maps each requested format to its encoded bytes.
	Artifacts map[sink.Format][]byte

	// Files lists written paths in format order.
	Files []string

	Stats Stats
}

// Stats summarises a run.
type Stats struct {
	Metrics     int // declared metrics
	Derived     int // metrics added by derivation rules
	Cells       int
	Panels      int // cells holding a panel
	Annotations int
	Bytes       int // total size of all artifacts

	// Timings records how long each stage that ran took.
	Timings map[observability.Stage]time.Duration
}

// Total returns the summed stage time.
func (s Stats) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Timings {
		total += d
	}
	return total
}
