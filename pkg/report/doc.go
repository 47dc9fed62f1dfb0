// Package report reads dashboard descriptors and turns them into the inputs
// of the composition engine.
//
// A descriptor is a TOML or YAML file that declares everything one dashboard
// needs: the metrics and their targets, derivation rules, the grid, one table
// per cell naming its panel, optional overlays, and document knobs such as
// size, margins, title offsets and theme overrides. Three descriptors ship
// embedded as presets:
//
//   - classic: a 3x2 grid with two gauges, an SLA trend and team adoption bars
//   - extended: a 4x2 grid adding a dual-axis ticket volume line, a share ring
//     and a stickiness trend
//   - live: extended plus a live-counter overlay badge
//
// # Descriptor Format
//
//	title = "BrandCo Strategic Health Reset"
//	logo  = "lions_logo.png"        # relative to the descriptor
//
//	[grid]
//	rows = 3
//	cols = 2
//	row_weights = [0.14, 0.43, 0.43]
//
//	[[metrics]]
//	name   = "seat_utilisation"
//	value  = 65
//	target = 95
//
//	[[cells]]
//	colspan = 2                      # empty header row
//
//	[[cells]]
//	title = "Adoption: Seat Utilisation"
//	[cells.gauge]
//	metric = "seat_utilisation"
//
// Series gaps are written as nan in TOML and null in YAML.
//
// # Usage
//
//	rep, err := report.Open("extended")      // preset name or file path
//	set, err := rep.Descriptor.MetricSet()
//	set, err = metrics.Derive(set, rep.Descriptor.Rules())
//	reqs, overlays, err := rep.Descriptor.Panels(set)
//	plan, err := layout.Build(rep.Descriptor.Shape(), reqs)
//
// Unknown keys are rejected so that a misspelt knob fails loudly instead of
// silently falling back to its default.
package report
