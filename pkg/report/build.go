package report

import (
	"fmt"
	"slices"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/render"
	"github.com/matzehuels/okrdash/pkg/theme"
)

const (
	defaultCurrentLabel = "Current"
	defaultTargetLabel  = "Target"
)

// MetricSet builds the declared raw metrics. Derived metrics are added
// separately by [metrics.Derive] with [Descriptor.Rules].
func (d *Descriptor) MetricSet() (*metrics.Set, error) {
	ms := make([]metrics.Metric, 0, len(d.Metrics))
	for _, m := range d.Metrics {
		built, err := m.build()
		if err != nil {
			return nil, err
		}
		ms = append(ms, built)
	}
	return metrics.NewSet(ms...)
}

func (m Metric) build() (metrics.Metric, error) {
	unit, err := metrics.ParseUnit(m.Unit)
	if err != nil {
		return metrics.Metric{}, err
	}

	var out metrics.Metric
	if m.Value != nil {
		out, err = metrics.NewScalar(m.Name, unit, *m.Value)
	} else {
		out, err = metrics.NewSeries(m.Name, unit, metrics.FromPointers(m.Series))
	}
	if err != nil {
		return metrics.Metric{}, err
	}

	targets := m.Targets
	if m.Target != nil {
		targets = []float64{*m.Target}
	}
	if len(targets) == 0 {
		return out, nil
	}
	targetUnit := unit
	if m.TargetUnit != "" {
		if targetUnit, err = metrics.ParseUnit(m.TargetUnit); err != nil {
			return metrics.Metric{}, err
		}
	}
	return out.WithTarget(targetUnit, targets...)
}

// Rules converts the derived tables into derivation rules, in order.
func (d *Descriptor) Rules() []metrics.Rule {
	out := make([]metrics.Rule, len(d.Derived))
	for i, r := range d.Derived {
		out[i] = metrics.Rule{
			Name:   r.Name,
			Kind:   metrics.RuleKind(r.Rule),
			Inputs: slices.Clone(r.Inputs),
			Target: r.Target,
		}
	}
	return out
}

// Panels builds one layout request per cell and every overlay, reading
// values from set.
func (d *Descriptor) Panels(set *metrics.Set) ([]layout.Request, []panel.Overlay, error) {
	reqs := make([]layout.Request, 0, len(d.Cells))
	for i, c := range d.Cells {
		p, err := c.panel(set)
		if err != nil {
			return nil, nil, fmt.Errorf("cell %d (%q): %w", i, c.Title, err)
		}
		req := layout.Request{
			RowSpan: c.RowSpan,
			ColSpan: c.ColSpan,
			Title:   c.Title,
			Panel:   p,
		}
		if c.Row != nil {
			req.At = &layout.Position{Row: *c.Row, Col: *c.Col}
		}
		reqs = append(reqs, req)
	}

	overlays := make([]panel.Overlay, 0, len(d.Overlays))
	for i, o := range d.Overlays {
		built, err := o.build(set)
		if err != nil {
			return nil, nil, fmt.Errorf("overlay %d (%q): %w", i, o.Label, err)
		}
		overlays = append(overlays, built)
	}
	return reqs, overlays, nil
}

func (c Cell) panel(set *metrics.Set) (panel.Panel, error) {
	switch {
	case c.Gauge != nil:
		return c.Gauge.build(set)
	case c.TimeSeries != nil:
		return c.TimeSeries.build(set)
	case c.Comparison != nil:
		return c.Comparison.build(set)
	case c.Ring != nil:
		return c.Ring.build(set)
	}
	return nil, nil
}

func (g *Gauge) build(set *metrics.Set) (panel.Panel, error) {
	m, err := set.Get(g.Metric)
	if err != nil {
		return nil, err
	}
	value, err := m.Scalar()
	if err != nil {
		return nil, err
	}
	target, err := m.TargetScalar()
	if err != nil {
		return nil, err
	}
	axis, err := rangeOf(g.Range)
	if err != nil {
		return nil, err
	}
	return panel.NewGauge(panel.GaugeSpec{
		Value:    value,
		Target:   target,
		Delta:    metrics.Delta(value, target),
		Unit:     m.Unit(),
		Axis:     axis,
		Subtitle: g.Subtitle,
	})
}

func (t *TimeSeries) build(set *metrics.Set) (panel.Panel, error) {
	primary, err := t.Axis.build("axis")
	if err != nil {
		return nil, err
	}
	spec := panel.TimeSeriesSpec{
		Categories: t.Categories,
		Primary:    primary,
		ShowLegend: t.Legend,
	}
	if t.SecondaryAxis != nil {
		ax, err := t.SecondaryAxis.build("secondary axis")
		if err != nil {
			return nil, err
		}
		spec.SecondaryAxis = &ax
	}

	for _, s := range t.Series {
		m, err := set.Get(s.Metric)
		if err != nil {
			return nil, err
		}
		role, err := theme.ParseRole(s.Color)
		if err != nil {
			return nil, err
		}
		dash, err := panel.ParseDash(s.Dash)
		if err != nil {
			return nil, err
		}
		name := s.Name
		if name == "" {
			name = m.Name()
		}
		spec.Series = append(spec.Series, panel.Series{
			Name:      name,
			Values:    m.Values(),
			Secondary: s.Secondary,
			Style: panel.LineStyle{
				Role:    role,
				Dash:    dash,
				Width:   s.Width,
				Markers: s.Markers,
			},
		})
	}

	if t.Target != nil {
		m, err := set.Get(t.Target.Metric)
		if err != nil {
			return nil, err
		}
		values, err := m.TargetSeries()
		if err != nil {
			return nil, err
		}
		name := t.Target.Name
		if name == "" {
			name = defaultTargetLabel
		}
		spec.Target = &panel.ReferenceLine{Name: name, Values: values}
	}
	return panel.NewTimeSeries(spec)
}

func (c *Comparison) build(set *metrics.Set) (panel.Panel, error) {
	m, err := set.Get(c.Metric)
	if err != nil {
		return nil, err
	}
	current, err := m.Numbers()
	if err != nil {
		return nil, err
	}
	target, err := m.TargetSeries()
	if err != nil {
		return nil, err
	}
	axis, err := c.Axis.build("axis")
	if err != nil {
		return nil, err
	}
	return panel.NewComparison(panel.ComparisonSpec{
		Categories:   c.Categories,
		Current:      current,
		Target:       target,
		CurrentLabel: orDefault(c.CurrentLabel, defaultCurrentLabel),
		TargetLabel:  orDefault(c.TargetLabel, defaultTargetLabel),
		Axis:         axis,
	})
}

func (r *Ring) build(set *metrics.Set) (panel.Panel, error) {
	segs := make([]panel.Segment, len(r.Segments))
	for i, s := range r.Segments {
		m, err := set.Get(s.Metric)
		if err != nil {
			return nil, err
		}
		v, err := m.Scalar()
		if err != nil {
			return nil, err
		}
		segs[i] = panel.Segment{Label: orDefault(s.Label, m.Name()), Value: v}
	}
	hole := panel.DefaultHole
	if r.Hole != nil {
		hole = *r.Hole
	}
	return panel.NewRing(segs, hole)
}

func (o Overlay) build(set *metrics.Set) (panel.Overlay, error) {
	readings := make([]panel.Reading, len(o.Readings))
	for i, rd := range o.Readings {
		m, err := set.Get(rd.Metric)
		if err != nil {
			return panel.Overlay{}, err
		}
		v, err := m.Scalar()
		if err != nil {
			return panel.Overlay{}, err
		}
		readings[i] = panel.Reading{Label: rd.Label, Value: v, Unit: m.Unit()}
	}
	return panel.NewOverlay(o.Label, readings, panel.Placement{
		X:      o.Box.X,
		Y:      o.Box.Y,
		Width:  o.Box.Width,
		Height: o.Box.Height,
	})
}

func (a Axis) build(what string) (panel.Axis, error) {
	r, err := rangeOf(a.Range)
	if err != nil {
		return panel.Axis{}, err
	}
	if r == nil {
		return panel.Axis{}, errors.New(errors.ErrCodeInvalidDescriptor, "%s %q needs a range", what, a.Title)
	}
	return panel.Axis{Title: a.Title, Range: *r, Suffix: a.Suffix}, nil
}

// rangeOf reads a [min, max] pair. An empty list means "not declared".
func rangeOf(r []float64) (*panel.Range, error) {
	switch len(r) {
	case 0:
		return nil, nil
	case 2:
		return &panel.Range{Min: r[0], Max: r[1]}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDescriptor, "range must be [min, max], got %d values", len(r))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Shape returns the layout grid.
func (d *Descriptor) Shape() layout.Shape {
	return layout.Shape{
		Rows:       d.Grid.Rows,
		Cols:       d.Grid.Cols,
		RowWeights: slices.Clone(d.Grid.RowWeights),
		HSpacing:   d.Grid.HSpacing,
		VSpacing:   d.Grid.VSpacing,
	}
}

// Page returns the document page, starting from [render.DefaultPage].
func (d *Descriptor) Page() render.Page {
	p := render.DefaultPage()
	if d.Document.Width > 0 {
		p.Width = d.Document.Width
	}
	if d.Document.Height > 0 {
		p.Height = d.Document.Height
	}
	if m := d.Document.Margins; m != nil {
		p.Margin = render.Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
	}
	return p
}

// ResolveTheme applies the descriptor's overrides to the default theme.
func (d *Descriptor) ResolveTheme() (theme.Theme, error) {
	return theme.Default().With(d.Theme)
}

// AnnotateConfig returns the positioning rules, starting from
// [annotate.DefaultConfig]. The header carries the descriptor title, and the
// logo box is only kept when the descriptor names a logo.
func (d *Descriptor) AnnotateConfig() annotate.Config {
	cfg := annotate.DefaultConfig()
	doc := d.Document

	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.BaseOffset, doc.BaseTitleOffset)
	set(&cfg.SubtitleGap, doc.SubtitleGap)
	set(&cfg.Header.X, doc.HeaderX)
	set(&cfg.Header.Y, doc.HeaderY)
	if doc.GaugeTitleOffset != nil {
		cfg.KindOffsets = map[panel.Kind]float64{panel.KindGauge: *doc.GaugeTitleOffset}
	}
	if len(doc.OverlayOffsets) > 0 {
		cfg.OverlayOffsets = slices.Clone(doc.OverlayOffsets)
	}

	cfg.Header.Title = d.Title
	switch {
	case d.Logo == "":
		cfg.Logo = nil
	case doc.LogoBox != nil:
		b := doc.LogoBox
		cfg.Logo = &annotate.LogoBox{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	}
	return cfg
}
