package report

import (
	"fmt"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// Descriptor is the declarative form of one dashboard.
type Descriptor struct {
	Title       string          `toml:"title" yaml:"title"`
	Description string          `toml:"description" yaml:"description"`
	Logo        string          `toml:"logo" yaml:"logo"`
	Document    Document        `toml:"document" yaml:"document"`
	Theme       theme.Overrides `toml:"theme" yaml:"theme"`
	Grid        Grid            `toml:"grid" yaml:"grid"`
	Metrics     []Metric        `toml:"metrics" yaml:"metrics"`
	Derived     []Derived       `toml:"derived" yaml:"derived"`
	Cells       []Cell          `toml:"cells" yaml:"cells"`
	Overlays    []Overlay       `toml:"overlays" yaml:"overlays"`
}

// Document holds page and positioning knobs. Unset fields keep the engine
// defaults; pointers distinguish an explicit zero from "not set".
type Document struct {
	Width            float64   `toml:"width" yaml:"width"`
	Height           float64   `toml:"height" yaml:"height"`
	Margins          *Margins  `toml:"margins" yaml:"margins"`
	BaseTitleOffset  *float64  `toml:"base_title_offset" yaml:"base_title_offset"`
	GaugeTitleOffset *float64  `toml:"gauge_title_offset" yaml:"gauge_title_offset"`
	SubtitleGap      *float64  `toml:"subtitle_gap" yaml:"subtitle_gap"`
	HeaderX          *float64  `toml:"header_x" yaml:"header_x"`
	HeaderY          *float64  `toml:"header_y" yaml:"header_y"`
	LogoBox          *Box      `toml:"logo_box" yaml:"logo_box"`
	OverlayOffsets   []float64 `toml:"overlay_offsets" yaml:"overlay_offsets"`
}

// Margins are page margins in pixels.
type Margins struct {
	Top    float64 `toml:"top" yaml:"top"`
	Right  float64 `toml:"right" yaml:"right"`
	Bottom float64 `toml:"bottom" yaml:"bottom"`
	Left   float64 `toml:"left" yaml:"left"`
}

// Box is a rectangle in paper coordinates anchored at its top centre (logo)
// or top-left corner (overlay).
type Box struct {
	X      float64 `toml:"x" yaml:"x"`
	Y      float64 `toml:"y" yaml:"y"`
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Grid declares the layout grid.
type Grid struct {
	Rows       int       `toml:"rows" yaml:"rows"`
	Cols       int       `toml:"cols" yaml:"cols"`
	RowWeights []float64 `toml:"row_weights" yaml:"row_weights"`
	HSpacing   float64   `toml:"horizontal_spacing" yaml:"horizontal_spacing"`
	VSpacing   float64   `toml:"vertical_spacing" yaml:"vertical_spacing"`
}

// Metric declares one raw metric: either a scalar value or a series.
type Metric struct {
	Name       string     `toml:"name" yaml:"name"`
	Unit       string     `toml:"unit" yaml:"unit"`
	Value      *float64   `toml:"value" yaml:"value"`
	Series     []*float64 `toml:"series" yaml:"series"`
	Target     *float64   `toml:"target" yaml:"target"`
	Targets    []float64  `toml:"targets" yaml:"targets"`
	TargetUnit string     `toml:"target_unit" yaml:"target_unit"`
}

// Derived declares a metric computed from others.
type Derived struct {
	Name   string   `toml:"name" yaml:"name"`
	Rule   string   `toml:"rule" yaml:"rule"`
	Inputs []string `toml:"inputs" yaml:"inputs"`
	Target *float64 `toml:"target" yaml:"target"`
}

// Cell declares one grid cell. At most one panel table may be set; a cell
// without one is an empty spacer, like the header row.
type Cell struct {
	Title      string      `toml:"title" yaml:"title"`
	Row        *int        `toml:"row" yaml:"row"`
	Col        *int        `toml:"col" yaml:"col"`
	RowSpan    int         `toml:"rowspan" yaml:"rowspan"`
	ColSpan    int         `toml:"colspan" yaml:"colspan"`
	Gauge      *Gauge      `toml:"gauge" yaml:"gauge"`
	TimeSeries *TimeSeries `toml:"timeseries" yaml:"timeseries"`
	Comparison *Comparison `toml:"comparison" yaml:"comparison"`
	Ring       *Ring       `toml:"ring" yaml:"ring"`
}

type Gauge struct {
	Metric   string    `toml:"metric" yaml:"metric"`
	Subtitle string    `toml:"subtitle" yaml:"subtitle"`
	Range    []float64 `toml:"range" yaml:"range"`
}

type Axis struct {
	Title  string    `toml:"title" yaml:"title"`
	Range  []float64 `toml:"range" yaml:"range"`
	Suffix string    `toml:"suffix" yaml:"suffix"`
}

type TimeSeries struct {
	Categories    []string    `toml:"categories" yaml:"categories"`
	Series        []Series    `toml:"series" yaml:"series"`
	Target        *TargetLine `toml:"target" yaml:"target"`
	Axis          Axis        `toml:"axis" yaml:"axis"`
	SecondaryAxis *Axis       `toml:"secondary_axis" yaml:"secondary_axis"`
	Legend        bool        `toml:"legend" yaml:"legend"`
}

// Series plots one metric. Color names a theme role.
type Series struct {
	Metric    string  `toml:"metric" yaml:"metric"`
	Name      string  `toml:"name" yaml:"name"`
	Secondary bool    `toml:"secondary" yaml:"secondary"`
	Color     string  `toml:"color" yaml:"color"`
	Dash      string  `toml:"dash" yaml:"dash"`
	Width     float64 `toml:"width" yaml:"width"`
	Markers   bool    `toml:"markers" yaml:"markers"`
}

// TargetLine draws the target of Metric across every category.
type TargetLine struct {
	Metric string `toml:"metric" yaml:"metric"`
	Name   string `toml:"name" yaml:"name"`
}

// Comparison draws a per-point target metric as current/target bars.
type Comparison struct {
	Categories   []string `toml:"categories" yaml:"categories"`
	Metric       string   `toml:"metric" yaml:"metric"`
	CurrentLabel string   `toml:"current_label" yaml:"current_label"`
	TargetLabel  string   `toml:"target_label" yaml:"target_label"`
	Axis         Axis     `toml:"axis" yaml:"axis"`
}

type Ring struct {
	Segments []Segment `toml:"segments" yaml:"segments"`
	Hole     *float64  `toml:"hole" yaml:"hole"`
}

type Segment struct {
	Label  string `toml:"label" yaml:"label"`
	Metric string `toml:"metric" yaml:"metric"`
}

// Overlay pins a live readout badge at Box (top-left anchor).
type Overlay struct {
	Label    string    `toml:"label" yaml:"label"`
	Readings []Reading `toml:"readings" yaml:"readings"`
	Box      Box       `toml:"box" yaml:"box"`
}

type Reading struct {
	Label  string `toml:"label" yaml:"label"`
	Metric string `toml:"metric" yaml:"metric"`
}

// Validate checks the descriptor's structure. Value-level rules (ranges,
// lengths, sums) are left to the metric and panel constructors.
func (d *Descriptor) Validate() error {
	if err := errors.ValidateText("title", d.Title); err != nil {
		return invalid(err, "title")
	}
	if d.Grid.Rows < 1 || d.Grid.Cols < 1 {
		return errors.New(errors.ErrCodeInvalidDescriptor, "grid needs rows and cols of at least 1, got %dx%d", d.Grid.Rows, d.Grid.Cols)
	}
	if len(d.Cells) == 0 {
		return errors.New(errors.ErrCodeInvalidDescriptor, "descriptor declares no cells")
	}

	for i, m := range d.Metrics {
		if err := m.validate(); err != nil {
			return invalid(err, "metrics[%d]", i)
		}
	}
	for i, r := range d.Derived {
		if r.Name == "" || r.Rule == "" {
			return errors.New(errors.ErrCodeInvalidDescriptor, "derived[%d]: name and rule are required", i)
		}
	}
	for i, c := range d.Cells {
		if err := c.validate(); err != nil {
			return invalid(err, "cells[%d]", i)
		}
	}
	for i, o := range d.Overlays {
		if len(o.Readings) == 0 {
			return errors.New(errors.ErrCodeInvalidDescriptor, "overlays[%d]: no readings", i)
		}
	}
	return nil
}

func (m Metric) validate() error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if (m.Value == nil) == (len(m.Series) == 0) {
		return fmt.Errorf("metric %q needs exactly one of value or series", m.Name)
	}
	if m.Target != nil && len(m.Targets) > 0 {
		return fmt.Errorf("metric %q sets both target and targets", m.Name)
	}
	return nil
}

func (c Cell) validate() error {
	if (c.Row == nil) != (c.Col == nil) {
		return fmt.Errorf("row and col must be set together")
	}
	if c.RowSpan < 0 || c.ColSpan < 0 {
		return fmt.Errorf("spans must not be negative")
	}
	n := 0
	for _, set := range []bool{c.Gauge != nil, c.TimeSeries != nil, c.Comparison != nil, c.Ring != nil} {
		if set {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("cell %q declares %d panels, want at most one", c.Title, n)
	}
	return nil
}

func invalid(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidDescriptor, err, format, args...)
}
