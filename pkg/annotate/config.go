package annotate

import (
	"math"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/panel"
)

// Config holds the positioning rules.
type Config struct {
	// BaseOffset lifts every cell title above its cell's top edge.
	BaseOffset float64
	// KindOffsets adds to BaseOffset for cells holding the given panel kind.
	KindOffsets map[panel.Kind]float64
	// SubtitleGap is how far below the cell top gauge subtitles start.
	SubtitleGap float64

	Header Header
	Logo   *LogoBox

	// OverlayOffsets are the x positions of overlay text pieces as fractions
	// of the badge width.
	OverlayOffsets []float64
}

// DefaultConfig returns the positioning rules of the extended dashboard.
func DefaultConfig() Config {
	return Config{
		BaseOffset:     0.02,
		KindOffsets:    map[panel.Kind]float64{panel.KindGauge: 0.02},
		SubtitleGap:    0.01,
		Header:         Header{X: 0.5, Y: 0.90},
		Logo:           &LogoBox{X: 0.5, Y: 1.02, Width: 0.35, Height: 0.10},
		OverlayOffsets: []float64{0.05, 0.45, 0.62, 0.70, 0.87, 0.92},
	}
}

// TitleOffset returns the distance between a cell's top edge and the
// baseline of its title.
func (c Config) TitleOffset(k panel.Kind) float64 {
	return c.BaseOffset + c.KindOffsets[k]
}

// Validate checks that every offset is a finite, non-negative fraction.
func (c Config) Validate() error {
	check := func(what string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= 1 {
			return errors.New(errors.ErrCodeInvalidInput, "%s %v outside [0,1)", what, v)
		}
		return nil
	}
	if err := check("base title offset", c.BaseOffset); err != nil {
		return err
	}
	for _, k := range []panel.Kind{panel.KindGauge, panel.KindTimeSeries, panel.KindComparison, panel.KindRing} {
		if err := check(string(k)+" title offset", c.KindOffsets[k]); err != nil {
			return err
		}
	}
	if err := check("subtitle gap", c.SubtitleGap); err != nil {
		return err
	}
	for i, off := range c.OverlayOffsets {
		if err := check("overlay offset", off); err != nil {
			return err
		}
		if i > 0 && off <= c.OverlayOffsets[i-1] {
			return errors.New(errors.ErrCodeInvalidInput, "overlay offsets must increase, got %v after %v", off, c.OverlayOffsets[i-1])
		}
	}
	if c.Logo != nil && (c.Logo.Width <= 0 || c.Logo.Height <= 0) {
		return errors.New(errors.ErrCodeInvalidInput, "logo box must have positive size, got %vx%v", c.Logo.Width, c.Logo.Height)
	}
	return nil
}
