package render

import (
	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/layout"
)

// Margin is the space around the plotting area in pixels.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Page is the document size. Paper coordinates map onto the area inside the
// margins, so titles and the logo may sit in the top margin.
type Page struct {
	Width, Height float64
	Margin        Margin
}

// DefaultPage returns the dashboard's page: 1400x950 with a tall top margin
// for the header block.
func DefaultPage() Page {
	return Page{
		Width:  1400,
		Height: 950,
		Margin: Margin{Top: 100, Right: 55, Bottom: 55, Left: 55},
	}
}

// Validate checks that the plotting area is not empty.
func (p Page) Validate() error {
	m := p.Margin
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page margins must not be negative")
	}
	if p.plotWidth() <= 0 || p.plotHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page %vx%v leaves no room inside margins", p.Width, p.Height)
	}
	return nil
}

func (p Page) plotWidth() float64  { return p.Width - p.Margin.Left - p.Margin.Right }
func (p Page) plotHeight() float64 { return p.Height - p.Margin.Top - p.Margin.Bottom }

// X maps a paper x coordinate to pixels.
func (p Page) X(x float64) float64 { return p.Margin.Left + x*p.plotWidth() }

// Y maps a paper y coordinate (up) to pixels (down).
func (p Page) Y(y float64) float64 { return p.Margin.Top + (1-y)*p.plotHeight() }

// box is a pixel rectangle with its origin at the top-left.
type box struct {
	x, y, w, h float64
}

func (b box) centerX() float64 { return b.x + b.w/2 }

func (p Page) box(r layout.Rect) box {
	return box{x: p.X(r.X0), y: p.Y(r.Y1), w: r.Width() * p.plotWidth(), h: r.Height() * p.plotHeight()}
}
