package render

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/theme"
)

// documentNamespace scopes document IDs so they never collide with other
// name-based UUIDs of the same bytes.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/okrdash/document"))

// Embedded is an asset that can be inlined into the document.
type Embedded interface {
	DataURI() string
}

// Document is one rendered dashboard.
type Document struct {
	ID     uuid.UUID
	Title  string
	Width  float64
	Height float64
	Theme  theme.Theme
	SVG    []byte
}

type Option func(*renderer)

type renderer struct {
	theme theme.Theme
	page  Page
	logo  Embedded
	title string
}

func WithTheme(t theme.Theme) Option { return func(r *renderer) { r.theme = t } }
func WithPage(p Page) Option         { return func(r *renderer) { r.page = p } }
func WithLogo(img Embedded) Option   { return func(r *renderer) { r.logo = img } }
func WithTitle(s string) Option      { return func(r *renderer) { r.title = s } }

func newRenderer(opts ...Option) renderer {
	r := renderer{theme: theme.Default(), page: DefaultPage()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws plan and layer into a single SVG document. It never mutates
// its inputs, and equal inputs produce byte-identical output.
func Render(plan *layout.Plan, layer *annotate.Layer, opts ...Option) (*Document, error) {
	r := newRenderer(opts...)
	if err := r.page.Validate(); err != nil {
		return nil, err
	}
	if err := r.theme.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateText("document title", r.title); err != nil {
		return nil, err
	}

	logo, hasLogo := layer.Logo()
	if hasLogo && r.logo == nil {
		return nil, errors.New(errors.ErrCodeAssetUnavailable, "logo is placed but no logo asset was loaded")
	}

	var body bytes.Buffer
	th, page := r.theme, r.page
	fmt.Fprintf(&body, `  <rect width="%s" height="%s" fill="%s"/>`+"\n", num(page.Width), num(page.Height), th.Background)

	for i, c := range plan.Cells() {
		if c.Empty() {
			continue
		}
		fmt.Fprintf(&body, `  <g class="cell cell-%s" data-row="%d" data-col="%d">`+"\n", c.Kind(), c.Row, c.Col)
		if err := drawPanel(&body, page.box(c.Rect), c.Panel, th); err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		body.WriteString("  </g>\n")
	}

	if hasLogo {
		lb := page.box(logo.Rect())
		fmt.Fprintf(&body, `  <image class="logo" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMin meet" href="%s"/>`+"\n",
			num(lb.x), num(lb.y), num(lb.w), num(lb.h), r.logo.DataURI())
	}

	drawLayer(&body, page, layer)

	id := uuid.NewSHA1(documentNamespace, body.Bytes())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" font-family="%s" data-document-id="%s">`+"\n",
		num(page.Width), num(page.Height), num(page.Width), num(page.Height), escapeXML(th.FontFamily), id)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")

	return &Document{
		ID:     id,
		Title:  r.title,
		Width:  page.Width,
		Height: page.Height,
		Theme:  th,
		SVG:    buf.Bytes(),
	}, nil
}

func drawPanel(buf *bytes.Buffer, b box, p panel.Panel, th theme.Theme) error {
	switch p := p.(type) {
	case panel.Gauge:
		drawGauge(buf, b, p, th)
		return nil
	case panel.TimeSeries:
		return drawTimeSeries(buf, b, p, th)
	case panel.Comparison:
		return drawComparison(buf, b, p, th)
	case panel.Ring:
		return drawRing(buf, b, p, th)
	case panel.Overlay:
		return errors.New(errors.ErrCodeInvalidPanel, "overlay %q cannot occupy a grid cell", p.Label())
	default:
		return errors.New(errors.ErrCodeUnsupported, "no drawing rule for panel kind %q", p.Kind())
	}
}

// drawLayer writes badges and annotations interleaved by Z so a badge always
// sits beneath its own text.
func drawLayer(buf *bytes.Buffer, page Page, layer *annotate.Layer) {
	badges, anns := layer.Badges(), layer.Annotations()
	i, j := 0, 0
	for i < len(badges) || j < len(anns) {
		if i < len(badges) && (j == len(anns) || badges[i].Z <= anns[j].Z) {
			bb := page.box(badges[i].Rect)
			fmt.Fprintf(buf, `  <rect class="badge" x="%s" y="%s" width="%s" height="%s" rx="6" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
				num(bb.x), num(bb.y), num(bb.w), num(bb.h), badges[i].Fill, badges[i].Stroke)
			i++
			continue
		}
		a := anns[j]
		writeText(buf, page.X(a.X), page.Y(a.Y), a.Text, textStyle{
			size:     a.FontSize,
			color:    a.Color,
			anchor:   anchorFor(a.Align),
			baseline: baselineFor(a.VAlign),
			bold:     a.Bold,
			class:    "annotation",
		})
		j++
	}
}
