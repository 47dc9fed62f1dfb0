package sink

import (
	"encoding/json"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/render"
)

type jsonOutput struct {
	DocumentID  string           `json:"document_id"`
	Title       string           `json:"title,omitempty"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Grid        jsonGrid         `json:"grid"`
	Cells       []jsonCell       `json:"cells"`
	Annotations []jsonAnnotation `json:"annotations"`
	Badges      []jsonRect       `json:"badges,omitempty"`
	Logo        *jsonRect        `json:"logo,omitempty"`
}

type jsonGrid struct {
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	RowWeights []float64 `json:"row_weights"`
	HSpacing   float64   `json:"h_spacing"`
	VSpacing   float64   `json:"v_spacing"`
}

type jsonCell struct {
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	RowSpan int      `json:"row_span"`
	ColSpan int      `json:"col_span"`
	Kind    string   `json:"kind,omitempty"`
	Title   string   `json:"title,omitempty"`
	Rect    jsonRect `json:"rect"`
}

type jsonRect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

type jsonAnnotation struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Align    string  `json:"align"`
	VAlign   string  `json:"valign"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
	Bold     bool    `json:"bold,omitempty"`
	Z        int     `json:"z"`
}

func toJSONRect(r layout.Rect) jsonRect {
	return jsonRect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

// RenderJSON exports the plan and annotations behind doc as pretty-printed
// JSON. Coordinates are paper coordinates (0..1, y up).
func RenderJSON(doc *render.Document, plan *layout.Plan, layer *annotate.Layer) ([]byte, error) {
	shape := plan.Shape()
	out := jsonOutput{
		DocumentID: doc.ID.String(),
		Title:      doc.Title,
		Width:      doc.Width,
		Height:     doc.Height,
		Grid: jsonGrid{
			Rows:       shape.Rows,
			Cols:       shape.Cols,
			RowWeights: shape.RowWeights,
			HSpacing:   shape.HSpacing,
			VSpacing:   shape.VSpacing,
		},
		Cells:       make([]jsonCell, 0),
		Annotations: make([]jsonAnnotation, 0),
	}

	for _, c := range plan.Cells() {
		out.Cells = append(out.Cells, jsonCell{
			Row:     c.Row,
			Col:     c.Col,
			RowSpan: c.RowSpan,
			ColSpan: c.ColSpan,
			Kind:    string(c.Kind()),
			Title:   c.Title,
			Rect:    toJSONRect(c.Rect),
		})
	}
	for _, a := range layer.Annotations() {
		out.Annotations = append(out.Annotations, jsonAnnotation{
			Text:     a.Text,
			X:        a.X,
			Y:        a.Y,
			Align:    string(a.Align),
			VAlign:   string(a.VAlign),
			FontSize: a.FontSize,
			Color:    string(a.Color),
			Bold:     a.Bold,
			Z:        a.Z,
		})
	}
	for _, b := range layer.Badges() {
		out.Badges = append(out.Badges, toJSONRect(b.Rect))
	}
	if logo, ok := layer.Logo(); ok {
		r := toJSONRect(logo.Rect())
		out.Logo = &r
	}

	return json.MarshalIndent(out, "", "  ")
}
