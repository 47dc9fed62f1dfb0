package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/cache"
	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/panel"
	"github.com/matzehuels/okrdash/pkg/render"
	"github.com/matzehuels/okrdash/pkg/theme"
)

func testInput(t *testing.T) Input {
	t.Helper()
	g, err := panel.NewGauge(panel.GaugeSpec{Value: 28, Target: 70, Delta: 42, Unit: metrics.UnitPercent})
	if err != nil {
		t.Fatalf("NewGauge() error: %v", err)
	}
	plan, err := layout.Build(layout.Shape{Rows: 2, Cols: 1, VSpacing: 0.1}, []layout.Request{
		{At: &layout.Position{Row: 1}, Title: "Habit <3+ visits>", Panel: g},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	cfg := annotate.DefaultConfig()
	cfg.Logo = nil
	cfg.Header.Title = "OKR Dashboard"
	layer, err := annotate.Position(plan, nil, theme.Default(), cfg)
	if err != nil {
		t.Fatalf("Position() error: %v", err)
	}
	doc, err := render.Render(plan, layer, render.WithTitle("OKR Dashboard"))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return Input{Doc: doc, Plan: plan, Layer: layer}
}

func TestRenderHTMLKeepsQuotedFontFamily(t *testing.T) {
	in := testInput(t)
	in.Doc.Theme.FontFamily = "'Segoe UI', sans-serif"
	page, err := RenderHTML(in.Doc)
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	s := string(page)
	if strings.Contains(s, "ZgotmplZ") {
		t.Error("font family was replaced by the template's unsafe-value marker")
	}
	if !strings.Contains(s, "Segoe UI") {
		t.Error("font family missing from page style")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatHTML, true},
		{"svg", FormatSVG, true},
		{" PNG ", FormatPNG, true},
		{"pdf", FormatPDF, true},
		{"json", FormatJSON, true},
		{"gif", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want INVALID_FORMAT", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatsDedupes(t *testing.T) {
	got, err := ParseFormats([]string{"svg", "html", "svg"})
	if err != nil {
		t.Fatalf("ParseFormats() error: %v", err)
	}
	if len(got) != 2 || got[0] != FormatSVG || got[1] != FormatHTML {
		t.Errorf("ParseFormats() = %v, want [svg html]", got)
	}
	if got, _ := ParseFormats(nil); len(got) != 1 || got[0] != FormatHTML {
		t.Errorf("ParseFormats(nil) = %v, want [html]", got)
	}
}

func TestRenderHTMLIsSelfContained(t *testing.T) {
	in := testInput(t)
	page, err := RenderHTML(in.Doc)
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	s := string(page)
	if !strings.Contains(s, string(in.Doc.SVG)) {
		t.Error("SVG not inlined verbatim")
	}
	if !strings.Contains(s, `content="`+in.Doc.ID.String()+`"`) {
		t.Error("document ID missing from page")
	}
	for _, external := range []string{"<script", "<link", `src="http`} {
		if strings.Contains(s, external) {
			t.Errorf("page references external content: %q", external)
		}
	}
	if !strings.Contains(s, "background:#0a0a0a") {
		t.Error("page background not themed")
	}
	if !strings.Contains(string(in.Doc.SVG), "Habit &lt;3+ visits&gt;") {
		t.Error("title text not escaped in SVG")
	}
}

func TestRenderJSON(t *testing.T) {
	in := testInput(t)
	data, err := RenderJSON(in.Doc, in.Plan, in.Layer)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.DocumentID != in.Doc.ID.String() {
		t.Errorf("DocumentID = %q", out.DocumentID)
	}
	if out.Grid.Rows != 2 || out.Grid.Cols != 1 || len(out.Grid.RowWeights) != 2 {
		t.Errorf("Grid = %+v", out.Grid)
	}
	if len(out.Cells) != 1 || out.Cells[0].Kind != "gauge" || out.Cells[0].Row != 1 {
		t.Errorf("Cells = %+v", out.Cells)
	}
	if len(out.Annotations) != 2 {
		t.Errorf("got %d annotations, want title and header", len(out.Annotations))
	}
	if out.Logo != nil {
		t.Error("logo exported although none was placed")
	}
}

func TestEncodeSVG(t *testing.T) {
	in := testInput(t)
	data, err := NewEncoder().Encode(context.Background(), FormatSVG, in)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(data, in.Doc.SVG) {
		t.Error("svg sink should return the document unchanged")
	}
}

func TestEncodeConvertsOncePerDocument(t *testing.T) {
	ctx := context.Background()
	in := testInput(t)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	calls := 0
	enc := NewEncoder(WithCache(fc, cache.NewDefaultKeyer()), WithScale(1))
	enc.convert = func(_ context.Context, svg []byte, f Format, scale float64) ([]byte, error) {
		calls++
		return []byte(string(f) + ":" + cache.Hash(svg)[:8]), nil
	}

	first, err := enc.Encode(ctx, FormatPNG, in)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	second, err := enc.Encode(ctx, FormatPNG, in)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("converter called %d times, want 1", calls)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached artifact differs from the original")
	}

	if _, err := enc.Encode(ctx, FormatPDF, in); err != nil {
		t.Fatalf("Encode(pdf) error: %v", err)
	}
	if calls != 2 {
		t.Errorf("pdf should not reuse the png entry, converter calls = %d", calls)
	}
}

func TestEncodeWithoutDocument(t *testing.T) {
	_, err := NewEncoder().Encode(context.Background(), FormatHTML, Input{})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want INTERNAL_ERROR", err)
	}
}
