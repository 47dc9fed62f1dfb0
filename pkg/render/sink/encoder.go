package sink

import (
	"context"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/cache"
	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/observability"
	"github.com/matzehuels/okrdash/pkg/render"
)

// Input is everything a sink may need from one report run.
type Input struct {
	Doc   *render.Document
	Plan  *layout.Plan
	Layer *annotate.Layer
}

// convertFunc turns SVG bytes into a PNG or PDF.
type convertFunc func(ctx context.Context, svg []byte, f Format, scale float64) ([]byte, error)

func rsvgConvert(ctx context.Context, svg []byte, f Format, scale float64) ([]byte, error) {
	if f == FormatPNG {
		return render.ToPNG(ctx, svg, scale)
	}
	return render.ToPDF(ctx, svg)
}

// Option configures an [Encoder].
type Option func(*Encoder)

// WithCache stores converted PNG and PDF bytes in c under keys from k.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(e *Encoder) { e.cache, e.keyer = c, k }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) Option { return func(e *Encoder) { e.scale = s } }

// Encoder produces output bytes for each format.
type Encoder struct {
	cache   cache.Cache
	keyer   cache.Keyer
	scale   float64
	convert convertFunc
}

// NewEncoder returns an encoder that converts with rsvg-convert and, unless
// configured otherwise, never caches.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		scale:   2.0,
		convert: rsvgConvert,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode returns in.Doc encoded as f.
func (e *Encoder) Encode(ctx context.Context, f Format, in Input) ([]byte, error) {
	if in.Doc == nil {
		return nil, errors.New(errors.ErrCodeInternal, "encode %s: no document", f)
	}
	switch f {
	case FormatHTML:
		return RenderHTML(in.Doc)
	case FormatSVG:
		return in.Doc.SVG, nil
	case FormatJSON:
		if in.Plan == nil || in.Layer == nil {
			return nil, errors.New(errors.ErrCodeInternal, "encode json: plan and annotations required")
		}
		return RenderJSON(in.Doc, in.Plan, in.Layer)
	case FormatPNG, FormatPDF:
		return e.converted(ctx, f, in.Doc)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// converted returns the cached conversion of doc, converting on a miss.
// Cache failures are never fatal; the artifact is simply rebuilt.
func (e *Encoder) converted(ctx context.Context, f Format, doc *render.Document) ([]byte, error) {
	opts := cache.ArtifactKeyOpts{Format: string(f)}
	if f == FormatPNG {
		opts.Scale = e.scale
	}
	key := e.keyer.ArtifactKey(cache.Hash(doc.SVG), opts)

	if data, hit, err := e.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, string(f))
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, string(f))

	data, err := e.convert(ctx, doc.SVG, f, e.scale)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, string(f), len(data))
	}
	return data, nil
}
