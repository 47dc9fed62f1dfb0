package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/okrdash/pkg/annotate"
	"github.com/matzehuels/okrdash/pkg/export"
	"github.com/matzehuels/okrdash/pkg/layout"
	"github.com/matzehuels/okrdash/pkg/metrics"
	"github.com/matzehuels/okrdash/pkg/observability"
	"github.com/matzehuels/okrdash/pkg/render"
	"github.com/matzehuels/okrdash/pkg/render/sink"
	"github.com/matzehuels/okrdash/pkg/report"
)

// Runner executes report runs.
//
// The Runner holds no per-run state, so several goroutines may share one
// Runner to render different reports concurrently.
type Runner struct {
	Encoder *sink.Encoder
	Logger  *log.Logger
}

// NewRunner creates a runner.
// If enc is nil, an uncached encoder is used.
// If logger is nil, log output is discarded.
func NewRunner(enc *sink.Encoder, logger *log.Logger) *Runner {
	if enc == nil {
		enc = sink.NewEncoder()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Encoder: enc, Logger: logger}
}

// Execute runs every stage for rep and, when opts.Output is set, writes one
// file per format.
func (r *Runner) Execute(ctx context.Context, rep *report.Report, opts Options) (*Result, error) {
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []sink.Format{sink.FormatHTML}
	}

	res, err := r.Compose(ctx, rep)
	if err != nil {
		return nil, err
	}
	logger := r.Logger.With("report", rep.Name)

	// Stage 6: Render
	err = r.stage(ctx, res, observability.StageRender, func() error {
		ropts := []render.Option{
			render.WithTheme(res.Theme),
			render.WithPage(rep.Descriptor.Page()),
			render.WithTitle(rep.Descriptor.Title),
		}
		if res.Logo != nil {
			ropts = append(ropts, render.WithLogo(res.Logo))
		}
		doc, err := render.Render(res.Plan, res.Layer, ropts...)
		if err != nil {
			return err
		}
		res.Document = doc

		res.Artifacts = make(map[sink.Format][]byte, len(formats))
		in := sink.Input{Doc: doc, Plan: res.Plan, Layer: res.Layer}
		for _, f := range formats {
			data, err := r.Encoder.Encode(ctx, f, in)
			if err != nil {
				return fmt.Errorf("encode %s: %w", f, err)
			}
			res.Artifacts[f] = data
			res.Stats.Bytes += len(data)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("rendered document",
		"id", res.Document.ID,
		"formats", formats,
		"bytes", res.Stats.Bytes,
		"duration", res.Stats.Timings[observability.StageRender])

	if opts.Output == "" {
		return res, nil
	}

	// Stage 7: Export
	err = r.stage(ctx, res, observability.StageExport, func() error {
		files := make([]export.File, len(formats))
		for i, f := range formats {
			files[i] = export.File{Path: opts.Output + f.Extension(), Data: res.Artifacts[f]}
		}
		if err := export.WriteAll(files); err != nil {
			return err
		}
		for _, f := range files {
			res.Files = append(res.Files, f.Path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("wrote files", "files", res.Files, "duration", res.Stats.Timings[observability.StageExport])

	return res, nil
}

// Compose runs the stages up to and including the logo load. It performs
// every check a full run would, without drawing anything.
func (r *Runner) Compose(ctx context.Context, rep *report.Report) (*Result, error) {
	d := &rep.Descriptor
	logger := r.Logger.With("report", rep.Name)
	res := &Result{
		Report: rep,
		Stats:  Stats{Timings: make(map[observability.Stage]time.Duration)},
	}

	// Stage 1: Derive
	err := r.stage(ctx, res, observability.StageDerive, func() error {
		raw, err := d.MetricSet()
		if err != nil {
			return err
		}
		set, err := metrics.Derive(raw, d.Rules())
		if err != nil {
			return err
		}
		res.Metrics = set
		res.Stats.Metrics = raw.Len()
		res.Stats.Derived = set.Len() - raw.Len()
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("derived metrics",
		"metrics", res.Stats.Metrics,
		"derived", res.Stats.Derived,
		"duration", res.Stats.Timings[observability.StageDerive])

	// Stage 2: Panels
	var reqs []layout.Request
	err = r.stage(ctx, res, observability.StagePanels, func() error {
		var err error
		reqs, res.Overlays, err = d.Panels(res.Metrics)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Stage 3: Layout
	err = r.stage(ctx, res, observability.StageLayout, func() error {
		plan, err := layout.Build(d.Shape(), reqs)
		if err != nil {
			return err
		}
		res.Plan = plan
		for _, c := range plan.Cells() {
			res.Stats.Cells++
			if !c.Empty() {
				res.Stats.Panels++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("placed cells",
		"cells", res.Stats.Cells,
		"panels", res.Stats.Panels,
		"overlays", len(res.Overlays),
		"duration", res.Stats.Timings[observability.StageLayout])

	// Stage 4: Position
	err = r.stage(ctx, res, observability.StagePosition, func() error {
		th, err := d.ResolveTheme()
		if err != nil {
			return err
		}
		layer, err := annotate.Position(res.Plan, res.Overlays, th, d.AnnotateConfig())
		if err != nil {
			return err
		}
		res.Theme, res.Layer = th, layer
		res.Stats.Annotations = len(layer.Annotations())
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("positioned annotations",
		"annotations", res.Stats.Annotations,
		"badges", len(res.Layer.Badges()))

	// Stage 5: Asset
	err = r.stage(ctx, res, observability.StageAsset, func() error {
		logo, err := rep.LoadLogo()
		res.Logo = logo
		return err
	})
	if err != nil {
		return nil, err
	}
	if res.Logo != nil {
		logger.Debug("loaded logo", "name", res.Logo.Name, "mime", res.Logo.MIME, "bytes", res.Logo.Size())
	}

	return res, nil
}

// stage runs fn as the named stage: it checks for cancellation, times fn,
// reports both ends to the pipeline hooks and prefixes any error with the
// stage name.
func (r *Runner) stage(ctx context.Context, res *Result, name observability.Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, res.Report.Name, name)

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	res.Stats.Timings[name] = elapsed
	hooks.OnStageComplete(ctx, res.Report.Name, name, elapsed, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
