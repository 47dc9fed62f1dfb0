package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/pipeline"
	"github.com/matzehuels/okrdash/pkg/render/sink"
	"github.com/matzehuels/okrdash/pkg/report"
)

// renderCommand creates the render command.
//
// Every argument is a descriptor path or a preset name. Descriptors are
// loaded and checked up front, then rendered concurrently (bounded by
// --jobs). Each report writes <output>/<name>.<format> for every format.
func (c *CLI) renderCommand() *cobra.Command {
	var logo string

	cmd := &cobra.Command{
		Use:   "render <descriptor|preset>...",
		Short: "Render report descriptors or presets to dashboards",
		Example: `  okrdash render classic
  okrdash render q3.toml -f html,png -o out/
  okrdash render classic extended live --open`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			reports, err := openReports(args, logo)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, reports)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output directory (default \".\")")
	cmd.Flags().StringSliceP("format", "f", nil, "output format(s): html (default), svg, png, pdf, json")
	cmd.Flags().Bool("open", false, "open each rendered document")
	cmd.Flags().Bool("no-cache", false, "convert PNG/PDF without the artifact cache")
	cmd.Flags().IntP("jobs", "j", 0, "reports to render concurrently (default 4)")
	cmd.Flags().Float64("scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().StringVar(&logo, "logo", "", "logo file replacing the descriptor's own")

	return cmd
}

// openReports loads every reference before anything is rendered, so a typo
// in the last argument fails the command without writing files.
func openReports(refs []string, logo string) ([]*report.Report, error) {
	reports := make([]*report.Report, 0, len(refs))
	seen := make(map[string]string, len(refs))
	for _, ref := range refs {
		rep, err := report.Open(ref)
		if err != nil {
			return nil, err
		}
		if logo != "" {
			rep = rep.WithLogo(logo)
		}
		stem := reportStem(rep)
		if prev, ok := seen[stem]; ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s and %s would both write %s.*", prev, ref, stem)
		}
		seen[stem] = ref
		reports = append(reports, rep)
	}
	return reports, nil
}

// runRender renders reports concurrently and prints one summary per report
// in argument order.
func (c *CLI) runRender(ctx context.Context, cfg *Config, reports []*report.Report) error {
	formats, err := sink.ParseFormats(cfg.Formats)
	if err != nil {
		return err
	}
	runner := c.newRunner(cfg)
	prog := newProgress(c.Logger)

	spinner := newSpinner(ctx, os.Stderr, renderMessage(0, len(reports)))
	spinner.Start()

	var done atomic.Int32
	results := make([]*pipeline.Result, len(reports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, rep := range reports {
		g.Go(func() error {
			res, err := runner.Execute(gctx, rep, pipeline.Options{
				Formats: formats,
				Output:  outputPath(cfg.Output, rep),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", rep.Name, err)
			}
			results[i] = res
			spinner.Update(renderMessage(int(done.Add(1)), len(reports)))
			return nil
		})
	}
	err = g.Wait()
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, res := range results {
		printSuccess("Rendered %s", res.Report.Name)
		printStats(res.Stats)
		for _, f := range res.Files {
			printFile(f)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d report(s)", len(results)))

	if cfg.Open {
		return c.openResults(ctx, results)
	}
	return nil
}

// openResults opens the first written file of every result. Failures are
// reported but do not fail the command; the files are already on disk.
func (c *CLI) openResults(ctx context.Context, results []*pipeline.Result) error {
	for _, res := range results {
		if len(res.Files) == 0 {
			continue
		}
		if err := c.opener.Open(ctx, res.Files[0]); err != nil {
			printWarning("Could not open %s: %v", res.Files[0], err)
		}
	}
	return nil
}

// reportStem names a report's output files: the preset name, or the
// descriptor's base name without extension.
func reportStem(rep *report.Report) string {
	base := filepath.Base(rep.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputPath returns the extension-less destination for rep inside dir.
func outputPath(dir string, rep *report.Report) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, reportStem(rep))
}

func renderMessage(done, total int) string {
	return fmt.Sprintf("Rendering reports (%d/%d)", done, total)
}

// completePresets offers preset names for shell completion. The shell falls
// back to file names when nothing matches.
func completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range report.Presets() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveDefault
}
