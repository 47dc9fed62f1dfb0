// Package cli implements the okrdash command-line interface.
//
// This package provides commands for rendering report descriptors and
// embedded presets into dashboards, validating descriptors without drawing
// them, and managing the converted-artifact cache. The CLI is built using
// cobra, reads its defaults through viper and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Render descriptors or presets to HTML, SVG, PNG, PDF or JSON
//   - validate: Run every check a render would, without writing anything
//   - presets: List the embedded presets or pick one interactively
//   - cache: Manage the PNG/PDF conversion cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports each pipeline stage and cache lookup as it happens.
//
// # Example
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/okrdash/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Validated 3 descriptors (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability Hooks
// =============================================================================

// stageLogger reports pipeline stages at debug level.
type stageLogger struct {
	logger *log.Logger
}

func (s *stageLogger) OnStageStart(_ context.Context, report string, stage observability.Stage) {
	s.logger.Debug("stage started", "report", report, "stage", stage)
}

func (s *stageLogger) OnStageComplete(_ context.Context, report string, stage observability.Stage, d time.Duration, err error) {
	if err != nil {
		s.logger.Debug("stage failed", "report", report, "stage", stage, "duration", d, "err", err)
		return
	}
	s.logger.Debug("stage done", "report", report, "stage", stage, "duration", d)
}

// cacheLogger reports artifact cache activity at debug level.
type cacheLogger struct {
	logger *log.Logger
}

func (c *cacheLogger) OnCacheHit(_ context.Context, format string) {
	c.logger.Debug("cache hit", "format", format)
}

func (c *cacheLogger) OnCacheMiss(_ context.Context, format string) {
	c.logger.Debug("cache miss", "format", format)
}

func (c *cacheLogger) OnCacheSet(_ context.Context, format string, size int) {
	c.logger.Debug("cached artifact", "format", format, "bytes", size)
}
