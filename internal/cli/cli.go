package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/okrdash/pkg/buildinfo"
	"github.com/matzehuels/okrdash/pkg/cache"
	"github.com/matzehuels/okrdash/pkg/export"
	"github.com/matzehuels/okrdash/pkg/observability"
	"github.com/matzehuels/okrdash/pkg/pipeline"
	"github.com/matzehuels/okrdash/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "okrdash"

	// envPrefix prefixes environment overrides, e.g. OKRDASH_FORMATS.
	envPrefix = "OKRDASH"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by --config; empty searches the default locations.
	configPath string

	// opener shows rendered files for --open.
	opener export.Opener
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		opener: export.Browser{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "okrdash renders OKR dashboards from report descriptors",
		Long:         `okrdash composes gauges, time series, comparison bars and rings on a grid and renders them as a single HTML, SVG, PNG or PDF dashboard.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.installHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+filepath.Join("$XDG_CONFIG_HOME", appName, "config.toml")+")")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// installHooks routes pipeline and cache events to the CLI logger.
func (c *CLI) installHooks() {
	observability.SetPipelineHooks(&stageLogger{logger: c.Logger})
	observability.SetCacheHooks(&cacheLogger{logger: c.Logger})
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg *Config) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	enc := sink.NewEncoder(
		sink.WithCache(c.newCache(cfg.NoCache), keyer),
		sink.WithScale(cfg.Scale),
	)
	return pipeline.NewRunner(enc, c.Logger)
}

// newCache opens the artifact cache. A cache that cannot be opened is not
// fatal; rendering simply converts every time.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(cacheDir())
	if err != nil {
		c.Logger.Warn("artifact cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/okrdash/).
func cacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return cache.DefaultDir()
	}
	return filepath.Join(home, ".cache", appName)
}

// configDir returns the config directory using XDG standard (~/.config/okrdash/).
func configDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
