// Package cli implements the figtex command-line interface.
//
// The commands read a figure description (see pkg/io), run it through the
// export pipeline and report what ended up in the overlay:
//   - export: write the text-free image and the TikZ overlay
//   - inspect: list the texts of a figure and whether they are kept
//   - tree: show the scene graph
//   - preamble: print a minimal LaTeX document using an overlay
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figtex/pkg/buildinfo"
	"github.com/matzehuels/figtex/pkg/cache"
	"github.com/matzehuels/figtex/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for files and display.
	appName = "figtex"

	// configFile is the config file looked up in the working directory.
	configFile = appName + ".toml"

	// cacheMaxAge is how long converted PDFs are kept.
	cacheMaxAge = 30 * 24 * time.Hour
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

	out io.Writer
}

// New creates a new CLI instance with a default logger. Command output
// goes to out.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		out:    out,
	}
}

// SetLogLevel updates the logger's level. At debug level the rasterizer's
// own diagnostics are routed to the same logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		gg.SetLogger(slog.New(c.Logger))
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "figtex exports figures as an image plus a TikZ text overlay",
		Long:         `figtex renders a figure without its text and writes a TikZ overlay that places every label back on top, so LaTeX typesets the text in the document font.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.preambleCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// newCache opens the conversion cache, falling back to no caching when the
// cache directory is unusable.
func (c *CLI) newCache(disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("conversion cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir, cacheMaxAge)
	if err != nil {
		c.Logger.Debug("conversion cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns $XDG_CACHE_HOME/figtex or ~/.cache/figtex.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
