package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketview/pkg/buildinfo"
	"github.com/matzehuels/bracketview/pkg/cache"
	"github.com/matzehuels/bracketview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bracketview"

	// layoutSuffix is appended to the base name of layout files.
	layoutSuffix = ".layout"
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

	verbose    bool
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bracketview lays out and renders tournament brackets",
		Long: `bracketview reads tournament brackets from JSON, TOML or YAML files,
computes the position of every match and draws the bracket as SVG, PNG,
PDF, JSON layout or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			c.registerHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML options file (flags override its values)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.positionsCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped
// by build version.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bracketview/).
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

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension (and a ".layout" infix) from
// input. If output has a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, layoutSuffix)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(strings.TrimSuffix(output, ext), layoutSuffix)
	}
	return output
}

// artifactPath names the file for one format. JSON layouts get a ".layout"
// infix so they never overwrite a JSON bracket file of the same name.
func artifactPath(base, format string) string {
	if format == pipeline.FormatJSON {
		return base + layoutSuffix + ".json"
	}
	return base + "." + format
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies pipeline defaults so flag help shows real values.
func setCLIDefaults(opts *pipeline.Options) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Formats = nil
	opts.Logger = nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// addLayoutFlags binds the geometry flags shared by layout-producing commands.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringVar(&opts.Section, "section", opts.Section, "lay out only the section with this title")
	f.Float64Var(&opts.RowHeight, "row-height", opts.RowHeight, "vertical distance between first-round matches")
	f.Float64Var(&opts.BoxWidth, "box-width", opts.BoxWidth, "match box width")
	f.Float64Var(&opts.BoxHeight, "box-height", opts.BoxHeight, "match box height")
	f.Float64Var(&opts.ColumnGap, "column-gap", opts.ColumnGap, "horizontal gap between rounds (0 allowed)")
	f.Float64Var(&opts.FlowGap, "flow-gap", opts.FlowGap, "vertical gap between boxes of linear sections (0 allowed)")
	f.Float64Var(&opts.HeaderHeight, "header-height", opts.HeaderHeight, "height of the round header row (0 hides it)")
	f.Float64Var(&opts.Margin, "margin", opts.Margin, "frame margin (0 allowed)")
}

// addRenderFlags binds the flags shared by artifact-producing commands.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	f := cmd.Flags()
	f.StringVarP(formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	f.StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: bracket (default), nodelink")
	f.StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), dark")
	f.BoolVar(&opts.Interaction, "interactive", opts.Interaction, "highlight the path of a match on hover (svg)")
	f.BoolVar(&opts.Winners, "winners", opts.Winners, "emphasize winners")
	f.Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	f.BoolVar(&opts.Detailed, "detailed", opts.Detailed, "show IDs and best-of counts (nodelink, dot)")
	f.BoolVar(&opts.Refresh, "refresh", opts.Refresh, "ignore cached results")
}

// flagFields copies one flag-bound option from src to dst.
var flagFields = map[string]func(dst, src *pipeline.Options){
	"section":       func(d, s *pipeline.Options) { d.Section = s.Section },
	"row-height":    func(d, s *pipeline.Options) { d.RowHeight = s.RowHeight },
	"box-width":     func(d, s *pipeline.Options) { d.BoxWidth = s.BoxWidth },
	"box-height":    func(d, s *pipeline.Options) { d.BoxHeight = s.BoxHeight },
	"column-gap":    func(d, s *pipeline.Options) { d.ColumnGap = s.ColumnGap },
	"flow-gap":      func(d, s *pipeline.Options) { d.FlowGap = s.FlowGap },
	"header-height": func(d, s *pipeline.Options) { d.HeaderHeight = s.HeaderHeight },
	"margin":        func(d, s *pipeline.Options) { d.Margin = s.Margin },
	"type":          func(d, s *pipeline.Options) { d.VizType = s.VizType },
	"style":         func(d, s *pipeline.Options) { d.Style = s.Style },
	"interactive":   func(d, s *pipeline.Options) { d.Interaction = s.Interaction },
	"winners":       func(d, s *pipeline.Options) { d.Winners = s.Winners },
	"scale":         func(d, s *pipeline.Options) { d.Scale = s.Scale },
	"detailed":      func(d, s *pipeline.Options) { d.Detailed = s.Detailed },
	"refresh":       func(d, s *pipeline.Options) { d.Refresh = s.Refresh },
}

// resolveOptions merges the --config file (if any) with the command's flags.
// Without a config file the flag values are used as they are; with one,
// only flags set explicitly on the command line override the file.
func (c *CLI) resolveOptions(cmd *cobra.Command, flags pipeline.Options, formats string) (pipeline.Options, error) {
	opts := flags
	if c.configPath != "" {
		loaded, err := pipeline.LoadOptionsFile(c.configPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		for name, set := range flagFields {
			if cmd.Flags().Changed(name) {
				set(&loaded, &flags)
			}
		}
		opts = loaded
		c.Logger.Debug("loaded options file", "path", c.configPath)
	}
	for name := range flagFields {
		if cmd.Flags().Changed(name) {
			opts.KeepZero(strings.ReplaceAll(name, "-", "_"))
		}
	}
	if cmd.Flags().Changed("format") {
		opts.Formats = parseFormats(formats)
	}
	opts.Logger = c.Logger
	return opts, nil
}
