package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/contrastlint/internal/colour"
	"github.com/jmylchreest/contrastlint/internal/config"
	"github.com/jmylchreest/contrastlint/internal/highlight"
	"github.com/jmylchreest/contrastlint/internal/palette"
	"github.com/jmylchreest/contrastlint/internal/report"
)

// checkOptions holds the flag values of one command tree.
type checkOptions struct {
	verbose    bool
	quiet      bool
	configPath string
	colors     string
	markers    []string
	calls      []string
	extensions []string
	format     string
	colour     string
	output     string
}

func registerCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	cmd.Flags().StringArrayVar(&opts.calls, "call", nil, "function name that declares a highlight group (repeatable)")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "file extensions read from source directories (default .lua)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatText, "output format (text, json)")
	cmd.Flags().StringVar(&opts.colour, "color", config.ColourAuto, "colourise output (auto, always, never)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
}

// resolveConfig layers defaults, the config file, the environment and flags.
func resolveConfig(flags *pflag.FlagSet, args []string, opts *checkOptions) (config.Config, error) {
	path, explicit := opts.configPath, flags.Changed("config")
	if path == "" {
		path = config.DefaultFile
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv()

	if flags.Changed("colors") {
		cfg.Colors = opts.colors
	}
	if flags.Changed("marker") {
		cfg.Markers = opts.markers
	}
	if flags.Changed("call") {
		cfg.Calls = opts.calls
	}
	if flags.Changed("ext") {
		cfg.Extensions = opts.extensions
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("color") {
		cfg.Colour = opts.colour
	}
	if len(args) > 0 {
		cfg.Sources = args
	}

	cfg.DefaultNormal = report.NormalColors{
		FG: colour.NormaliseHex(cfg.DefaultNormal.FG),
		BG: colour.NormaliseHex(cfg.DefaultNormal.BG),
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runCheck executes the contrast check.
func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	cfg, err := resolveConfig(cmd.Flags(), args, opts)
	if err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no highlight sources given (pass paths or set sources: in %s)", config.DefaultFile)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts)

	table, err := palette.Load(cfg.Colors, cfg.Markers)
	if err != nil {
		return err
	}
	logger.Debug("loaded colour table", "path", cfg.Colors, "colours", table.Len())

	extractor := highlight.NewExtractor(palette.NewResolver(table), highlight.Config{
		Calls:      cfg.Calls,
		Extensions: cfg.Extensions,
	}, logger)
	records := extractor.ExtractSources(cfg.Sources)
	logger.Debug("extracted highlight groups", "count", len(records))

	normal := report.FindNormal(records, cfg.DefaultNormal)
	logger.Debug("base colours", "fg", normal.FG, "bg", normal.BG)

	rep := report.Build(report.Evaluate(records, normal))

	if opts.output == "" {
		if err := render(cmd.OutOrStdout(), rep, cfg); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if err := writeReport(opts.output, rep, cfg); err != nil {
		return err
	}

	if rep.Failed() {
		logger.Debug("contrast check failed", "aa_normal_failures", len(rep.Failures[colour.LevelAANormal]))
		return ErrContrastFailures
	}
	return nil
}

// writeReport renders the report into path. Close errors are reported so a
// truncated file does not pass silently.
func writeReport(path string, rep *report.Report, cfg config.Config) (err error) {
	f, err := os.Create(path) // #nosec G304 -- user-specified output file
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if err := render(f, rep, cfg); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func render(w io.Writer, rep *report.Report, cfg config.Config) error {
	if cfg.Format == config.FormatJSON {
		return report.RenderJSON(w, rep)
	}
	return report.RenderText(w, rep, report.RenderOptions{Colour: useColour(cfg.Colour, w)})
}

// useColour decides whether to emit ANSI escapes for the writer.
func useColour(mode string, w io.Writer) bool {
	switch mode {
	case config.ColourAlways:
		return true
	case config.ColourNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
