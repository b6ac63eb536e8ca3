// Package cli provides the command-line interface for contrastlint.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastlint/internal/config"
	"github.com/jmylchreest/contrastlint/internal/version"
)

// ErrContrastFailures is returned when at least one highlight group fails
// WCAG AA for normal text. The report has already been written.
var ErrContrastFailures = errors.New("highlight groups fail WCAG AA contrast")

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	opts := &checkOptions{}

	rootCmd := &cobra.Command{
		Use:   "contrastlint [sources...]",
		Short: "Check editor highlight groups for WCAG contrast",
		Long: `contrastlint reads a theme's colour table and highlight group declarations,
resolves every group's foreground and background, and checks the pair against
the WCAG 2.x contrast thresholds (AA and AAA, normal and large text).

The command exits with status 1 when any group fails AA for normal text
(4.5:1), so it can gate CI. AAA failures and groups that cannot be checked
are reported but never fail the run.

Sources may be files or directories; directories are searched for files with
the configured extensions (default .lua).

Examples:
  # Check all highlight files of a theme
  contrastlint --colors lua/theme/colors.lua lua/theme/groups

  # Machine-readable report
  contrastlint -c lua/theme/colors.lua -f json lua/theme/groups > report.json

  # Use settings from .contrastlint.yaml
  contrastlint`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress warnings")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: "+config.DefaultFile+")")
	rootCmd.PersistentFlags().StringVarP(&opts.colors, "colors", "c", "", "colour definition source")
	rootCmd.PersistentFlags().StringArrayVar(&opts.markers, "marker", nil, "colour table introducer, tried in order (repeatable)")

	registerCheckFlags(rootCmd, opts)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newColorsCmd(opts))

	return rootCmd
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	err := NewRootCmd().Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrContrastFailures):
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

// newLogger creates the run logger honouring --verbose and --quiet.
func newLogger(out io.Writer, opts *checkOptions) hclog.Logger {
	level := hclog.Warn
	switch {
	case opts.quiet:
		level = hclog.Off
	case opts.verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "contrastlint",
		Output: out,
		Level:  level,
	})
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
