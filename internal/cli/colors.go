package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastlint/internal/colour"
	"github.com/jmylchreest/contrastlint/internal/palette"
	"github.com/jmylchreest/contrastlint/internal/report"
)

// newColorsCmd creates the command that lists the parsed colour table.
func newColorsCmd(opts *checkOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the colour table read from the colour definition source",
		Long: `List every name = "#hex" binding found in the colour table block, with its
contrast against the default Normal background. Useful for checking that the
table markers match the theme's layout.

Examples:
  contrastlint colors --colors lua/theme/colors.lua
  contrastlint colors -c palette.lua --marker "palette = {"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), nil, opts)
			if err != nil {
				return err
			}

			table, err := palette.Load(cfg.Colors, cfg.Markers)
			if err != nil {
				return err
			}

			bgLabel := "On bg"
			if cfg.DefaultNormal.BG != "" {
				bgLabel = "On " + cfg.DefaultNormal.BG
			}

			t := report.NewTable([]string{"Name", "Hex", bgLabel})
			for _, name := range table.Names() {
				hex, _ := table.Lookup(name)
				ratio := "-"
				if r, err := colour.HexContrast(hex, cfg.DefaultNormal.BG); err == nil {
					ratio = fmt.Sprintf("%.2f:1", r)
				}
				t.AddRow([]string{name, hex, ratio})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d colours in %s\n\n", table.Len(), cfg.Colors)
			fmt.Fprint(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
