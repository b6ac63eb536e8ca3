package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jmylchreest/contrastlint/internal/colour"
	"github.com/jmylchreest/contrastlint/internal/highlight"
)

// Title heads the text report.
const Title = "WCAG Contrast Report"

const bannerWidth = 60

// RenderOptions control text output.
type RenderOptions struct {
	// Colour enables ANSI styling. The text is identical either way.
	Colour bool
}

type styles struct {
	heading func(string) string
	pass    func(string) string
	warn    func(string) string
	fail    func(string) string
	dim     func(string) string
}

func newStyles(enabled bool) styles {
	mk := func(attrs ...color.Attribute) func(string) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return func(s string) string { return c.Sprint(s) }
	}
	return styles{
		heading: mk(color.Bold, color.FgCyan),
		pass:    mk(color.FgGreen),
		warn:    mk(color.FgYellow),
		fail:    mk(color.FgRed, color.Bold),
		dim:     mk(color.Faint),
	}
}

// grade styles a grade icon cell.
func (s styles) grade(cell string) string {
	switch cell {
	case colour.GradePass.Icon():
		return s.pass(cell)
	case colour.GradeLargeOnly.Icon():
		return s.warn(cell)
	default:
		return s.fail(cell)
	}
}

// RenderText writes the human-readable report.
func RenderText(w io.Writer, r *Report, opts RenderOptions) error {
	s := newStyles(opts.Colour)
	var b strings.Builder

	banner := strings.Repeat("=", bannerWidth)
	b.WriteString(s.heading(banner) + "\n")
	b.WriteString(s.heading("  "+Title) + "\n")
	b.WriteString(s.heading(banner) + "\n\n")

	if r.Empty() {
		b.WriteString("No highlight groups found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Checked %d highlight groups (%d unchecked)\n\n", len(r.Results), len(r.Unchecked))

	writeSummary(&b, r, s)
	writeFiles(&b, r, s)

	for _, level := range colour.Levels {
		writeFailures(&b, r, level, s)
	}

	writeResults(&b, r, s)
	writeUnchecked(&b, r, s)

	if r.Failed() {
		b.WriteString(s.fail(fmt.Sprintf("FAIL: %d highlight groups below %s (%.1f:1)",
			len(r.Failures[colour.LevelAANormal]), colour.LevelAANormal, colour.AANormal)) + "\n")
	} else {
		b.WriteString(s.pass(fmt.Sprintf("PASS: all checked highlight groups meet %s (%.1f:1)",
			colour.LevelAANormal, colour.AANormal)) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, s styles, title string) {
	b.WriteString(s.heading(title) + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
}

func writeSummary(b *strings.Builder, r *Report, s styles) {
	section(b, s, "Summary")
	t := NewTable([]string{"Level", "Ratio", "Pass", "Fail"})
	t.SetIndent("  ")
	for _, level := range colour.Levels {
		t.AddRow([]string{
			level.String(),
			formatRatio(level.Threshold()),
			fmt.Sprintf("%d", r.Passed(level)),
			fmt.Sprintf("%d", len(r.Failures[level])),
		})
	}
	t.SetColumnStyle(3, func(cell string) string {
		if cell == "0" {
			return cell
		}
		return s.fail(cell)
	})
	b.WriteString(t.Render())
	b.WriteString("\n")
}

func writeFiles(b *strings.Builder, r *Report, s styles) {
	section(b, s, "Highlights per file")
	t := NewTable([]string{"Source", "Groups"})
	t.SetIndent("  ")
	for _, f := range r.Files {
		t.AddRow([]string{f.Source, fmt.Sprintf("%d", f.Count)})
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
}

func writeFailures(b *strings.Builder, r *Report, level colour.Level, s styles) {
	failures := r.Failures[level]
	if len(failures) == 0 {
		return
	}

	section(b, s, fmt.Sprintf("%s failures (%d, need %s)", level, len(failures), formatRatio(level.Threshold())))
	for _, res := range failures {
		fmt.Fprintf(b, "  %s  %s\n", res.Record.Name, s.dim("("+res.Record.Source+")"))
		fmt.Fprintf(b, "    fg: %s  bg: %s\n",
			annotate(res.FG, res.FGFromNormal),
			annotate(res.BG, res.BGFromNormal))
		fmt.Fprintf(b, "    ratio: %s  bold: %s  status: %s\n",
			formatRatio(res.Ratio), yesNo(res.Record.Bold), failureStatus(res, level, s))
	}
	b.WriteString("\n")
}

// failureStatus is FAIL, or a large-text pass when a normal-text level fails
// but its large-text counterpart passes.
func failureStatus(res Result, level colour.Level, s styles) string {
	if !level.Large() && res.Compliance.Passes(level.LargeCounterpart()) {
		return s.warn("PASS (large text only)")
	}
	return s.fail("FAIL")
}

func writeResults(b *strings.Builder, r *Report, s styles) {
	if len(r.Results) == 0 {
		return
	}

	section(b, s, "All results")
	t := NewTable([]string{"Name", "Ratio", "AA", "AAA", "Source", "Colors"})
	t.SetIndent("  ")
	for _, res := range r.ByName() {
		t.AddRow([]string{
			res.Record.Name,
			formatRatio(res.Ratio),
			res.Compliance.AAGrade().Icon(),
			res.Compliance.AAAGrade().Icon(),
			res.Record.Source,
			fmt.Sprintf("%s on %s", markNormal(res.FG, res.FGFromNormal), markNormal(res.BG, res.BGFromNormal)),
		})
	}
	t.SetColumnStyle(2, s.grade)
	t.SetColumnStyle(3, s.grade)
	b.WriteString(t.Render())
	fmt.Fprintf(b, "  %s ✓ pass  ◐ large text only  ✗ fail  * from Normal\n\n", s.dim("legend:"))
}

func writeUnchecked(b *strings.Builder, r *Report, s styles) {
	if len(r.Unchecked) == 0 {
		return
	}

	section(b, s, fmt.Sprintf("Unchecked (%d)", len(r.Unchecked)))
	t := NewTable([]string{"Name", "Source", "FG", "BG", "Reason"})
	t.SetIndent("  ")
	for _, u := range r.Unchecked {
		t.AddRow([]string{
			u.Record.Name,
			u.Record.Source,
			slotLabel(u.Record.FG, u.Record.FGIsNone, u.FG),
			slotLabel(u.Record.BG, u.Record.BGIsNone, u.BG),
			u.Reason,
		})
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
}

// slotLabel describes a colour slot of an unchecked record.
func slotLabel(own string, isNone bool, resolved string) string {
	switch {
	case own != "":
		return own
	case isNone && resolved != "":
		return highlight.NoneToken + " -> " + resolved
	case isNone:
		return highlight.NoneToken
	case resolved != "":
		return "- -> " + resolved
	default:
		return "-"
	}
}

func annotate(hex string, fromNormal bool) string {
	if fromNormal {
		return hex + " (from Normal)"
	}
	return hex
}

func markNormal(hex string, fromNormal bool) string {
	if fromNormal {
		return hex + "*"
	}
	return hex
}

func formatRatio(r float64) string {
	return fmt.Sprintf("%.2f:1", r)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
