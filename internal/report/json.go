package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/jmylchreest/contrastlint/internal/colour"
	"github.com/jmylchreest/contrastlint/internal/highlight"
)

// ResultJSON is one checked record in JSON output.
type ResultJSON struct {
	highlight.Record
	Ratio        float64           `json:"ratio"`
	ResolvedFG   string            `json:"resolved_fg"`
	ResolvedBG   string            `json:"resolved_bg"`
	FGFromNormal bool              `json:"fg_from_normal,omitempty"`
	BGFromNormal bool              `json:"bg_from_normal,omitempty"`
	Compliance   colour.Compliance `json:"compliance"`
	AA           string            `json:"aa"`
	AAA          string            `json:"aaa"`
}

// UncheckedJSON is one unchecked record in JSON output.
type UncheckedJSON struct {
	highlight.Record
	ResolvedFG string `json:"resolved_fg,omitempty"`
	ResolvedBG string `json:"resolved_bg,omitempty"`
	Reason     string `json:"reason"`
}

// LevelSummaryJSON is the tally for one threshold.
type LevelSummaryJSON struct {
	Threshold float64  `json:"threshold"`
	Pass      int      `json:"pass"`
	Fail      int      `json:"fail"`
	Failures  []string `json:"failures,omitempty"`
}

// ReportJSON is the machine-readable report.
type ReportJSON struct {
	Checked   int                         `json:"checked"`
	Unchecked []UncheckedJSON             `json:"unchecked"`
	Levels    map[string]LevelSummaryJSON `json:"levels"`
	Files     []FileCount                 `json:"files"`
	Results   []ResultJSON                `json:"results"`
	ExitCode  int                         `json:"exit_code"`
}

// ToJSON converts the report to its JSON shape. Results are ordered by name.
func (r *Report) ToJSON() ReportJSON {
	out := ReportJSON{
		Checked:   len(r.Results),
		Unchecked: make([]UncheckedJSON, 0, len(r.Unchecked)),
		Levels:    make(map[string]LevelSummaryJSON, len(colour.Levels)),
		Files:     r.Files,
		Results:   make([]ResultJSON, 0, len(r.Results)),
		ExitCode:  r.ExitCode(),
	}
	if out.Files == nil {
		out.Files = []FileCount{}
	}

	for _, level := range colour.Levels {
		summary := LevelSummaryJSON{
			Threshold: level.Threshold(),
			Pass:      r.Passed(level),
			Fail:      len(r.Failures[level]),
		}
		for _, res := range r.Failures[level] {
			summary.Failures = append(summary.Failures, res.Record.Name)
		}
		out.Levels[level.Key()] = summary
	}

	for _, res := range r.ByName() {
		out.Results = append(out.Results, ResultJSON{
			Record:       res.Record,
			Ratio:        math.Round(res.Ratio*100) / 100,
			ResolvedFG:   res.FG,
			ResolvedBG:   res.BG,
			FGFromNormal: res.FGFromNormal,
			BGFromNormal: res.BGFromNormal,
			Compliance:   res.Compliance,
			AA:           res.Compliance.AAGrade().String(),
			AAA:          res.Compliance.AAAGrade().String(),
		})
	}

	for _, u := range r.Unchecked {
		out.Unchecked = append(out.Unchecked, UncheckedJSON{
			Record:     u.Record,
			ResolvedFG: u.FG,
			ResolvedBG: u.BG,
			Reason:     u.Reason,
		})
	}

	return out
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.ToJSON())
}
