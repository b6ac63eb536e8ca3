// Package report evaluates highlight records against the WCAG thresholds and
// renders the compliance report.
package report

import (
	"github.com/jmylchreest/contrastlint/internal/colour"
	"github.com/jmylchreest/contrastlint/internal/highlight"
)

// NormalGroup is the highlight group that supplies fallback colours.
const NormalGroup = "Normal"

// NormalColors is the base style used for slots a group leaves empty.
// An empty field means the base colour itself is unknown.
type NormalColors struct {
	FG string `yaml:"fg" json:"fg"`
	BG string `yaml:"bg" json:"bg"`
}

// DefaultNormal is used when no Normal group is declared.
var DefaultNormal = NormalColors{FG: "#cbd5e1", BG: "#1a1a1b"}

// Reasons a record is left unchecked.
const (
	ReasonMissingFG = "missing fg"
	ReasonMissingBG = "missing bg"
	ReasonSameColor = "same fg/bg"
	ReasonInvalid   = "invalid colour"
)

// Result is the contrast outcome for one checked record.
type Result struct {
	Record       highlight.Record
	Ratio        float64
	FG           string
	BG           string
	FGFromNormal bool
	BGFromNormal bool
	Compliance   colour.Compliance
}

// Unchecked is a record that could not be given a ratio.
type Unchecked struct {
	Record highlight.Record
	FG     string
	BG     string
	Reason string
}

// FindNormal returns the colours of the first Normal record, or fallback when
// there is none. A Normal record's empty slots stay empty.
func FindNormal(records []highlight.Record, fallback NormalColors) NormalColors {
	for _, r := range records {
		if r.Name == NormalGroup {
			return NormalColors{FG: r.FG, BG: r.BG}
		}
	}
	return fallback
}

// Evaluate substitutes Normal colours into empty slots and computes the contrast
// of every record that ends up with two distinct colours.
func Evaluate(records []highlight.Record, normal NormalColors) ([]Result, []Unchecked) {
	var (
		results   []Result
		unchecked []Unchecked
	)

	for _, rec := range records {
		fg, fgFromNormal := pick(rec.FG, rec.FGIsNone, normal.FG)
		bg, bgFromNormal := pick(rec.BG, rec.BGIsNone, normal.BG)

		skip := func(reason string) {
			unchecked = append(unchecked, Unchecked{Record: rec, FG: fg, BG: bg, Reason: reason})
		}

		switch {
		case fg == "":
			skip(ReasonMissingFG)
			continue
		case bg == "":
			skip(ReasonMissingBG)
			continue
		case fg == bg:
			// Matching colours hide an element on purpose; not a contrast defect.
			skip(ReasonSameColor)
			continue
		}

		ratio, err := colour.HexContrast(fg, bg)
		if err != nil {
			skip(ReasonInvalid)
			continue
		}

		results = append(results, Result{
			Record:       rec,
			Ratio:        ratio,
			FG:           fg,
			BG:           bg,
			FGFromNormal: fgFromNormal,
			BGFromNormal: bgFromNormal,
			Compliance:   colour.Classify(ratio),
		})
	}

	return results, unchecked
}

// pick returns the slot's own colour, or the Normal colour when the slot is
// "none" or empty.
func pick(own string, isNone bool, normal string) (string, bool) {
	if isNone || own == "" {
		return normal, true
	}
	return own, false
}
