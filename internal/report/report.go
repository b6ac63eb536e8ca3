package report

import (
	"sort"
	"strings"

	"github.com/jmylchreest/contrastlint/internal/colour"
)

// Report is the aggregated outcome of a run.
type Report struct {
	// Results are sorted by ratio, lowest first.
	Results   []Result
	Unchecked []Unchecked

	// Failures holds the results failing each level, lowest ratio first.
	// A result can appear under several levels.
	Failures map[colour.Level][]Result

	// Files counts highlight records (checked and unchecked) per source.
	Files []FileCount
}

// FileCount is the number of highlight records read from one source.
type FileCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// Build aggregates evaluated records into a report.
func Build(results []Result, unchecked []Unchecked) *Report {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ratio < sorted[j].Ratio
	})

	r := &Report{
		Results:   sorted,
		Unchecked: unchecked,
		Failures:  make(map[colour.Level][]Result, len(colour.Levels)),
	}

	for _, res := range sorted {
		for _, level := range colour.Levels {
			if !res.Compliance.Passes(level) {
				r.Failures[level] = append(r.Failures[level], res)
			}
		}
	}

	counts := make(map[string]int)
	for _, res := range sorted {
		counts[res.Record.Source]++
	}
	for _, u := range unchecked {
		counts[u.Record.Source]++
	}
	for source, n := range counts {
		r.Files = append(r.Files, FileCount{Source: source, Count: n})
	}
	sort.Slice(r.Files, func(i, j int) bool {
		return r.Files[i].Source < r.Files[j].Source
	})

	return r
}

// Empty reports whether nothing at all was found.
func (r *Report) Empty() bool {
	return len(r.Results) == 0 && len(r.Unchecked) == 0
}

// Passed returns how many results meet the level.
func (r *Report) Passed(level colour.Level) int {
	return len(r.Results) - len(r.Failures[level])
}

// Failed reports whether any result fails AA for normal text.
// AAA failures and unchecked records never fail a run.
func (r *Report) Failed() bool {
	return len(r.Failures[colour.LevelAANormal]) > 0
}

// ExitCode is the process status for automation: 1 when Failed, else 0.
func (r *Report) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

// ByName returns the results sorted alphabetically by group name.
func (r *Report) ByName() []Result {
	out := make([]Result, len(r.Results))
	copy(out, r.Results)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Record.Name), strings.ToLower(out[j].Record.Name)
		if a != b {
			return a < b
		}
		return out[i].Record.Name < out[j].Record.Name
	})
	return out
}
