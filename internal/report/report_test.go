package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/contrastlint/internal/colour"
	"github.com/jmylchreest/contrastlint/internal/highlight"
)

// result builds a checked result with the given ratio.
func result(name, source string, ratio float64) Result {
	return Result{
		Record:     highlight.Record{Name: name, Source: source},
		Ratio:      ratio,
		FG:         "#ffffff",
		BG:         "#000000",
		Compliance: colour.Classify(ratio),
	}
}

func names(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Record.Name)
	}
	return out
}

func TestBuildSortsAndBuckets(t *testing.T) {
	results := []Result{
		result("Keyword", "a.lua", 9.0),
		result("Comment", "a.lua", 2.5),
		result("String", "b.lua", 5.0),
		result("Folded", "b.lua", 3.5),
	}
	unchecked := []Unchecked{
		{Record: highlight.Record{Name: "Hidden", Source: "c.lua"}, Reason: ReasonSameColor},
	}

	r := Build(results, unchecked)

	if diff := cmp.Diff([]string{"Comment", "Folded", "String", "Keyword"}, names(r.Results)); diff != "" {
		t.Errorf("Results order mismatch (-want +got):\n%s", diff)
	}

	wantFailures := map[colour.Level][]string{
		colour.LevelAANormal:  {"Comment", "Folded"},
		colour.LevelAALarge:   {"Comment"},
		colour.LevelAAANormal: {"Comment", "Folded", "String"},
		colour.LevelAAALarge:  {"Comment", "Folded"},
	}
	for level, want := range wantFailures {
		if diff := cmp.Diff(want, names(r.Failures[level])); diff != "" {
			t.Errorf("%s failures mismatch (-want +got):\n%s", level, diff)
		}
	}

	wantFiles := []FileCount{
		{Source: "a.lua", Count: 2},
		{Source: "b.lua", Count: 2},
		{Source: "c.lua", Count: 1},
	}
	if diff := cmp.Diff(wantFiles, r.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	if got := r.Passed(colour.LevelAANormal); got != 2 {
		t.Errorf("Passed(AA normal) = %d, want 2", got)
	}
}

func TestBuildDoesNotReorderInput(t *testing.T) {
	results := []Result{result("B", "x", 9.0), result("A", "x", 2.0)}
	Build(results, nil)
	if results[0].Record.Name != "B" {
		t.Error("Build should not modify the caller's slice")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name      string
		results   []Result
		unchecked []Unchecked
		want      int
	}{
		{
			name: "empty",
			want: 0,
		},
		{
			name:    "all pass",
			results: []Result{result("A", "x", 12.0)},
			want:    0,
		},
		{
			name:    "only AAA failures",
			results: []Result{result("A", "x", 4.5), result("B", "x", 6.9)},
			want:    0,
		},
		{
			name:      "unchecked only",
			unchecked: []Unchecked{{Record: highlight.Record{Name: "A"}, Reason: ReasonMissingFG}},
			want:      0,
		},
		{
			name:    "large text pass still fails",
			results: []Result{result("A", "x", 3.2)},
			want:    1,
		},
		{
			name:    "just under AA normal",
			results: []Result{result("A", "x", 12.0), result("B", "x", 4.49)},
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.results, tt.unchecked).ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	r := Build([]Result{
		result("comment", "x", 5),
		result("Boolean", "x", 4),
		result("Added", "x", 9),
	}, nil)

	if diff := cmp.Diff([]string{"Added", "Boolean", "comment"}, names(r.ByName())); diff != "" {
		t.Errorf("ByName() mismatch (-want +got):\n%s", diff)
	}
	// Ratio order is untouched.
	if r.Results[0].Record.Name != "Boolean" {
		t.Errorf("Results[0] = %s, want Boolean", r.Results[0].Record.Name)
	}
}
