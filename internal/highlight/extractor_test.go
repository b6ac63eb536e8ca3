package highlight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/contrastlint/internal/palette"
)

func newTestExtractor() *Extractor {
	table := palette.NewTable(map[string]string{
		"fg":      "#cbd5e1",
		"bg_dark": "#1a1a1b",
		"comment": "#565f89",
	})
	return NewExtractor(palette.NewResolver(table), Config{}, nil)
}

func TestExtractLine(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name   string
		line   string
		want   Record
		wantOK bool
	}{
		{
			name:   "namespaced colours",
			line:   `hl("Normal", { fg = c.fg, bg = c.bg_dark })`,
			want:   Record{Name: "Normal", FG: "#cbd5e1", BG: "#1a1a1b", Source: "test.lua"},
			wantOK: true,
		},
		{
			name:   "colon separated quoted values",
			line:   `declare("Normal", {fg:"c.fg", bg:"c.bg_dark"})`,
			want:   Record{Name: "Normal", FG: "#cbd5e1", BG: "#1a1a1b", Source: "test.lua"},
			wantOK: true,
		},
		{
			name:   "nvim_set_hl with namespace id",
			line:   `  vim.api.nvim_set_hl(0, "Comment", { fg = c.comment, italic = true })`,
			want:   Record{Name: "Comment", FG: "#565f89", Source: "test.lua"},
			wantOK: true,
		},
		{
			name:   "none sentinel",
			line:   `hl("Pmenu", { fg = "none", bg = none, bold = true })`,
			want:   Record{Name: "Pmenu", Bold: true, Source: "test.lua", FGIsNone: true, BGIsNone: true},
			wantOK: true,
		},
		{
			name:   "literal hex",
			line:   `hl('Title', { fg = "#FFFFFF", bg = c.bg_dark, bold=true })`,
			want:   Record{Name: "Title", FG: "#ffffff", BG: "#1a1a1b", Bold: true, Source: "test.lua"},
			wantOK: true,
		},
		{
			name:   "bold false",
			line:   `hl("Title", { fg = c.fg, bold = false })`,
			want:   Record{Name: "Title", FG: "#cbd5e1", Source: "test.lua"},
			wantOK: true,
		},
		{
			name:   "unresolvable colour",
			line:   `hl("Error", { fg = c.red, bg = c.bg_dark })`,
			want:   Record{Name: "Error", BG: "#1a1a1b", Source: "test.lua"},
			wantOK: true,
		},
		{
			name:   "no attributes",
			line:   `hl("Empty", {})`,
			want:   Record{Name: "Empty", Source: "test.lua"},
			wantOK: true,
		},
		{
			name:   "missing closing paren",
			line:   `hl("Broken", { fg = c.fg }`,
			wantOK: false,
		},
		{
			name:   "nested attribute block",
			line:   `hl("Nested", { fg = c.fg, extra = { 1 } })`,
			wantOK: false,
		},
		{
			name:   "unknown call",
			line:   `print("Normal", { fg = c.fg })`,
			wantOK: false,
		},
		{
			name:   "call name as suffix",
			line:   `my_hl("Normal", { fg = c.fg })`,
			wantOK: false,
		},
		{
			name:   "plain code",
			line:   `local c = require("theme.colors")`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.ExtractLine(tt.line, "test.lua")
			if ok != tt.wantOK {
				t.Fatalf("ExtractLine() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractLine() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractLineCustomCalls(t *testing.T) {
	e := NewExtractor(palette.NewResolver(nil), Config{Calls: []string{"theme.set"}}, nil)

	if _, ok := e.ExtractLine(`theme.set("Normal", { fg = "#ffffff" })`, "x"); !ok {
		t.Error("Expected custom call to match")
	}
	if _, ok := e.ExtractLine(`hl("Normal", { fg = "#ffffff" })`, "x"); ok {
		t.Error("Default call should not match when calls are configured")
	}
}

func TestExtractReaderSkipsMalformedLines(t *testing.T) {
	e := newTestExtractor()
	src := strings.Join([]string{
		`local c = require("colors")`,
		`hl("Broken", { fg = c.fg }`,
		`hl("Normal", { fg = c.fg, bg = c.bg_dark })`,
		`-- hl is called below`,
		`hl("Normal", { fg = c.comment })`,
	}, "\n")

	records, err := e.ExtractReader(strings.NewReader(src), "a.lua")
	if err != nil {
		t.Fatalf("ExtractReader() error = %v", err)
	}

	// Duplicate names are kept.
	want := []Record{
		{Name: "Normal", FG: "#cbd5e1", BG: "#1a1a1b", Source: "a.lua"},
		{Name: "Normal", FG: "#565f89", Source: "a.lua"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("ExtractReader() mismatch (-want +got):\n%s", diff)
	}
}

type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("disk went away")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestExtractReaderKeepsRecordsOnError(t *testing.T) {
	e := newTestExtractor()
	r := &failingReader{data: "hl(\"Normal\", { fg = c.fg })\n"}

	records, err := e.ExtractReader(r, "a.lua")
	if err == nil {
		t.Fatal("Expected scan error")
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record before the error, got %d", len(records))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestExtractSources(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.lua")
	writeFile(t, base, `hl("Comment", { fg = c.comment })`+"\n")
	writeFile(t, filepath.Join(dir, "groups", "b.lua"), `hl("B", { fg = c.fg })`+"\n")
	writeFile(t, filepath.Join(dir, "groups", "a.lua"), `hl("A", { fg = c.fg })`+"\n")
	writeFile(t, filepath.Join(dir, "groups", "notes.txt"), `hl("Ignored", { fg = c.fg })`+"\n")

	e := newTestExtractor()
	records := e.ExtractSources([]string{
		base,
		filepath.Join(dir, "missing.lua"),
		filepath.Join(dir, "groups"),
	})

	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"Comment", "A", "B"}, names); diff != "" {
		t.Errorf("ExtractSources() names mismatch (-want +got):\n%s", diff)
	}

	if got, want := records[0].Source, filepath.ToSlash(base); got != want {
		t.Errorf("Source = %q, want %q", got, want)
	}
}

func TestExtractFileMissing(t *testing.T) {
	e := newTestExtractor()
	if _, err := e.ExtractFile(filepath.Join(t.TempDir(), "nope.lua")); err == nil {
		t.Error("Expected error for missing file")
	}
}
