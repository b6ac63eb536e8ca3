// Package highlight extracts highlight-group declarations from theme source files.
//
// Extraction is line based and pattern driven. Lines that do not look like a
// declaration are skipped, so arbitrary surrounding code is tolerated.
package highlight

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// NoneToken is the sentinel that marks a colour slot as intentionally unset.
const NoneToken = "none"

// DefaultCalls are the function names recognised as highlight declarations.
var DefaultCalls = []string{"hl", "highlight", "declare", "set_hl", "vim.api.nvim_set_hl"}

// DefaultExtensions are the file extensions read when a source is a directory.
var DefaultExtensions = []string{".lua"}

// maxLineSize bounds a single source line.
const maxLineSize = 1024 * 1024

var (
	attrPattern = regexp.MustCompile(`^\s*["']?([A-Za-z_][A-Za-z0-9_]*)["']?\s*[=:]\s*(.*?)\s*$`)
	boldPattern = regexp.MustCompile(`\bbold\s*[=:]\s*true\b`)
)

// Resolver turns a colour token into a hex value.
type Resolver interface {
	Resolve(token string) (string, bool)
}

// Record is one extracted highlight group.
// An empty FG or BG means the slot was absent, "none" or unresolvable;
// FGIsNone and BGIsNone tell the "none" case apart.
type Record struct {
	Name     string `json:"name"`
	FG       string `json:"fg,omitempty"`
	BG       string `json:"bg,omitempty"`
	Bold     bool   `json:"bold"`
	Source   string `json:"source"`
	FGIsNone bool   `json:"fg_is_none,omitempty"`
	BGIsNone bool   `json:"bg_is_none,omitempty"`
}

// Config controls what the extractor recognises.
type Config struct {
	// Calls are the declaring function names, e.g. "hl" or "vim.api.nvim_set_hl".
	Calls []string

	// Extensions filter files when a source path is a directory.
	Extensions []string
}

// Extractor scans sources for highlight declarations.
type Extractor struct {
	resolver   Resolver
	pattern    *regexp.Regexp
	extensions []string
	logger     hclog.Logger
}

// NewExtractor creates an extractor resolving colours with resolver.
func NewExtractor(resolver Resolver, cfg Config, logger hclog.Logger) *Extractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	calls := cfg.Calls
	if len(calls) == 0 {
		calls = DefaultCalls
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	return &Extractor{
		resolver:   resolver,
		pattern:    declarationPattern(calls),
		extensions: exts,
		logger:     logger,
	}
}

// declarationPattern builds the matcher for `call([n,] "Name", { ... })`.
// The attribute block must be flat and the call closed.
func declarationPattern(calls []string) *regexp.Regexp {
	quoted := make([]string, len(calls))
	for i, c := range calls {
		quoted[i] = regexp.QuoteMeta(c)
	}
	return regexp.MustCompile(`(?:^|[^\w.])(?:` + strings.Join(quoted, "|") + `)\s*\(\s*(?:\d+\s*,\s*)?["']([^"']+)["']\s*,\s*\{([^{}]*)\}\s*\)`)
}

// ExtractLine parses a single line. It returns false when the line is not a declaration.
func (e *Extractor) ExtractLine(line, source string) (Record, bool) {
	m := e.pattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	rec := Record{
		Name:   m[1],
		Source: source,
		Bold:   boldPattern.MatchString(m[2]),
	}

	for _, attr := range strings.Split(m[2], ",") {
		am := attrPattern.FindStringSubmatch(attr)
		if am == nil {
			continue
		}
		key, value := am[1], unquote(am[2])

		switch key {
		case "fg":
			rec.FG, rec.FGIsNone = e.resolveSlot(value, rec.Name, key)
		case "bg":
			rec.BG, rec.BGIsNone = e.resolveSlot(value, rec.Name, key)
		}
	}

	return rec, true
}

// resolveSlot resolves one colour attribute. The "none" sentinel short-circuits resolution.
func (e *Extractor) resolveSlot(value, group, key string) (hex string, isNone bool) {
	if value == NoneToken {
		return "", true
	}
	hex, ok := e.resolver.Resolve(value)
	if !ok {
		e.logger.Debug("unresolved colour", "group", group, "attr", key, "token", value)
		return "", false
	}
	return hex, false
}

// ExtractReader scans r line by line. Records read before a scan error are returned with it.
func (e *Extractor) ExtractReader(r io.Reader, source string) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if rec, ok := e.ExtractLine(scanner.Text(), source); ok {
			records = append(records, rec)
		}
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to scan %s: %w", source, err)
	}
	return records, nil
}

// ExtractFile reads one source file, labelling records with its path.
func (e *Extractor) ExtractFile(path string) ([]Record, error) {
	f, err := os.Open(path) // #nosec G304 -- user-specified highlight source
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return e.ExtractReader(f, sourceLabel(path))
}

// ExtractSources reads every source in order. Directories are expanded to the
// files beneath them with a configured extension. Unreadable sources are skipped.
func (e *Extractor) ExtractSources(paths []string) []Record {
	var records []Record

	for _, path := range e.expand(paths) {
		recs, err := e.ExtractFile(path)
		if err != nil {
			e.logger.Debug("skipping source", "path", path, "error", err)
		} else {
			e.logger.Debug("extracted highlights", "path", path, "count", len(recs))
		}
		records = append(records, recs...)
	}

	return records
}

// expand replaces directory paths with their matching files, sorted.
func (e *Extractor) expand(paths []string) []string {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			// Missing paths fall through so ExtractFile reports and skips them.
			files = append(files, path)
			continue
		}

		var found []string
		walkErr := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				e.logger.Debug("skipping unreadable path", "path", p, "error", err)
				return nil
			}
			if !d.IsDir() && slices.Contains(e.extensions, filepath.Ext(p)) {
				found = append(found, p)
			}
			return nil
		})
		if walkErr != nil {
			e.logger.Debug("failed to walk source directory", "path", path, "error", walkErr)
		}
		slices.Sort(found)
		files = append(files, found...)
	}

	return files
}

// sourceLabel is the origin shown in reports.
func sourceLabel(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// unquote strips one level of matching quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
