// Package palette loads the named colour table a theme's highlight groups refer to
// and resolves colour tokens against it.
package palette

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jmylchreest/contrastlint/internal/colour"
)

// DefaultMarkers are the table introducers tried, in order, when none are configured.
var DefaultMarkers = []string{"M.colors = {", "local colors = {"}

// ErrNoColorBlock is returned when none of the markers occur in the source.
var ErrNoColorBlock = errors.New("no colour table block found")

// bindingPattern matches `name = "#RRGGBB"` with single or double quotes.
var bindingPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*["'](#[0-9a-fA-F]{6})["']`)

// Table maps symbolic colour names to lower-case #rrggbb values.
// A Table is never modified after Parse returns it.
type Table struct {
	colours map[string]string
}

// NewTable builds a table from an existing map. Values that are not #rrggbb are dropped.
func NewTable(colours map[string]string) *Table {
	t := &Table{colours: make(map[string]string, len(colours))}
	for name, hex := range colours {
		if colour.IsHex(hex) {
			t.colours[name] = colour.NormaliseHex(hex)
		}
	}
	return t
}

// Lookup returns the hex value bound to name.
func (t *Table) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	hex, ok := t.colours[name]
	return hex, ok
}

// Len returns the number of bindings in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.colours)
}

// Names returns the bound names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.colours))
	for name := range t.colours {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a colour definition file and parses its table block.
// A file that cannot be read is fatal to the caller: nothing can be checked without it.
func Load(path string, markers []string) (*Table, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified colour source
	if err != nil {
		return nil, fmt.Errorf("failed to read colour definitions %s: %w", path, err)
	}

	t, err := Parse(string(data), markers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse colour definitions %s: %w", path, err)
	}
	return t, nil
}

// Parse extracts the colour table from text.
// The first marker that occurs wins; only top-level bindings inside its brace
// block are read. Nested tables are skipped.
func Parse(text string, markers []string) (*Table, error) {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	block, ok := "", false
	for _, marker := range markers {
		if block, ok = findBlock(text, marker); ok {
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w (markers: %s)", ErrNoColorBlock, strings.Join(markers, ", "))
	}

	t := &Table{colours: make(map[string]string)}
	for _, m := range bindingPattern.FindAllStringSubmatch(topLevel(block), -1) {
		t.colours[m[1]] = colour.NormaliseHex(m[2])
	}
	return t, nil
}

// topLevel blanks out nested brace blocks so only depth-one bindings remain.
func topLevel(block string) string {
	var b strings.Builder
	b.Grow(len(block))
	depth := 0
	for i := 0; i < len(block); i++ {
		c := block[i]
		switch c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
			c = ' '
		}
		if depth > 0 {
			c = ' '
		}
		b.WriteByte(c)
	}
	return b.String()
}

// findBlock returns the contents of the brace block introduced by marker.
// Braces are counted so nested tables stay inside the block; an unbalanced
// block runs to the end of the text.
func findBlock(text, marker string) (string, bool) {
	idx := strings.Index(text, marker)
	if idx == -1 {
		return "", false
	}

	open := strings.Index(text[idx:], "{")
	if open == -1 {
		return "", false
	}
	start := idx + open + 1

	depth := 1
	pos := start
	for pos < len(text) && depth > 0 {
		switch text[pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		pos++
	}

	if depth > 0 {
		return text[start:], true
	}
	// pos is one past the closing brace.
	return text[start : pos-1], true
}
