package palette

import (
	"regexp"
	"strings"
)

// namespacedPattern matches `<namespace>.<name>` references such as c.fg.
var namespacedPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\.([A-Za-z_][A-Za-z0-9_]*)$`)

// Resolver turns colour tokens from highlight declarations into hex values.
// Unresolvable tokens are reported with ok == false and never produce an error.
type Resolver struct {
	table *Table
}

// NewResolver creates a resolver backed by table.
func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve maps a token to a hex colour.
//
// Literal hex values are trusted and only lower-cased. Namespaced references
// (c.fg) and bare names (fg) are looked up in the table.
func (r *Resolver) Resolve(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	if strings.HasPrefix(token, "#") {
		return strings.ToLower(token), true
	}

	if m := namespacedPattern.FindStringSubmatch(token); m != nil {
		return r.table.Lookup(m[1])
	}

	return r.table.Lookup(token)
}
