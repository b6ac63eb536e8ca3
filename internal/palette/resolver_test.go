package palette

import "testing"

func TestResolve(t *testing.T) {
	r := NewResolver(NewTable(map[string]string{
		"fg":      "#cbd5e1",
		"bg_dark": "#1a1a1b",
	}))

	tests := []struct {
		name   string
		token  string
		want   string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
		{"literal hex", "#ABCDEF", "#abcdef", true},
		{"literal hex not validated", "#XYZ", "#xyz", true},
		{"namespaced", "c.fg", "#cbd5e1", true},
		{"other namespace", "colors.bg_dark", "#1a1a1b", true},
		{"namespaced missing", "c.red", "", false},
		{"bare name", "bg_dark", "#1a1a1b", true},
		{"bare missing", "red", "", false},
		{"nested namespace", "c.git.add", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.token)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = %q, %v, want %q, %v", tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveNilTable(t *testing.T) {
	r := NewResolver(nil)
	if hex, ok := r.Resolve("#000000"); !ok || hex != "#000000" {
		t.Errorf("Resolve(#000000) = %q, %v, want literal", hex, ok)
	}
	if _, ok := r.Resolve("c.fg"); ok {
		t.Error("Resolve(c.fg) should fail without a table")
	}
}
