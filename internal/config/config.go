// Package config loads linter settings from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/contrastlint/internal/colour"
	"github.com/jmylchreest/contrastlint/internal/highlight"
	"github.com/jmylchreest/contrastlint/internal/palette"
	"github.com/jmylchreest/contrastlint/internal/report"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".contrastlint.yaml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Colour modes.
const (
	ColourAuto   = "auto"
	ColourAlways = "always"
	ColourNever  = "never"
)

// Config holds every setting a run needs.
type Config struct {
	// Colors is the colour definition source. Required.
	Colors string `yaml:"colors"`

	// Sources are highlight declaration files or directories.
	Sources []string `yaml:"sources"`

	// Markers introduce the colour table block, tried in order.
	Markers []string `yaml:"markers"`

	// Calls are the function names that declare highlight groups.
	Calls []string `yaml:"calls"`

	// Extensions select files inside source directories.
	Extensions []string `yaml:"extensions"`

	// DefaultNormal is used when no Normal group is declared.
	DefaultNormal report.NormalColors `yaml:"default_normal"`

	Format string `yaml:"format"`
	Colour string `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Markers:       append([]string(nil), palette.DefaultMarkers...),
		Calls:         append([]string(nil), highlight.DefaultCalls...),
		Extensions:    append([]string(nil), highlight.DefaultExtensions...),
		DefaultNormal: report.DefaultNormal,
		Format:        FormatText,
		Colour:        ColourAuto,
	}
}

// Load reads path over the defaults. A missing file is an error only when
// explicit is set; otherwise the defaults are returned.
func Load(path string, explicit bool) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified config file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to open config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from CONTRASTLINT_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CONTRASTLINT_COLORS"); v != "" {
		c.Colors = v
	}
	if v := os.Getenv("CONTRASTLINT_SOURCES"); v != "" {
		c.Sources = parseList(v)
	}
	if v := os.Getenv("CONTRASTLINT_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("CONTRASTLINT_COLOR"); v != "" {
		c.Colour = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Colour = ColourNever
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.Colors == "" {
		return fmt.Errorf("colour definition source is required (--colors or colors: in %s)", DefaultFile)
	}

	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format: %s (valid: %s, %s)", c.Format, FormatText, FormatJSON)
	}

	switch c.Colour {
	case ColourAuto, ColourAlways, ColourNever:
	default:
		return fmt.Errorf("invalid color mode: %s (valid: %s, %s, %s)", c.Colour, ColourAuto, ColourAlways, ColourNever)
	}

	for _, hex := range []string{c.DefaultNormal.FG, c.DefaultNormal.BG} {
		if hex != "" && !colour.IsHex(hex) {
			return fmt.Errorf("invalid default_normal colour: %s", hex)
		}
	}

	return nil
}

// parseList splits a comma separated list, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
