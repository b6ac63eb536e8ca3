// contrastlint - WCAG contrast checks for editor highlight groups
//
// contrastlint reads a theme's colour table and highlight declarations and
// reports every foreground/background pair that falls short of WCAG 2.x.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/contrastlint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
