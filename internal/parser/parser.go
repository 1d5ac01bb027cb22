package parser

import "git.lost.host/meutraa/beatsmash/internal/game"

type Parser interface {
	// Parse reads a chart file. Problems with the chart content are reported
	// as diagnostics, the error is only for failing to read the file.
	Parse(file string) (*game.Chart, []Diagnostic, error)
}
