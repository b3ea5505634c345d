// Package convert implements the dialect conversion core: macro expansion,
// indentation-delimited block rewriting (admonitions, tab groups), sentinel
// marker removal and frontmatter synthesis, applied in a fixed order by
// Pipeline. Every pass is a pure function of the document text plus the
// injected tables, so documents can be converted concurrently.
package convert

import (
	"bytes"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docmigrate/internal/frontmatter"
)

// Config carries the read-only lookup tables shared by all conversions.
type Config struct {
	Macros          MacroTable
	AdmonitionTypes map[string]string
	Markers         Markers
}

// DefaultConfig returns the tables for the source corpus.
func DefaultConfig() Config {
	return Config{
		Macros:          DefaultMacros(),
		AdmonitionTypes: DefaultAdmonitionTypes(),
		Markers:         DefaultMarkers(),
	}
}

// Result is the outcome of converting one document.
type Result struct {
	Output []byte
	// Changed reports whether Output differs from the input, computed by
	// comparison rather than by tracking whether any pass matched.
	Changed  bool
	Warnings []Warning
}

// Pipeline applies the conversion passes to one document at a time. It holds
// no per-document state and is safe for concurrent use.
type Pipeline struct {
	cfg Config
}

// New creates a Pipeline with the given tables.
func New(cfg Config) *Pipeline {
	if cfg.AdmonitionTypes == nil {
		cfg.AdmonitionTypes = DefaultAdmonitionTypes()
	}
	return &Pipeline{cfg: cfg}
}

// Convert runs the full pass order on input: macro expansion, admonition
// conversion, tab group conversion, marker removal, frontmatter synthesis.
//
// Marker detection runs after macro expansion (macro output may contain
// marker text already resolved) but before frontmatter synthesis, which
// consumes the marker flags. Converting already-converted output is a no-op.
func (p *Pipeline) Convert(input []byte) (Result, error) {
	doc, err := frontmatter.Parse(input)
	if err != nil {
		return Result{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	nl := doc.Newline()

	body, warnings := expandMacros(string(doc.Body), p.cfg.Macros)

	lines, trailing := splitLines(body, nl)
	lines = convertAdmonitions(lines, p.cfg.AdmonitionTypes)
	lines = convertTabGroups(lines)
	lines, flags := stripMarkers(lines, p.cfg.Markers)
	doc.Body = joinLines(lines, nl, trailing)

	doc, err = synthesizeFrontmatter(doc, flags, p.cfg.Markers)
	if err != nil {
		return Result{}, fmt.Errorf("synthesize frontmatter: %w", err)
	}

	output := doc.Render()
	return Result{
		Output:   output,
		Changed:  !bytes.Equal(output, input),
		Warnings: warnings,
	}, nil
}

// splitLines splits text into lines without terminators. CRLF terminators
// are stripped along with the newline; joinLines restores them.
func splitLines(text, newline string) (lines []string, trailingNewline bool) {
	if text == "" {
		return nil, false
	}
	lines = strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
		trailingNewline = true
	}
	if newline == "\r\n" {
		for i, l := range lines {
			lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	return lines, trailingNewline
}

func joinLines(lines []string, newline string, trailingNewline bool) []byte {
	if len(lines) == 0 {
		return nil
	}
	out := strings.Join(lines, newline)
	if trailingNewline {
		out += newline
	}
	return []byte(out)
}
