// Package markdown provides goldmark-backed analysis helpers for document
// bodies (frontmatter already removed) plus a minimal byte-range edit engine.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Title describes the first top-level heading found in a body.
//
// Start and End delimit the heading's full source lines (End exclusive,
// including the trailing newline when present), suitable for removal via an
// Edit. For setext headings the span covers the underline as well.
type Title struct {
	Text  string
	Start int
	End   int
}

// FirstH1 locates the first level-1 heading in body.
//
// Parsing with goldmark means headings inside fenced or indented code blocks
// are never matched; only real headings reach the AST.
func FirstH1(body []byte) (Title, bool) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var found *gmast.Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 {
			found = h
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	if found == nil || found.Lines().Len() == 0 {
		return Title{}, false
	}

	seg := found.Lines().At(0)
	title := Title{Text: string(bytes.TrimSpace(body[seg.Start:seg.Stop]))}
	if title.Text == "" {
		return Title{}, false
	}

	title.Start = lineStart(body, seg.Start)
	title.End = lineEnd(body, seg.Stop)

	// Setext headings carry their underline on the following line.
	if isSetextUnderline(body, title.End) {
		title.End = lineEnd(body, title.End)
	}

	return title, true
}

func lineStart(body []byte, pos int) int {
	if pos > len(body) {
		pos = len(body)
	}
	idx := bytes.LastIndexByte(body[:pos], '\n')
	return idx + 1
}

func lineEnd(body []byte, pos int) int {
	idx := bytes.IndexByte(body[pos:], '\n')
	if idx < 0 {
		return len(body)
	}
	return pos + idx + 1
}

func isSetextUnderline(body []byte, pos int) bool {
	if pos >= len(body) {
		return false
	}
	line := body[pos:lineEnd(body, pos)]
	trimmed := bytes.TrimRight(line, "\r\n ")
	if len(trimmed) == 0 {
		return false
	}
	for _, c := range trimmed {
		if c != '=' {
			return false
		}
	}
	return true
}
