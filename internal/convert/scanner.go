package convert

import (
	"regexp"
	"strings"
)

// indentUnit is the fixed indentation step of the source dialect: block
// content sits exactly four spaces deeper than its marker line.
const indentUnit = 4

// blockKind selects the scanning behavior of the shared indentation scanner.
type blockKind int

const (
	kindAdmonition blockKind = iota // each block stands alone
	kindTabGroup                    // sibling blocks merge into one group
)

// segment is one labeled content run of a block. Admonition blocks have
// exactly one segment; tab groups have one per sibling marker.
type segment struct {
	typ     string // admonition type name, empty for tabs
	label   string // quoted title or tab label, may be empty for admonitions
	content []string
}

// blockGroup is the scanner's unit of output: one admonition, or one run of
// sibling tab markers merged into a single group.
type blockGroup struct {
	baseIndent int
	segments   []segment
}

var (
	admonitionMarkerRe = regexp.MustCompile(`^( *)!!! +([A-Za-z0-9_-]+)(?: +"([^"]*)")? *$`)
	tabMarkerRe        = regexp.MustCompile(`^( *)=== +"([^"]*)" *$`)
)

type marker struct {
	indent int
	typ    string
	label  string
}

func matchMarker(kind blockKind, line string) (marker, bool) {
	switch kind {
	case kindAdmonition:
		m := admonitionMarkerRe.FindStringSubmatch(line)
		if m == nil {
			return marker{}, false
		}
		return marker{indent: len(m[1]), typ: m[2], label: m[3]}, true
	default:
		m := tabMarkerRe.FindStringSubmatch(line)
		if m == nil {
			return marker{}, false
		}
		return marker{indent: len(m[1]), label: m[2]}, true
	}
}

// blockScanner converts indentation-delimited blocks of one kind into target
// syntax via emit. It is a cursor-indexed state machine over a line buffer;
// the only lookahead is the blank-line rule, which peeks ahead to the next
// non-blank line to decide whether a blank run still belongs to the block.
type blockScanner struct {
	kind  blockKind
	lines []string
	emit  func(blockGroup) []string

	pos int
	out []string
}

// scanBlocks rewrites every block of the given kind in lines, passing other
// lines through untouched. Blocks nested inside collected content are
// converted recursively before emission.
func scanBlocks(lines []string, kind blockKind, emit func(blockGroup) []string) []string {
	s := &blockScanner{kind: kind, lines: lines, emit: emit, out: make([]string, 0, len(lines))}
	s.run()
	return s.out
}

func (s *blockScanner) run() {
	for s.pos < len(s.lines) {
		m, ok := matchMarker(s.kind, s.lines[s.pos])
		if !ok {
			s.out = append(s.out, s.lines[s.pos])
			s.pos++
			continue
		}
		s.out = append(s.out, s.emit(s.collectGroup(m))...)
	}
}

// collectGroup consumes one block starting at the marker m and, for tab
// groups, every contiguous sibling marker at the same base indentation.
func (s *blockScanner) collectGroup(m marker) blockGroup {
	group := blockGroup{baseIndent: m.indent}
	contentIndent := m.indent + indentUnit

	for {
		seg := segment{typ: m.typ, label: m.label}
		s.pos++ // past the marker line
		seg.content = s.collectContent(group.baseIndent, contentIndent)
		seg.content = scanBlocks(seg.content, s.kind, s.emit)
		group.segments = append(group.segments, seg)

		if s.kind == kindTabGroup && s.pos < len(s.lines) {
			if sib, ok := matchMarker(s.kind, s.lines[s.pos]); ok && sib.indent == group.baseIndent {
				m = sib
				continue
			}
		}
		return group
	}
}

// collectContent consumes lines indented at least contentIndent, de-indenting
// them by exactly contentIndent. A blank line is included only when the next
// non-blank line is still block content; for tab groups a blank run ending at
// a sibling marker is consumed without becoming content. Trailing blanks are
// trimmed, so under-indented or missing content simply yields an empty or
// partial segment.
func (s *blockScanner) collectContent(baseIndent, contentIndent int) []string {
	var content []string
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		if isBlank(line) {
			j := nextNonBlank(s.lines, s.pos)
			if j < len(s.lines) && indentOf(s.lines[j]) >= contentIndent {
				for ; s.pos < j; s.pos++ {
					content = append(content, "")
				}
				continue
			}
			if s.kind == kindTabGroup && j < len(s.lines) {
				if sib, ok := matchMarker(s.kind, s.lines[j]); ok && sib.indent == baseIndent {
					s.pos = j
				}
			}
			break
		}
		if indentOf(line) >= contentIndent {
			content = append(content, deindent(line, contentIndent))
			s.pos++
			continue
		}
		break
	}
	return trimTrailingBlank(content)
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }

func nextNonBlank(lines []string, from int) int {
	j := from
	for j < len(lines) && isBlank(lines[j]) {
		j++
	}
	return j
}

func indentOf(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func deindent(line string, width int) string {
	if len(line) <= width {
		return ""
	}
	return line[width:]
}

func trimTrailingBlank(lines []string) []string {
	n := len(lines)
	for n > 0 && isBlank(lines[n-1]) {
		n--
	}
	return lines[:n]
}

// reindent prefixes every non-blank line with indent spaces.
func reindent(lines []string, indent int) []string {
	if indent == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", indent)
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			out[i] = ""
			continue
		}
		out[i] = prefix + l
	}
	return out
}
