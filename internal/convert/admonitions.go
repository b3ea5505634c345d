package convert

import "strings"

// Aside types of the target dialect. Every source admonition type maps onto
// one of these four; unrecognized types fall back to AsideNote.
const (
	AsideNote    = "note"
	AsideTip     = "tip"
	AsideCaution = "caution"
	AsideDanger  = "danger"
)

// DefaultAdmonitionTypes returns the source→target admonition type mapping.
//
// The table is exhaustive over the source dialect's documented types; the
// converter treats anything missing from the table as AsideNote.
func DefaultAdmonitionTypes() map[string]string {
	return map[string]string{
		"note":      AsideNote,
		"abstract":  AsideNote,
		"summary":   AsideNote,
		"tldr":      AsideNote,
		"info":      AsideNote,
		"todo":      AsideNote,
		"quote":     AsideNote,
		"cite":      AsideNote,
		"example":   AsideNote,
		"tip":       AsideTip,
		"hint":      AsideTip,
		"important": AsideTip,
		"success":   AsideTip,
		"check":     AsideTip,
		"done":      AsideTip,
		"question":  AsideTip,
		"warning":   AsideCaution,
		"attention": AsideCaution,
		"caution":   AsideCaution,
		"danger":    AsideDanger,
		"error":     AsideDanger,
		"bug":       AsideDanger,
		"failure":   AsideDanger,
		"fail":      AsideDanger,
		"missing":   AsideDanger,
	}
}

// convertAdmonitions rewrites every `!!! type "Title"` block into the target
// `:::type[Title]` aside syntax. Each source block emits one aside.
func convertAdmonitions(lines []string, types map[string]string) []string {
	return scanBlocks(lines, kindAdmonition, func(g blockGroup) []string {
		out := make([]string, 0, len(g.segments[0].content)+2)
		for _, seg := range g.segments {
			out = append(out, asideOpen(seg.typ, seg.label, types))
			out = append(out, seg.content...)
			out = append(out, ":::")
		}
		return reindent(out, g.baseIndent)
	})
}

func asideOpen(srcType, title string, types map[string]string) string {
	target, ok := types[strings.ToLower(srcType)]
	if !ok {
		target = AsideNote
	}
	if title == "" {
		return ":::" + target
	}
	return ":::" + target + "[" + title + "]"
}
