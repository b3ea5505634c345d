package convert

import "strings"

// convertTabGroups merges runs of sibling `=== "Label"` blocks into one
// `<Tabs>` component with a `<TabItem>` per segment. A lone tab block still
// becomes a one-element group; the target dialect has no bare tab construct.
func convertTabGroups(lines []string) []string {
	return scanBlocks(lines, kindTabGroup, func(g blockGroup) []string {
		out := make([]string, 0, len(g.segments)*3+2)
		out = append(out, "<Tabs>")
		for _, seg := range g.segments {
			out = append(out, `<TabItem label="`+escapeAttr(seg.label)+`">`)
			out = append(out, seg.content...)
			out = append(out, "</TabItem>")
		}
		out = append(out, "</Tabs>")
		return reindent(out, g.baseIndent)
	})
}

func escapeAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}
