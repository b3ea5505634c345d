package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runAdmonitions(t *testing.T, input string) string {
	t.Helper()
	lines, trailing := splitLines(input, "\n")
	out := convertAdmonitions(lines, DefaultAdmonitionTypes())
	return string(joinLines(out, "\n", trailing))
}

func runTabs(t *testing.T, input string) string {
	t.Helper()
	lines, trailing := splitLines(input, "\n")
	out := convertTabGroups(lines)
	return string(joinLines(out, "\n", trailing))
}

func TestConvertAdmonitions_BasicBlock(t *testing.T) {
	input := "!!! note \"Remember\"\n    First line.\n    Second line.\n\nAfter.\n"

	got := runAdmonitions(t, input)
	want := ":::note[Remember]\nFirst line.\nSecond line.\n:::\n\nAfter.\n"
	require.Equal(t, want, got)
}

func TestConvertAdmonitions_NoTitle_OmitsBrackets(t *testing.T) {
	got := runAdmonitions(t, "!!! tip\n    Do the thing.\n")
	require.Equal(t, ":::tip\nDo the thing.\n:::\n", got)
}

func TestConvertAdmonitions_TypeMapping_Exhaustive(t *testing.T) {
	cases := map[string]string{
		"note":    AsideNote,
		"info":    AsideNote,
		"summary": AsideNote,
		"tip":     AsideTip,
		"hint":    AsideTip,
		"warning": AsideCaution,
		"caution": AsideCaution,
		"danger":  AsideDanger,
		"error":   AsideDanger,
		"bug":     AsideDanger,
		"failure": AsideDanger,
		"frobnicate": AsideNote, // unrecognized falls back to note
	}
	for src, want := range cases {
		got := runAdmonitions(t, "!!! "+src+"\n    x\n")
		require.True(t, strings.HasPrefix(got, ":::"+want+"\n"), "type %q: got %q", src, got)
	}
}

func TestConvertAdmonitions_BlankLineInsideBlock_Kept(t *testing.T) {
	input := "!!! note\n    para one\n\n    para two\n"

	got := runAdmonitions(t, input)
	require.Equal(t, ":::note\npara one\n\npara two\n:::\n", got)
}

func TestConvertAdmonitions_BlankLineEndsBlock_NotConsumed(t *testing.T) {
	input := "!!! note\n    inside\n\noutside\n"

	got := runAdmonitions(t, input)
	require.Equal(t, ":::note\ninside\n:::\n\noutside\n", got)
}

func TestConvertAdmonitions_UnderIndentedContent_ClosesEmpty(t *testing.T) {
	input := "!!! note\nnot content\n"

	got := runAdmonitions(t, input)
	require.Equal(t, ":::note\n:::\nnot content\n", got)
}

func TestConvertAdmonitions_MissingContentAtEOF_ClosesEmpty(t *testing.T) {
	got := runAdmonitions(t, "!!! warning\n")
	require.Equal(t, ":::caution\n:::\n", got)
}

func TestConvertAdmonitions_IndentedBlock_PreservesBaseIndent(t *testing.T) {
	input := "- item\n\n    !!! note\n        nested content\n"

	got := runAdmonitions(t, input)
	require.Equal(t, "- item\n\n    :::note\n    nested content\n    :::\n", got)
}

func TestConvertAdmonitions_NestedAdmonition_ConvertedRecursively(t *testing.T) {
	input := "!!! note\n    outer\n    !!! warning\n        inner\n"

	got := runAdmonitions(t, input)
	want := ":::note\nouter\n:::caution\ninner\n:::\n:::\n"
	require.Equal(t, want, got)
}

func TestConvertAdmonitions_ExtraIndentPreservedRelative(t *testing.T) {
	input := "!!! note\n    code:\n        indented more\n"

	got := runAdmonitions(t, input)
	require.Equal(t, ":::note\ncode:\n    indented more\n:::\n", got)
}

func TestConvertTabs_TwoSiblings_MergeIntoOneGroup(t *testing.T) {
	input := "=== \"A\"\n    a content\n\n=== \"B\"\n    b content\n"

	got := runTabs(t, input)
	want := "<Tabs>\n" +
		"<TabItem label=\"A\">\na content\n</TabItem>\n" +
		"<TabItem label=\"B\">\nb content\n</TabItem>\n" +
		"</Tabs>\n"
	require.Equal(t, want, got)
}

func TestConvertTabs_SiblingWithoutBlankSeparator_Merges(t *testing.T) {
	input := "=== \"A\"\n    a\n=== \"B\"\n    b\n"

	got := runTabs(t, input)
	require.Equal(t, 1, strings.Count(got, "<Tabs>"))
	require.Equal(t, 2, strings.Count(got, "<TabItem"))
}

func TestConvertTabs_SingleBlock_StillWrappedAsGroup(t *testing.T) {
	input := "=== \"Python\"\n    print(\"hi\")\n"

	got := runTabs(t, input)
	want := "<Tabs>\n<TabItem label=\"Python\">\nprint(\"hi\")\n</TabItem>\n</Tabs>\n"
	require.Equal(t, want, got)
}

func TestConvertTabs_BlankRunBeforeSibling_TrimmedFromSegment(t *testing.T) {
	input := "=== \"A\"\n    a\n\n\n=== \"B\"\n    b\n"

	got := runTabs(t, input)
	require.NotContains(t, got, "a\n\n</TabItem>")
	require.Equal(t, 1, strings.Count(got, "<Tabs>"))
}

func TestConvertTabs_DifferentIndentSibling_NotMerged(t *testing.T) {
	input := "=== \"A\"\n    a\n\n    === \"B\"\n        b\n"

	got := runTabs(t, input)
	// The deeper marker is nested content of A, converted recursively into
	// its own group rather than joining A's group.
	require.Equal(t, 2, strings.Count(got, "<Tabs>"))
}

func TestConvertTabs_BlankInsideSegment_Kept(t *testing.T) {
	input := "=== \"A\"\n    one\n\n    two\n"

	got := runTabs(t, input)
	require.Contains(t, got, "one\n\ntwo")
}

func TestConvertTabs_GroupEndsAtUnindentedProse(t *testing.T) {
	input := "=== \"A\"\n    a\n\nprose after\n"

	got := runTabs(t, input)
	require.Equal(t, "<Tabs>\n<TabItem label=\"A\">\na\n</TabItem>\n</Tabs>\n\nprose after\n", got)
}

func TestConvertTabs_LabelWithQuote_Escaped(t *testing.T) {
	// A tab label cannot contain a literal quote in the source grammar, but
	// the emitter still guards the attribute.
	require.Equal(t, "a&quot;b", escapeAttr(`a"b`))
}

func TestScanBlocks_MarkerInsideDeeperContent_NotASibling(t *testing.T) {
	input := "!!! note\n    !!! note is mentioned here\n"

	// The inner line is prose (no valid marker shape at content indent would
	// match `!!! note is mentioned here`), so it stays content.
	got := runAdmonitions(t, input)
	require.Equal(t, ":::note\n!!! note is mentioned here\n:::\n", got)
}
