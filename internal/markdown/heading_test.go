package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstH1_ATXHeading_ReturnsTextAndLineSpan(t *testing.T) {
	body := []byte("# Getting Started\n\nIntro text.\n")

	title, ok := FirstH1(body)
	require.True(t, ok)
	require.Equal(t, "Getting Started", title.Text)
	require.Equal(t, 0, title.Start)
	require.Equal(t, len("# Getting Started\n"), title.End)
}

func TestFirstH1_HeadingAfterProse_FindsIt(t *testing.T) {
	body := []byte("Some preamble.\n\n# Real Title\n\nBody.\n")

	title, ok := FirstH1(body)
	require.True(t, ok)
	require.Equal(t, "Real Title", title.Text)
	require.Equal(t, "# Real Title\n", string(body[title.Start:title.End]))
}

func TestFirstH1_HeadingInsideCodeFence_Ignored(t *testing.T) {
	body := []byte("```\n# not a heading\n```\n\n## Subheading\n")

	_, ok := FirstH1(body)
	require.False(t, ok)
}

func TestFirstH1_IgnoresLowerLevels(t *testing.T) {
	body := []byte("## Second Level\n\n# First Level\n")

	title, ok := FirstH1(body)
	require.True(t, ok)
	require.Equal(t, "First Level", title.Text)
}

func TestFirstH1_Setext_SpansUnderline(t *testing.T) {
	body := []byte("Big Title\n=========\n\nBody.\n")

	title, ok := FirstH1(body)
	require.True(t, ok)
	require.Equal(t, "Big Title", title.Text)
	require.Equal(t, "Big Title\n=========\n", string(body[title.Start:title.End]))
}

func TestFirstH1_NoHeading_NotFound(t *testing.T) {
	_, ok := FirstH1([]byte("just prose\n"))
	require.False(t, ok)
}

func TestApplyEdits_DeleteRange(t *testing.T) {
	src := []byte("abc\ndef\nghi\n")

	out, err := ApplyEdits(src, []Edit{{Start: 4, End: 8}})
	require.NoError(t, err)
	require.Equal(t, []byte("abc\nghi\n"), out)
}

func TestApplyEdits_MultipleEditsApplyInReverse(t *testing.T) {
	src := []byte("0123456789")

	out, err := ApplyEdits(src, []Edit{
		{Start: 0, End: 2, Replacement: []byte("X")},
		{Start: 8, End: 10, Replacement: []byte("Y")},
	})
	require.NoError(t, err)
	require.Equal(t, []byte("X234567Y"), out)
}

func TestApplyEdits_Overlapping_ReturnsError(t *testing.T) {
	src := []byte("0123456789")

	_, err := ApplyEdits(src, []Edit{
		{Start: 0, End: 5},
		{Start: 4, End: 8},
	})
	require.Error(t, err)
}

func TestApplyEdits_OutOfBounds_ReturnsError(t *testing.T) {
	_, err := ApplyEdits([]byte("abc"), []Edit{{Start: 1, End: 9}})
	require.Error(t, err)
}
