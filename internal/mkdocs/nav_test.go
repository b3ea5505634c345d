package mkdocs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParse_NavTree_ClassifiesOnRead(t *testing.T) {
	data := []byte(`
site_name: Example Docs
nav:
  - Home: index.md
  - User Guide:
      - user-guide/quickstart.md
      - Concepts:
          - Agents: user-guide/concepts/agents.md
  - API Reference: https://example.com/api
`)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, "Example Docs", cfg.SiteName)

	want := []NavEntry{
		{Kind: KindInternalPage, Label: "Home", Path: "index.md"},
		{Kind: KindGroup, Label: "User Guide", Children: []NavEntry{
			{Kind: KindInternalPage, Path: "user-guide/quickstart.md"},
			{Kind: KindGroup, Label: "Concepts", Children: []NavEntry{
				{Kind: KindInternalPage, Label: "Agents", Path: "user-guide/concepts/agents.md"},
			}},
		}},
		{Kind: KindExternalLink, Label: "API Reference", URL: "https://example.com/api"},
	}
	if diff := cmp.Diff(want, cfg.Nav); diff != "" {
		t.Fatalf("nav mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SchemeTakesPrecedenceOverExtension(t *testing.T) {
	cfg, err := Parse([]byte("nav:\n  - Spec: https://example.com/page.md\n"))
	require.NoError(t, err)
	require.Equal(t, KindExternalLink, cfg.Nav[0].Kind)
}

func TestParse_BareString_YieldsUnlabeledPage(t *testing.T) {
	cfg, err := Parse([]byte("nav:\n  - getting-started.md\n"))
	require.NoError(t, err)
	require.Equal(t, KindInternalPage, cfg.Nav[0].Kind)
	require.Empty(t, cfg.Nav[0].Label)
	require.Equal(t, "getting-started.md", cfg.Nav[0].Path)
}

func TestParse_UnclassifiableValue_ReturnsError(t *testing.T) {
	_, err := Parse([]byte("nav:\n  - Broken: not-a-page.txt\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "neither a link nor a markdown path")
}

func TestParse_NavNotASequence_ReturnsError(t *testing.T) {
	_, err := Parse([]byte("nav: oops\n"))
	require.Error(t, err)
}

func TestParse_EntryWithMultipleLabels_ReturnsError(t *testing.T) {
	_, err := Parse([]byte("nav:\n  - A: a.md\n    B: b.md\n"))
	require.Error(t, err)
}

func TestParse_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := Parse([]byte(": not yaml"))
	require.Error(t, err)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/mkdocs.yml")
	require.Error(t, err)
}
