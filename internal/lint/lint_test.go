package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docmigrate/internal/starlight"
)

func writeDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestVerifyPath_CleanTree_NoIssues(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "index.mdx", "---\ntitle: Home\n---\n\nWelcome.\n")
	writeDoc(t, dir, "guide/setup.mdx", "---\ntitle: Setup\nlanguages:\n  - python\n---\n\n:::note\nok\n:::\n")
	writeDoc(t, dir, "guide/diagram.png", "not a doc")

	res, err := NewVerifier().VerifyPath(dir)
	require.NoError(t, err)
	require.Equal(t, 2, res.FilesTotal)
	require.Empty(t, res.Issues)
}

func TestVerifyPath_MissingFrontmatter_IsError(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "page.mdx", "# Just a heading\n")

	res, err := NewVerifier().VerifyPath(dir)
	require.NoError(t, err)
	require.True(t, res.HasErrors())
	require.Equal(t, "frontmatter", res.Issues[0].Rule)
}

func TestVerifyPath_EmptyTitle_IsError(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "page.mdx", "---\ntitle: \"\"\n---\n\nBody.\n")

	res, err := NewVerifier().VerifyPath(dir)
	require.NoError(t, err)
	require.Equal(t, 1, res.ErrorCount())
	require.Contains(t, res.Issues[0].Message, "title")
}

func TestVerifyPath_ResidualMarkers_AreWarnings(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "page.mdx", "---\ntitle: Page\n---\n\n!!! note\n    leftover\n\n=== \"Tab\"\n")

	res, err := NewVerifier().VerifyPath(dir)
	require.NoError(t, err)
	require.False(t, res.HasErrors())
	require.Equal(t, 2, res.WarningCount())
	require.Equal(t, 5, res.Issues[0].Line)
}

func TestVerifyPath_MarkersInsideFence_Ignored(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "page.mdx", "---\ntitle: Page\n---\n\n```\n!!! note\n=== \"Tab\"\n```\n")

	res, err := NewVerifier().VerifyPath(dir)
	require.NoError(t, err)
	require.Empty(t, res.Issues)
}

func TestVerifySlugs_ReportsUnresolvedPages(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "guide/setup.mdx", "---\ntitle: Setup\n---\n")
	writeDoc(t, dir, "examples/README.mdx", "---\ntitle: Examples\n---\n")

	items := []starlight.Item{
		{Kind: starlight.KindGroup, Label: "Guide", Items: []starlight.Item{
			{Kind: starlight.KindPage, Slug: "guide/setup"},
			{Kind: starlight.KindPage, Slug: "examples"},
			{Kind: starlight.KindPage, Slug: "guide/missing"},
		}},
		{Kind: starlight.KindLink, Label: "Blog", Link: "https://example.com"},
	}

	issues := VerifySlugs(items, dir, ".mdx")
	require.Len(t, issues, 1)
	require.Contains(t, issues[0].Message, "guide/missing")
	require.Equal(t, SeverityError, issues[0].Severity)
}

func TestVerifyPath_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "page.mdx", "---\ntitle: Page\n---\n\nBody.\n")

	res, err := NewVerifier().VerifyPath(filepath.Join(dir, "page.mdx"))
	require.NoError(t, err)
	require.Equal(t, 1, res.FilesTotal)
	require.Empty(t, res.Issues)
}
