package starlight

import (
	"path"
	"strings"
)

// ToSlug derives the canonical page address from a source file path.
//
// The markdown extension is stripped; a basename of README or index collapses
// to the parent directory, and at the root to "index". The rule is applied
// uniformly at every depth, so two source paths only share a slug through
// this explicit index collapsing.
func ToSlug(sourcePath string) string {
	p := path.Clean(strings.ReplaceAll(sourcePath, "\\", "/"))
	p = strings.TrimPrefix(p, "./")

	if ext := path.Ext(p); strings.EqualFold(ext, ".md") {
		p = p[:len(p)-len(ext)]
	}

	base := path.Base(p)
	if strings.EqualFold(base, "readme") || strings.EqualFold(base, "index") {
		dir := path.Dir(p)
		if dir == "." || dir == "/" {
			return "index"
		}
		return dir
	}
	return p
}

// topSegment returns the slug's first path segment ("index" collapses to
// itself). Used to derive tab slugs and sidebar path prefixes.
func topSegment(slug string) string {
	if i := strings.IndexByte(slug, '/'); i >= 0 {
		return slug[:i]
	}
	return slug
}
