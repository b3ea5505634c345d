package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docmigrate/internal/starlight"
)

// VerifySlugs checks that every page item in the sidebar tree resolves to an
// emitted document under outputDir. Index collapsing makes the slug→file
// mapping one-to-many, so every spelling the collapse could have come from
// is accepted.
func VerifySlugs(items []starlight.Item, outputDir, extension string) []Issue {
	var issues []Issue
	walkItems(items, func(it starlight.Item) {
		if it.Kind != starlight.KindPage {
			return
		}
		if !slugResolves(it.Slug, outputDir, extension) {
			issues = append(issues, Issue{
				FilePath: outputDir,
				Severity: SeverityError,
				Rule:     "slug",
				Message:  fmt.Sprintf("slug %q resolves to no emitted document", it.Slug),
			})
		}
	})
	return issues
}

func walkItems(items []starlight.Item, fn func(starlight.Item)) {
	for _, it := range items {
		fn(it)
		if it.Kind == starlight.KindGroup {
			walkItems(it.Items, fn)
		}
	}
}

func slugResolves(slug, outputDir, extension string) bool {
	candidates := []string{
		slug + extension,
		filepath.Join(slug, "index"+extension),
		filepath.Join(slug, "README"+extension),
	}
	if slug == "index" {
		candidates = append(candidates, "README"+extension)
	}
	for _, rel := range candidates {
		if _, err := os.Stat(filepath.Join(outputDir, rel)); err == nil {
			return true
		}
	}
	return false
}
