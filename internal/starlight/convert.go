package starlight

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docmigrate/internal/mkdocs"
)

var titleCaser = cases.Title(language.English)

// ConvertNav converts the whole typed nav tree.
func ConvertNav(entries []mkdocs.NavEntry) []Item {
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Convert(e))
	}
	return items
}

// Convert maps one nav entry onto its sidebar item. External links open in a
// new window; internal pages are addressed by derived slug; groups recurse.
func Convert(e mkdocs.NavEntry) Item {
	switch e.Kind {
	case mkdocs.KindExternalLink:
		return Item{
			Kind:  KindLink,
			Label: e.Label,
			Link:  e.URL,
			Attrs: map[string]string{"target": "_blank"},
		}
	case mkdocs.KindInternalPage:
		label := e.Label
		if label == "" {
			label = displayName(e.Path)
		}
		return Item{Kind: KindPage, Slug: ToSlug(e.Path), Label: label}
	default:
		return Item{Kind: KindGroup, Label: e.Label, Items: ConvertNav(e.Children)}
	}
}

// displayName derives a human label from a page path's basename:
// `getting_started.md` becomes "Getting Started".
func displayName(sourcePath string) string {
	base := path.Base(sourcePath)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return titleCaser.String(base)
}
