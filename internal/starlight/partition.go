package starlight

import (
	"fmt"

	"git.home.luguber.info/inful/docmigrate/internal/util/sets"
)

// PartitionResult is the sidebar model for a site with independent top-level
// sections.
type PartitionResult struct {
	Tabs     []Tab
	Sidebars MultiSidebar
	// Warnings records declared tabs that could not be partitioned. The
	// partitioning itself never fails; an unusable declaration is skipped.
	Warnings []string
}

// Partition splits the converted tree into one Tab per declared top-level
// group label plus a path-prefix-keyed multi-sidebar.
//
// Each tab's slug comes from the top-level directory segment of the group's
// first leaf page. Label stripping happens here, on the final emitted items
// only: intermediate conversion results keep their labels.
func Partition(items []Item, tabLabels []string) PartitionResult {
	res := PartitionResult{Sidebars: MultiSidebar{}}

	groups := map[string]Item{}
	for _, it := range items {
		if it.Kind == KindGroup {
			groups[it.Label] = it
		}
	}

	seen := sets.New[string]()
	for _, label := range tabLabels {
		group, ok := groups[label]
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("declared tab %q has no matching top-level group", label))
			continue
		}
		leaf, ok := firstLeafSlug(group.Items)
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("declared tab %q contains no pages", label))
			continue
		}
		slug := topSegment(leaf)
		if seen.Has(slug) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("declared tab %q maps to already-used prefix %q", label, slug))
			continue
		}
		seen.Add(slug)

		stripped := StripLeafLabels(group.Items)
		res.Tabs = append(res.Tabs, Tab{Label: label, Slug: slug, Items: stripped})
		res.Sidebars["/"+slug+"/"] = stripped
	}

	return res
}

// StripLeafLabels returns a deep copy of items in which every leaf page item
// has no label while groups (and links) keep theirs.
func StripLeafLabels(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		c := it
		switch it.Kind {
		case KindPage:
			c.Label = ""
		case KindGroup:
			c.Items = StripLeafLabels(it.Items)
		}
		out[i] = c
	}
	return out
}

func firstLeafSlug(items []Item) (string, bool) {
	for _, it := range items {
		switch it.Kind {
		case KindPage:
			return it.Slug, true
		case KindGroup:
			if slug, ok := firstLeafSlug(it.Items); ok {
				return slug, true
			}
		}
	}
	return "", false
}
