// Package starlight models the destination generator's sidebar: converting
// the typed nav tree into sidebar items, deriving page slugs, and
// partitioning the tree into per-tab multi-sidebars.
package starlight

import "encoding/json"

// ItemKind tags a sidebar Item.
type ItemKind int

const (
	// KindLink is an external link item.
	KindLink ItemKind = iota
	// KindPage is an internal page addressed by slug.
	KindPage
	// KindGroup is a labeled list of child items.
	KindGroup
)

// Item is one node of the destination sidebar tree.
//
// Invariants of the final emitted tree: a leaf page never carries a Label
// (the destination page supplies its own frontmatter title) and a group
// always does.
type Item struct {
	Kind  ItemKind
	Label string
	Link  string            // KindLink
	Attrs map[string]string // KindLink
	Slug  string            // KindPage
	Items []Item            // KindGroup
}

// Tab is one declared top-level section of the navigation.
type Tab struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
	Items []Item `json:"items"`
}

// MultiSidebar maps a path prefix (always wrapped in slashes) to the item
// list shown under that prefix.
type MultiSidebar map[string][]Item

// MarshalJSON emits the destination generator's sidebar shapes: links as
// {label, link, attrs}, groups as {label, items}, pages as {label, slug} or,
// once the leaf label has been stripped, as a bare slug string.
func (it Item) MarshalJSON() ([]byte, error) {
	switch it.Kind {
	case KindLink:
		return json.Marshal(struct {
			Label string            `json:"label"`
			Link  string            `json:"link"`
			Attrs map[string]string `json:"attrs,omitempty"`
		}{it.Label, it.Link, it.Attrs})
	case KindPage:
		if it.Label == "" {
			return json.Marshal(it.Slug)
		}
		return json.Marshal(struct {
			Label string `json:"label"`
			Slug  string `json:"slug"`
		}{it.Label, it.Slug})
	default:
		items := it.Items
		if items == nil {
			items = []Item{}
		}
		return json.Marshal(struct {
			Label string `json:"label"`
			Items []Item `json:"items"`
		}{it.Label, items})
	}
}
