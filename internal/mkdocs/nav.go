// Package mkdocs reads the source generator's configuration file and models
// its navigation tree as a tagged union, so the link/page/group
// classification happens exactly once, on read.
package mkdocs

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntryKind tags a NavEntry.
type EntryKind int

const (
	// KindExternalLink is a nav value with a URI scheme.
	KindExternalLink EntryKind = iota
	// KindInternalPage is a nav value naming a markdown source file.
	KindInternalPage
	// KindGroup is a labeled list of child entries.
	KindGroup
)

// NavEntry is one node of the navigation tree.
//
// The on-disk representation is untyped (label→value pairs, or bare path
// strings); Parse classifies every value while decoding so consumers never
// re-infer the kind.
type NavEntry struct {
	Kind     EntryKind
	Label    string // empty for bare path entries
	URL      string // KindExternalLink
	Path     string // KindInternalPage
	Children []NavEntry
}

// Config is the subset of the source generator's configuration the migration
// consumes: the site name and the nav tree.
type Config struct {
	SiteName string
	Nav      []NavEntry
}

var uriSchemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// Load reads and parses the configuration file. Any failure here is fatal to
// the caller: sidebar generation has no meaningful partial result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nav config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse nav config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration bytes. The nav tree is decoded via yaml nodes
// to preserve entry order.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return &Config{}, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping, got %s", nodeKindName(doc))
	}

	cfg := &Config{}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		switch key.Value {
		case "site_name":
			cfg.SiteName = value.Value
		case "nav":
			nav, err := parseNavList(value)
			if err != nil {
				return nil, err
			}
			cfg.Nav = nav
		}
	}
	return cfg, nil
}

func parseNavList(node *yaml.Node) ([]NavEntry, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: nav must be a sequence, got %s", node.Line, nodeKindName(node))
	}
	entries := make([]NavEntry, 0, len(node.Content))
	for _, item := range node.Content {
		entry, err := parseNavEntry(item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseNavEntry(node *yaml.Node) (NavEntry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		// Bare path entry without a label.
		return classifyValue("", node)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return NavEntry{}, fmt.Errorf("line %d: nav entry must have exactly one label", node.Line)
		}
		label, value := node.Content[0].Value, node.Content[1]
		if value.Kind == yaml.SequenceNode {
			children, err := parseNavList(value)
			if err != nil {
				return NavEntry{}, err
			}
			return NavEntry{Kind: KindGroup, Label: label, Children: children}, nil
		}
		return classifyValue(label, value)
	default:
		return NavEntry{}, fmt.Errorf("line %d: nav entry must be a string or a label mapping, got %s", node.Line, nodeKindName(node))
	}
}

// classifyValue applies the classification rule, in order: URI scheme means
// an external link, a markdown extension means an internal page, anything
// else is a structural error.
func classifyValue(label string, node *yaml.Node) (NavEntry, error) {
	if node.Kind != yaml.ScalarNode {
		return NavEntry{}, fmt.Errorf("line %d: nav value must be a string or list, got %s", node.Line, nodeKindName(node))
	}
	value := node.Value
	switch {
	case uriSchemeRe.MatchString(value):
		return NavEntry{Kind: KindExternalLink, Label: label, URL: value}, nil
	case strings.HasSuffix(strings.ToLower(value), ".md"):
		return NavEntry{Kind: KindInternalPage, Label: label, Path: value}, nil
	default:
		return NavEntry{}, fmt.Errorf("line %d: nav value %q is neither a link nor a markdown path", node.Line, value)
	}
}

func nodeKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
