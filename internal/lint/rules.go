package lint

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// pageMeta is the frontmatter shape every converted page must satisfy.
type pageMeta struct {
	Title     string   `yaml:"title"`
	Languages []string `yaml:"languages"`
	Community *bool    `yaml:"community"`
}

// FrontmatterRule validates that a converted page carries parseable
// frontmatter with a non-empty title.
type FrontmatterRule struct{}

func (r *FrontmatterRule) Name() string { return "frontmatter" }

func (r *FrontmatterRule) Check(filePath string, content []byte) ([]Issue, error) {
	var meta pageMeta
	_, err := frontmatter.MustParse(bytes.NewReader(content), &meta)
	if err != nil {
		return []Issue{{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("frontmatter does not parse: %v", err),
		}}, nil
	}
	var issues []Issue
	if strings.TrimSpace(meta.Title) == "" {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "missing or empty title",
		})
	}
	for _, lang := range meta.Languages {
		if strings.TrimSpace(lang) == "" {
			issues = append(issues, Issue{
				FilePath: filePath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "languages list contains an empty entry",
			})
		}
	}
	return issues, nil
}

// ResidueRule flags source-dialect syntax that survived conversion. Fenced
// code blocks are exempt.
type ResidueRule struct{}

func (r *ResidueRule) Name() string { return "residue" }

func (r *ResidueRule) Check(filePath string, content []byte) ([]Issue, error) {
	var issues []Issue
	inFence := false
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		var msg string
		switch {
		case strings.HasPrefix(trimmed, "!!! "):
			msg = "unconverted admonition marker"
		case strings.HasPrefix(trimmed, `=== "`):
			msg = "unconverted tab marker"
		}
		if msg != "" {
			issues = append(issues, Issue{
				FilePath: filePath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  msg,
				Line:     i + 1,
			})
		}
	}
	return issues, nil
}
