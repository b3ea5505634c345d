// Package lint verifies converted output: every page must carry valid
// frontmatter and be free of leftover source-dialect syntax.
package lint

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Verifier checks every converted document under a directory.
type Verifier struct {
	rules []Rule
}

// NewVerifier creates a Verifier with the default rule set.
func NewVerifier() *Verifier {
	return &Verifier{
		rules: []Rule{
			&FrontmatterRule{},
			&ResidueRule{},
		},
	}
}

// VerifyPath verifies a single document or every document under a directory.
func (v *Verifier) VerifyPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if !info.IsDir() {
		result.FilesTotal = 1
		return result, v.verifyFile(path, result)
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !isDocFile(p) {
			return nil
		}
		result.FilesTotal++
		return v.verifyFile(p, result)
	})
	return result, err
}

func (v *Verifier) verifyFile(path string, result *Result) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, rule := range v.rules {
		issues, err := rule.Check(path, content)
		if err != nil {
			return err
		}
		result.Issues = append(result.Issues, issues...)
	}
	return nil
}

func isDocFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".mdx"
}
