package batch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks the source tree and returns the relative paths of all
// markdown documents plus all other regular files (assets), each sorted.
// Hidden directories are skipped.
func Discover(root string) (docs, assets []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if strings.EqualFold(filepath.Ext(name), ".md") {
			docs = append(docs, rel)
		} else {
			assets = append(assets, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(docs)
	sort.Strings(assets)
	return docs, assets, nil
}
