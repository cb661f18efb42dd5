package export

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// inventory walks the tree rooted at root and collects absolute paths of
// files whose extension is in the allow-list, pruning any subtree matching
// an exclusion glob. Traversal order is whatever the filesystem yields; no
// sorting is applied. Unreadable subtrees are skipped, never fatal.
func inventory(root string, extensions, excludeGlobs []string) []string {
	paths := make([]string, 0, 64)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if matchesAny(excludeGlobs, rel) {
				return fs.SkipDir
			}
			return nil
		}
		if matchesAny(excludeGlobs, rel) {
			return nil
		}
		if hasAllowedExtension(d.Name(), extensions) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}

func matchesAny(globs []string, rel string) bool {
	for _, g := range globs {
		ok, err := doublestar.Match(g, rel)
		if err != nil {
			// malformed pattern: ignore it rather than failing the walk
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

func hasAllowedExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
