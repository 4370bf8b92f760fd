// discover.go
package file

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks dataDir and returns every supported export file. Paths come
// back lexicographically sorted so the merge order downstream, and therefore
// tie-breaking between duplicate timestamps, is reproducible across runs.
// A missing or empty directory yields an empty list.
func Discover(dataDir string) []string {
	var paths []string
	filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsDataFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)
	return paths
}

// IsDataFile reports whether path has one of the supported export extensions.
func IsDataFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}
