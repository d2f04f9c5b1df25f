// Package pathx resolves home-relative paths and lists directory
// candidates for the file completion mode.
package pathx

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flint/internal/match"
)

// ExpandTilde replaces a leading "~" with the user's home directory.
// Paths without the marker, or when no home is known, come back
// unchanged.
func ExpandTilde(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimLeft(rest, "/"))
}

// CollapseTilde rewrites an absolute path under the home directory
// back to its "~" display form.
func CollapseTilde(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}

// IsDir reports whether the (tilde-expanded) path names a directory.
func IsDir(path string) bool {
	st, err := os.Stat(ExpandTilde(path))
	return err == nil && st.IsDir()
}

// List returns the children of the directory named by input whose
// names subsequence-match the final path segment. An input ending in
// the separator lists the whole directory. Hidden entries are
// skipped unless the segment itself starts with a dot. Results keep
// the caller's "~" form and an unreadable directory yields nothing.
func List(input string, dirsFirst bool) []string {
	var dir, prefix string
	if strings.HasSuffix(input, "/") {
		dir = ExpandTilde(input)
	} else {
		expanded := ExpandTilde(input)
		dir = filepath.Dir(expanded)
		prefix = filepath.Base(expanded)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	collapse := strings.HasPrefix(input, "~")
	hiddenOK := strings.HasPrefix(prefix, ".")

	type candidate struct {
		isFile bool
		path   string
	}
	var found []candidate
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !hiddenOK {
			continue
		}
		if !match.Subsequence(prefix, name) {
			continue
		}
		full := filepath.Join(dir, name)
		isFile := false
		if st, err := os.Stat(full); err == nil {
			isFile = !st.IsDir()
		}
		if collapse {
			full = CollapseTilde(full)
		}
		found = append(found, candidate{isFile: isFile, path: full})
	}

	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if dirsFirst && a.isFile != b.isFile {
			return !a.isFile
		}
		return a.path < b.path
	})

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths
}
