// Package scan walks a project tree collecting file extensions and relative
// paths. Walks are depth-bounded, skip VCS/dependency/build directories and
// hidden entries, and treat unreadable directories as empty.
package scan

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxDepth bounds walks to the root plus three levels of subdirectories.
const DefaultMaxDepth = 3

// Options controls a walk.
type Options struct {
	// MaxDepth is the deepest directory level visited; the root is level 0.
	MaxDepth int
	// Ignore holds doublestar patterns matched against slash-separated paths
	// relative to the walk root.
	Ignore []string
}

var pruneDirs = map[string]bool{
	".git":             true,
	".hg":              true,
	".svn":             true,
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"target":           true,
	"coverage":         true,
	".next":            true,
	".nuxt":            true,
	"__pycache__":      true,
	".cache":           true,
}

// Skipped reports whether an entry name is never visited.
func Skipped(name string, isDir bool) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return isDir && pruneDirs[strings.ToLower(name)]
}

// Extensions returns the lower-cased extensions of files under root in
// first-discovery order, without duplicates.
func Extensions(root string, opts Options) []string {
	seen := map[string]bool{}
	var exts []string
	walk(root, opts, func(rel string) {
		ext := strings.ToLower(path.Ext(rel))
		if ext == "" || seen[ext] {
			return
		}
		seen[ext] = true
		exts = append(exts, ext)
	})
	return exts
}

// Files returns slash-separated paths of files under root, relative to root,
// in walk order.
func Files(root string, opts Options) []string {
	var files []string
	walk(root, opts, func(rel string) {
		files = append(files, rel)
	})
	return files
}

func walk(root string, opts Options, visit func(rel string)) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	ignore := normalizePatterns(opts.Ignore)

	var descend func(dir, rel string, depth int)
	descend = func(dir, rel string, depth int) {
		if depth > maxDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			isDir := entry.IsDir()
			if Skipped(name, isDir) {
				continue
			}
			childRel := name
			if rel != "" {
				childRel = rel + "/" + name
			}
			if matchAny(childRel, ignore) {
				continue
			}
			if isDir {
				descend(filepath.Join(dir, name), childRel, depth+1)
				continue
			}
			if entry.Type().IsRegular() {
				visit(childRel)
			}
		}
	}
	descend(root, "", 0)
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(filepath.ToSlash(p), "./")
		if doublestar.ValidatePattern(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
