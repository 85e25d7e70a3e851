// # internal/scanner/scanner.go
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Scanner enumerates the PHP files under a set of root directories,
// filtered against exclude patterns. It yields an ordered, deduplicated
// list of absolute paths.
type Scanner struct {
	roots      []string
	norm       *Normalizer
	dirGlobs   []glob.Glob
	fileGlobs  []glob.Glob
	extensions map[string]bool
}

func NewScanner(roots []string, excludeDirs, excludeFiles []string, norm *Normalizer) (*Scanner, error) {
	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	return &Scanner{
		roots:      roots,
		norm:       norm,
		dirGlobs:   dirGlobs,
		fileGlobs:  fileGlobs,
		extensions: map[string]bool{".php": true},
	}, nil
}

// Scan walks every root and collects matching files. Roots are normalized
// without symlink resolution so the caller's own path spelling survives
// into the walk.
func (s *Scanner) Scan() ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, root := range s.roots {
		absRoot, err := s.norm.Normalize(root)
		if err != nil {
			return nil, err
		}

		err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range s.dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !s.extensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			for _, g := range s.fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
