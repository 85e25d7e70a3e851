// # internal/scanner/paths.go
package scanner

import (
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"classmap/internal/errors"
)

const canonicalCacheSize = 1024

// Normalizer canonicalizes file paths. Normalize keeps the caller's
// spelling (absolute + clean, no symlink resolution); Canonicalize also
// resolves symlinks so differing spellings of one file coalesce when used
// as index keys. Canonicalization hits the file system, so results are
// memoized in an LRU cache.
type Normalizer struct {
	cache *lru.Cache[string, string]
}

func NewNormalizer() *Normalizer {
	cache, _ := lru.New[string, string](canonicalCacheSize)
	return &Normalizer{cache: cache}
}

func (n *Normalizer) Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.CodeInvalidPath, "path must not be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidPath, "resolve absolute path")
	}
	return filepath.Clean(abs), nil
}

func (n *Normalizer) Canonicalize(path string) (string, error) {
	abs, err := n.Normalize(path)
	if err != nil {
		return "", err
	}

	if cached, ok := n.cache.Get(abs); ok {
		return cached, nil
	}

	canonical := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		canonical = resolved
	}

	n.cache.Add(abs, canonical)
	return canonical, nil
}
