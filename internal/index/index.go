// # internal/index/index.go
package index

import (
	"log/slog"
	"os"
	"sort"
	"sync"

	"classmap/internal/errors"
	"classmap/internal/parser"
	"classmap/internal/scanner"
)

// FileScanner yields the ordered, deduplicated list of files to index.
type FileScanner interface {
	Scan() ([]string, error)
}

// FileParser turns one file's bytes into its declaration/reference summary.
type FileParser interface {
	ParseFile(path string, content []byte) (*parser.File, error)
}

// Symbol is one indexed declaration.
type Symbol struct {
	Name string
	Kind parser.DeclarationKind
	File string
}

// Index maps declared class/interface/trait names to their files and files
// to the canonical names they depend on. Both maps are built lazily on the
// first query, exactly once, from a snapshot of the file list at that
// moment; they are never rebuilt within the lifetime of the Index.
//
// Files that cannot be read or parsed are skipped silently: their
// declarations and dependencies are simply absent. Partial results are an
// intentional property, not an error.
type Index struct {
	scanner FileScanner
	parser  FileParser
	norm    *scanner.Normalizer

	buildOnce sync.Once
	symbols   map[string]Symbol
	fileDeps  map[string][]string
}

// New builds an Index over the given roots. It fails when roots is empty.
func New(roots, excludeDirs, excludeFiles []string, versionHint string) (*Index, error) {
	if len(roots) == 0 {
		return nil, errors.New(errors.CodeValidationError, "at least one root directory is required")
	}

	norm := scanner.NewNormalizer()
	scan, err := scanner.NewScanner(roots, excludeDirs, excludeFiles, norm)
	if err != nil {
		return nil, err
	}

	return NewWithComponents(scan, parser.NewParser(versionHint), norm), nil
}

// NewWithComponents wires an Index from explicit collaborators.
func NewWithComponents(scan FileScanner, parse FileParser, norm *scanner.Normalizer) *Index {
	return &Index{
		scanner:  scan,
		parser:   parse,
		norm:     norm,
		symbols:  make(map[string]Symbol),
		fileDeps: make(map[string][]string),
	}
}

func (idx *Index) ensureBuilt() {
	idx.buildOnce.Do(idx.build)
}

func (idx *Index) build() {
	files, err := idx.scanner.Scan()
	if err != nil {
		slog.Warn("file scan failed, index is empty", "error", err)
		return
	}

	for _, path := range files {
		canonical, err := idx.norm.Canonicalize(path)
		if err != nil {
			slog.Debug("skipping file with unresolvable path", "path", path, "error", err)
			continue
		}
		if _, done := idx.fileDeps[canonical]; done {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			slog.Debug("skipping unreadable file", "path", path, "error", err)
			continue
		}

		file, err := idx.parser.ParseFile(path, content)
		if err != nil {
			slog.Debug("skipping unparsable file", "path", path, "error", err)
			continue
		}

		idx.merge(canonical, file)
	}

	slog.Debug("index built", "files", len(idx.fileDeps), "symbols", len(idx.symbols))
}

func (idx *Index) merge(canonicalPath string, file *parser.File) {
	declared := make(map[string]bool, len(file.Declarations))
	for _, decl := range file.Declarations {
		declared[decl.Name] = true
		// Duplicate declarations across files: the last processed file
		// wins. Processing order follows scanner enumeration order.
		idx.symbols[decl.Name] = Symbol{
			Name: decl.Name,
			Kind: decl.Kind,
			File: canonicalPath,
		}
	}

	deps := make([]string, 0, len(file.References))
	for _, ref := range file.References {
		if declared[ref.Name] {
			continue
		}
		deps = append(deps, ref.Name)
	}
	idx.fileDeps[canonicalPath] = deps
}

// FilePathByName returns the file declaring the given canonical name, or
// the empty string when the name was never indexed.
func (idx *Index) FilePathByName(name string) string {
	idx.ensureBuilt()
	return idx.symbols[name].File
}

// NameByFilePath returns a canonical name declared in the given file, or
// the empty string when the file declares nothing that is indexed. When a
// file declares several symbols the lexically smallest name is returned.
func (idx *Index) NameByFilePath(path string) string {
	idx.ensureBuilt()

	canonical, err := idx.norm.Canonicalize(path)
	if err != nil {
		return ""
	}

	best := ""
	for name, sym := range idx.symbols {
		if sym.File != canonical {
			continue
		}
		if best == "" || name < best {
			best = name
		}
	}
	return best
}

// DependenciesByFile returns the canonical names the given file depends
// on, excluding names declared in the file itself. Unknown files yield an
// empty set.
func (idx *Index) DependenciesByFile(path string) []string {
	idx.ensureBuilt()

	canonical, err := idx.norm.Canonicalize(path)
	if err != nil {
		return []string{}
	}

	deps, ok := idx.fileDeps[canonical]
	if !ok {
		return []string{}
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// DependenciesByName resolves the name to its declaring file and returns
// that file's dependencies. Unknown names yield an empty set.
func (idx *Index) DependenciesByName(name string) []string {
	idx.ensureBuilt()

	file := idx.FilePathByName(name)
	if file == "" {
		return []string{}
	}
	return idx.DependenciesByFile(file)
}

// AllMappedNames returns a snapshot of the full symbol index.
func (idx *Index) AllMappedNames() map[string]string {
	idx.ensureBuilt()

	out := make(map[string]string, len(idx.symbols))
	for name, sym := range idx.symbols {
		out[name] = sym.File
	}
	return out
}

// AllFileDependencies returns a snapshot of the full dependency index.
func (idx *Index) AllFileDependencies() map[string][]string {
	idx.ensureBuilt()

	out := make(map[string][]string, len(idx.fileDeps))
	for path, deps := range idx.fileDeps {
		copied := make([]string, len(deps))
		copy(copied, deps)
		out[path] = copied
	}
	return out
}

// Symbols returns every indexed declaration sorted by canonical name.
func (idx *Index) Symbols() []Symbol {
	idx.ensureBuilt()

	out := make([]Symbol, 0, len(idx.symbols))
	for _, sym := range idx.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
