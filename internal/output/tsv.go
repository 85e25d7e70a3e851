// # internal/output/tsv.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"classmap/internal/index"
)

type TSVGenerator struct {
	index *index.Index
}

func NewTSVGenerator(idx *index.Index) *TSVGenerator {
	return &TSVGenerator{index: idx}
}

// Generate renders the symbol table followed by the per-file dependency
// edge list, both tab-separated.
func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("Class\tKind\tFile\n")
	for _, sym := range t.index.Symbols() {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\n", sym.Name, sym.Kind, sym.File))
	}

	buf.WriteString("\nFile\tDependency\n")
	deps := t.index.AllFileDependencies()
	paths := make([]string, 0, len(deps))
	for path := range deps {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, dep := range deps[path] {
			buf.WriteString(fmt.Sprintf("%s\t%s\n", path, dep))
		}
	}

	return buf.String(), nil
}
