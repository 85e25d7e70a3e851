// # internal/output/dot.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"classmap/internal/index"
)

type DOTGenerator struct {
	index *index.Index
}

func NewDOTGenerator(idx *index.Index) *DOTGenerator {
	return &DOTGenerator{index: idx}
}

// Generate renders the file-level dependency graph. Files are nodes; an
// edge runs from a file to the file declaring each dependency. Names with
// no known declaring file show up as external nodes.
func (d *DOTGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph classmap {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8];\n\n")

	names := d.index.AllMappedNames()
	deps := d.index.AllFileDependencies()

	paths := make([]string, 0, len(deps))
	for path := range deps {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	externals := make(map[string]bool)
	var edges []string

	for _, path := range paths {
		buf.WriteString(fmt.Sprintf("  %q;\n", path))
		for _, dep := range deps[path] {
			if target, ok := names[dep]; ok {
				edges = append(edges, fmt.Sprintf("  %q -> %q [label=%q];\n", path, target, dep))
			} else {
				externals[dep] = true
				edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];\n", path, dep))
			}
		}
	}

	if len(externals) > 0 {
		buf.WriteString("\n  node [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n")
		sorted := make([]string, 0, len(externals))
		for name := range externals {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)
		for _, name := range sorted {
			buf.WriteString(fmt.Sprintf("  %q;\n", name))
		}
	}

	buf.WriteString("\n")
	for _, edge := range edges {
		buf.WriteString(edge)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
