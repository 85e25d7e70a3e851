// # internal/resolver/resolver.go
package resolver

import (
	"strings"
)

// Separator is the PHP namespace separator.
const Separator = `\`

// IsReserved reports whether name is a language builtin or pseudo type.
// Reserved names never become declarations or dependencies.
func IsReserved(name string) bool {
	return reservedNames[strings.ToLower(name)]
}

// Resolve turns one lexical name reference into a canonical, fully
// namespace-qualified name. The step order is load-bearing: an aliased
// single-segment name must resolve through the import table before the
// current namespace is applied.
func Resolve(raw, namespace string, imports map[string]string) string {
	if raw == "" {
		return ""
	}

	// 1. Builtins pass through untouched, never qualified.
	if IsReserved(raw) {
		return raw
	}

	// 2. Fully qualified: strip the leading separator.
	if strings.HasPrefix(raw, Separator) {
		return strings.TrimPrefix(raw, Separator)
	}

	segments := strings.Split(raw, Separator)

	// 3. Explicit namespace-relative form: namespace\Sub\Name.
	if strings.EqualFold(segments[0], "namespace") {
		rest := strings.Join(segments[1:], Separator)
		if namespace == "" {
			return rest
		}
		return namespace + Separator + rest
	}

	// 4. First segment matches an import alias: substitute its prefix.
	if canonical, ok := imports[segments[0]]; ok {
		if len(segments) == 1 {
			return canonical
		}
		return canonical + Separator + strings.Join(segments[1:], Separator)
	}

	// 5. Unqualified name under the current namespace.
	if namespace == "" {
		return raw
	}
	return namespace + Separator + raw
}

// QualifyDeclaration builds the canonical name for a declared symbol.
// Aliasing never applies to declarations, only the current namespace does.
func QualifyDeclaration(name, namespace string) string {
	if namespace == "" {
		return name
	}
	return namespace + Separator + name
}
