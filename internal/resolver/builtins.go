// # internal/resolver/builtins.go
package resolver

// Reserved class-position tokens and pseudo types. Keys are lowercase; the
// check is case-insensitive because PHP treats these keywords that way.
var reservedNames = map[string]bool{
	"self":     true,
	"static":   true,
	"parent":   true,
	"this":     true,
	"int":      true,
	"integer":  true,
	"float":    true,
	"double":   true,
	"real":     true,
	"string":   true,
	"bool":     true,
	"boolean":  true,
	"array":    true,
	"object":   true,
	"callable": true,
	"iterable": true,
	"resource": true,
	"mixed":    true,
	"numeric":  true,
	"scalar":   true,
	"void":     true,
	"never":    true,
	"null":     true,
	"true":     true,
	"false":    true,
}
