// # internal/parser/types.go
package parser

type File struct {
	Path         string
	Declarations []Declaration
	References   []Reference
}

// Declaration is a class, interface or trait declared in a file. Name is
// canonical: fully namespace-qualified with no leading separator.
type Declaration struct {
	Name string
	Kind DeclarationKind
}

// Reference is a canonical type name a file depends on, tagged with the
// syntactic position it was seen in. Same-file exclusion happens later,
// when the indices are merged.
type Reference struct {
	Name    string
	Context RefContext
}

type DeclarationKind int

const (
	KindClass DeclarationKind = iota
	KindInterface
	KindTrait
)

func (k DeclarationKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindTrait:
		return "trait"
	default:
		return "unknown"
	}
}

type RefContext string

const (
	ContextExtends       RefContext = "extends"
	ContextImplements    RefContext = "implements"
	ContextTraitUse      RefContext = "trait_use"
	ContextInstantiation RefContext = "new"
	ContextStaticAccess  RefContext = "static_access"
	ContextInstanceof    RefContext = "instanceof"
	ContextCatch         RefContext = "catch"
	ContextTypeHint      RefContext = "type_hint"
)
