// # internal/parser/php.go
package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"classmap/internal/resolver"
)

// fileContext is the per-file visit state: the namespace currently in
// effect and the import table built from use statements. It is created
// fresh for every file and threaded through the walk by reference.
type fileContext struct {
	namespace string
	imports   map[string]string
}

type phpExtractor struct {
	source []byte
	file   *File
	seen   map[string]bool
}

func newPhpExtractor() *phpExtractor {
	return &phpExtractor{
		seen: make(map[string]bool),
	}
}

func (e *phpExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	e.source = source
	e.file = &File{Path: filePath}

	ctx := &fileContext{imports: make(map[string]string)}
	e.walk(root, ctx)

	return e.file, nil
}

func (e *phpExtractor) walk(node *sitter.Node, ctx *fileContext) {
	switch node.Kind() {
	case "namespace_definition":
		// A file may contain several sequential namespace sections; each
		// one replaces the current namespace. An anonymous section clears it.
		ctx.namespace = ""
		if name := e.childOfKind(node, "namespace_name"); name != nil {
			ctx.namespace = e.getText(name)
		}
	case "namespace_use_declaration":
		e.extractUse(node, ctx)
	case "class_declaration":
		e.extractClassLike(node, ctx, KindClass)
	case "interface_declaration":
		e.extractClassLike(node, ctx, KindInterface)
	case "trait_declaration":
		e.extractClassLike(node, ctx, KindTrait)
	case "use_declaration":
		e.extractTraitUse(node, ctx)
	case "object_creation_expression":
		e.extractInstantiation(node, ctx)
	case "assignment_expression":
		// $x = new Foo() is a distinct tree shape from a standalone
		// instantiation; the nested expression is also reached by the
		// recursion below and deduplication keeps the count at one.
		if right := node.ChildByFieldName("right"); right != nil && right.Kind() == "object_creation_expression" {
			e.extractInstantiation(right, ctx)
		}
	case "scoped_call_expression", "scoped_property_access_expression", "class_constant_access_expression":
		e.extractStaticAccess(node, ctx)
	case "binary_expression":
		e.extractInstanceof(node, ctx)
	case "catch_clause":
		e.extractCatch(node, ctx)
	case "simple_parameter", "property_promotion_parameter", "variadic_parameter", "property_declaration":
		if t := node.ChildByFieldName("type"); t != nil {
			e.collectType(t, ctx)
		}
	case "function_definition", "method_declaration", "anonymous_function", "anonymous_function_creation_expression", "arrow_function":
		if t := node.ChildByFieldName("return_type"); t != nil {
			e.collectType(t, ctx)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), ctx)
	}
}

func (e *phpExtractor) extractUse(node *sitter.Node, ctx *fileContext) {
	// use function / use const import callables and constants, not types.
	for i := uint(0); i < node.ChildCount(); i++ {
		switch node.Child(i).Kind() {
		case "function", "const":
			return
		}
	}

	if group := e.childOfKind(node, "namespace_use_group"); group != nil {
		prefix := ""
		if name := e.childOfKind(node, "namespace_name"); name != nil {
			prefix = strings.TrimPrefix(e.getText(name), resolver.Separator)
		}
		for i := uint(0); i < group.ChildCount(); i++ {
			child := group.Child(i)
			switch child.Kind() {
			case "namespace_use_clause", "namespace_use_group_clause":
				name, alias := e.useClauseParts(child)
				if name == "" {
					continue
				}
				canonical := name
				if prefix != "" {
					canonical = prefix + resolver.Separator + name
				}
				e.addImport(ctx, canonical, alias)
			}
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "namespace_use_clause" {
			continue
		}
		name, alias := e.useClauseParts(child)
		if name == "" {
			continue
		}
		e.addImport(ctx, strings.TrimPrefix(name, resolver.Separator), alias)
	}
}

// useClauseParts returns the imported name and the explicit alias of one use
// clause, if any.
func (e *phpExtractor) useClauseParts(clause *sitter.Node) (string, string) {
	var name, alias string
	for i := uint(0); i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		switch child.Kind() {
		case "name", "qualified_name", "namespace_name":
			if name == "" {
				name = e.getText(child)
			}
		case "namespace_aliasing_clause":
			if a := e.childOfKind(child, "name"); a != nil {
				alias = e.getText(a)
			}
		}
	}
	return name, alias
}

func (e *phpExtractor) addImport(ctx *fileContext, canonical, alias string) {
	if alias == "" {
		segments := strings.Split(canonical, resolver.Separator)
		alias = segments[len(segments)-1]
	}
	ctx.imports[alias] = canonical
}

func (e *phpExtractor) extractClassLike(node *sitter.Node, ctx *fileContext, kind DeclarationKind) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}
	bare := e.getText(name)
	if bare == "" || resolver.IsReserved(bare) {
		return
	}

	e.file.Declarations = append(e.file.Declarations, Declaration{
		Name: resolver.QualifyDeclaration(bare, ctx.namespace),
		Kind: kind,
	})

	if base := e.childOfKind(node, "base_clause"); base != nil {
		e.recordNames(base, ctx, ContextExtends)
	}
	if impl := e.childOfKind(node, "class_interface_clause"); impl != nil {
		e.recordNames(impl, ctx, ContextImplements)
	}
}

func (e *phpExtractor) extractTraitUse(node *sitter.Node, ctx *fileContext) {
	// Only the listed trait names count; conflict-resolution bodies
	// (insteadof / as) reference methods, not types.
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "name", "qualified_name", "relative_name":
			e.record(e.getText(child), ctx, ContextTraitUse)
		}
	}
}

func (e *phpExtractor) extractInstantiation(node *sitter.Node, ctx *fileContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "name", "qualified_name", "relative_name":
			e.record(e.getText(child), ctx, ContextInstantiation)
			return
		case "variable_name", "subscript_expression", "member_access_expression":
			// new $class and friends: dynamic, silently ignored.
			return
		}
	}
}

func (e *phpExtractor) extractStaticAccess(node *sitter.Node, ctx *fileContext) {
	scope := node.Child(0)
	if scope == nil {
		return
	}
	switch scope.Kind() {
	case "name", "qualified_name", "relative_name":
		e.record(e.getText(scope), ctx, ContextStaticAccess)
	}
}

func (e *phpExtractor) extractInstanceof(node *sitter.Node, ctx *fileContext) {
	isInstanceof := false
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "instanceof" {
			isInstanceof = true
			break
		}
	}
	if !isInstanceof {
		return
	}

	right := node.ChildByFieldName("right")
	if right == nil {
		return
	}
	switch right.Kind() {
	case "name", "qualified_name", "relative_name":
		e.record(e.getText(right), ctx, ContextInstanceof)
	}
}

func (e *phpExtractor) extractCatch(node *sitter.Node, ctx *fileContext) {
	types := node.ChildByFieldName("type")
	if types == nil {
		types = e.childOfKind(node, "type_list")
	}
	if types == nil {
		return
	}
	e.recordNames(types, ctx, ContextCatch)
}

// collectType unwraps nullable, union, intersection and DNF compositions
// and records every named member.
func (e *phpExtractor) collectType(node *sitter.Node, ctx *fileContext) {
	switch node.Kind() {
	case "optional_type", "union_type", "intersection_type", "disjunctive_normal_form_type":
		for i := uint(0); i < node.ChildCount(); i++ {
			e.collectType(node.Child(i), ctx)
		}
	case "named_type":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "name", "qualified_name", "relative_name":
				e.record(e.getText(child), ctx, ContextTypeHint)
			}
		}
	case "name", "qualified_name", "relative_name":
		e.record(e.getText(node), ctx, ContextTypeHint)
	case "primitive_type":
		// filtered anyway by the reserved check
	}
}

// recordNames records every named reference directly under node.
func (e *phpExtractor) recordNames(node *sitter.Node, ctx *fileContext, context RefContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "name", "qualified_name", "relative_name":
			e.record(e.getText(child), ctx, context)
		}
	}
}

func (e *phpExtractor) record(raw string, ctx *fileContext, context RefContext) {
	if raw == "" || resolver.IsReserved(raw) {
		return
	}
	resolved := resolver.Resolve(raw, ctx.namespace, ctx.imports)
	if resolved == "" || resolver.IsReserved(resolved) {
		return
	}
	if e.seen[resolved] {
		return
	}
	e.seen[resolved] = true
	e.file.References = append(e.file.References, Reference{
		Name:    resolved,
		Context: context,
	})
}

func (e *phpExtractor) childOfKind(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}

func (e *phpExtractor) getText(node *sitter.Node) string {
	return string(e.source[node.StartByte():node.EndByte()])
}
