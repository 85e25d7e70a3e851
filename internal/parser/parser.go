// # internal/parser/parser.go
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"classmap/internal/errors"
)

// Parser turns PHP source bytes into a per-file summary of declarations and
// type references. It owns the tree-sitter grammar; one Parser can parse any
// number of files, each with fresh extraction state.
type Parser struct {
	language    *sitter.Language
	versionHint string
}

func NewParser(versionHint string) *Parser {
	return &Parser{
		language:    sitter.NewLanguage(tree_sitter_php.LanguagePHP()),
		versionHint: versionHint,
	}
}

// VersionHint returns the PHP version this parser was configured for. The
// grammar itself parses all supported versions; the hint is carried for
// callers that record it.
func (p *Parser) VersionHint() string {
	return p.versionHint
}

// ParseFile parses one file and extracts its declarations and references.
// A tree that could not be produced, or that contains syntax errors, yields
// a PARSE_FAILED error; callers skip such files.
func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.language)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeParseFailed, "parse produced no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.New(errors.CodeParseFailed, "source contains syntax errors")
	}

	e := newPhpExtractor()
	return e.Extract(root, content, path)
}
