package analyzer

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// PythonParser wraps a tree-sitter parser configured for Python.
type PythonParser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

func NewPythonParser() (*PythonParser, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	parser := sitter.NewParser()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language for parser: %w", err)
	}
	return &PythonParser{
		parser:   parser,
		language: lang,
	}, nil
}

func (pp *PythonParser) Language() string {
	return "Python"
}

func (pp *PythonParser) SupportedExtensions() []string {
	return []string{".py", ".pyw"}
}

// ParseFile parses Python source and returns the syntax tree. A tree
// containing syntax errors is treated as a parse failure, matching the
// all-or-nothing behavior expected by per-file fault isolation. The
// caller owns the returned tree and must Close it.
func (pp *PythonParser) ParseFile(filePath, content string) (*sitter.Tree, error) {
	tree := pp.parser.Parse([]byte(content), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s: tree-sitter returned nil", filePath)
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, fmt.Errorf("source contains syntax errors")
	}
	return tree, nil
}
