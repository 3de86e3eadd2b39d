package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Method names whose invocation counts as a logging recovery signal.
var recoveryMethods = map[string]bool{
	"debug":     true,
	"info":      true,
	"warning":   true,
	"error":     true,
	"critical":  true,
	"exception": true,
}

func isHandlerKind(kind string) bool {
	return kind == "except_clause" || kind == "except_group_clause"
}

// handlerBody returns the block holding the handler's statements,
// or nil when the parse produced no body.
func handlerBody(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() == "block" {
			return child
		}
	}
	return nil
}

// handlerFilter returns the declared exception-type expression, with
// any "X as name" alias pattern unwrapped to X. Nil means a bare
// except clause.
func handlerFilter(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "block", "comment":
			continue
		case "as_pattern":
			return child.NamedChild(0)
		default:
			return child
		}
	}
	return nil
}

func isBareExcept(node *sitter.Node) bool {
	return handlerFilter(node) == nil
}

// broadExceptionName returns "Exception" or "BaseException" when the
// handler declares one of the catch-all categories, "" otherwise.
// Tuple filters like (ValueError, KeyError) are never broad, even if
// they mention Exception.
func broadExceptionName(node *sitter.Node, src []byte) string {
	filter := handlerFilter(node)
	if filter == nil || filter.Kind() != "identifier" {
		return ""
	}
	name := filter.Utf8Text(src)
	if name == "Exception" || name == "BaseException" {
		return name
	}
	return ""
}

// bodyStatements returns the handler body statements, ignoring
// comments.
func bodyStatements(node *sitter.Node) []*sitter.Node {
	body := handlerBody(node)
	if body == nil {
		return nil
	}
	var stmts []*sitter.Node
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		stmts = append(stmts, child)
	}
	return stmts
}

func isEmptyHandler(node *sitter.Node) bool {
	return len(bodyStatements(node)) == 0
}

func isPassOnlyHandler(node *sitter.Node) bool {
	stmts := bodyStatements(node)
	return len(stmts) == 1 && stmts[0].Kind() == "pass_statement"
}

// hasRecoverySignal reports whether the handler body contains any
// evidence the error was observably handled: a call to a logging
// method on any receiver, a print call, a re-raise, or a return. The
// scan covers the entire body subtree, crossing into comprehensions,
// lambdas, and functions defined inline within the handler.
func hasRecoverySignal(node *sitter.Node, src []byte) bool {
	body := handlerBody(node)
	if body == nil {
		return false
	}
	return subtreeHasSignal(body, src)
}

func subtreeHasSignal(node *sitter.Node, src []byte) bool {
	switch node.Kind() {
	case "raise_statement", "return_statement":
		return true
	case "call":
		if fn := node.ChildByFieldName("function"); fn != nil {
			switch fn.Kind() {
			case "attribute":
				attr := fn.ChildByFieldName("attribute")
				if attr != nil && recoveryMethods[attr.Utf8Text(src)] {
					return true
				}
			case "identifier":
				if fn.Utf8Text(src) == "print" {
					return true
				}
			}
		}
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && subtreeHasSignal(child, src) {
			return true
		}
	}
	return false
}
