package analyzer

import (
	"fmt"
	"strings"

	"github.com/agusespa/pysilent/internal/types"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// HandlerVisitor walks a syntax tree and classifies every exception
// handler it finds. Handlers nested inside other handlers, functions,
// comprehensions, or lambdas are all visited exactly once.
type HandlerVisitor struct {
	filePath    string
	src         []byte
	sourceLines []string
	issues      []types.Issue
}

func NewHandlerVisitor(filePath, content string) *HandlerVisitor {
	return &HandlerVisitor{
		filePath:    filePath,
		src:         []byte(content),
		sourceLines: strings.Split(content, "\n"),
	}
}

// Visit traverses the tree and returns the issues in document order,
// so within a file they come out ascending by line.
func (v *HandlerVisitor) Visit(tree *sitter.Tree) []types.Issue {
	v.walk(tree.RootNode())
	return v.issues
}

func (v *HandlerVisitor) walk(node *sitter.Node) {
	if isHandlerKind(node.Kind()) {
		v.visitHandler(node)
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil {
			v.walk(child)
		}
	}
}

// visitHandler evaluates every predicate against the handler node.
// The predicates are independent: a node yields up to one issue per
// predicate, though an empty body and a pass-only body can never
// co-occur.
func (v *HandlerVisitor) visitHandler(node *sitter.Node) {
	line := int(node.StartPosition().Row) + 1
	col := int(node.StartPosition().Column)

	if isBareExcept(node) {
		v.report(line, col, types.IssueBareExcept,
			"Bare 'except:' clause catches all exceptions")
	} else if name := broadExceptionName(node, v.src); name != "" && !hasRecoverySignal(node, v.src) {
		v.report(line, col, types.IssueBroadException,
			fmt.Sprintf("Broad '%s' catch with silent handling", name))
	}

	if isEmptyHandler(node) {
		v.report(line, col, types.IssueEmptyExcept,
			"Empty except block - exceptions are silently ignored")
	} else if isPassOnlyHandler(node) {
		v.report(line, col, types.IssuePassOnly,
			"Exception handler only contains 'pass' statement")
	}
}

func (v *HandlerVisitor) report(line, col int, issueType types.IssueType, description string) {
	v.issues = append(v.issues, types.Issue{
		FilePath:    v.filePath,
		LineNumber:  line,
		Column:      col,
		IssueType:   issueType,
		Description: description,
		CodeSnippet: extractSnippet(v.sourceLines, line),
	})
}
