package parsers

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// treeSitterParser wraps a tree-sitter language.
type treeSitterParser struct {
	language *sitter.Language
	lang     string
}

// newTreeSitterParser creates a new tree-sitter parser for the given language.
func newTreeSitterParser(language *sitter.Language, lang string) *treeSitterParser {
	return &treeSitterParser{
		language: language,
		lang:     lang,
	}
}

// parse returns the syntax tree of source. The caller closes the tree.
func (p *treeSitterParser) parse(filePath string, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", p.lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s file: %s", p.lang, filePath)
	}
	return tree, nil
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// unquote strips the quotes of a string literal node.
func unquote(node *sitter.Node, source []byte) string {
	if frag := findChildByType(node, "string_fragment"); frag != nil {
		return extractNodeText(frag, source)
	}
	return strings.Trim(extractNodeText(node, source), "\"'`")
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all child nodes with the given type.
func findChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			results = append(results, child)
		}
	}
	return results
}

// hasChild reports whether node has a direct child of the given type,
// including anonymous tokens such as "async" or "?".
func hasChild(node *sitter.Node, nodeType string) bool {
	return findChildByType(node, nodeType) != nil
}

// field returns the child stored under a field name, falling back to the
// first child of one of the given types.
func field(node *sitter.Node, name string, fallback ...string) *sitter.Node {
	if node == nil {
		return nil
	}
	if child := node.ChildByFieldName(name); child != nil {
		return child
	}
	for _, kind := range fallback {
		if child := findChildByType(node, kind); child != nil {
			return child
		}
	}
	return nil
}

// namedChildren returns the named children of node, skipping comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	if node == nil {
		return out
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// precedingDocComment returns the /** */ comment directly before node,
// skipping decorators written between the comment and the node.
func precedingDocComment(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	prev := node.PrevSibling()
	for prev != nil && prev.Kind() == "decorator" {
		prev = prev.PrevSibling()
	}
	if prev == nil || prev.Kind() != "comment" {
		return ""
	}
	comment := extractNodeText(prev, source)
	if strings.HasPrefix(comment, "/**") {
		return comment
	}
	return ""
}
