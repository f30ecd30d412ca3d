package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/ts-extractor/internal/ast"
)

var annotationKinds = map[string]bool{
	"type_annotation":          true,
	"opting_type_annotation":   true,
	"omitting_type_annotation": true,
	"adding_type_annotation":   true,
}

func isAnnotation(n *sitter.Node) bool {
	return n != nil && annotationKinds[n.Kind()]
}

// annotationOf returns the type annotation child of n.
func annotationOf(n *sitter.Node) *sitter.Node {
	if t := n.ChildByFieldName("type"); t != nil {
		return t
	}
	for _, child := range namedChildren(n) {
		if isAnnotation(child) {
			return child
		}
	}
	return nil
}

// typeNode converts a type expression. Wrapper nodes such as annotations
// and constraints are unwrapped.
func (c *converter) typeNode(n *sitter.Node) *ast.TypeNode {
	if n == nil {
		return nil
	}
	text := c.text(n)

	switch n.Kind() {
	case "type_annotation", "opting_type_annotation", "omitting_type_annotation", "adding_type_annotation",
		"constraint", "default_type", "asserts_annotation", "type_predicate_annotation":
		inner := namedChildren(n)
		if len(inner) == 0 {
			return nil
		}
		return c.typeNode(inner[len(inner)-1])

	case "parenthesized_type", "readonly_type":
		inner := namedChildren(n)
		if len(inner) == 0 {
			return &ast.TypeNode{Kind: ast.TypeOther, Text: text}
		}
		t := c.typeNode(inner[len(inner)-1])
		if t != nil {
			t.Text = text
		}
		return t

	case "predefined_type", "this_type", "this":
		return &ast.TypeNode{Kind: ast.TypeBasic, Text: text}

	case "literal_type", "template_literal_type", "string", "number", "true", "false", "null", "undefined":
		return &ast.TypeNode{Kind: ast.TypeLiteral, Text: text}

	case "type_identifier", "nested_type_identifier":
		return &ast.TypeNode{Kind: ast.TypeReference, Text: text, Name: text}

	case "generic_type":
		nameNode := field(n, "name", "type_identifier", "nested_type_identifier")
		return &ast.TypeNode{
			Kind: ast.TypeReference,
			Text: text,
			Name: c.text(nameNode),
			Args: c.typeArguments(field(n, "type_arguments", "type_arguments")),
		}

	case "union_type":
		return &ast.TypeNode{Kind: ast.TypeUnion, Text: text, Args: c.flatten(n, "union_type")}

	case "intersection_type":
		return &ast.TypeNode{Kind: ast.TypeIntersection, Text: text, Args: c.flatten(n, "intersection_type")}

	case "array_type":
		return &ast.TypeNode{Kind: ast.TypeArray, Text: text, Args: c.typeList(namedChildren(n))}

	case "tuple_type":
		var elements []*sitter.Node
		for _, el := range namedChildren(n) {
			elements = append(elements, tupleElementType(el))
		}
		return &ast.TypeNode{Kind: ast.TypeTuple, Text: text, Args: c.typeList(elements)}

	case "type_query":
		var name string
		if inner := namedChildren(n); len(inner) > 0 {
			name = c.text(inner[0])
		}
		return &ast.TypeNode{Kind: ast.TypeQuery, Text: text, Name: name}

	case "function_type":
		return &ast.TypeNode{Kind: ast.TypeFunction, Text: text, Decl: c.functionType(n, ast.ShapeFunctionType)}

	case "constructor_type":
		return &ast.TypeNode{Kind: ast.TypeFunction, Text: text, Decl: c.functionType(n, ast.ShapeConstructorType)}

	case "object_type":
		if sig := mappedSignature(n); sig != nil {
			return &ast.TypeNode{Kind: ast.TypeMapped, Text: text, Decl: c.mappedType(n, sig)}
		}
		d := c.decl(ast.ShapeTypeLiteral, "", n, n)
		c.typeMembers(d, n)
		return &ast.TypeNode{Kind: ast.TypeObject, Text: text, Decl: d}

	case "type_predicate":
		// x is Foo
		return &ast.TypeNode{Kind: ast.TypeOther, Text: text, Args: c.typeList([]*sitter.Node{field(n, "type")})}
	}

	return &ast.TypeNode{Kind: ast.TypeOther, Text: text, Args: c.typeList(typeChildren(n))}
}

// typeChildren returns the children of n that are themselves types.
func typeChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range namedChildren(n) {
		kind := child.Kind()
		if kind == "identifier" || kind == "property_identifier" || strings.HasSuffix(kind, "_pattern") {
			continue
		}
		out = append(out, child)
	}
	return out
}

func tupleElementType(n *sitter.Node) *sitter.Node {
	switch n.Kind() {
	case "tuple_parameter", "optional_tuple_parameter":
		if t := annotationOf(n); t != nil {
			return t
		}
	case "optional_type", "rest_type":
		if inner := namedChildren(n); len(inner) > 0 {
			return inner[0]
		}
	}
	return n
}

func (c *converter) typeList(nodes []*sitter.Node) []*ast.TypeNode {
	var out []*ast.TypeNode
	for _, n := range nodes {
		if t := c.typeNode(n); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (c *converter) typeArguments(n *sitter.Node) []*ast.TypeNode {
	return c.typeList(namedChildren(n))
}

// flatten collects the operands of a left-nested union or intersection.
func (c *converter) flatten(n *sitter.Node, kind string) []*ast.TypeNode {
	var out []*ast.TypeNode
	for _, child := range namedChildren(n) {
		if child.Kind() == kind {
			out = append(out, c.flatten(child, kind)...)
			continue
		}
		if t := c.typeNode(child); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (c *converter) functionType(n *sitter.Node, shape ast.Shape) *ast.Declaration {
	d := c.decl(shape, "", n, n)
	c.typeParameters(d, n.ChildByFieldName("type_parameters"))
	c.parameters(d, field(n, "parameters", "formal_parameters"))
	rt := n.ChildByFieldName("return_type")
	if rt == nil {
		rt = n.ChildByFieldName("type")
	}
	d.SetType(c.typeNode(rt))
	return d
}

// mappedSignature returns the index signature of `{ [K in T]: V }`.
func mappedSignature(n *sitter.Node) *sitter.Node {
	members := namedChildren(n)
	if len(members) != 1 || members[0].Kind() != "index_signature" {
		return nil
	}
	if !hasChild(members[0], "mapped_type_clause") {
		return nil
	}
	return members[0]
}

func (c *converter) mappedType(n, sig *sitter.Node) *ast.Declaration {
	d := c.decl(ast.ShapeMappedType, "", n, n)
	d.Modifiers = c.modifiers(sig)

	clause := findChildByType(sig, "mapped_type_clause")
	tp := c.decl(ast.ShapeTypeParameter, c.text(field(clause, "name", "type_identifier")), clause, clause)
	constraint := clause.ChildByFieldName("type")
	if constraint == nil {
		if children := namedChildren(clause); len(children) > 1 {
			constraint = children[1]
		}
	}
	if t := c.typeNode(constraint); t != nil {
		tp.Constraint = tp.AdoptType(t)
	}
	d.AddTypeParameter(tp)

	ann := annotationOf(sig)
	d.Optional = ann != nil && ann.Kind() == "opting_type_annotation"
	d.SetType(c.typeNode(ann))
	return d
}
