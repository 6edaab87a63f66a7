package pyast

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyapi/expr"
)

// buildExpr converts one tree-sitter expression node into an expr.Expression,
// generalizing the other_examples Python parser's leaf-level
// `content[node.StartByte():node.EndByte()]` extraction into a full
// recursive tree, since the object model (spec §4.2) needs structured
// expressions, not just rendered strings.
func (s *state) buildExpr(node *sitter.Node) expr.Expression {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "identifier":
		return &expr.Name{Value: node.Content(s.src), Scope: s.scope()}

	case "attribute":
		return s.buildAttribute(node)

	case "call":
		return s.buildCall(node)

	case "keyword_argument":
		name := node.ChildByFieldName("name")
		value := node.ChildByFieldName("value")
		return &expr.Keyword{Name: s.text(name), Value: s.buildExpr(value)}

	case "list_splat":
		return &expr.VarPositional{Value: s.buildExpr(node.NamedChild(0))}

	case "dictionary_splat":
		return &expr.VarKeyword{Value: s.buildExpr(node.NamedChild(0))}

	case "string", "concatenated_string":
		return s.buildString(node)

	case "integer", "float", "true", "false", "none", "ellipsis":
		return &expr.Constant{Raw: node.Content(s.src)}

	case "list":
		return expr.NewList(s.buildChildren(node))

	case "tuple":
		return expr.NewTuple(s.buildChildren(node))

	case "set":
		return expr.NewSet(s.buildChildren(node))

	case "dictionary":
		return s.buildDict(node)

	case "list_comprehension":
		return &expr.ListComp{Element: s.comprehensionElement(node), Comprehensions: s.comprehensionClauses(node)}
	case "set_comprehension":
		return &expr.SetComp{Element: s.comprehensionElement(node), Comprehensions: s.comprehensionClauses(node)}
	case "generator_expression":
		return &expr.GeneratorExp{Element: s.comprehensionElement(node), Comprehensions: s.comprehensionClauses(node)}
	case "dictionary_comprehension":
		return s.buildDictComp(node)

	case "subscript":
		return s.buildSubscript(node)

	case "slice":
		return s.buildSlice(node)

	case "conditional_expression":
		return s.buildConditional(node)

	case "binary_operator":
		left := node.ChildByFieldName("left")
		op := node.ChildByFieldName("operator")
		right := node.ChildByFieldName("right")
		return &expr.BinOp{Left: s.buildExpr(left), Op: s.text(op), Right: s.buildExpr(right)}

	case "boolean_operator":
		left := node.ChildByFieldName("left")
		op := node.ChildByFieldName("operator")
		right := node.ChildByFieldName("right")
		return &expr.BoolOp{Op: s.text(op), Values: []expr.Expression{s.buildExpr(left), s.buildExpr(right)}}

	case "comparison_operator":
		return s.buildCompare(node)

	case "not_operator":
		return &expr.UnaryOp{Op: "not ", Operand: s.buildExpr(node.ChildByFieldName("argument"))}

	case "unary_operator":
		op := node.ChildByFieldName("operator")
		operand := node.ChildByFieldName("argument")
		return &expr.UnaryOp{Op: s.text(op), Operand: s.buildExpr(operand)}

	case "yield":
		return s.buildYield(node)

	case "named_expression":
		return &expr.NamedExpr{
			Target: s.buildExpr(node.ChildByFieldName("name")),
			Value:  s.buildExpr(node.ChildByFieldName("value")),
		}

	case "lambda":
		return s.buildLambda(node)

	case "parenthesized_expression":
		if node.NamedChildCount() > 0 {
			return s.buildExpr(node.NamedChild(0))
		}
		return &expr.Constant{Raw: "()"}

	default:
		// Best-effort fallback for grammar shapes not explicitly modeled
		// (e.g. await_expression, match patterns used as defaults): keep the
		// literal source text rather than drop the expression, matching
		// spec §4.3's "failure semantics" preference for degraded-but-present
		// data over silent loss.
		return &expr.Constant{Raw: node.Content(s.src)}
	}
}

func (s *state) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(s.src)
}

func (s *state) buildChildren(node *sitter.Node) []expr.Expression {
	var out []expr.Expression
	for i := 0; i < int(node.NamedChildCount()); i++ {
		out = append(out, s.buildExpr(node.NamedChild(i)))
	}
	return out
}

// buildAttribute flattens a.b.c into a single Attribute with Parts, per spec
// §4.2; only when the base object is itself a non-Name expression does Base
// hold that sub-expression.
func (s *state) buildAttribute(node *sitter.Node) expr.Expression {
	object := node.ChildByFieldName("object")
	attr := node.ChildByFieldName("attribute")
	if object == nil || attr == nil {
		return &expr.Constant{Raw: node.Content(s.src)}
	}
	name := s.text(attr)
	if object.Type() == "identifier" {
		return &expr.Attribute{Parts: []string{object.Content(s.src), name}, Scope: s.scope()}
	}
	if object.Type() == "attribute" {
		if inner, ok := s.buildAttribute(object).(*expr.Attribute); ok && inner.Base == nil {
			return &expr.Attribute{Parts: append(append([]string{}, inner.Parts...), name), Scope: s.scope()}
		}
	}
	return &expr.Attribute{Base: s.buildExpr(object), Parts: []string{name}}
}

func (s *state) buildCall(node *sitter.Node) expr.Expression {
	fn := node.ChildByFieldName("function")
	argList := node.ChildByFieldName("arguments")
	call := &expr.Call{Func: s.buildExpr(fn)}
	if argList != nil {
		for i := 0; i < int(argList.NamedChildCount()); i++ {
			call.Args = append(call.Args, s.buildExpr(argList.NamedChild(i)))
		}
	}
	return call
}

func (s *state) buildString(node *sitter.Node) expr.Expression {
	if node.Type() == "concatenated_string" {
		return &expr.JoinedStr{Parts: s.buildChildren(node)}
	}
	hasInterp := false
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "interpolation" {
			hasInterp = true
			break
		}
	}
	if !hasInterp {
		return &expr.Constant{Raw: node.Content(s.src)}
	}
	var values []expr.Expression
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "interpolation" && child.NamedChildCount() > 0 {
			values = append(values, s.buildExpr(child.NamedChild(0)))
		}
	}
	return &expr.FString{Raw: node.Content(s.src), Values: values}
}

func (s *state) buildDict(node *sitter.Node) expr.Expression {
	d := &expr.Dict{}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		pair := node.NamedChild(i)
		switch pair.Type() {
		case "pair":
			key := pair.ChildByFieldName("key")
			value := pair.ChildByFieldName("value")
			d.Entries = append(d.Entries, expr.DictEntry{Key: s.buildExpr(key), Value: s.buildExpr(value)})
		case "dictionary_splat":
			d.Entries = append(d.Entries, expr.DictEntry{Key: nil, Value: s.buildExpr(pair.NamedChild(0))})
		}
	}
	return d
}

func (s *state) comprehensionElement(node *sitter.Node) expr.Expression {
	if node.NamedChildCount() == 0 {
		return nil
	}
	return s.buildExpr(node.NamedChild(0))
}

func (s *state) comprehensionClauses(node *sitter.Node) []expr.Comprehension {
	var clauses []expr.Comprehension
	for i := 1; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "for_in_clause":
			left := child.ChildByFieldName("left")
			right := child.ChildByFieldName("right")
			isAsync := false
			for j := 0; j < int(child.ChildCount()); j++ {
				if child.Child(j).Type() == "async" {
					isAsync = true
				}
			}
			clauses = append(clauses, expr.Comprehension{
				Target:  s.buildExpr(left),
				Iter:    s.buildExpr(right),
				IsAsync: isAsync,
			})
		case "if_clause":
			if len(clauses) == 0 {
				continue
			}
			cond := child.NamedChild(0)
			last := &clauses[len(clauses)-1]
			last.Ifs = append(last.Ifs, s.buildExpr(cond))
		}
	}
	return clauses
}

func (s *state) buildDictComp(node *sitter.Node) expr.Expression {
	var key, value expr.Expression
	if node.NamedChildCount() > 0 {
		pair := node.NamedChild(0)
		if pair.Type() == "pair" {
			key = s.buildExpr(pair.ChildByFieldName("key"))
			value = s.buildExpr(pair.ChildByFieldName("value"))
		}
	}
	return &expr.DictComp{Key: key, Value: value, Comprehensions: s.comprehensionClauses(node)}
}

func (s *state) buildSubscript(node *sitter.Node) expr.Expression {
	value := node.ChildByFieldName("value")
	var subs []expr.Expression
	// tree-sitter-python repeats the "subscript" field for each comma-joined
	// index; a plain NamedChild walk after the value node covers all of them.
	for i := 1; i < int(node.NamedChildCount()); i++ {
		subs = append(subs, s.buildExpr(node.NamedChild(i)))
	}
	if len(subs) == 1 {
		return &expr.Subscript{Value: s.buildExpr(value), Slice: subs[0]}
	}
	return &expr.Subscript{Value: s.buildExpr(value), Slice: &expr.ExtSlice{Dims: subs}}
}

func (s *state) buildSlice(node *sitter.Node) expr.Expression {
	var parts []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.IsNamed() {
			parts = append(parts, c)
		}
	}
	// Positional: up to three named children are start/stop/step, in the
	// order they appear around the ':' separators; tree-sitter-python gives
	// no field names here, so position is the only signal.
	sl := &expr.Slice{}
	if len(parts) > 0 {
		sl.Lower = s.buildExpr(parts[0])
	}
	if len(parts) > 1 {
		sl.Upper = s.buildExpr(parts[1])
	}
	if len(parts) > 2 {
		sl.Step = s.buildExpr(parts[2])
	}
	return sl
}

func (s *state) buildConditional(node *sitter.Node) expr.Expression {
	// conditional_expression: <body> if <condition> else <alternative>
	body := node.ChildByFieldName("consequence")
	test := node.ChildByFieldName("condition")
	alt := node.ChildByFieldName("alternative")
	if body == nil && node.NamedChildCount() == 3 {
		body, test, alt = node.NamedChild(0), node.NamedChild(1), node.NamedChild(2)
	}
	return &expr.IfExp{Test: s.buildExpr(test), Body: s.buildExpr(body), OrElse: s.buildExpr(alt)}
}

func (s *state) buildCompare(node *sitter.Node) expr.Expression {
	var operands []expr.Expression
	var ops []string
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.IsNamed() {
			operands = append(operands, s.buildExpr(c))
		} else {
			txt := strings.TrimSpace(c.Content(s.src))
			if txt != "" {
				ops = append(ops, txt)
			}
		}
	}
	if len(operands) == 0 {
		return &expr.Constant{Raw: node.Content(s.src)}
	}
	return &expr.Compare{Left: operands[0], Ops: ops, Comparators: operands[1:]}
}

func (s *state) buildYield(node *sitter.Node) expr.Expression {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.Type() == "from" {
			if node.NamedChildCount() > 0 {
				return &expr.YieldFrom{Value: s.buildExpr(node.NamedChild(node.NamedChildCount() - 1))}
			}
		}
	}
	if node.NamedChildCount() == 0 {
		return &expr.Yield{}
	}
	return &expr.Yield{Value: s.buildExpr(node.NamedChild(0))}
}

func (s *state) buildLambda(node *sitter.Node) expr.Expression {
	params := node.ChildByFieldName("parameters")
	body := node.ChildByFieldName("body")
	l := &expr.Lambda{Body: s.buildExpr(body)}
	if params != nil {
		l.Parameters, _ = s.buildParameters(params)
	}
	return l
}

// renderedInt parses text, after trimming surrounding whitespace, as a
// decimal integer and reports whether that succeeded.
func renderedInt(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	return n, err == nil
}
