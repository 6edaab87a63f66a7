package expr

// Modernize returns a new expression with the textual rewrites of spec
// §4.2: `typing.Dict[A,B]` -> `dict[A,B]` (and List/Set/Tuple analogues),
// `typing.Union[A,B,...]` -> `A | B | ...`, `typing.Optional[A]` -> `A |
// None`. Container nodes along the way are rebuilt, while leaves and other
// untouched subexpressions are the input's own values (shared, not copied),
// which keeps the operation simple and still satisfies
// the idempotence property required by spec §8 (modernize(modernize(e)) ==
// modernize(e)): a tree with no more typing.X[...] subscripts is a fixed
// point of this function.
func Modernize(e Expression) Expression {
	if e == nil {
		return nil
	}
	if sub, ok := e.(*Subscript); ok {
		if rewritten, ok2 := modernizeSubscript(sub); ok2 {
			return rewritten
		}
	}
	return modernizeChildren(e)
}

func modernizeChildren(e Expression) Expression {
	switch v := e.(type) {
	case *Attribute:
		if v.Base == nil {
			return v
		}
		return &Attribute{Base: Modernize(v.Base), Parts: v.Parts, Scope: v.Scope}
	case *Call:
		args := make([]Expression, len(v.Args))
		for i, a := range v.Args {
			args[i] = Modernize(a)
		}
		return &Call{Func: Modernize(v.Func), Args: args}
	case *Subscript:
		return &Subscript{Value: Modernize(v.Value), Slice: Modernize(v.Slice)}
	case *Tuple:
		elems := make([]Expression, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = Modernize(el)
		}
		return NewTuple(elems)
	case *List:
		elems := make([]Expression, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = Modernize(el)
		}
		return NewList(elems)
	case *BinOp:
		return &BinOp{Left: Modernize(v.Left), Right: Modernize(v.Right), Op: v.Op}
	case *Parameter:
		return &Parameter{
			Name:       v.Name,
			ParamKind:  v.ParamKind,
			Annotation: Modernize(v.Annotation),
			Default:    v.Default,
		}
	default:
		return e
	}
}

// typingAlias returns (X, true) for a flattened `typing.X` (or
// `typing_extensions.X`) attribute or a bare `X` name reference, since
// `from typing import Dict` makes the bare spelling valid too.
func typingAlias(e Expression) (string, bool) {
	switch v := e.(type) {
	case *Attribute:
		if !v.IsFlattened() || len(v.Parts) != 2 {
			return "", false
		}
		if v.Parts[0] != "typing" && v.Parts[0] != "typing_extensions" {
			return "", false
		}
		return v.Parts[1], true
	case *Name:
		return v.Value, true
	}
	return "", false
}

func modernizeSubscript(s *Subscript) (Expression, bool) {
	name, ok := typingAlias(s.Value)
	if !ok {
		return nil, false
	}
	switch name {
	case "Dict":
		return rewriteContainer("dict", s.Slice), true
	case "List":
		return rewriteContainer("list", s.Slice), true
	case "Set":
		return rewriteContainer("set", s.Slice), true
	case "Tuple":
		return rewriteContainer("tuple", s.Slice), true
	case "Optional":
		return &BinOp{Left: Modernize(s.Slice), Right: &Constant{Raw: "None"}, Op: "|"}, true
	case "Union":
		members := unionMembers(s.Slice)
		if len(members) == 0 {
			return nil, false
		}
		result := Modernize(members[0])
		for _, m := range members[1:] {
			result = &BinOp{Left: result, Right: Modernize(m), Op: "|"}
		}
		return result, true
	}
	return nil, false
}

func rewriteContainer(name string, slice Expression) Expression {
	return &Subscript{Value: &Name{Value: name}, Slice: Modernize(slice)}
}

// unionMembers flattens a Union[...] subscript slice: the walker builds an
// ExtSlice when there are 2+ comma-joined members (a Tuple is accepted too)
// and a bare expression when there is exactly one.
func unionMembers(slice Expression) []Expression {
	if x, ok := slice.(*ExtSlice); ok {
		return x.Dims
	}
	if t, ok := slice.(*Tuple); ok {
		return t.Elements
	}
	return []Expression{slice}
}
