package expr

import "strings"

// Name is a bare identifier reference. Scope is the entity whose lexical
// context the name was found in; canonical_path resolution (looking up
// Scope's import map, else joining Scope's own path and the name) is
// implemented by CanonicalPath below, purely through the Scope interface, so
// this package stays free of alias-resolution policy.
type Name struct {
	Value string
	Scope Scope
}

func (n *Name) Kind() Kind   { return KindName }
func (n *Name) String() string { return n.Value }
func (n *Name) Equal(o Expression) bool {
	other, ok := o.(*Name)
	return ok && other.Value == n.Value
}

// CanonicalPath resolves this name through its scope's import map, falling
// back to scope.path + "." + name for locally-declared names.
func (n *Name) CanonicalPath() string {
	if n.Scope == nil {
		return n.Value
	}
	if target, ok := n.Scope.ResolveImport(n.Value); ok {
		return target
	}
	return n.Scope.ScopeCanonicalPath() + "." + n.Value
}

// Attribute is a dotted access. Per spec §4.2, when every component is a
// plain name it is constructed flattened (Parts holds ["a","b","c"] for
// `a.b.c`, and String() joins them with '.'); only when the base is itself a
// non-Name expression (a call, a subscript, ...) does Base hold that
// sub-expression and Parts hold the trailing attribute chain.
type Attribute struct {
	Base  Expression // nil when fully flattened
	Parts []string
	Scope Scope // only meaningful when Base == nil
}

func (a *Attribute) Kind() Kind { return KindAttribute }
func (a *Attribute) String() string {
	if a.Base == nil {
		return strings.Join(a.Parts, ".")
	}
	return a.Base.String() + "." + strings.Join(a.Parts, ".")
}
func (a *Attribute) Equal(o Expression) bool {
	other, ok := o.(*Attribute)
	if !ok || len(a.Parts) != len(other.Parts) {
		return false
	}
	for i := range a.Parts {
		if a.Parts[i] != other.Parts[i] {
			return false
		}
	}
	if (a.Base == nil) != (other.Base == nil) {
		return false
	}
	if a.Base != nil {
		return a.Base.Equal(other.Base)
	}
	return true
}

// IsFlattened reports whether this attribute chain is a plain dotted name.
func (a *Attribute) IsFlattened() bool { return a.Base == nil }

// Call is a function/constructor invocation.
type Call struct {
	Func Expression
	Args []Expression // positional args and Keyword/VarPositional/VarKeyword nodes, in source order
}

func (c *Call) Kind() Kind   { return KindCall }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Func.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (c *Call) Equal(o Expression) bool {
	other, ok := o.(*Call)
	if !ok || !c.Func.Equal(other.Func) || len(c.Args) != len(other.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Keyword is a `name=value` call argument.
type Keyword struct {
	Name  string
	Value Expression
}

func (k *Keyword) Kind() Kind      { return KindKeyword }
func (k *Keyword) String() string  { return k.Name + "=" + k.Value.String() }
func (k *Keyword) Equal(o Expression) bool {
	other, ok := o.(*Keyword)
	return ok && other.Name == k.Name && k.Value.Equal(other.Value)
}

// VarPositional is a `*args`-style call argument or parameter default
// placeholder.
type VarPositional struct{ Value Expression }

func (v *VarPositional) Kind() Kind     { return KindVarPositional }
func (v *VarPositional) String() string { return "*" + v.Value.String() }
func (v *VarPositional) Equal(o Expression) bool {
	other, ok := o.(*VarPositional)
	return ok && v.Value.Equal(other.Value)
}

// VarKeyword is a `**kwargs`-style call argument or parameter default
// placeholder.
type VarKeyword struct{ Value Expression }

func (v *VarKeyword) Kind() Kind     { return KindVarKeyword }
func (v *VarKeyword) String() string { return "**" + v.Value.String() }
func (v *VarKeyword) Equal(o Expression) bool {
	other, ok := o.(*VarKeyword)
	return ok && v.Value.Equal(other.Value)
}

// Constant is a literal: number, string, bool, None, ...
type Constant struct {
	Raw string // source-level rendering, e.g. "42", "\"x\"", "None"
}

func (c *Constant) Kind() Kind     { return KindConstant }
func (c *Constant) String() string { return c.Raw }
func (c *Constant) Equal(o Expression) bool {
	other, ok := o.(*Constant)
	return ok && other.Raw == c.Raw
}

// FString is a single formatted-string literal, e.g. f"{x!r:>10}".
type FString struct {
	Raw    string
	Values []Expression // interpolated sub-expressions, in order
}

func (f *FString) Kind() Kind     { return KindFString }
func (f *FString) String() string { return f.Raw }
func (f *FString) Equal(o Expression) bool {
	other, ok := o.(*FString)
	return ok && other.Raw == f.Raw
}

// JoinedStr is implicit string-literal concatenation, e.g. "a" "b".
type JoinedStr struct{ Parts []Expression }

func (j *JoinedStr) Kind() Kind { return KindJoinedStr }
func (j *JoinedStr) String() string {
	parts := make([]string, len(j.Parts))
	for i, p := range j.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
func (j *JoinedStr) Equal(o Expression) bool {
	other, ok := o.(*JoinedStr)
	if !ok || len(j.Parts) != len(other.Parts) {
		return false
	}
	for i := range j.Parts {
		if !j.Parts[i].Equal(other.Parts[i]) {
			return false
		}
	}
	return true
}

// Lambda is an anonymous function expression.
type Lambda struct {
	Parameters []*Parameter
	Body       Expression
}

func (l *Lambda) Kind() Kind { return KindLambda }
func (l *Lambda) String() string {
	parts := make([]string, len(l.Parameters))
	for i, p := range l.Parameters {
		parts[i] = p.String()
	}
	return "lambda " + strings.Join(parts, ", ") + ": " + l.Body.String()
}
func (l *Lambda) Equal(o Expression) bool {
	other, ok := o.(*Lambda)
	if !ok || len(l.Parameters) != len(other.Parameters) || !l.Body.Equal(other.Body) {
		return false
	}
	for i := range l.Parameters {
		if !l.Parameters[i].Equal(other.Parameters[i]) {
			return false
		}
	}
	return true
}

// sequenceLiteral factors the shared shape of List/Tuple/Set.
type sequenceLiteral struct {
	Elements []Expression
	open, close string
}

func (s *sequenceLiteral) String() string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = e.String()
	}
	return s.open + strings.Join(parts, ", ") + s.close
}

func sequenceEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

type List struct{ sequenceLiteral }

func NewList(elements []Expression) *List {
	return &List{sequenceLiteral{Elements: elements, open: "[", close: "]"}}
}
func (l *List) Kind() Kind { return KindList }
func (l *List) Equal(o Expression) bool {
	other, ok := o.(*List)
	return ok && sequenceEqual(l.Elements, other.Elements)
}

type Tuple struct{ sequenceLiteral }

func NewTuple(elements []Expression) *Tuple {
	return &Tuple{sequenceLiteral{Elements: elements, open: "(", close: ")"}}
}
func (t *Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) Equal(o Expression) bool {
	other, ok := o.(*Tuple)
	return ok && sequenceEqual(t.Elements, other.Elements)
}

type Set struct{ sequenceLiteral }

func NewSet(elements []Expression) *Set {
	return &Set{sequenceLiteral{Elements: elements, open: "{", close: "}"}}
}
func (s *Set) Kind() Kind { return KindSet }
func (s *Set) Equal(o Expression) bool {
	other, ok := o.(*Set)
	return ok && sequenceEqual(s.Elements, other.Elements)
}

// DictEntry is a single `key: value` pair; Key is nil for a `**other`
// unpacking entry.
type DictEntry struct {
	Key   Expression
	Value Expression
}

type Dict struct{ Entries []DictEntry }

func (d *Dict) Kind() Kind { return KindDict }
func (d *Dict) String() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		if e.Key == nil {
			parts[i] = "**" + e.Value.String()
			continue
		}
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (d *Dict) Equal(o Expression) bool {
	other, ok := o.(*Dict)
	if !ok || len(d.Entries) != len(other.Entries) {
		return false
	}
	for i := range d.Entries {
		a, b := d.Entries[i], other.Entries[i]
		if (a.Key == nil) != (b.Key == nil) {
			return false
		}
		if a.Key != nil && !a.Key.Equal(b.Key) {
			return false
		}
		if !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

// Comprehension is a single `for ... in ... [if ...]*` clause shared by all
// four comprehension kinds.
type Comprehension struct {
	Target Expression
	Iter   Expression
	Ifs    []Expression
	IsAsync bool
}

func (c Comprehension) String() string {
	var b strings.Builder
	if c.IsAsync {
		b.WriteString("async ")
	}
	b.WriteString("for ")
	b.WriteString(c.Target.String())
	b.WriteString(" in ")
	b.WriteString(c.Iter.String())
	for _, cond := range c.Ifs {
		b.WriteString(" if ")
		b.WriteString(cond.String())
	}
	return b.String()
}

func comprehensionsEqual(a, b []Comprehension) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Target.Equal(b[i].Target) || !a[i].Iter.Equal(b[i].Iter) || a[i].IsAsync != b[i].IsAsync {
			return false
		}
		if !sequenceEqual(a[i].Ifs, b[i].Ifs) {
			return false
		}
	}
	return true
}

type ListComp struct {
	Element       Expression
	Comprehensions []Comprehension
}

func (l *ListComp) Kind() Kind { return KindListComp }
func (l *ListComp) String() string {
	return "[" + comprehensionBody(l.Element, nil, l.Comprehensions) + "]"
}
func (l *ListComp) Equal(o Expression) bool {
	other, ok := o.(*ListComp)
	return ok && l.Element.Equal(other.Element) && comprehensionsEqual(l.Comprehensions, other.Comprehensions)
}

type SetComp struct {
	Element        Expression
	Comprehensions []Comprehension
}

func (s *SetComp) Kind() Kind { return KindSetComp }
func (s *SetComp) String() string {
	return "{" + comprehensionBody(s.Element, nil, s.Comprehensions) + "}"
}
func (s *SetComp) Equal(o Expression) bool {
	other, ok := o.(*SetComp)
	return ok && s.Element.Equal(other.Element) && comprehensionsEqual(s.Comprehensions, other.Comprehensions)
}

type GeneratorExp struct {
	Element        Expression
	Comprehensions []Comprehension
}

func (g *GeneratorExp) Kind() Kind { return KindGeneratorExp }
func (g *GeneratorExp) String() string {
	return "(" + comprehensionBody(g.Element, nil, g.Comprehensions) + ")"
}
func (g *GeneratorExp) Equal(o Expression) bool {
	other, ok := o.(*GeneratorExp)
	return ok && g.Element.Equal(other.Element) && comprehensionsEqual(g.Comprehensions, other.Comprehensions)
}

type DictComp struct {
	Key, Value     Expression
	Comprehensions []Comprehension
}

func (d *DictComp) Kind() Kind { return KindDictComp }
func (d *DictComp) String() string {
	head := d.Key.String() + ": " + d.Value.String()
	return "{" + comprehensionBody(nil, &head, d.Comprehensions) + "}"
}
func (d *DictComp) Equal(o Expression) bool {
	other, ok := o.(*DictComp)
	return ok && d.Key.Equal(other.Key) && d.Value.Equal(other.Value) && comprehensionsEqual(d.Comprehensions, other.Comprehensions)
}

func comprehensionBody(element Expression, rendered *string, comps []Comprehension) string {
	var head string
	if rendered != nil {
		head = *rendered
	} else {
		head = element.String()
	}
	parts := make([]string, len(comps))
	for i, c := range comps {
		parts[i] = c.String()
	}
	return head + " " + strings.Join(parts, " ")
}

// Subscript is `value[slice]`.
type Subscript struct {
	Value Expression
	Slice Expression
}

func (s *Subscript) Kind() Kind     { return KindSubscript }
func (s *Subscript) String() string { return s.Value.String() + "[" + s.Slice.String() + "]" }
func (s *Subscript) Equal(o Expression) bool {
	other, ok := o.(*Subscript)
	return ok && s.Value.Equal(other.Value) && s.Slice.Equal(other.Slice)
}

// Slice is `lower:upper:step`, each part optional.
type Slice struct{ Lower, Upper, Step Expression }

func (s *Slice) Kind() Kind { return KindSlice }
func (s *Slice) String() string {
	render := func(e Expression) string {
		if e == nil {
			return ""
		}
		return e.String()
	}
	out := render(s.Lower) + ":" + render(s.Upper)
	if s.Step != nil {
		out += ":" + render(s.Step)
	}
	return out
}
func (s *Slice) Equal(o Expression) bool {
	other, ok := o.(*Slice)
	if !ok {
		return false
	}
	eq := func(a, b Expression) bool {
		if (a == nil) != (b == nil) {
			return false
		}
		return a == nil || a.Equal(b)
	}
	return eq(s.Lower, other.Lower) && eq(s.Upper, other.Upper) && eq(s.Step, other.Step)
}

// ExtSlice is a tuple of Slice/index expressions, e.g. `a[1:2, 3]`.
type ExtSlice struct{ Dims []Expression }

func (e *ExtSlice) Kind() Kind { return KindExtSlice }
func (e *ExtSlice) String() string {
	parts := make([]string, len(e.Dims))
	for i, d := range e.Dims {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
func (e *ExtSlice) Equal(o Expression) bool {
	other, ok := o.(*ExtSlice)
	return ok && sequenceEqual(e.Dims, other.Dims)
}

// IfExp is the ternary `body if test else orelse`.
type IfExp struct{ Test, Body, OrElse Expression }

func (i *IfExp) Kind() Kind { return KindIfExp }
func (i *IfExp) String() string {
	return i.Body.String() + " if " + i.Test.String() + " else " + i.OrElse.String()
}
func (i *IfExp) Equal(o Expression) bool {
	other, ok := o.(*IfExp)
	return ok && i.Test.Equal(other.Test) && i.Body.Equal(other.Body) && i.OrElse.Equal(other.OrElse)
}

type BinOp struct {
	Left, Right Expression
	Op          string
}

func (b *BinOp) Kind() Kind     { return KindBinOp }
func (b *BinOp) String() string { return b.Left.String() + " " + b.Op + " " + b.Right.String() }
func (b *BinOp) Equal(o Expression) bool {
	other, ok := o.(*BinOp)
	return ok && b.Op == other.Op && b.Left.Equal(other.Left) && b.Right.Equal(other.Right)
}

type BoolOp struct {
	Op     string // "and" | "or"
	Values []Expression
}

func (b *BoolOp) Kind() Kind { return KindBoolOp }
func (b *BoolOp) String() string {
	parts := make([]string, len(b.Values))
	for i, v := range b.Values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " "+b.Op+" ")
}
func (b *BoolOp) Equal(o Expression) bool {
	other, ok := o.(*BoolOp)
	return ok && b.Op == other.Op && sequenceEqual(b.Values, other.Values)
}

type Compare struct {
	Left Expression
	Ops  []string
	Comparators []Expression
}

func (c *Compare) Kind() Kind { return KindCompare }
func (c *Compare) String() string {
	var b strings.Builder
	b.WriteString(c.Left.String())
	for i, op := range c.Ops {
		b.WriteString(" ")
		b.WriteString(op)
		b.WriteString(" ")
		b.WriteString(c.Comparators[i].String())
	}
	return b.String()
}
func (c *Compare) Equal(o Expression) bool {
	other, ok := o.(*Compare)
	if !ok || !c.Left.Equal(other.Left) || len(c.Ops) != len(other.Ops) {
		return false
	}
	for i := range c.Ops {
		if c.Ops[i] != other.Ops[i] {
			return false
		}
	}
	return sequenceEqual(c.Comparators, other.Comparators)
}

type UnaryOp struct {
	Op      string
	Operand Expression
}

func (u *UnaryOp) Kind() Kind     { return KindUnaryOp }
func (u *UnaryOp) String() string { return u.Op + u.Operand.String() }
func (u *UnaryOp) Equal(o Expression) bool {
	other, ok := o.(*UnaryOp)
	return ok && u.Op == other.Op && u.Operand.Equal(other.Operand)
}

type Yield struct{ Value Expression } // Value is nil for a bare `yield`

func (y *Yield) Kind() Kind { return KindYield }
func (y *Yield) String() string {
	if y.Value == nil {
		return "yield"
	}
	return "yield " + y.Value.String()
}
func (y *Yield) Equal(o Expression) bool {
	other, ok := o.(*Yield)
	if !ok {
		return false
	}
	if (y.Value == nil) != (other.Value == nil) {
		return false
	}
	return y.Value == nil || y.Value.Equal(other.Value)
}

type YieldFrom struct{ Value Expression }

func (y *YieldFrom) Kind() Kind     { return KindYieldFrom }
func (y *YieldFrom) String() string { return "yield from " + y.Value.String() }
func (y *YieldFrom) Equal(o Expression) bool {
	other, ok := o.(*YieldFrom)
	return ok && y.Value.Equal(other.Value)
}

// NamedExpr is the walrus operator `target := value`.
type NamedExpr struct{ Target, Value Expression }

func (n *NamedExpr) Kind() Kind     { return KindNamedExpr }
func (n *NamedExpr) String() string { return n.Target.String() + " := " + n.Value.String() }
func (n *NamedExpr) Equal(o Expression) bool {
	other, ok := o.(*NamedExpr)
	return ok && n.Target.Equal(other.Target) && n.Value.Equal(other.Value)
}

// ParameterKind enumerates the five parameter kinds of spec §4.3.
type ParameterKind string

const (
	ParamPositionalOnly    ParameterKind = "positional-only"
	ParamPositionalOrKeyword ParameterKind = "positional-or-keyword"
	ParamVarPositional     ParameterKind = "variadic-positional"
	ParamKeywordOnly       ParameterKind = "keyword-only"
	ParamVarKeyword        ParameterKind = "variadic-keyword"
)

// Parameter is a function parameter, modeled as an expression variant so it
// can appear inside a Lambda body and be rendered uniformly.
type Parameter struct {
	Name       string
	ParamKind  ParameterKind
	Annotation Expression // nil if unannotated
	Default    Expression // nil if required
}

func (p *Parameter) Kind() Kind { return KindParameter }
func (p *Parameter) String() string {
	var b strings.Builder
	switch p.ParamKind {
	case ParamVarPositional:
		b.WriteString("*")
	case ParamVarKeyword:
		b.WriteString("**")
	}
	b.WriteString(p.Name)
	if p.Annotation != nil {
		b.WriteString(": ")
		b.WriteString(p.Annotation.String())
	}
	if p.Default != nil {
		if p.Annotation != nil {
			b.WriteString(" = ")
		} else {
			b.WriteString("=")
		}
		b.WriteString(p.Default.String())
	}
	return b.String()
}
func (p *Parameter) Equal(o Expression) bool {
	other, ok := o.(*Parameter)
	if !ok || p.Name != other.Name || p.ParamKind != other.ParamKind {
		return false
	}
	eq := func(a, b Expression) bool {
		if (a == nil) != (b == nil) {
			return false
		}
		return a == nil || a.Equal(b)
	}
	return eq(p.Annotation, other.Annotation) && eq(p.Default, other.Default)
}

// RenderedDefault returns the default's source text, or "" when required.
// Parameter-default-changed diffing (spec §4.7) compares this string.
func (p *Parameter) RenderedDefault() string {
	if p.Default == nil {
		return ""
	}
	return p.Default.String()
}

// TypeParameter is a PEP 695 `type X[T: bound = default]`-style parameter.
type TypeParameter struct {
	Name       string
	Bound      Expression
	Default    Expression
	IsVariadic bool // *Ts
	IsKwVariadic bool // **Ts (ParamSpec-like, kept for completeness)
}

func (t *TypeParameter) Kind() Kind { return KindTypeParameter }
func (t *TypeParameter) String() string {
	var b strings.Builder
	if t.IsVariadic {
		b.WriteString("*")
	}
	b.WriteString(t.Name)
	if t.Bound != nil {
		b.WriteString(": ")
		b.WriteString(t.Bound.String())
	}
	if t.Default != nil {
		b.WriteString(" = ")
		b.WriteString(t.Default.String())
	}
	return b.String()
}
func (t *TypeParameter) Equal(o Expression) bool {
	other, ok := o.(*TypeParameter)
	if !ok || t.Name != other.Name || t.IsVariadic != other.IsVariadic {
		return false
	}
	eq := func(a, b Expression) bool {
		if (a == nil) != (b == nil) {
			return false
		}
		return a == nil || a.Equal(b)
	}
	return eq(t.Bound, other.Bound) && eq(t.Default, other.Default)
}
