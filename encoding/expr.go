package encoding

import (
	"encoding/json"
	"fmt"

	"github.com/viant/pyapi/expr"
)

// encodeExpr renders one expression node as a map keyed by the `cls`
// discriminator (spec §4.9: "Expressions emit a discriminator field `cls`
// with the variant name and each variant's own fields").
func encodeExpr(e expr.Expression) (map[string]any, error) {
	if e == nil {
		return nil, nil
	}
	out := map[string]any{"cls": string(e.Kind())}

	switch v := e.(type) {
	case *expr.Name:
		out["value"] = v.Value
	case *expr.Attribute:
		base, err := encodeExpr(v.Base)
		if err != nil {
			return nil, err
		}
		out["base"] = base
		out["parts"] = v.Parts
	case *expr.Call:
		fn, err := encodeExpr(v.Func)
		if err != nil {
			return nil, err
		}
		args, err := encodeExprSlice(v.Args)
		if err != nil {
			return nil, err
		}
		out["func"] = fn
		out["args"] = args
	case *expr.Keyword:
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		out["name"] = v.Name
		out["value"] = value
	case *expr.VarPositional:
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		out["value"] = value
	case *expr.VarKeyword:
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		out["value"] = value
	case *expr.Constant:
		out["raw"] = v.Raw
	case *expr.FString:
		values, err := encodeExprSlice(v.Values)
		if err != nil {
			return nil, err
		}
		out["raw"] = v.Raw
		out["values"] = values
	case *expr.JoinedStr:
		parts, err := encodeExprSlice(v.Parts)
		if err != nil {
			return nil, err
		}
		out["parts"] = parts
	case *expr.Lambda:
		params, err := encodeParameters(v.Parameters)
		if err != nil {
			return nil, err
		}
		body, err := encodeExpr(v.Body)
		if err != nil {
			return nil, err
		}
		out["parameters"] = params
		out["body"] = body
	case *expr.List:
		elems, err := encodeExprSlice(v.Elements)
		if err != nil {
			return nil, err
		}
		out["elements"] = elems
	case *expr.Tuple:
		elems, err := encodeExprSlice(v.Elements)
		if err != nil {
			return nil, err
		}
		out["elements"] = elems
	case *expr.Set:
		elems, err := encodeExprSlice(v.Elements)
		if err != nil {
			return nil, err
		}
		out["elements"] = elems
	case *expr.Dict:
		entries := make([]map[string]any, len(v.Entries))
		for i, en := range v.Entries {
			key, err := encodeExpr(en.Key)
			if err != nil {
				return nil, err
			}
			value, err := encodeExpr(en.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = map[string]any{"key": key, "value": value}
		}
		out["entries"] = entries
	case *expr.ListComp:
		elem, err := encodeExpr(v.Element)
		if err != nil {
			return nil, err
		}
		comps, err := encodeComprehensions(v.Comprehensions)
		if err != nil {
			return nil, err
		}
		out["element"] = elem
		out["comprehensions"] = comps
	case *expr.SetComp:
		elem, err := encodeExpr(v.Element)
		if err != nil {
			return nil, err
		}
		comps, err := encodeComprehensions(v.Comprehensions)
		if err != nil {
			return nil, err
		}
		out["element"] = elem
		out["comprehensions"] = comps
	case *expr.GeneratorExp:
		elem, err := encodeExpr(v.Element)
		if err != nil {
			return nil, err
		}
		comps, err := encodeComprehensions(v.Comprehensions)
		if err != nil {
			return nil, err
		}
		out["element"] = elem
		out["comprehensions"] = comps
	case *expr.DictComp:
		key, err := encodeExpr(v.Key)
		if err != nil {
			return nil, err
		}
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		comps, err := encodeComprehensions(v.Comprehensions)
		if err != nil {
			return nil, err
		}
		out["key"] = key
		out["value"] = value
		out["comprehensions"] = comps
	case *expr.Subscript:
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		slice, err := encodeExpr(v.Slice)
		if err != nil {
			return nil, err
		}
		out["value"] = value
		out["slice"] = slice
	case *expr.Slice:
		lower, err := encodeExpr(v.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := encodeExpr(v.Upper)
		if err != nil {
			return nil, err
		}
		step, err := encodeExpr(v.Step)
		if err != nil {
			return nil, err
		}
		out["lower"], out["upper"], out["step"] = lower, upper, step
	case *expr.ExtSlice:
		dims, err := encodeExprSlice(v.Dims)
		if err != nil {
			return nil, err
		}
		out["dims"] = dims
	case *expr.IfExp:
		test, err := encodeExpr(v.Test)
		if err != nil {
			return nil, err
		}
		body, err := encodeExpr(v.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := encodeExpr(v.OrElse)
		if err != nil {
			return nil, err
		}
		out["test"], out["body"], out["or_else"] = test, body, orElse
	case *expr.BinOp:
		left, err := encodeExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpr(v.Right)
		if err != nil {
			return nil, err
		}
		out["left"], out["op"], out["right"] = left, v.Op, right
	case *expr.BoolOp:
		values, err := encodeExprSlice(v.Values)
		if err != nil {
			return nil, err
		}
		out["op"] = v.Op
		out["values"] = values
	case *expr.Compare:
		left, err := encodeExpr(v.Left)
		if err != nil {
			return nil, err
		}
		comparators, err := encodeExprSlice(v.Comparators)
		if err != nil {
			return nil, err
		}
		out["left"] = left
		out["ops"] = v.Ops
		out["comparators"] = comparators
	case *expr.UnaryOp:
		operand, err := encodeExpr(v.Operand)
		if err != nil {
			return nil, err
		}
		out["op"] = v.Op
		out["operand"] = operand
	case *expr.Yield:
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		out["value"] = value
	case *expr.YieldFrom:
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		out["value"] = value
	case *expr.NamedExpr:
		target, err := encodeExpr(v.Target)
		if err != nil {
			return nil, err
		}
		value, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		out["target"], out["value"] = target, value
	case *expr.Parameter:
		return encodeParameter(v)
	case *expr.TypeParameter:
		return encodeTypeParameter(v)
	default:
		return nil, fmt.Errorf("encoding: unknown expression variant %T", e)
	}
	return out, nil
}

func encodeExprSlice(in []expr.Expression) ([]map[string]any, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]map[string]any, len(in))
	for i, e := range in {
		enc, err := encodeExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func encodeComprehensions(in []expr.Comprehension) ([]map[string]any, error) {
	out := make([]map[string]any, len(in))
	for i, c := range in {
		target, err := encodeExpr(c.Target)
		if err != nil {
			return nil, err
		}
		iter, err := encodeExpr(c.Iter)
		if err != nil {
			return nil, err
		}
		ifs, err := encodeExprSlice(c.Ifs)
		if err != nil {
			return nil, err
		}
		out[i] = map[string]any{"target": target, "iter": iter, "ifs": ifs, "is_async": c.IsAsync}
	}
	return out, nil
}

func encodeParameter(p *expr.Parameter) (map[string]any, error) {
	if p == nil {
		return nil, nil
	}
	annotation, err := encodeExpr(p.Annotation)
	if err != nil {
		return nil, err
	}
	def, err := encodeExpr(p.Default)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"cls": string(expr.KindParameter), "name": p.Name, "kind": string(p.ParamKind),
		"annotation": annotation, "default": def,
	}, nil
}

func encodeParameters(in []*expr.Parameter) ([]map[string]any, error) {
	out := make([]map[string]any, len(in))
	for i, p := range in {
		enc, err := encodeParameter(p)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func encodeTypeParameter(t *expr.TypeParameter) (map[string]any, error) {
	if t == nil {
		return nil, nil
	}
	bound, err := encodeExpr(t.Bound)
	if err != nil {
		return nil, err
	}
	def, err := encodeExpr(t.Default)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"cls": string(expr.KindTypeParameter), "name": t.Name, "bound": bound, "default": def,
		"is_variadic": t.IsVariadic, "is_kw_variadic": t.IsKwVariadic,
	}, nil
}

func encodeTypeParameters(in []*expr.TypeParameter) ([]map[string]any, error) {
	out := make([]map[string]any, len(in))
	for i, t := range in {
		enc, err := encodeTypeParameter(t)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

// decodeExpr is the `cls`-discriminated decode counterpart to encodeExpr.
// Decoded Name/Attribute nodes carry a nil Scope: a tree loaded back from
// JSON is a snapshot for diffing/inspection, not a live walk result that
// needs further import resolution (spec §4.9 describes the wire format,
// not a requirement that decoded trees re-enter the resolver).
func decodeExpr(raw json.RawMessage) (expr.Expression, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var head struct {
		Cls string `json:"cls"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	if head.Cls == "" {
		return nil, fmt.Errorf("encoding: expression object missing discriminator %q", "cls")
	}

	switch expr.Kind(head.Cls) {
	case expr.KindName:
		var body struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return &expr.Name{Value: body.Value}, nil
	case expr.KindAttribute:
		var body struct {
			Base  json.RawMessage `json:"base"`
			Parts []string        `json:"parts"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		base, err := decodeExpr(body.Base)
		if err != nil {
			return nil, err
		}
		return &expr.Attribute{Base: base, Parts: body.Parts}, nil
	case expr.KindCall:
		var body struct {
			Func json.RawMessage   `json:"func"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		fn, err := decodeExpr(body.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprSlice(body.Args)
		if err != nil {
			return nil, err
		}
		return &expr.Call{Func: fn, Args: args}, nil
	case expr.KindKeyword:
		var body struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		value, err := decodeExpr(body.Value)
		if err != nil {
			return nil, err
		}
		return &expr.Keyword{Name: body.Name, Value: value}, nil
	case expr.KindVarPositional:
		value, err := decodeValueField(raw)
		if err != nil {
			return nil, err
		}
		return &expr.VarPositional{Value: value}, nil
	case expr.KindVarKeyword:
		value, err := decodeValueField(raw)
		if err != nil {
			return nil, err
		}
		return &expr.VarKeyword{Value: value}, nil
	case expr.KindConstant:
		var body struct {
			Raw string `json:"raw"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return &expr.Constant{Raw: body.Raw}, nil
	case expr.KindFString:
		var body struct {
			Raw    string            `json:"raw"`
			Values []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		values, err := decodeExprSlice(body.Values)
		if err != nil {
			return nil, err
		}
		return &expr.FString{Raw: body.Raw, Values: values}, nil
	case expr.KindJoinedStr:
		var body struct {
			Parts []json.RawMessage `json:"parts"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		parts, err := decodeExprSlice(body.Parts)
		if err != nil {
			return nil, err
		}
		return &expr.JoinedStr{Parts: parts}, nil
	case expr.KindLambda:
		var body struct {
			Parameters []json.RawMessage `json:"parameters"`
			Body       json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		params, err := decodeParameters(body.Parameters)
		if err != nil {
			return nil, err
		}
		bodyExpr, err := decodeExpr(body.Body)
		if err != nil {
			return nil, err
		}
		return &expr.Lambda{Parameters: params, Body: bodyExpr}, nil
	case expr.KindList:
		elems, err := decodeElementsField(raw)
		if err != nil {
			return nil, err
		}
		return expr.NewList(elems), nil
	case expr.KindTuple:
		elems, err := decodeElementsField(raw)
		if err != nil {
			return nil, err
		}
		return expr.NewTuple(elems), nil
	case expr.KindSet:
		elems, err := decodeElementsField(raw)
		if err != nil {
			return nil, err
		}
		return expr.NewSet(elems), nil
	case expr.KindDict:
		var body struct {
			Entries []struct {
				Key   json.RawMessage `json:"key"`
				Value json.RawMessage `json:"value"`
			} `json:"entries"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		entries := make([]expr.DictEntry, len(body.Entries))
		for i, en := range body.Entries {
			key, err := decodeExpr(en.Key)
			if err != nil {
				return nil, err
			}
			value, err := decodeExpr(en.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = expr.DictEntry{Key: key, Value: value}
		}
		return &expr.Dict{Entries: entries}, nil
	case expr.KindListComp, expr.KindSetComp, expr.KindGeneratorExp:
		var body struct {
			Element        json.RawMessage   `json:"element"`
			Comprehensions []json.RawMessage `json:"comprehensions"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		elem, err := decodeExpr(body.Element)
		if err != nil {
			return nil, err
		}
		comps, err := decodeComprehensions(body.Comprehensions)
		if err != nil {
			return nil, err
		}
		switch expr.Kind(head.Cls) {
		case expr.KindListComp:
			return &expr.ListComp{Element: elem, Comprehensions: comps}, nil
		case expr.KindSetComp:
			return &expr.SetComp{Element: elem, Comprehensions: comps}, nil
		default:
			return &expr.GeneratorExp{Element: elem, Comprehensions: comps}, nil
		}
	case expr.KindDictComp:
		var body struct {
			Key            json.RawMessage   `json:"key"`
			Value          json.RawMessage   `json:"value"`
			Comprehensions []json.RawMessage `json:"comprehensions"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		key, err := decodeExpr(body.Key)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(body.Value)
		if err != nil {
			return nil, err
		}
		comps, err := decodeComprehensions(body.Comprehensions)
		if err != nil {
			return nil, err
		}
		return &expr.DictComp{Key: key, Value: value, Comprehensions: comps}, nil
	case expr.KindSubscript:
		var body struct {
			Value json.RawMessage `json:"value"`
			Slice json.RawMessage `json:"slice"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		value, err := decodeExpr(body.Value)
		if err != nil {
			return nil, err
		}
		slice, err := decodeExpr(body.Slice)
		if err != nil {
			return nil, err
		}
		return &expr.Subscript{Value: value, Slice: slice}, nil
	case expr.KindSlice:
		var body struct {
			Lower json.RawMessage `json:"lower"`
			Upper json.RawMessage `json:"upper"`
			Step  json.RawMessage `json:"step"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		lower, err := decodeExpr(body.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := decodeExpr(body.Upper)
		if err != nil {
			return nil, err
		}
		step, err := decodeExpr(body.Step)
		if err != nil {
			return nil, err
		}
		return &expr.Slice{Lower: lower, Upper: upper, Step: step}, nil
	case expr.KindExtSlice:
		var body struct {
			Dims []json.RawMessage `json:"dims"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		dims, err := decodeExprSlice(body.Dims)
		if err != nil {
			return nil, err
		}
		return &expr.ExtSlice{Dims: dims}, nil
	case expr.KindIfExp:
		var body struct {
			Test   json.RawMessage `json:"test"`
			Body   json.RawMessage `json:"body"`
			OrElse json.RawMessage `json:"or_else"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		test, err := decodeExpr(body.Test)
		if err != nil {
			return nil, err
		}
		b, err := decodeExpr(body.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := decodeExpr(body.OrElse)
		if err != nil {
			return nil, err
		}
		return &expr.IfExp{Test: test, Body: b, OrElse: orElse}, nil
	case expr.KindBinOp:
		var body struct {
			Left  json.RawMessage `json:"left"`
			Op    string          `json:"op"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		left, err := decodeExpr(body.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(body.Right)
		if err != nil {
			return nil, err
		}
		return &expr.BinOp{Left: left, Op: body.Op, Right: right}, nil
	case expr.KindBoolOp:
		var body struct {
			Op     string            `json:"op"`
			Values []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		values, err := decodeExprSlice(body.Values)
		if err != nil {
			return nil, err
		}
		return &expr.BoolOp{Op: body.Op, Values: values}, nil
	case expr.KindCompare:
		var body struct {
			Left        json.RawMessage   `json:"left"`
			Ops         []string          `json:"ops"`
			Comparators []json.RawMessage `json:"comparators"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		left, err := decodeExpr(body.Left)
		if err != nil {
			return nil, err
		}
		comparators, err := decodeExprSlice(body.Comparators)
		if err != nil {
			return nil, err
		}
		return &expr.Compare{Left: left, Ops: body.Ops, Comparators: comparators}, nil
	case expr.KindUnaryOp:
		var body struct {
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(body.Operand)
		if err != nil {
			return nil, err
		}
		return &expr.UnaryOp{Op: body.Op, Operand: operand}, nil
	case expr.KindYield:
		value, err := decodeValueField(raw)
		if err != nil {
			return nil, err
		}
		return &expr.Yield{Value: value}, nil
	case expr.KindYieldFrom:
		value, err := decodeValueField(raw)
		if err != nil {
			return nil, err
		}
		return &expr.YieldFrom{Value: value}, nil
	case expr.KindNamedExpr:
		var body struct {
			Target json.RawMessage `json:"target"`
			Value  json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		target, err := decodeExpr(body.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(body.Value)
		if err != nil {
			return nil, err
		}
		return &expr.NamedExpr{Target: target, Value: value}, nil
	case expr.KindParameter:
		return decodeParameter(raw)
	case expr.KindTypeParameter:
		return decodeTypeParameter(raw)
	default:
		return nil, fmt.Errorf("encoding: unknown expression discriminator %q", head.Cls)
	}
}

func decodeValueField(raw json.RawMessage) (expr.Expression, error) {
	var body struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return decodeExpr(body.Value)
}

func decodeElementsField(raw json.RawMessage) ([]expr.Expression, error) {
	var body struct {
		Elements []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return decodeExprSlice(body.Elements)
}

func decodeExprSlice(in []json.RawMessage) ([]expr.Expression, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]expr.Expression, len(in))
	for i, raw := range in {
		e, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeComprehensions(in []json.RawMessage) ([]expr.Comprehension, error) {
	out := make([]expr.Comprehension, len(in))
	for i, raw := range in {
		var body struct {
			Target  json.RawMessage   `json:"target"`
			Iter    json.RawMessage   `json:"iter"`
			Ifs     []json.RawMessage `json:"ifs"`
			IsAsync bool              `json:"is_async"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		target, err := decodeExpr(body.Target)
		if err != nil {
			return nil, err
		}
		iter, err := decodeExpr(body.Iter)
		if err != nil {
			return nil, err
		}
		ifs, err := decodeExprSlice(body.Ifs)
		if err != nil {
			return nil, err
		}
		out[i] = expr.Comprehension{Target: target, Iter: iter, Ifs: ifs, IsAsync: body.IsAsync}
	}
	return out, nil
}

func decodeParameter(raw json.RawMessage) (*expr.Parameter, error) {
	var body struct {
		Name       string          `json:"name"`
		Kind       string          `json:"kind"`
		Annotation json.RawMessage `json:"annotation"`
		Default    json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	annotation, err := decodeExpr(body.Annotation)
	if err != nil {
		return nil, err
	}
	def, err := decodeExpr(body.Default)
	if err != nil {
		return nil, err
	}
	return &expr.Parameter{Name: body.Name, ParamKind: expr.ParameterKind(body.Kind), Annotation: annotation, Default: def}, nil
}

func decodeParameters(in []json.RawMessage) ([]*expr.Parameter, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]*expr.Parameter, len(in))
	for i, raw := range in {
		p, err := decodeParameter(raw)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func decodeTypeParameter(raw json.RawMessage) (*expr.TypeParameter, error) {
	var body struct {
		Name         string          `json:"name"`
		Bound        json.RawMessage `json:"bound"`
		Default      json.RawMessage `json:"default"`
		IsVariadic   bool            `json:"is_variadic"`
		IsKwVariadic bool            `json:"is_kw_variadic"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	bound, err := decodeExpr(body.Bound)
	if err != nil {
		return nil, err
	}
	def, err := decodeExpr(body.Default)
	if err != nil {
		return nil, err
	}
	return &expr.TypeParameter{Name: body.Name, Bound: bound, Default: def, IsVariadic: body.IsVariadic, IsKwVariadic: body.IsKwVariadic}, nil
}

func decodeTypeParameters(in []json.RawMessage) ([]*expr.TypeParameter, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]*expr.TypeParameter, len(in))
	for i, raw := range in {
		t, err := decodeTypeParameter(raw)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
