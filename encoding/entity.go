package encoding

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/model"
)

func encodeLocation(loc model.Location) map[string]any {
	return map[string]any{
		"file":       loc.Path,
		"lineno":     loc.LineStart,
		"endlineno":  loc.LineEnd,
		"byte_start": loc.ByteStart,
		"byte_end":   loc.ByteEnd,
	}
}

func decodeLocation(raw json.RawMessage) model.Location {
	var body struct {
		File      string `json:"file"`
		Lineno    int    `json:"lineno"`
		EndLineno int    `json:"endlineno"`
		ByteStart int    `json:"byte_start"`
		ByteEnd   int    `json:"byte_end"`
	}
	_ = json.Unmarshal(raw, &body)
	return model.Location{Path: body.File, LineStart: body.Lineno, LineEnd: body.EndLineno, ByteStart: body.ByteStart, ByteEnd: body.ByteEnd}
}

func encodeDocstring(d *model.Docstring) map[string]any {
	if d == nil {
		return nil
	}
	return map[string]any{"value": d.Value, "lineno": d.LineStart, "endlineno": d.LineEnd, "style": d.Style}
}

func labelNames(l model.Labels) []string {
	out := make([]string, 0, len(l))
	for name := range l {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// encodeEntity renders e as a map keyed by the `kind` discriminator (spec
// §4.9). In ModeBase only the fields needed to reconstruct the tree are
// emitted; ModeFull adds the computed visibility/deprecation/origin fields
// a client would otherwise have to recompute.
func (e *Encoder) encodeEntity(entity model.Entity) (map[string]any, error) {
	if entity == nil {
		return nil, nil
	}
	out := map[string]any{
		"kind":     string(entity.Kind()),
		"name":     entity.Name(),
		"location": encodeLocation(entity.Location()),
	}

	switch v := entity.(type) {
	case *model.Module:
		if err := e.fillModule(out, v); err != nil {
			return nil, err
		}
	case *model.Class:
		if err := e.fillClass(out, v); err != nil {
			return nil, err
		}
	case *model.Function:
		if err := e.fillFunction(out, v); err != nil {
			return nil, err
		}
	case *model.Attribute:
		if err := e.fillAttribute(out, v); err != nil {
			return nil, err
		}
	case *model.TypeAlias:
		if err := e.fillTypeAlias(out, v); err != nil {
			return nil, err
		}
	case *model.Alias:
		e.fillAlias(out, v)
	default:
		return nil, fmt.Errorf("encoding: unknown entity kind %T", entity)
	}

	if e.Mode == ModeFull {
		out["doc"] = encodeDocstring(entity.Docstring())
		out["labels"] = labelNames(entity.Labels())
		out["origin"] = string(entity.Origin())
		out["runtime"] = entity.Runtime()
		out["is_public"] = entity.IsPublic()
		out["is_private"] = entity.IsPrivate()
		out["is_special"] = entity.IsSpecial()
		out["is_class_private"] = entity.IsClassPrivate()
		out["is_deprecated"] = entity.IsDeprecated()
		out["is_exported"] = entity.IsExported()
		out["is_wildcard_exposed"] = entity.IsWildcardExposed()
	}
	return out, nil
}

func (e *Encoder) encodeMembers(c model.Container) ([]map[string]any, error) {
	keys := c.Members().Keys()
	out := make([]map[string]any, 0, len(keys))
	for _, name := range keys {
		member, _ := c.GetMember(name)
		enc, err := e.encodeEntity(member)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

func (e *Encoder) fillModule(out map[string]any, m *model.Module) error {
	members, err := e.encodeMembers(m)
	if err != nil {
		return err
	}
	out["file_path"] = m.FilePath
	out["imports"] = m.ImportsMap
	out["exports"] = m.Exports
	out["members"] = members
	return nil
}

func (e *Encoder) fillClass(out map[string]any, c *model.Class) error {
	bases, err := encodeExprSlice(c.Bases)
	if err != nil {
		return err
	}
	baseKeywords := make([]map[string]any, len(c.BaseKeywords))
	for i, k := range c.BaseKeywords {
		enc, err := encodeExpr(k)
		if err != nil {
			return err
		}
		baseKeywords[i] = enc
	}
	decorators, err := encodeExprSlice(c.Decorators)
	if err != nil {
		return err
	}
	typeParams, err := encodeTypeParameters(c.TypeParams)
	if err != nil {
		return err
	}
	ctorParams, err := encodeParameters(c.ConstructorParams)
	if err != nil {
		return err
	}
	overloads := map[string][]map[string]any{}
	for name, fns := range c.Overloads {
		encoded := make([]map[string]any, len(fns))
		for i, fn := range fns {
			enc, err := e.encodeEntity(fn)
			if err != nil {
				return err
			}
			encoded[i] = enc
		}
		overloads[name] = encoded
	}
	members, err := e.encodeMembers(c)
	if err != nil {
		return err
	}

	out["bases"] = bases
	out["base_keywords"] = baseKeywords
	out["decorators"] = decorators
	out["type_params"] = typeParams
	out["constructor_params"] = ctorParams
	out["overloads"] = overloads
	out["members"] = members
	return nil
}

func (e *Encoder) fillFunction(out map[string]any, f *model.Function) error {
	params, err := encodeParameters(f.Parameters)
	if err != nil {
		return err
	}
	ret, err := encodeExpr(f.ReturnAnnotation)
	if err != nil {
		return err
	}
	decorators, err := encodeExprSlice(f.Decorators)
	if err != nil {
		return err
	}
	typeParams, err := encodeTypeParameters(f.TypeParams)
	if err != nil {
		return err
	}
	out["parameters"] = params
	out["return_annotation"] = ret
	out["decorators"] = decorators
	out["type_params"] = typeParams
	if f.Setter != nil {
		setter, err := e.encodeEntity(f.Setter)
		if err != nil {
			return err
		}
		out["setter"] = setter
	}
	if f.Deleter != nil {
		deleter, err := e.encodeEntity(f.Deleter)
		if err != nil {
			return err
		}
		out["deleter"] = deleter
	}
	return nil
}

func (e *Encoder) fillAttribute(out map[string]any, a *model.Attribute) error {
	annotation, err := encodeExpr(a.Annotation)
	if err != nil {
		return err
	}
	value, err := encodeExpr(a.Value)
	if err != nil {
		return err
	}
	out["annotation"] = annotation
	out["value"] = value
	if a.Setter != nil {
		setter, err := e.encodeEntity(a.Setter)
		if err != nil {
			return err
		}
		out["setter"] = setter
	}
	if a.Deleter != nil {
		deleter, err := e.encodeEntity(a.Deleter)
		if err != nil {
			return err
		}
		out["deleter"] = deleter
	}
	return nil
}

func (e *Encoder) fillTypeAlias(out map[string]any, t *model.TypeAlias) error {
	value, err := encodeExpr(t.Value)
	if err != nil {
		return err
	}
	typeParams, err := encodeTypeParameters(t.TypeParams)
	if err != nil {
		return err
	}
	out["value"] = value
	out["type_params"] = typeParams
	return nil
}

func (e *Encoder) fillAlias(out map[string]any, a *model.Alias) {
	out["target_path"] = a.TargetPath
	out["wildcard"] = a.Wildcard
	out["inherited"] = a.Inherited
	if e.Mode == ModeFull {
		out["resolved"] = a.Resolved()
		if target, err := a.FinalTarget(); err == nil && target != nil {
			out["final_target_path"] = target.CanonicalPath()
		}
	}
}

// decodeEntity is the `kind`-discriminated decode counterpart to
// encodeEntity. Decoded entities are not re-attached to a Project's module
// map and carry a nil resolver state on any Alias (spec §4.9 describes the
// wire shape for inspection/diffing tools, not a requirement that a decoded
// tree re-enter Load/Resolve).
func (d *Decoder) decodeEntity(raw json.RawMessage) (model.Entity, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var head struct {
		Kind     string          `json:"kind"`
		Name     string          `json:"name"`
		Location json.RawMessage `json:"location"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	loc := decodeLocation(head.Location)

	switch model.EntityKind(head.Kind) {
	case model.KindModule:
		var body struct {
			FilePath string            `json:"file_path"`
			Imports  map[string]string `json:"imports"`
			Exports  []string          `json:"exports"`
			Members  []json.RawMessage `json:"members"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		mod := model.NewModule(head.Name)
		mod.Loc = loc
		mod.FilePath = body.FilePath
		if body.Imports != nil {
			mod.ImportsMap = body.Imports
		}
		mod.Exports = body.Exports
		if err := d.decodeMembersInto(mod, body.Members); err != nil {
			return nil, err
		}
		return mod, nil

	case model.KindClass:
		var body struct {
			Bases             []json.RawMessage            `json:"bases"`
			BaseKeywords      []json.RawMessage            `json:"base_keywords"`
			Decorators        []json.RawMessage            `json:"decorators"`
			TypeParams        []json.RawMessage            `json:"type_params"`
			ConstructorParams []json.RawMessage            `json:"constructor_params"`
			Overloads         map[string][]json.RawMessage `json:"overloads"`
			Members           []json.RawMessage            `json:"members"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		cls := model.NewClass(head.Name)
		cls.Loc = loc
		bases, err := decodeExprSlice(body.Bases)
		if err != nil {
			return nil, err
		}
		cls.Bases = bases
		baseKeywords := make([]*expr.Keyword, 0, len(body.BaseKeywords))
		for _, raw := range body.BaseKeywords {
			kw, err := decodeExpr(raw)
			if err != nil {
				return nil, err
			}
			if k, ok := kw.(*expr.Keyword); ok {
				baseKeywords = append(baseKeywords, k)
			}
		}
		cls.BaseKeywords = baseKeywords
		decorators, err := decodeExprSlice(body.Decorators)
		if err != nil {
			return nil, err
		}
		cls.Decorators = decorators
		typeParams, err := decodeTypeParameters(body.TypeParams)
		if err != nil {
			return nil, err
		}
		cls.TypeParams = typeParams
		ctorParams, err := decodeParameters(body.ConstructorParams)
		if err != nil {
			return nil, err
		}
		cls.ConstructorParams = ctorParams
		for name, fns := range body.Overloads {
			decoded := make([]*model.Function, 0, len(fns))
			for _, raw := range fns {
				fn, err := d.decodeEntity(raw)
				if err != nil {
					return nil, err
				}
				if f, ok := fn.(*model.Function); ok {
					decoded = append(decoded, f)
				}
			}
			cls.Overloads[name] = decoded
		}
		if err := d.decodeMembersInto(cls, body.Members); err != nil {
			return nil, err
		}
		return cls, nil

	case model.KindFunction:
		var body struct {
			Parameters       []json.RawMessage `json:"parameters"`
			ReturnAnnotation json.RawMessage   `json:"return_annotation"`
			Decorators       []json.RawMessage `json:"decorators"`
			TypeParams       []json.RawMessage `json:"type_params"`
			Setter           json.RawMessage   `json:"setter"`
			Deleter          json.RawMessage   `json:"deleter"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		fn := model.NewFunction(head.Name)
		fn.Loc = loc
		params, err := decodeParameters(body.Parameters)
		if err != nil {
			return nil, err
		}
		fn.Parameters = params
		ret, err := decodeExpr(body.ReturnAnnotation)
		if err != nil {
			return nil, err
		}
		fn.ReturnAnnotation = ret
		decorators, err := decodeExprSlice(body.Decorators)
		if err != nil {
			return nil, err
		}
		fn.Decorators = decorators
		typeParams, err := decodeTypeParameters(body.TypeParams)
		if err != nil {
			return nil, err
		}
		fn.TypeParams = typeParams
		if len(body.Setter) > 0 {
			setter, err := d.decodeEntity(body.Setter)
			if err != nil {
				return nil, err
			}
			if s, ok := setter.(*model.Function); ok {
				fn.Setter = s
			}
		}
		if len(body.Deleter) > 0 {
			deleter, err := d.decodeEntity(body.Deleter)
			if err != nil {
				return nil, err
			}
			if del, ok := deleter.(*model.Function); ok {
				fn.Deleter = del
			}
		}
		return fn, nil

	case model.KindAttribute:
		var body struct {
			Annotation json.RawMessage `json:"annotation"`
			Value      json.RawMessage `json:"value"`
			Setter     json.RawMessage `json:"setter"`
			Deleter    json.RawMessage `json:"deleter"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		attr := model.NewAttribute(head.Name)
		attr.Loc = loc
		annotation, err := decodeExpr(body.Annotation)
		if err != nil {
			return nil, err
		}
		attr.Annotation = annotation
		value, err := decodeExpr(body.Value)
		if err != nil {
			return nil, err
		}
		attr.Value = value
		if len(body.Setter) > 0 {
			setter, err := d.decodeEntity(body.Setter)
			if err != nil {
				return nil, err
			}
			if s, ok := setter.(*model.Function); ok {
				attr.Setter = s
			}
		}
		if len(body.Deleter) > 0 {
			deleter, err := d.decodeEntity(body.Deleter)
			if err != nil {
				return nil, err
			}
			if del, ok := deleter.(*model.Function); ok {
				attr.Deleter = del
			}
		}
		return attr, nil

	case model.KindTypeAlias:
		var body struct {
			Value      json.RawMessage   `json:"value"`
			TypeParams []json.RawMessage `json:"type_params"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		ta := model.NewTypeAlias(head.Name)
		ta.Loc = loc
		value, err := decodeExpr(body.Value)
		if err != nil {
			return nil, err
		}
		ta.Value = value
		typeParams, err := decodeTypeParameters(body.TypeParams)
		if err != nil {
			return nil, err
		}
		ta.TypeParams = typeParams
		return ta, nil

	case model.KindAlias:
		var body struct {
			TargetPath string `json:"target_path"`
			Wildcard   bool   `json:"wildcard"`
			Inherited  bool   `json:"inherited"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		alias := &model.Alias{
			Base:       model.Base{EntityName: head.Name, LabelSet: model.Labels{}},
			TargetPath: body.TargetPath,
			Wildcard:   body.Wildcard,
			Inherited:  body.Inherited,
		}
		alias.Loc = loc
		return alias, nil

	default:
		return nil, fmt.Errorf("encoding: unknown entity discriminator %q", head.Kind)
	}
}

func (d *Decoder) decodeMembersInto(c model.Container, raws []json.RawMessage) error {
	for _, raw := range raws {
		member, err := d.decodeEntity(raw)
		if err != nil {
			return err
		}
		if member != nil {
			c.AddMember(member)
		}
	}
	return nil
}
