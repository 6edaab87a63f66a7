package differ

import (
	"strconv"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/model"
)

// Differ walks two project snapshots' root modules in parallel.
type Differ struct {
	OldProject *model.Project
	NewProject *model.Project
}

func New(oldProject, newProject *model.Project) *Differ {
	return &Differ{OldProject: oldProject, NewProject: newProject}
}

// Check compares oldRoot against newRoot, returning breakages in a
// deterministic pre-order walk of the old snapshot (spec §5 "Ordering
// guarantees").
func (d *Differ) Check(oldRoot, newRoot *model.Module) []Breakage {
	var out []Breakage
	d.diffContainer(oldRoot, newRoot, &out)
	return out
}

// diffContainer matches oldC's members by name against newC (nil if the
// whole container vanished) and recurses, per spec §4.7 "Visibility
// gating": only entities public in the old snapshot are considered.
func (d *Differ) diffContainer(oldC, newC model.Container, out *[]Breakage) {
	for _, name := range oldC.Members().Keys() {
		oldEntity, _ := oldC.GetMember(name)
		oldEntity = d.follow(oldEntity)
		if oldEntity == nil || !oldEntity.IsPublic() {
			continue
		}

		var newEntity model.Entity
		if newC != nil {
			if e, ok := newC.GetMember(name); ok {
				newEntity = d.follow(e)
			}
		}

		if newEntity == nil {
			*out = append(*out, Breakage{
				Kind:        ObjectRemoved,
				OldPath:     oldEntity.CanonicalPath(),
				Explanation: "public object removed",
			})
			continue
		}

		if oldEntity.Kind() != newEntity.Kind() {
			file, line := locationOf(newEntity)
			*out = append(*out, Breakage{
				Kind:        ObjectKindChanged,
				OldPath:     oldEntity.CanonicalPath(),
				NewPath:     newEntity.CanonicalPath(),
				Explanation: string(oldEntity.Kind()) + " became " + string(newEntity.Kind()),
				File:        file,
				Line:        line,
			})
			continue
		}

		switch oldV := oldEntity.(type) {
		case *model.Function:
			d.diffFunction(oldV, newEntity.(*model.Function), out)
		case *model.Attribute:
			d.diffAttribute(oldV, newEntity.(*model.Attribute), out)
		case *model.Class:
			d.diffClass(oldV, newEntity.(*model.Class), out)
		case *model.Module:
			d.diffContainer(oldV, newEntity.(*model.Module), out)
		}
	}
}

// follow resolves an Alias to its final target for comparison purposes
// (spec §4.7 "Aliases are followed to their final targets"); a failed or
// not-yet-resolved alias is treated as absent.
func (d *Differ) follow(e model.Entity) model.Entity {
	alias, ok := e.(*model.Alias)
	if !ok {
		return e
	}
	target, err := alias.FinalTarget()
	if err != nil {
		return nil
	}
	return d.follow(target)
}

func (d *Differ) diffClass(oldC, newC *model.Class, out *[]Breakage) {
	oldBases := oldC.ResolveBases(d.OldProject)
	newBases := newC.ResolveBases(d.NewProject)
	newBaseNames := map[string]bool{}
	for _, b := range newBases {
		newBaseNames[b.CanonicalPath()] = true
	}
	for _, b := range oldBases {
		if !newBaseNames[b.CanonicalPath()] {
			file, line := locationOf(newC)
			*out = append(*out, Breakage{
				Kind:        ClassBaseRemoved,
				OldPath:     oldC.CanonicalPath(),
				NewPath:     newC.CanonicalPath(),
				Explanation: "base class " + b.CanonicalPath() + " no longer in resolved bases",
				File:        file,
				Line:        line,
			})
		}
	}
	d.diffContainer(oldC, newC, out)
}

func (d *Differ) diffAttribute(oldA, newA *model.Attribute, out *[]Breakage) {
	oldVal := oldA.RenderedValue()
	newVal := newA.RenderedValue()
	if oldVal != "" && newVal != "" && oldVal != newVal {
		file, line := locationOf(newA)
		*out = append(*out, Breakage{
			Kind:        AttributeValueChanged,
			OldPath:     oldA.CanonicalPath(),
			NewPath:     newA.CanonicalPath(),
			Explanation: "value changed from " + oldVal + " to " + newVal,
			File:        file,
			Line:        line,
			OldValue:    oldVal,
			NewValue:    newVal,
		})
	}
}

func (d *Differ) diffFunction(oldF, newF *model.Function, out *[]Breakage) {
	file, line := locationOf(newF)
	newParams := map[string]*expr.Parameter{}
	for _, p := range newF.Parameters {
		newParams[p.Name] = p
	}

	for _, oldP := range oldF.Parameters {
		newP, stillPresent := newParams[oldP.Name]
		if !stillPresent {
			if !newF.HasVarPositional() && !newF.HasVarKeyword() {
				*out = append(*out, Breakage{
					Kind: ParameterRemoved, OldPath: oldF.CanonicalPath(), NewPath: newF.CanonicalPath(),
					Explanation: "parameter " + oldP.Name + " removed", File: file, Line: line,
					ParameterName: oldP.Name,
				})
			}
			continue
		}

		if oldP.ParamKind != newP.ParamKind {
			*out = append(*out, Breakage{
				Kind: ParameterKindChanged, OldPath: oldF.CanonicalPath(), NewPath: newF.CanonicalPath(),
				Explanation:   "parameter " + oldP.Name + " changed kind from " + string(oldP.ParamKind) + " to " + string(newP.ParamKind),
				File:          file, Line: line, ParameterName: oldP.Name,
			})
		}

		if isPositional(oldP.ParamKind) && isPositional(newP.ParamKind) {
			oldIdx := oldF.PositionalIndex(oldP.Name)
			newIdx := newF.PositionalIndex(newP.Name)
			if oldIdx >= 0 && newIdx >= 0 && oldIdx != newIdx {
				*out = append(*out, Breakage{
					Kind: ParameterMoved, OldPath: oldF.CanonicalPath(), NewPath: newF.CanonicalPath(),
					Explanation:   "parameter " + oldP.Name + " moved from position " + strconv.Itoa(oldIdx) + " to " + strconv.Itoa(newIdx),
					File:          file, Line: line, ParameterName: oldP.Name, OldIndex: oldIdx, NewIndex: newIdx,
				})
			}
		}

		oldDefault := oldP.RenderedDefault()
		newDefault := newP.RenderedDefault()
		switch {
		case oldDefault != "" && newDefault != "" && oldDefault != newDefault:
			*out = append(*out, Breakage{
				Kind: ParameterDefaultChanged, OldPath: oldF.CanonicalPath(), NewPath: newF.CanonicalPath(),
				Explanation: "parameter " + oldP.Name + " default changed from " + oldDefault + " to " + newDefault,
				File:        file, Line: line, ParameterName: oldP.Name, OldValue: oldDefault, NewValue: newDefault,
			})
		case oldDefault != "" && newDefault == "":
			*out = append(*out, Breakage{
				Kind: ParameterNowRequired, OldPath: oldF.CanonicalPath(), NewPath: newF.CanonicalPath(),
				Explanation: "parameter " + oldP.Name + " is now required",
				File:        file, Line: line, ParameterName: oldP.Name,
			})
		}
	}

	oldParams := map[string]bool{}
	for _, p := range oldF.Parameters {
		oldParams[p.Name] = true
	}
	for _, newP := range newF.Parameters {
		if oldParams[newP.Name] {
			continue
		}
		if newP.RenderedDefault() == "" && isPositional(newP.ParamKind) || newP.ParamKind == expr.ParamKeywordOnly && newP.RenderedDefault() == "" {
			*out = append(*out, Breakage{
				Kind: ParameterAddedRequired, OldPath: oldF.CanonicalPath(), NewPath: newF.CanonicalPath(),
				Explanation: "new required parameter " + newP.Name, File: file, Line: line, ParameterName: newP.Name,
			})
		}
	}
}

func isPositional(k expr.ParameterKind) bool {
	return k == expr.ParamPositionalOnly || k == expr.ParamPositionalOrKeyword
}

