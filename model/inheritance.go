package model

import (
	"log/slog"

	"github.com/viant/pyapi/expr"
)

// ResolveBases resolves each base expression to a known Class, discarding
// unresolvable bases with a debug log (spec §4.1 "Inherited members", design
// note "Multiple class-hierarchy representations").
func (c *Class) ResolveBases(p *Project) []*Class {
	if c.resolvedBases != nil {
		return c.resolvedBases
	}
	var out []*Class
	for _, b := range c.Bases {
		path := expressionPath(b)
		if path == "" {
			continue
		}
		target, err := p.Lookup(path)
		if err != nil {
			slog.Debug("class base did not resolve", "class", c.CanonicalPath(), "base", path, "error", err)
			continue
		}
		if base, ok := target.(*Class); ok {
			out = append(out, base)
		} else {
			slog.Debug("class base resolved to a non-class entity", "class", c.CanonicalPath(), "base", path)
		}
	}
	c.resolvedBases = out
	return out
}

func expressionPath(e expr.Expression) string {
	switch v := e.(type) {
	case *expr.Name:
		return v.CanonicalPath()
	case *expr.Attribute:
		if v.IsFlattened() {
			// Best-effort: a flattened attribute's path is resolved the
			// same way a Name is, via whichever scope built it; callers
			// needing precise resolution should prefer Name nodes. Here we
			// fall back to the literal dotted spelling, consistent with
			// spec §4.2's note that Attribute flattening produces a single
			// dotted expression rather than a nested chain.
			return v.String()
		}
	}
	return ""
}

// linearize computes the C3 linearization of c's MRO over its resolved
// bases. The merge of the pending base-lists is a loop, but each base's own
// linearization is computed by a recursive call, so stack depth grows by one
// frame per inheritance level and deep chains are not stack-safe.
func linearize(c *Class, p *Project) []*Class {
	bases := c.ResolveBases(p)
	if len(bases) == 0 {
		return []*Class{c}
	}

	var sequences [][]*Class
	for _, b := range bases {
		sequences = append(sequences, linearize(b, p))
	}
	sequences = append(sequences, append([]*Class{}, bases...))

	var result []*Class
	for {
		sequences = removeEmpty(sequences)
		if len(sequences) == 0 {
			break
		}
		var head *Class
		for _, seq := range sequences {
			candidate := seq[0]
			if !appearsInTail(candidate, sequences) {
				head = candidate
				break
			}
		}
		if head == nil {
			// Inconsistent hierarchy; fall back to first remaining head to
			// stay total rather than failing the whole load.
			head = sequences[0][0]
		}
		result = append(result, head)
		for i, seq := range sequences {
			sequences[i] = removeClass(seq, head)
		}
	}
	return append([]*Class{c}, result...)
}

func removeEmpty(seqs [][]*Class) [][]*Class {
	out := seqs[:0]
	for _, s := range seqs {
		if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func appearsInTail(candidate *Class, seqs [][]*Class) bool {
	for _, seq := range seqs {
		for _, c := range seq[1:] {
			if c == candidate {
				return true
			}
		}
	}
	return false
}

func removeClass(seq []*Class, target *Class) []*Class {
	out := make([]*Class, 0, len(seq))
	for _, c := range seq {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

// AllMembers returns the merged member map: own members plus inherited
// members wrapped in synthetic Aliases flagged Inherited. It is forbidden to
// call this while the class (or a class on its MRO) is mid-walk (spec
// §4.1); implementers must expose this restriction by failing loudly.
func (c *Class) AllMembers(p *Project) (*OrderedMembers, error) {
	if c.walkInProgress {
		return nil, &WalkInProgressError{ClassPath: c.CanonicalPath()}
	}
	if c.inheritedValid {
		return c.inheritedCache, nil
	}

	mro := linearize(c, p)
	merged := NewOrderedMembers()
	// Merge in reverse MRO order so nearer ancestors win (spec §4.1).
	for i := len(mro) - 1; i >= 0; i-- {
		ancestor := mro[i]
		if ancestor.walkInProgress {
			return nil, &WalkInProgressError{ClassPath: ancestor.CanonicalPath()}
		}
		if ancestor == c {
			for _, key := range ancestor.members.Keys() {
				v, _ := ancestor.members.Get(key)
				merged.Set(key, v)
			}
			continue
		}
		for _, key := range ancestor.members.Keys() {
			v, _ := ancestor.members.Get(key)
			alias := &Alias{
				Base:       Base{EntityName: key, LabelSet: Labels{}},
				TargetPath: v.CanonicalPath(),
				Inherited:  true,
			}
			merged.Set(key, alias)
		}
	}
	c.inheritedCache = merged
	c.inheritedValid = true
	return merged, nil
}
