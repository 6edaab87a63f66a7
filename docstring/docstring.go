// Package docstring implements spec component C10: a thin façade over an
// entity's raw Docstring handle that hands the text to an external parser
// collaborator and caches the resulting section list.
//
// Grounded in inspector/java/documentation.go, which already separates "the
// raw comment/annotation text the walker captured" from "the structured
// documentation a renderer wants" via a dedicated type rather than inlining
// parsing into the walker; here that split becomes a façade plus a Parser
// collaborator interface, since spec.md §1 explicitly excludes shipping a
// Google/Numpy/Sphinx implementation.
package docstring

import "github.com/viant/pyapi/model"

// Style identifies the docstring convention a Parser should assume.
type Style string

const (
	StyleGoogle Style = "google"
	StyleNumpy  Style = "numpy"
	StyleSphinx Style = "sphinx"
	StyleAuto   Style = ""
)

// Section is one parsed block of a docstring (e.g. "Args", "Returns").
type Section struct {
	Kind  string
	Title string
	Body  string
}

// Parser is the external collaborator that turns raw docstring text into
// sections. The core ships no concrete implementation (spec.md §1
// Non-goals: "doc rendering").
type Parser interface {
	Parse(raw string, style Style) ([]Section, error)
}

// Docstring wraps a model.Docstring handle with a parse cache.
type Docstring struct {
	raw    *model.Docstring
	parser Parser

	parsed  []Section
	hasParsed bool
	err    error
}

// New wraps raw using parser for any future Parse call. raw may be nil, in
// which case every operation is a documented no-op.
func New(raw *model.Docstring, parser Parser) *Docstring {
	return &Docstring{raw: raw, parser: parser}
}

// Value returns the raw docstring text, or "" if there is none.
func (d *Docstring) Value() string {
	if d == nil || d.raw == nil {
		return ""
	}
	return d.raw.Value
}

// LineRange returns the start/end source lines the docstring spans.
func (d *Docstring) LineRange() (start, end int) {
	if d == nil || d.raw == nil {
		return 0, 0
	}
	return d.raw.LineStart, d.raw.LineEnd
}

// Parse hands the raw text to the configured Parser on the first call and
// caches the result; later calls return the cached result whatever style
// they pass. On that first call a non-empty styleOverride wins over the
// entity's stored style; passing "" uses the stored style, or StyleAuto when
// none is stored.
func (d *Docstring) Parse(styleOverride Style) ([]Section, error) {
	if d == nil || d.raw == nil {
		return nil, nil
	}
	if d.hasParsed {
		return d.parsed, d.err
	}
	style := styleOverride
	if style == StyleAuto && d.raw.Style != "" {
		style = Style(d.raw.Style)
	}
	if d.parser == nil {
		d.hasParsed = true
		return nil, nil
	}
	d.parsed, d.err = d.parser.Parse(d.raw.Value, style)
	d.hasParsed = true
	return d.parsed, d.err
}
