// Package encoding implements spec component C9: a JSON serializer/
// deserializer for the object model, keyed by `kind` (entities) and `cls`
// (expressions) discriminators, with a "base" mode (only the fields needed
// to reconstruct the tree) and a "full" mode (adds every computed field:
// visibility, deprecation, origin, labels).
//
// New package (no direct teacher analogue); the two-phase
// json.RawMessage-then-dispatch decode shape is grounded in
// inspector/graph/document.go's DocumentKind handling, generalized from one
// discriminator to the two this object model needs.
package encoding

import (
	"encoding/json"

	"github.com/viant/pyapi/model"
)

// SchemaVersion is embedded in every top-level dump (spec §4.9 "Versioning")
// so a consumer can detect a future incompatible wire-format change.
const SchemaVersion = "1"

// Mode selects how much of an entity's computed state is emitted.
type Mode string

const (
	ModeBase Mode = "base"
	ModeFull Mode = "full"
)

// Encoder renders object-model trees to the wire shape described above.
type Encoder struct {
	Mode Mode
}

func NewEncoder(mode Mode) *Encoder {
	if mode == "" {
		mode = ModeBase
	}
	return &Encoder{Mode: mode}
}

// EncodeModule renders a single module (and everything it contains) as a
// plain map ready for json.Marshal.
func (e *Encoder) EncodeModule(m *model.Module) (map[string]any, error) {
	return e.encodeEntity(m)
}

// EncodePackages renders a mapping of requested package/module name to its
// root module object (spec §4.9 "Multi-package dump shape"), wrapped with
// the schema version.
func (e *Encoder) EncodePackages(roots map[string]*model.Module) (map[string]any, error) {
	modules := make(map[string]any, len(roots))
	for name, mod := range roots {
		enc, err := e.EncodeModule(mod)
		if err != nil {
			return nil, err
		}
		modules[name] = enc
	}
	return map[string]any{"schema_version": SchemaVersion, "modules": modules}, nil
}

// EncodeBase satisfies model.Project's digestEncodable interface (spec §8
// determinism): every loaded module, base mode, keyed by canonical path in
// ModulePaths' sorted order so the resulting JSON — and therefore the
// digest — does not depend on load order.
func (e *Encoder) EncodeBase(p *model.Project) (interface{}, error) {
	base := &Encoder{Mode: ModeBase}
	modules := make(map[string]any)
	for _, path := range p.ModulePaths() {
		mod, _ := p.GetModule(path)
		enc, err := base.encodeEntity(mod)
		if err != nil {
			return nil, err
		}
		modules[path] = enc
	}
	return map[string]any{"schema_version": SchemaVersion, "modules": modules}, nil
}

// Decoder parses the wire shape back into object-model trees.
type Decoder struct{}

func NewDecoder() *Decoder { return &Decoder{} }

// DecodeModule parses a single encoded module object.
func (d *Decoder) DecodeModule(raw json.RawMessage) (*model.Module, error) {
	entity, err := d.decodeEntity(raw)
	if err != nil {
		return nil, err
	}
	mod, ok := entity.(*model.Module)
	if !ok {
		return nil, errNotAModule
	}
	return mod, nil
}

// DecodePackages parses the {"schema_version","modules"} envelope produced
// by EncodePackages back into a name -> *model.Module map.
func (d *Decoder) DecodePackages(data []byte) (map[string]*model.Module, error) {
	var envelope struct {
		Modules map[string]json.RawMessage `json:"modules"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	out := make(map[string]*model.Module, len(envelope.Modules))
	for name, raw := range envelope.Modules {
		mod, err := d.DecodeModule(raw)
		if err != nil {
			return nil, err
		}
		out[name] = mod
	}
	return out, nil
}

var errNotAModule = moduleDecodeError{}

type moduleDecodeError struct{}

func (moduleDecodeError) Error() string { return "encoding: top-level object is not a module" }
