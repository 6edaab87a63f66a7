package model

// OrderedMembers is an insertion-ordered name -> Entity map. Member insertion
// order must equal declaration order in source (spec §5 "Ordering
// guarantees"), which a plain Go map cannot provide.
type OrderedMembers struct {
	order []string
	byKey map[string]Entity
}

func NewOrderedMembers() *OrderedMembers {
	return &OrderedMembers{byKey: make(map[string]Entity)}
}

// Set inserts or overwrites the member at name, preserving its original
// position on overwrite (spec invariant I1/I2: member names are unique
// within a container; re-assignment updates in place).
func (m *OrderedMembers) Set(name string, e Entity) {
	if m.byKey == nil {
		m.byKey = make(map[string]Entity)
	}
	if _, exists := m.byKey[name]; !exists {
		m.order = append(m.order, name)
	}
	m.byKey[name] = e
}

func (m *OrderedMembers) Get(name string) (Entity, bool) {
	e, ok := m.byKey[name]
	return e, ok
}

func (m *OrderedMembers) Delete(name string) {
	if _, ok := m.byKey[name]; !ok {
		return
	}
	delete(m.byKey, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *OrderedMembers) Len() int { return len(m.order) }

// Keys returns member names in declaration order.
func (m *OrderedMembers) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Values returns members in declaration order.
func (m *OrderedMembers) Values() []Entity {
	out := make([]Entity, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.byKey[k])
	}
	return out
}

// Container is implemented by entities that own members: Module and Class.
type Container interface {
	Entity
	Members() *OrderedMembers
	// GetMember looks up a direct member only, never triggering inherited
	// member computation; this is the form extension hooks must use
	// (spec §4.1).
	GetMember(name string) (Entity, bool)
	AddMember(e Entity)
}

// GetMemberPath resolves a dotted path or a pre-split list of parts against
// a container, descending through nested containers. It never triggers
// inheritance computation (uses GetMember at each step), matching the direct
// "by exact key" / "by dotted path" / "by tuple of parts" access forms of
// spec §4.1.
func GetMemberPath(root Container, parts []string) (Entity, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	cur, ok := root.GetMember(parts[0])
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		container, ok2 := cur.(Container)
		if !ok2 {
			return nil, false
		}
		cur, ok = container.GetMember(part)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
