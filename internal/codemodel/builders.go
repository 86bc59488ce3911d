package codemodel

import "codewriter/internal/metadata"

// The builders below allocate nodes into the arena. Each returns a non-nil
// list, possibly empty.

func (m *Model) classes(facts []metadata.ClassFacts, parent Item, file string) *List[*Class] {
	items := make([]*Class, 0, len(facts))
	for _, f := range facts {
		if f == nil || isObject(f.FullName()) {
			continue
		}
		items = append(items, m.class(f, parent, file))
	}
	return newList("Class", items)
}

func (m *Model) class(f metadata.ClassFacts, parent Item, file string) *Class {
	c := &Class{}
	c.init(f, partialScope(m.settings, file, f.FileLocations()))
	m.attach(&c.node, c, parent)
	return c
}

// relatedClass wraps a base or containing class, suppressing the root object
// type.
func (m *Model) relatedClass(f metadata.ClassFacts, parent Item) *Class {
	if f == nil || isObject(f.FullName()) {
		return nil
	}
	return m.class(f, parent, "")
}

func (m *Model) records(facts []metadata.RecordFacts, parent Item, file string) *List[*Record] {
	items := make([]*Record, 0, len(facts))
	for _, f := range facts {
		if f == nil {
			continue
		}
		items = append(items, m.record(f, parent, file))
	}
	return newList("Record", items)
}

func (m *Model) record(f metadata.RecordFacts, parent Item, file string) *Record {
	r := &Record{facts: f}
	r.src = f
	r.data = f
	r.scope = partialScope(m.settings, file, f.FileLocations())
	m.attach(&r.node, r, parent)
	return r
}

func (m *Model) interfaces(facts []metadata.InterfaceFacts, parent Item) *List[*Interface] {
	items := make([]*Interface, 0, len(facts))
	for _, f := range facts {
		if f == nil {
			continue
		}
		i := &Interface{facts: f}
		i.src = f
		m.attach(&i.node, i, parent)
		items = append(items, i)
	}
	return newList("Interface", items)
}

func (m *Model) delegates(facts []metadata.DelegateFacts, parent Item) *List[*Delegate] {
	items := make([]*Delegate, 0, len(facts))
	for _, f := range facts {
		d := &Delegate{facts: f}
		m.attach(&d.node, d, parent)
		items = append(items, d)
	}
	return newList("Delegate", items)
}

func (m *Model) enums(facts []metadata.EnumFacts, parent Item) *List[*Enum] {
	items := make([]*Enum, 0, len(facts))
	for _, f := range facts {
		e := &Enum{facts: f}
		m.attach(&e.node, e, parent)
		items = append(items, e)
	}
	return newList("Enum", items)
}

func (m *Model) enumValues(facts []metadata.EnumValueFacts, parent Item) *List[*EnumValue] {
	items := make([]*EnumValue, 0, len(facts))
	for _, f := range facts {
		v := &EnumValue{facts: f}
		m.attach(&v.node, v, parent)
		items = append(items, v)
	}
	return newList("EnumValue", items)
}

func (m *Model) properties(facts []metadata.PropertyFacts, parent Item) *List[*Property] {
	items := make([]*Property, 0, len(facts))
	for _, f := range facts {
		p := newProperty(f)
		m.attach(&p.node, p, parent)
		items = append(items, p)
	}
	return newList("Property", items)
}

func (m *Model) fields(facts []metadata.FieldFacts, parent Item) *List[*Field] {
	items := make([]*Field, 0, len(facts))
	for _, f := range facts {
		fl := newField(f)
		m.attach(&fl.node, fl, parent)
		items = append(items, fl)
	}
	return newList("Field", items)
}

func (m *Model) constants(facts []metadata.ConstantFacts, parent Item) *List[*Constant] {
	items := make([]*Constant, 0, len(facts))
	for _, f := range facts {
		c := newConstant(f)
		m.attach(&c.node, c, parent)
		items = append(items, c)
	}
	return newList("Constant", items)
}

func (m *Model) staticReadOnlyFields(facts []metadata.StaticReadOnlyFieldFacts, parent Item) *List[*StaticReadOnlyField] {
	items := make([]*StaticReadOnlyField, 0, len(facts))
	for _, f := range facts {
		s := newStaticReadOnlyField(f)
		m.attach(&s.node, s, parent)
		items = append(items, s)
	}
	return newList("StaticReadOnlyField", items)
}

func (m *Model) events(facts []metadata.EventFacts, parent Item) *List[*Event] {
	items := make([]*Event, 0, len(facts))
	for _, f := range facts {
		e := newEvent(f)
		m.attach(&e.node, e, parent)
		items = append(items, e)
	}
	return newList("Event", items)
}

func (m *Model) methods(facts []metadata.MethodFacts, parent Item) *List[*Method] {
	items := make([]*Method, 0, len(facts))
	for _, f := range facts {
		mt := newMethod(f)
		m.attach(&mt.node, mt, parent)
		items = append(items, mt)
	}
	return newList("Method", items)
}

func (m *Model) parameters(facts []metadata.ParameterFacts, parent Item) *List[*Parameter] {
	items := make([]*Parameter, 0, len(facts))
	for _, f := range facts {
		p := &Parameter{facts: f}
		m.attach(&p.node, p, parent)
		items = append(items, p)
	}
	l := newList("Parameter", items)
	l.display = joinDisplay[*Parameter]
	return l
}

func (m *Model) typeParameters(facts []metadata.TypeParameterFacts, parent Item) *List[*TypeParameter] {
	items := make([]*TypeParameter, 0, len(facts))
	for _, f := range facts {
		t := &TypeParameter{facts: f}
		m.attach(&t.node, t, parent)
		items = append(items, t)
	}
	l := newList("TypeParameter", items)
	l.display = func(tps []*TypeParameter) string {
		if len(tps) == 0 {
			return ""
		}
		return "<" + joinDisplay(tps) + ">"
	}
	return l
}

func (m *Model) types(facts []metadata.TypeFacts, parent Item) *List[*Type] {
	items := make([]*Type, 0, len(facts))
	for _, f := range facts {
		if t := m.typeOf(f, parent); t != nil {
			items = append(items, t)
		}
	}
	l := newList("Type", items)
	l.display = joinDisplay[*Type]
	return l
}

// typeOf wraps a type usage, normalizing nullable and task wrappers. It
// returns nil for nil facts.
func (m *Model) typeOf(f metadata.TypeFacts, parent Item) *Type {
	if f == nil {
		return nil
	}
	t := &Type{facts: normalize(f)}
	t.init(t.facts, "")
	m.attach(&t.node, t, parent)
	return t
}

func (m *Model) attributes(facts []metadata.AttributeFacts, parent Item) *List[*Attribute] {
	items := make([]*Attribute, 0, len(facts))
	for _, f := range facts {
		a := &Attribute{facts: f}
		m.attach(&a.node, a, parent)
		items = append(items, a)
	}
	return newList("Attribute", items)
}

func (m *Model) attributeArguments(facts []metadata.AttributeArgumentFacts, parent Item) *List[*AttributeArgument] {
	items := make([]*AttributeArgument, 0, len(facts))
	for _, f := range facts {
		a := &AttributeArgument{facts: f}
		m.attach(&a.node, a, parent)
		items = append(items, a)
	}
	return newList("AttributeArgument", items)
}
