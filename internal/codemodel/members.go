package codemodel

import "codewriter/internal/metadata"

// symbol holds the accessors every member shares.
type symbol struct {
	node
	sym metadata.Symbol

	attributes memo[*List[*Attribute]]
	docComment memo[*DocComment]
	typ        memo[*Type]
}

func (s *symbol) Name() string      { return declaredName(s.sym.Name()) }
func (s *symbol) LowerName() string { return CamelCase(s.Name()) }
func (s *symbol) FullName() string  { return s.sym.FullName() }

func (s *symbol) Attributes() *List[*Attribute] {
	return s.attributes.get(func() *List[*Attribute] {
		return s.model.attributes(s.sym.Attributes(), s.model.nodes[s.index])
	})
}

func (s *symbol) DocComment() *DocComment {
	return s.docComment.get(func() *DocComment {
		return s.model.docComment(s.sym.DocComment(), s.model.nodes[s.index])
	})
}

func (s *symbol) AttributeNames() []string { return attributeNames(s.sym.Attributes()) }

func (s *symbol) DisplayString() string { return s.Name() }

// typeOf memoizes the member's type.
func (s *symbol) typeOf(f func() metadata.TypeFacts) *Type {
	return s.typ.get(func() *Type {
		return s.model.typeOf(f(), s.model.nodes[s.index])
	})
}

// Property is a property of a class, record, interface or type.
type Property struct {
	symbol
	facts metadata.PropertyFacts
}

func newProperty(f metadata.PropertyFacts) *Property {
	return &Property{symbol: symbol{sym: f}, facts: f}
}

func (p *Property) AssemblyName() string { return p.facts.AssemblyName() }
func (p *Property) HasGetter() bool      { return p.facts.HasGetter() }
func (p *Property) HasSetter() bool      { return p.facts.HasSetter() }
func (p *Property) IsAbstract() bool     { return p.facts.IsAbstract() }
func (p *Property) IsVirtual() bool      { return p.facts.IsVirtual() }
func (p *Property) Type() *Type          { return p.typeOf(p.facts.Type) }
func (p *Property) Shape() string        { return ShapeProperty }

// Field is a field or a named tuple element.
type Field struct {
	symbol
	facts metadata.FieldFacts
}

func newField(f metadata.FieldFacts) *Field {
	return &Field{symbol: symbol{sym: f}, facts: f}
}

func (f *Field) AssemblyName() string { return f.facts.AssemblyName() }
func (f *Field) Type() *Type          { return f.typeOf(f.facts.Type) }
func (f *Field) Shape() string        { return ShapeField }

// Constant is a constant field.
type Constant struct {
	symbol
	facts metadata.ConstantFacts
}

func newConstant(f metadata.ConstantFacts) *Constant {
	return &Constant{symbol: symbol{sym: f}, facts: f}
}

func (c *Constant) Value() string { return c.facts.Value() }
func (c *Constant) Type() *Type   { return c.typeOf(c.facts.Type) }
func (c *Constant) Shape() string { return ShapeConstant }

// StaticReadOnlyField is a static read-only field.
type StaticReadOnlyField struct {
	symbol
	facts metadata.StaticReadOnlyFieldFacts
}

func newStaticReadOnlyField(f metadata.StaticReadOnlyFieldFacts) *StaticReadOnlyField {
	return &StaticReadOnlyField{symbol: symbol{sym: f}, facts: f}
}

func (s *StaticReadOnlyField) AssemblyName() string { return s.facts.AssemblyName() }
func (s *StaticReadOnlyField) Value() string        { return s.facts.Value() }
func (s *StaticReadOnlyField) Type() *Type          { return s.typeOf(s.facts.Type) }
func (s *StaticReadOnlyField) Shape() string        { return ShapeStaticReadOnlyField }

// Event is an event.
type Event struct {
	symbol
	facts metadata.EventFacts
}

func newEvent(f metadata.EventFacts) *Event {
	return &Event{symbol: symbol{sym: f}, facts: f}
}

func (e *Event) Type() *Type   { return e.typeOf(e.facts.Type) }
func (e *Event) Shape() string { return ShapeEvent }

// Method is a method. Type is its return type.
type Method struct {
	symbol
	facts metadata.MethodFacts

	parameters     memo[*List[*Parameter]]
	typeParameters memo[*List[*TypeParameter]]
}

func newMethod(f metadata.MethodFacts) *Method {
	return &Method{symbol: symbol{sym: f}, facts: f}
}

func (m *Method) AssemblyName() string { return m.facts.AssemblyName() }
func (m *Method) IsAbstract() bool     { return m.facts.IsAbstract() }
func (m *Method) IsGeneric() bool      { return m.facts.IsGeneric() }
func (m *Method) Type() *Type          { return m.typeOf(m.facts.Type) }
func (m *Method) Shape() string        { return ShapeMethod }

func (m *Method) Parameters() *List[*Parameter] {
	return m.parameters.get(func() *List[*Parameter] {
		return m.model.parameters(m.facts.Parameters(), m)
	})
}

func (m *Method) TypeParameters() *List[*TypeParameter] {
	return m.typeParameters.get(func() *List[*TypeParameter] {
		return m.model.typeParameters(m.facts.TypeParameters(), m)
	})
}

// Parameter is a method or delegate parameter.
type Parameter struct {
	node
	facts metadata.ParameterFacts

	attributes memo[*List[*Attribute]]
	typ        memo[*Type]
}

func (p *Parameter) Name() string          { return declaredName(p.facts.Name()) }
func (p *Parameter) LowerName() string     { return CamelCase(p.Name()) }
func (p *Parameter) FullName() string      { return p.facts.FullName() }
func (p *Parameter) AssemblyName() string  { return p.facts.AssemblyName() }
func (p *Parameter) HasDefaultValue() bool { return p.facts.HasDefaultValue() }
func (p *Parameter) DefaultValue() string  { return p.facts.DefaultValue() }

func (p *Parameter) Attributes() *List[*Attribute] {
	return p.attributes.get(func() *List[*Attribute] {
		return p.model.attributes(p.facts.Attributes(), p)
	})
}

func (p *Parameter) Type() *Type {
	return p.typ.get(func() *Type {
		return p.model.typeOf(p.facts.Type(), p)
	})
}

func (p *Parameter) AttributeNames() []string { return attributeNames(p.facts.Attributes()) }

func (p *Parameter) DisplayString() string { return p.Name() }
func (p *Parameter) Shape() string         { return ShapeParameter }

// TypeParameter is a generic type placeholder.
type TypeParameter struct {
	node
	facts metadata.TypeParameterFacts
}

func (t *TypeParameter) Name() string          { return declaredName(t.facts.Name()) }
func (t *TypeParameter) LowerName() string     { return CamelCase(t.Name()) }
func (t *TypeParameter) FullName() string      { return t.Name() }
func (t *TypeParameter) DisplayString() string { return t.Name() }
func (t *TypeParameter) Shape() string         { return ShapeTypeParameter }
