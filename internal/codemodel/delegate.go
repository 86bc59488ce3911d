package codemodel

import (
	"strings"

	"codewriter/internal/metadata"
)

// Delegate is a delegate (function type) declaration. Type is its return
// type.
type Delegate struct {
	node
	facts metadata.DelegateFacts

	attributes     memo[*List[*Attribute]]
	docComment     memo[*DocComment]
	parameters     memo[*List[*Parameter]]
	typeParameters memo[*List[*TypeParameter]]
	typ            memo[*Type]
}

func (d *Delegate) Name() string      { return declaredName(d.facts.Name()) }
func (d *Delegate) LowerName() string { return CamelCase(d.Name()) }
func (d *Delegate) FullName() string  { return d.facts.FullName() }
func (d *Delegate) IsGeneric() bool   { return d.facts.IsGeneric() }

func (d *Delegate) Attributes() *List[*Attribute] {
	return d.attributes.get(func() *List[*Attribute] {
		return d.model.attributes(d.facts.Attributes(), d)
	})
}

func (d *Delegate) DocComment() *DocComment {
	return d.docComment.get(func() *DocComment {
		return d.model.docComment(d.facts.DocComment(), d)
	})
}

func (d *Delegate) Parameters() *List[*Parameter] {
	return d.parameters.get(func() *List[*Parameter] {
		return d.model.parameters(d.facts.Parameters(), d)
	})
}

func (d *Delegate) TypeParameters() *List[*TypeParameter] {
	return d.typeParameters.get(func() *List[*TypeParameter] {
		return d.model.typeParameters(d.facts.TypeParameters(), d)
	})
}

func (d *Delegate) Type() *Type {
	return d.typ.get(func() *Type {
		return d.model.typeOf(d.facts.Type(), d)
	})
}

func (d *Delegate) AttributeNames() []string { return attributeNames(d.facts.Attributes()) }

func (d *Delegate) DisplayString() string { return d.Name() }
func (d *Delegate) Shape() string         { return ShapeDelegate }

// Enum is an enum declaration.
type Enum struct {
	node
	facts metadata.EnumFacts

	attributes      memo[*List[*Attribute]]
	docComment      memo[*DocComment]
	values          memo[*List[*EnumValue]]
	containingClass memo[*Class]
	typ             memo[*Type]
}

func (e *Enum) Name() string      { return declaredName(e.facts.Name()) }
func (e *Enum) LowerName() string { return CamelCase(e.Name()) }
func (e *Enum) FullName() string  { return e.facts.FullName() }
func (e *Enum) Namespace() string { return e.facts.Namespace() }

// IsFlags reports whether the enum carries the Flags attribute.
func (e *Enum) IsFlags() bool {
	for _, a := range e.facts.Attributes() {
		switch name := declaredName(a.Name()); {
		case strings.EqualFold(name, "Flags"), strings.EqualFold(name, "FlagsAttribute"):
			return true
		case strings.EqualFold(a.FullName(), "System.FlagsAttribute"):
			return true
		}
	}
	return false
}

func (e *Enum) Attributes() *List[*Attribute] {
	return e.attributes.get(func() *List[*Attribute] {
		return e.model.attributes(e.facts.Attributes(), e)
	})
}

func (e *Enum) DocComment() *DocComment {
	return e.docComment.get(func() *DocComment {
		return e.model.docComment(e.facts.DocComment(), e)
	})
}

func (e *Enum) Values() *List[*EnumValue] {
	return e.values.get(func() *List[*EnumValue] {
		return e.model.enumValues(e.facts.Values(), e)
	})
}

func (e *Enum) ContainingClass() *Class {
	return e.containingClass.get(func() *Class {
		return e.model.relatedClass(e.facts.ContainingClass(), e)
	})
}

func (e *Enum) Type() *Type {
	return e.typ.get(func() *Type {
		return e.model.typeOf(e.facts.Type(), e.Parent())
	})
}

func (e *Enum) AttributeNames() []string { return attributeNames(e.facts.Attributes()) }

func (e *Enum) DisplayString() string { return e.Name() }
func (e *Enum) Shape() string         { return ShapeEnum }

// EnumValue is one enum member.
type EnumValue struct {
	node
	facts metadata.EnumValueFacts

	attributes memo[*List[*Attribute]]
	docComment memo[*DocComment]
}

func (v *EnumValue) Name() string      { return declaredName(v.facts.Name()) }
func (v *EnumValue) LowerName() string { return CamelCase(v.Name()) }
func (v *EnumValue) FullName() string  { return v.facts.FullName() }
func (v *EnumValue) Value() int64      { return v.facts.Value() }

func (v *EnumValue) Attributes() *List[*Attribute] {
	return v.attributes.get(func() *List[*Attribute] {
		return v.model.attributes(v.facts.Attributes(), v)
	})
}

func (v *EnumValue) DocComment() *DocComment {
	return v.docComment.get(func() *DocComment {
		return v.model.docComment(v.facts.DocComment(), v)
	})
}

func (v *EnumValue) AttributeNames() []string { return attributeNames(v.facts.Attributes()) }

func (v *EnumValue) DisplayString() string { return v.Name() }
func (v *EnumValue) Shape() string         { return ShapeEnumValue }
