// Package metadata defines the raw, read-only facts the code model is built
// from. Facts are plain accessors over some source of semantic information
// (a snapshot document, a Go package); they carry no caching and no
// classification logic.
package metadata

// Named is implemented by every fact that has a declared name.
type Named interface {
	Name() string
	FullName() string
}

// Symbol is a named declaration that can carry documentation and attributes.
type Symbol interface {
	Named
	DocComment() string
	Attributes() []AttributeFacts
}

// Located is implemented by facts that know which source files declare them.
// Members of multi-fragment types use it for partial rendering.
type Located interface {
	FileLocations() []string
}

// FileFacts describes one source unit.
type FileFacts interface {
	Named
	Classes() []ClassFacts
	Records() []RecordFacts
	Delegates() []DelegateFacts
	Enums() []EnumFacts
	Interfaces() []InterfaceFacts
}

// AttributeFacts describes one attribute application.
type AttributeFacts interface {
	Named
	Arguments() []AttributeArgumentFacts
}

// AttributeArgumentFacts describes one argument of an attribute application.
// Name is empty for positional arguments.
type AttributeArgumentFacts interface {
	Name() string
	Type() TypeFacts
	TypeValue() TypeFacts
	Value() any
}

// ClassFacts describes a class declaration. TypeFacts extends it, since every
// type usage can be navigated like the class it refers to.
type ClassFacts interface {
	Symbol
	Located
	Namespace() string
	AssemblyName() string
	IsAbstract() bool
	IsGeneric() bool
	Type() TypeFacts
	BaseClass() ClassFacts
	ContainingClass() ClassFacts
	Constants() []ConstantFacts
	Delegates() []DelegateFacts
	Events() []EventFacts
	Fields() []FieldFacts
	Interfaces() []InterfaceFacts
	Methods() []MethodFacts
	Properties() []PropertyFacts
	StaticReadOnlyFields() []StaticReadOnlyFieldFacts
	TypeParameters() []TypeParameterFacts
	TypeArguments() []TypeFacts
	NestedClasses() []ClassFacts
	NestedEnums() []EnumFacts
	NestedInterfaces() []InterfaceFacts
}

// TypeFacts describes a type usage.
type TypeFacts interface {
	ClassFacts
	IsDictionary() bool
	IsDynamic() bool
	IsEnum() bool
	IsEnumerable() bool
	IsNullable() bool
	IsTask() bool
	IsDefined() bool
	IsValueTuple() bool
	TupleElements() []FieldFacts
	DefaultValue() string
}

// InterfaceFacts describes an interface declaration.
type InterfaceFacts interface {
	Symbol
	Namespace() string
	AssemblyName() string
	IsGeneric() bool
	Type() TypeFacts
	ContainingClass() ClassFacts
	Events() []EventFacts
	Interfaces() []InterfaceFacts
	Methods() []MethodFacts
	Properties() []PropertyFacts
	TypeParameters() []TypeParameterFacts
	TypeArguments() []TypeFacts
}

// RecordFacts describes a record declaration.
type RecordFacts interface {
	Symbol
	Located
	Namespace() string
	AssemblyName() string
	IsAbstract() bool
	IsGeneric() bool
	Type() TypeFacts
	BaseRecord() RecordFacts
	ContainingRecord() RecordFacts
	Constants() []ConstantFacts
	Delegates() []DelegateFacts
	Events() []EventFacts
	Fields() []FieldFacts
	Interfaces() []InterfaceFacts
	Methods() []MethodFacts
	Properties() []PropertyFacts
	TypeParameters() []TypeParameterFacts
	TypeArguments() []TypeFacts
}

// DelegateFacts describes a delegate (function type) declaration. Type is the
// return type.
type DelegateFacts interface {
	Symbol
	IsGeneric() bool
	Type() TypeFacts
	Parameters() []ParameterFacts
	TypeParameters() []TypeParameterFacts
}

// EnumFacts describes an enum declaration.
type EnumFacts interface {
	Symbol
	Namespace() string
	AssemblyName() string
	Type() TypeFacts
	ContainingClass() ClassFacts
	Values() []EnumValueFacts
}

// EnumValueFacts describes one enum member.
type EnumValueFacts interface {
	Symbol
	Value() int64
}

// MethodFacts describes a method. Type is the return type.
type MethodFacts interface {
	Symbol
	AssemblyName() string
	IsAbstract() bool
	IsGeneric() bool
	Type() TypeFacts
	Parameters() []ParameterFacts
	TypeParameters() []TypeParameterFacts
}

// ParameterFacts describes a method or delegate parameter.
type ParameterFacts interface {
	Named
	Attributes() []AttributeFacts
	AssemblyName() string
	Type() TypeFacts
	HasDefaultValue() bool
	DefaultValue() string
}

// PropertyFacts describes a property.
type PropertyFacts interface {
	Symbol
	AssemblyName() string
	Type() TypeFacts
	HasGetter() bool
	HasSetter() bool
	IsAbstract() bool
	IsVirtual() bool
}

// FieldFacts describes a field or a named tuple element.
type FieldFacts interface {
	Symbol
	AssemblyName() string
	Type() TypeFacts
}

// ConstantFacts describes a constant field.
type ConstantFacts interface {
	FieldFacts
	Value() string
}

// StaticReadOnlyFieldFacts describes a static read-only field.
type StaticReadOnlyFieldFacts interface {
	FieldFacts
	Value() string
}

// EventFacts describes an event.
type EventFacts interface {
	Symbol
	Type() TypeFacts
}

// TypeParameterFacts describes a generic type placeholder such as T.
type TypeParameterFacts interface {
	Name() string
}
