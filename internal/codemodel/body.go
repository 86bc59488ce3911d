package codemodel

import (
	"strings"

	"codewriter/internal/config"
	"codewriter/internal/metadata"
)

// scopeFacts is what every member-bearing declaration provides.
type scopeFacts interface {
	metadata.Symbol
	Events() []metadata.EventFacts
	Interfaces() []metadata.InterfaceFacts
	Methods() []metadata.MethodFacts
	Properties() []metadata.PropertyFacts
	TypeParameters() []metadata.TypeParameterFacts
	TypeArguments() []metadata.TypeFacts
}

// body holds the memoized accessors shared by classes, records, interfaces
// and types. Children are parented to the item that embeds it.
type body struct {
	node
	src   scopeFacts
	scope string

	attributes     memo[*List[*Attribute]]
	docComment     memo[*DocComment]
	events         memo[*List[*Event]]
	interfaces     memo[*List[*Interface]]
	methods        memo[*List[*Method]]
	properties     memo[*List[*Property]]
	typeParameters memo[*List[*TypeParameter]]
	typeArguments  memo[*List[*Type]]
}

func (b *body) self() Item { return b.model.nodes[b.index] }

// Attributes returns the attributes applied to the declaration.
func (b *body) Attributes() *List[*Attribute] {
	return b.attributes.get(func() *List[*Attribute] {
		return b.model.attributes(b.src.Attributes(), b.self())
	})
}

// DocComment returns the parsed documentation comment, or nil.
func (b *body) DocComment() *DocComment {
	return b.docComment.get(func() *DocComment {
		return b.model.docComment(b.src.DocComment(), b.self())
	})
}

func (b *body) Events() *List[*Event] {
	return b.events.get(func() *List[*Event] {
		return b.model.events(inScope(b.src.Events(), b.scope), b.self())
	})
}

func (b *body) Interfaces() *List[*Interface] {
	return b.interfaces.get(func() *List[*Interface] {
		return b.model.interfaces(b.src.Interfaces(), b.self())
	})
}

func (b *body) Methods() *List[*Method] {
	return b.methods.get(func() *List[*Method] {
		return b.model.methods(inScope(b.src.Methods(), b.scope), b.self())
	})
}

func (b *body) Properties() *List[*Property] {
	return b.properties.get(func() *List[*Property] {
		return b.model.properties(inScope(b.src.Properties(), b.scope), b.self())
	})
}

func (b *body) TypeParameters() *List[*TypeParameter] {
	return b.typeParameters.get(func() *List[*TypeParameter] {
		return b.model.typeParameters(b.src.TypeParameters(), b.self())
	})
}

func (b *body) TypeArguments() *List[*Type] {
	return b.typeArguments.get(func() *List[*Type] {
		return b.model.types(b.src.TypeArguments(), b.self())
	})
}

// AttributeNames returns the names and full names of the attributes, for
// attribute filters.
func (b *body) AttributeNames() []string { return attributeNames(b.src.Attributes()) }

// dataFacts adds the members records share with classes.
type dataFacts interface {
	scopeFacts
	Constants() []metadata.ConstantFacts
	Delegates() []metadata.DelegateFacts
	Fields() []metadata.FieldFacts
}

type dataBody struct {
	body
	data dataFacts

	constants memo[*List[*Constant]]
	delegates memo[*List[*Delegate]]
	fields    memo[*List[*Field]]
}

func (b *dataBody) Constants() *List[*Constant] {
	return b.constants.get(func() *List[*Constant] {
		return b.model.constants(inScope(b.data.Constants(), b.scope), b.self())
	})
}

func (b *dataBody) Delegates() *List[*Delegate] {
	return b.delegates.get(func() *List[*Delegate] {
		return b.model.delegates(inScope(b.data.Delegates(), b.scope), b.self())
	})
}

func (b *dataBody) Fields() *List[*Field] {
	return b.fields.get(func() *List[*Field] {
		return b.model.fields(inScope(b.data.Fields(), b.scope), b.self())
	})
}

// classBody adds the members only classes and types carry.
type classBody struct {
	dataBody
	class metadata.ClassFacts

	baseClass            memo[*Class]
	containingClass      memo[*Class]
	staticReadOnlyFields memo[*List[*StaticReadOnlyField]]
	nestedClasses        memo[*List[*Class]]
	nestedEnums          memo[*List[*Enum]]
	nestedInterfaces     memo[*List[*Interface]]
}

func (b *classBody) init(f metadata.ClassFacts, scope string) {
	b.src = f
	b.data = f
	b.class = f
	b.scope = scope
}

// BaseClass returns the base class, or nil when there is none or it is the
// root object type.
func (b *classBody) BaseClass() *Class {
	return b.baseClass.get(func() *Class {
		return b.model.relatedClass(b.class.BaseClass(), b.self())
	})
}

// ContainingClass returns the enclosing class of a nested declaration.
func (b *classBody) ContainingClass() *Class {
	return b.containingClass.get(func() *Class {
		return b.model.relatedClass(b.class.ContainingClass(), b.self())
	})
}

func (b *classBody) StaticReadOnlyFields() *List[*StaticReadOnlyField] {
	return b.staticReadOnlyFields.get(func() *List[*StaticReadOnlyField] {
		return b.model.staticReadOnlyFields(inScope(b.class.StaticReadOnlyFields(), b.scope), b.self())
	})
}

func (b *classBody) NestedClasses() *List[*Class] {
	return b.nestedClasses.get(func() *List[*Class] {
		return b.model.classes(inScope(b.class.NestedClasses(), b.scope), b.self(), "")
	})
}

func (b *classBody) NestedEnums() *List[*Enum] {
	return b.nestedEnums.get(func() *List[*Enum] {
		return b.model.enums(inScope(b.class.NestedEnums(), b.scope), b.self())
	})
}

func (b *classBody) NestedInterfaces() *List[*Interface] {
	return b.nestedInterfaces.get(func() *List[*Interface] {
		return b.model.interfaces(inScope(b.class.NestedInterfaces(), b.scope), b.self())
	})
}

// InheritedNames returns the names and full names of every base class and
// implemented interface, for inheritance filters.
func (b *classBody) InheritedNames() []string {
	var names []string
	for base := b.class.BaseClass(); base != nil && !isObject(base.FullName()); base = base.BaseClass() {
		names = append(names, base.Name(), base.FullName())
		names = append(names, interfaceNames(base.Interfaces())...)
	}
	return append(names, interfaceNames(b.class.Interfaces())...)
}

// partialScope returns the file a multi-fragment declaration's members are
// restricted to, or "" when all members apply.
func partialScope(settings *config.Settings, file string, locations []string) string {
	if file == "" || settings.PartialRenderingMode != config.Partial || len(locations) <= 1 {
		return ""
	}
	return file
}

// inScope keeps the facts declared in scope. Facts without locations are
// kept.
func inScope[T any](facts []T, scope string) []T {
	if scope == "" {
		return facts
	}
	out := make([]T, 0, len(facts))
	for _, f := range facts {
		if l, ok := any(f).(metadata.Located); ok {
			if locs := l.FileLocations(); len(locs) > 0 && !containsFold(locs, scope) {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func isObject(fullName string) bool {
	return strings.EqualFold(fullName, "System.Object") || strings.EqualFold(fullName, "object")
}

func attributeNames(facts []metadata.AttributeFacts) []string {
	names := make([]string, 0, 2*len(facts))
	for _, a := range facts {
		names = append(names, declaredName(a.Name()), a.FullName())
	}
	return names
}

func interfaceNames(facts []metadata.InterfaceFacts) []string {
	var names []string
	for _, i := range facts {
		names = append(names, i.Name(), i.FullName())
		names = append(names, interfaceNames(i.Interfaces())...)
	}
	return names
}
