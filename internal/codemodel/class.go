package codemodel

import (
	"strings"

	"codewriter/internal/metadata"
)

// Class is a class declaration.
type Class struct {
	classBody

	typ memo[*Type]
}

func (c *Class) Name() string         { return declaredName(c.class.Name()) }
func (c *Class) LowerName() string    { return CamelCase(c.Name()) }
func (c *Class) FullName() string     { return c.class.FullName() }
func (c *Class) Namespace() string    { return c.class.Namespace() }
func (c *Class) AssemblyName() string { return c.class.AssemblyName() }
func (c *Class) IsAbstract() bool     { return c.class.IsAbstract() }
func (c *Class) IsGeneric() bool      { return c.class.IsGeneric() }

// Type returns the class viewed as a type. It shares the class's parent.
func (c *Class) Type() *Type {
	return c.typ.get(func() *Type {
		return c.model.typeOf(c.class.Type(), c.Parent())
	})
}

// Properties returns the class properties. When the class names a shadow
// type through a MetadataType or ModelMetadataType attribute, same-named
// properties of the shadow type replace the declared ones.
func (c *Class) Properties() *List[*Property] {
	return c.properties.get(func() *List[*Property] {
		props := mergeMetadataType(c.class.Attributes(), inScope(c.class.Properties(), c.scope))
		return c.model.properties(props, c)
	})
}

func (c *Class) DisplayString() string { return c.Name() }
func (c *Class) Shape() string         { return ShapeClass }

// mergeMetadataType applies shadow-type properties over the original list.
func mergeMetadataType(attrs []metadata.AttributeFacts, props []metadata.PropertyFacts) []metadata.PropertyFacts {
	var shadow metadata.TypeFacts
	for _, a := range attrs {
		name := declaredName(a.Name())
		if strings.EqualFold(name, "MetadataType") || strings.EqualFold(name, "ModelMetadataType") {
			if args := a.Arguments(); len(args) > 0 {
				shadow = args[0].TypeValue()
			}
			break
		}
	}
	if shadow == nil {
		return props
	}

	overrides := shadow.Properties()
	merged := make([]metadata.PropertyFacts, 0, len(props))
	for _, p := range props {
		replacement := p
		for _, o := range overrides {
			if strings.EqualFold(o.Name(), p.Name()) {
				replacement = o
				break
			}
		}
		merged = append(merged, replacement)
	}
	return merged
}

// Record is a record declaration.
type Record struct {
	dataBody
	facts metadata.RecordFacts

	baseRecord       memo[*Record]
	containingRecord memo[*Record]
	typ              memo[*Type]
}

func (r *Record) Name() string         { return declaredName(r.facts.Name()) }
func (r *Record) LowerName() string    { return CamelCase(r.Name()) }
func (r *Record) FullName() string     { return r.facts.FullName() }
func (r *Record) Namespace() string    { return r.facts.Namespace() }
func (r *Record) AssemblyName() string { return r.facts.AssemblyName() }
func (r *Record) IsAbstract() bool     { return r.facts.IsAbstract() }
func (r *Record) IsGeneric() bool      { return r.facts.IsGeneric() }

// BaseRecord returns the base record, or nil.
func (r *Record) BaseRecord() *Record {
	return r.baseRecord.get(func() *Record {
		return r.model.relatedRecord(r.facts.BaseRecord(), r)
	})
}

// ContainingRecord returns the enclosing record of a nested record, or nil.
func (r *Record) ContainingRecord() *Record {
	return r.containingRecord.get(func() *Record {
		return r.model.relatedRecord(r.facts.ContainingRecord(), r)
	})
}

func (r *Record) Type() *Type {
	return r.typ.get(func() *Type {
		return r.model.typeOf(r.facts.Type(), r.Parent())
	})
}

// InheritedNames returns the names of every base record and implemented
// interface.
func (r *Record) InheritedNames() []string {
	var names []string
	for base := r.facts.BaseRecord(); base != nil && !isObject(base.FullName()); base = base.BaseRecord() {
		names = append(names, base.Name(), base.FullName())
	}
	return append(names, interfaceNames(r.facts.Interfaces())...)
}

func (r *Record) DisplayString() string { return r.Name() }
func (r *Record) Shape() string         { return ShapeRecord }

func (m *Model) relatedRecord(f metadata.RecordFacts, parent Item) *Record {
	if f == nil || isObject(f.FullName()) {
		return nil
	}
	return m.record(f, parent, "")
}

// Interface is an interface declaration.
type Interface struct {
	body
	facts metadata.InterfaceFacts

	containingClass memo[*Class]
	typ             memo[*Type]
}

func (i *Interface) Name() string      { return declaredName(i.facts.Name()) }
func (i *Interface) LowerName() string { return CamelCase(i.Name()) }
func (i *Interface) FullName() string  { return i.facts.FullName() }
func (i *Interface) Namespace() string { return i.facts.Namespace() }
func (i *Interface) IsGeneric() bool   { return i.facts.IsGeneric() }

// ContainingClass returns the enclosing class of a nested interface, or nil.
func (i *Interface) ContainingClass() *Class {
	return i.containingClass.get(func() *Class {
		return i.model.relatedClass(i.facts.ContainingClass(), i)
	})
}

func (i *Interface) Type() *Type {
	return i.typ.get(func() *Type {
		return i.model.typeOf(i.facts.Type(), i.Parent())
	})
}

// InheritedNames returns the names of every extended interface.
func (i *Interface) InheritedNames() []string { return interfaceNames(i.facts.Interfaces()) }

func (i *Interface) DisplayString() string { return i.Name() }
func (i *Interface) Shape() string         { return ShapeInterface }
