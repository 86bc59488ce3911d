package codemodel

import (
	"strings"

	"codewriter/internal/config"
	"codewriter/internal/metadata"
)

// Type is a classified type usage. Name is the projected TypeScript name;
// OriginalName is the source spelling.
type Type struct {
	classBody
	facts metadata.TypeFacts

	name          memo[string]
	originalName  memo[string]
	tupleElements memo[*List[*Field]]
}

func (t *Type) Name() string {
	return t.name.get(func() string {
		return declaredName(TypeScriptName(t.facts, t.settings()))
	})
}

func (t *Type) LowerName() string { return CamelCase(t.Name()) }

func (t *Type) OriginalName() string {
	return t.originalName.get(func() string { return originalName(t.facts) })
}

func (t *Type) FullName() string        { return t.facts.FullName() }
func (t *Type) Namespace() string       { return t.facts.Namespace() }
func (t *Type) AssemblyName() string    { return t.facts.AssemblyName() }
func (t *Type) FileLocations() []string { return t.facts.FileLocations() }
func (t *Type) IsAbstract() bool        { return t.facts.IsAbstract() }
func (t *Type) IsDictionary() bool      { return t.facts.IsDictionary() }
func (t *Type) IsDynamic() bool         { return t.facts.IsDynamic() }
func (t *Type) IsGeneric() bool         { return t.facts.IsGeneric() }
func (t *Type) IsEnum() bool            { return t.facts.IsEnum() }
func (t *Type) IsEnumerable() bool      { return isEnumerable(t.facts) }
func (t *Type) IsNullable() bool        { return t.facts.IsNullable() }
func (t *Type) IsTask() bool            { return t.facts.IsTask() }
func (t *Type) IsPrimitive() bool       { return isPrimitive(t.facts) }
func (t *Type) IsDefined() bool         { return t.facts.IsDefined() }
func (t *Type) IsValueTuple() bool      { return t.facts.IsValueTuple() }

// Settings returns the settings the type projects with.
func (t *Type) Settings() *config.Settings { return t.settings() }

// IsDate reports whether the type is DateTime or DateTimeOffset.
func (t *Type) IsDate() bool {
	return t.fullNameIs("System.DateTime", "System.DateTimeOffset")
}

// IsGuid reports whether the type is Guid.
func (t *Type) IsGuid() bool { return t.fullNameIs("System.Guid") }

// IsTimeSpan reports whether the type is TimeSpan.
func (t *Type) IsTimeSpan() bool { return t.fullNameIs("System.TimeSpan") }

// fullNameIs compares the full name, nullable or not, against names.
func (t *Type) fullNameIs(names ...string) bool {
	full := t.FullName()
	for _, n := range names {
		if strings.EqualFold(full, n) || strings.EqualFold(full, n+"?") {
			return true
		}
	}
	return false
}

// DefaultValue returns the declared default literal. Enums without one
// default to their first member.
func (t *Type) DefaultValue() string {
	if v := t.facts.DefaultValue(); v != "" {
		return v
	}
	if !t.IsEnum() || t.IsNullable() {
		return ""
	}
	values, ok := underlying(t.facts).(interface {
		Values() []metadata.EnumValueFacts
	})
	if !ok {
		return ""
	}
	members := values.Values()
	if len(members) == 0 {
		return "enum should contain minimum one enum value"
	}
	return strings.TrimSuffix(t.facts.Name(), "?") + "." + members[0].Name()
}

// TupleElements returns the named elements of a value tuple.
func (t *Type) TupleElements() *List[*Field] {
	return t.tupleElements.get(func() *List[*Field] {
		return t.model.fields(t.facts.TupleElements(), t)
	})
}

func (t *Type) DisplayString() string { return t.Name() }
func (t *Type) Shape() string         { return ShapeType }

// underlying peels normalization wrappers off f.
func underlying(f metadata.TypeFacts) metadata.TypeFacts {
	for {
		switch n := f.(type) {
		case *normalizedType:
			f = n.TypeFacts
		case *voidTask:
			f = n.TypeFacts
		default:
			return f
		}
	}
}
