package codemodel

import (
	"strings"

	"codewriter/internal/config"
	"codewriter/internal/metadata"
)

// primitiveTypes maps primitive full names to their source aliases.
var primitiveTypes = map[string]string{
	"system.boolean":        "bool",
	"system.byte":           "byte",
	"system.char":           "char",
	"system.decimal":        "decimal",
	"system.double":         "double",
	"system.int16":          "short",
	"system.int32":          "int",
	"system.int64":          "long",
	"system.sbyte":          "sbyte",
	"system.single":         "float",
	"system.string":         "string",
	"system.uint32":         "uint",
	"system.uint16":         "ushort",
	"system.uint64":         "ulong",
	"system.datetime":       "DateTime",
	"system.datetimeoffset": "DateTimeOffset",
	"system.guid":           "Guid",
	"system.timespan":       "TimeSpan",
}

func primitiveAlias(fullName string) (string, bool) {
	alias, ok := primitiveTypes[strings.ToLower(fullName)]
	return alias, ok
}

// TypeScriptName projects a type usage to its TypeScript name. Nil facts
// project to "any".
func TypeScriptName(f metadata.TypeFacts, settings *config.Settings) string {
	if f == nil {
		return "any"
	}
	if settings == nil {
		settings = config.New()
	}
	f = normalize(f)

	if f.IsDictionary() {
		args := f.TypeArguments()
		if len(args) == 2 {
			return record(args[0], args[1], settings)
		}
		return "Record<any, any>"
	}

	if f.IsDynamic() {
		return "any"
	}

	if isEnumerable(f) {
		args := f.TypeArguments()
		if len(args) == 0 {
			args = elementTypes(f)
			for _, a := range args {
				if strings.EqualFold(a.FullName(), f.FullName()) {
					return "any[]"
				}
			}
		}

		switch len(args) {
		case 1:
			name := TypeScriptName(args[0], settings)
			if strings.Contains(name, "|") {
				name = "(" + name + ")"
			}
			return name + "[]"
		case 2:
			return record(args[0], args[1], settings)
		}
		return "any[]"
	}

	if f.IsValueTuple() {
		elems := f.TupleElements()
		parts := make([]string, 0, len(elems))
		for _, e := range elems {
			parts = append(parts, e.Name()+": "+TypeScriptName(e.Type(), settings))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}

	if f.IsGeneric() {
		args := f.TypeArguments()
		names := make([]string, 0, len(args))
		for _, a := range args {
			names = append(names, TypeScriptName(a, settings))
		}
		return strings.TrimSuffix(f.Name(), "?") + "<" + strings.Join(names, ", ") + ">"
	}

	return extractTypeScriptName(f, settings)
}

// elementTypes finds the element types of an enumerable without its own type
// arguments: those of a generic base class, else of the first generic
// interface.
func elementTypes(f metadata.TypeFacts) []metadata.TypeFacts {
	if base := f.BaseClass(); base != nil && base.IsGeneric() {
		return base.TypeArguments()
	}
	for _, i := range f.Interfaces() {
		if i.IsGeneric() {
			return i.TypeArguments()
		}
	}
	return nil
}

func record(key, value metadata.TypeFacts, settings *config.Settings) string {
	return "Record<" + TypeScriptName(key, settings) + ", " + TypeScriptName(value, settings) + ">"
}

// extractTypeScriptName maps configured and primitive full names, falling
// back to the declared name.
func extractTypeScriptName(f metadata.TypeFacts, settings *config.Settings) string {
	fullName := strings.TrimSuffix(f.FullName(), "?")
	nullable := func(name string) string {
		if f.IsNullable() && settings.StrictNullGeneration {
			return name + " | null"
		}
		return name
	}

	if mapped, ok := settings.MapType(fullName); ok {
		return nullable(mapped)
	}

	switch fullName {
	case "System.Boolean":
		return nullable("boolean")
	case "System.String", "System.Char", "System.Guid", "System.TimeSpan":
		return nullable("string")
	case "System.Byte", "System.SByte", "System.Int16", "System.Int32", "System.Int64",
		"System.UInt16", "System.UInt32", "System.UInt64", "System.Single", "System.Double", "System.Decimal":
		return nullable("number")
	case "System.DateTime", "System.DateTimeOffset":
		return nullable("Date")
	case voidName:
		return "void"
	case "System.Object", "dynamic":
		return "any"
	}

	return strings.TrimSuffix(f.Name(), "?")
}

// originalName returns the source alias of a primitive type, or its name.
func originalName(f metadata.TypeFacts) string {
	fullName := f.FullName()
	if f.IsNullable() {
		fullName = strings.TrimSuffix(fullName, "?")
	}
	if alias, ok := primitiveAlias(fullName); ok {
		if f.IsNullable() {
			return alias + "?"
		}
		return alias
	}
	return f.Name()
}

// isPrimitive reports whether a type, or the element type of an enumerable,
// is an enum or a primitive.
func isPrimitive(f metadata.TypeFacts) bool {
	fullName := f.FullName()
	switch {
	case f.IsNullable():
		fullName = strings.TrimSuffix(fullName, "?")
	case isEnumerable(f):
		args := f.TypeArguments()
		if len(args) == 0 {
			return false
		}
		inner := normalize(args[0])
		fullName = strings.TrimSuffix(inner.FullName(), "?")
	}
	_, ok := primitiveAlias(fullName)
	return f.IsEnum() || ok
}

// isEnumerable excludes the string type, which facts may report as a
// sequence of characters.
func isEnumerable(f metadata.TypeFacts) bool {
	return f.IsEnumerable() && !isString(f.FullName())
}

func isString(fullName string) bool {
	name := strings.TrimSuffix(fullName, "?")
	return strings.EqualFold(name, "System.String") || strings.EqualFold(name, "string")
}
