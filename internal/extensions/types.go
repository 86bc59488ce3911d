// Package extensions provides the built-in extension functions and
// predicates templates can call on top of the code model members.
package extensions

import (
	"strings"

	"github.com/google/uuid"

	"codewriter/internal/codemodel"
)

// Default returns the TypeScript literal a value of t starts with.
func Default(t *codemodel.Type) string {
	switch {
	case t.IsNullable():
		return "null"
	case t.IsDictionary():
		return "{}"
	case t.IsDynamic():
		return "null"
	case t.IsEnumerable():
		return "[]"
	case strings.EqualFold(t.Name(), "boolean"):
		return "false"
	case strings.EqualFold(t.Name(), "number"):
		return "0"
	case strings.EqualFold(t.Name(), "void"):
		return "void(0)"
	}

	quote := string(literalChar(t))
	switch {
	case t.IsGuid():
		return quote + uuid.Nil.String() + quote
	case t.IsDate():
		return "new Date(0)"
	case t.IsEnum():
		return t.DefaultValue()
	case t.IsTimeSpan():
		return quote + "00:00:00" + quote
	case strings.EqualFold(t.Name(), "string"):
		return quote + quote
	}
	return "new " + t.Name() + "()"
}

func literalChar(t *codemodel.Type) rune {
	if s := t.Settings(); s != nil && s.StringLiteralCharacter != 0 {
		return s.StringLiteralCharacter
	}
	return '"'
}

// ClassName returns the name of t without array brackets, parentheses and
// the " | null" suffix.
func ClassName(t *codemodel.Type) string {
	name := strings.ReplaceAll(t.Name(), " | null", "")
	name = strings.NewReplacer("(", "", ")", "").Replace(name)
	return strings.TrimRight(name, "[]")
}

// Unwrap returns the first type argument of a generic type, or t itself.
func Unwrap(t *codemodel.Type) *codemodel.Type {
	if args := t.TypeArguments(); t.IsGeneric() && args.Len() > 0 {
		return args.At(0)
	}
	return t
}
