package codemodel

import (
	"fmt"
	"strconv"
	"strings"

	"codewriter/internal/metadata"
)

// Attribute is one attribute application.
type Attribute struct {
	node
	facts metadata.AttributeFacts

	value     memo[string]
	arguments memo[*List[*AttributeArgument]]
}

func (a *Attribute) Name() string      { return declaredName(a.facts.Name()) }
func (a *Attribute) LowerName() string { return CamelCase(a.Name()) }
func (a *Attribute) FullName() string  { return a.facts.FullName() }

// Value is the argument list as source text, with the quotes of a lone
// string argument removed: [Name("x")] has value x, [Range(1, 2)] has
// value 1, 2.
func (a *Attribute) Value() string {
	return a.value.get(func() string {
		return unquoteValue(argumentList(a.facts.Arguments()))
	})
}

func (a *Attribute) Arguments() *List[*AttributeArgument] {
	return a.arguments.get(func() *List[*AttributeArgument] {
		return a.model.attributeArguments(a.facts.Arguments(), a)
	})
}

func (a *Attribute) DisplayString() string { return a.Name() }
func (a *Attribute) Shape() string         { return ShapeAttribute }

// AttributeArgument is one argument of an attribute application.
type AttributeArgument struct {
	node
	facts metadata.AttributeArgumentFacts

	typ       memo[*Type]
	typeValue memo[*Type]
}

// Name is empty for positional arguments.
func (a *AttributeArgument) Name() string { return a.facts.Name() }

func (a *AttributeArgument) Type() *Type {
	return a.typ.get(func() *Type { return a.model.typeOf(a.facts.Type(), a) })
}

// TypeValue is the type named by a typeof argument, or nil.
func (a *AttributeArgument) TypeValue() *Type {
	return a.typeValue.get(func() *Type { return a.model.typeOf(a.facts.TypeValue(), a) })
}

// Value is the raw argument value.
func (a *AttributeArgument) Value() any { return a.facts.Value() }

func (a *AttributeArgument) DisplayString() string { return argumentText(a.facts) }
func (a *AttributeArgument) Shape() string         { return ShapeAttributeArgument }

// argumentList renders positional arguments followed by named ones.
func argumentList(args []metadata.AttributeArgumentFacts) string {
	var positional, named []string
	for _, arg := range args {
		if arg.Name() == "" {
			positional = append(positional, argumentText(arg))
			continue
		}
		named = append(named, arg.Name()+" = "+argumentText(arg))
	}
	return strings.Join(append(positional, named...), ", ")
}

func argumentText(arg metadata.AttributeArgumentFacts) string {
	if tv := arg.TypeValue(); tv != nil {
		return "typeof(" + declaredName(tv.Name()) + ")"
	}
	return literal(arg.Value())
}

// literal renders an argument value as source text.
func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, literal(e))
		}
		return strings.Join(parts, ", ")
	case []string:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, strconv.Quote(e))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

// unquoteValue strips the quotes around a value that is one string literal.
func unquoteValue(value string) string {
	if len(value) < 2 || !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return value
	}
	trimmed := value[1 : len(value)-1]
	if strings.Contains(strings.ReplaceAll(trimmed, `\"`, ""), `"`) {
		return value
	}
	return trimmed
}
