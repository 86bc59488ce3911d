package codemodel

// Shapes name the node kinds. Collections use the item shape plus
// "Collection", e.g. "ClassCollection".
const (
	ShapeFile                = "File"
	ShapeClass               = "Class"
	ShapeRecord              = "Record"
	ShapeInterface           = "Interface"
	ShapeDelegate            = "Delegate"
	ShapeEnum                = "Enum"
	ShapeEnumValue           = "EnumValue"
	ShapeProperty            = "Property"
	ShapeField               = "Field"
	ShapeConstant            = "Constant"
	ShapeStaticReadOnlyField = "StaticReadOnlyField"
	ShapeEvent               = "Event"
	ShapeMethod              = "Method"
	ShapeParameter           = "Parameter"
	ShapeTypeParameter       = "TypeParameter"
	ShapeType                = "Type"
	ShapeAttribute           = "Attribute"
	ShapeAttributeArgument   = "AttributeArgument"
	ShapeDocComment          = "DocComment"
	ShapeParameterComment    = "ParameterComment"
)

// Accessor reads one zero-argument member of an item. Absent references
// come back as untyped nil.
type Accessor func(Item) any

// Accessors returns the member table of every shape: shape -> identifier ->
// accessor. Every shape also publishes Parent. The returned maps are shared
// and must not be modified.
func Accessors() map[string]map[string]Accessor { return accessors }

var accessors = withParent(map[string]map[string]Accessor{
	ShapeFile: {
		"Name":       value((*File).Name),
		"FullName":   value((*File).FullName),
		"Classes":    value((*File).Classes),
		"Records":    value((*File).Records),
		"Delegates":  value((*File).Delegates),
		"Enums":      value((*File).Enums),
		"Interfaces": value((*File).Interfaces),
	},
	ShapeClass: {
		"Name":                 value((*Class).Name),
		"name":                 value((*Class).LowerName),
		"FullName":             value((*Class).FullName),
		"Namespace":            value((*Class).Namespace),
		"AssemblyName":         value((*Class).AssemblyName),
		"IsAbstract":           value((*Class).IsAbstract),
		"IsGeneric":            value((*Class).IsGeneric),
		"Attributes":           value((*Class).Attributes),
		"DocComment":           ref((*Class).DocComment),
		"BaseClass":            ref((*Class).BaseClass),
		"ContainingClass":      ref((*Class).ContainingClass),
		"Constants":            value((*Class).Constants),
		"Delegates":            value((*Class).Delegates),
		"Events":               value((*Class).Events),
		"Fields":               value((*Class).Fields),
		"Interfaces":           value((*Class).Interfaces),
		"Methods":              value((*Class).Methods),
		"Properties":           value((*Class).Properties),
		"StaticReadOnlyFields": value((*Class).StaticReadOnlyFields),
		"NestedClasses":        value((*Class).NestedClasses),
		"NestedEnums":          value((*Class).NestedEnums),
		"NestedInterfaces":     value((*Class).NestedInterfaces),
		"TypeParameters":       value((*Class).TypeParameters),
		"TypeArguments":        value((*Class).TypeArguments),
		"Type":                 ref((*Class).Type),
	},
	ShapeRecord: {
		"Name":             value((*Record).Name),
		"name":             value((*Record).LowerName),
		"FullName":         value((*Record).FullName),
		"Namespace":        value((*Record).Namespace),
		"AssemblyName":     value((*Record).AssemblyName),
		"IsAbstract":       value((*Record).IsAbstract),
		"IsGeneric":        value((*Record).IsGeneric),
		"Attributes":       value((*Record).Attributes),
		"DocComment":       ref((*Record).DocComment),
		"BaseRecord":       ref((*Record).BaseRecord),
		"ContainingRecord": ref((*Record).ContainingRecord),
		"Constants":        value((*Record).Constants),
		"Delegates":        value((*Record).Delegates),
		"Events":           value((*Record).Events),
		"Fields":           value((*Record).Fields),
		"Interfaces":       value((*Record).Interfaces),
		"Methods":          value((*Record).Methods),
		"Properties":       value((*Record).Properties),
		"TypeParameters":   value((*Record).TypeParameters),
		"TypeArguments":    value((*Record).TypeArguments),
		"Type":             ref((*Record).Type),
	},
	ShapeInterface: {
		"Name":            value((*Interface).Name),
		"name":            value((*Interface).LowerName),
		"FullName":        value((*Interface).FullName),
		"Namespace":       value((*Interface).Namespace),
		"IsGeneric":       value((*Interface).IsGeneric),
		"Attributes":      value((*Interface).Attributes),
		"DocComment":      ref((*Interface).DocComment),
		"ContainingClass": ref((*Interface).ContainingClass),
		"Events":          value((*Interface).Events),
		"Interfaces":      value((*Interface).Interfaces),
		"Methods":         value((*Interface).Methods),
		"Properties":      value((*Interface).Properties),
		"TypeParameters":  value((*Interface).TypeParameters),
		"TypeArguments":   value((*Interface).TypeArguments),
		"Type":            ref((*Interface).Type),
	},
	ShapeDelegate: {
		"Name":           value((*Delegate).Name),
		"name":           value((*Delegate).LowerName),
		"FullName":       value((*Delegate).FullName),
		"IsGeneric":      value((*Delegate).IsGeneric),
		"Attributes":     value((*Delegate).Attributes),
		"DocComment":     ref((*Delegate).DocComment),
		"Parameters":     value((*Delegate).Parameters),
		"TypeParameters": value((*Delegate).TypeParameters),
		"Type":           ref((*Delegate).Type),
	},
	ShapeEnum: {
		"Name":            value((*Enum).Name),
		"name":            value((*Enum).LowerName),
		"FullName":        value((*Enum).FullName),
		"Namespace":       value((*Enum).Namespace),
		"IsFlags":         value((*Enum).IsFlags),
		"Attributes":      value((*Enum).Attributes),
		"DocComment":      ref((*Enum).DocComment),
		"Values":          value((*Enum).Values),
		"ContainingClass": ref((*Enum).ContainingClass),
		"Type":            ref((*Enum).Type),
	},
	ShapeEnumValue: {
		"Name":       value((*EnumValue).Name),
		"name":       value((*EnumValue).LowerName),
		"FullName":   value((*EnumValue).FullName),
		"Value":      value((*EnumValue).Value),
		"Attributes": value((*EnumValue).Attributes),
		"DocComment": ref((*EnumValue).DocComment),
	},
	ShapeProperty: {
		"Name":         value((*Property).Name),
		"name":         value((*Property).LowerName),
		"FullName":     value((*Property).FullName),
		"AssemblyName": value((*Property).AssemblyName),
		"HasGetter":    value((*Property).HasGetter),
		"HasSetter":    value((*Property).HasSetter),
		"IsAbstract":   value((*Property).IsAbstract),
		"IsVirtual":    value((*Property).IsVirtual),
		"Attributes":   value((*Property).Attributes),
		"DocComment":   ref((*Property).DocComment),
		"Type":         ref((*Property).Type),
	},
	ShapeField: {
		"Name":         value((*Field).Name),
		"name":         value((*Field).LowerName),
		"FullName":     value((*Field).FullName),
		"AssemblyName": value((*Field).AssemblyName),
		"Attributes":   value((*Field).Attributes),
		"DocComment":   ref((*Field).DocComment),
		"Type":         ref((*Field).Type),
	},
	ShapeConstant: {
		"Name":       value((*Constant).Name),
		"name":       value((*Constant).LowerName),
		"FullName":   value((*Constant).FullName),
		"Value":      value((*Constant).Value),
		"Attributes": value((*Constant).Attributes),
		"DocComment": ref((*Constant).DocComment),
		"Type":       ref((*Constant).Type),
	},
	ShapeStaticReadOnlyField: {
		"Name":         value((*StaticReadOnlyField).Name),
		"name":         value((*StaticReadOnlyField).LowerName),
		"FullName":     value((*StaticReadOnlyField).FullName),
		"AssemblyName": value((*StaticReadOnlyField).AssemblyName),
		"Value":        value((*StaticReadOnlyField).Value),
		"Attributes":   value((*StaticReadOnlyField).Attributes),
		"DocComment":   ref((*StaticReadOnlyField).DocComment),
		"Type":         ref((*StaticReadOnlyField).Type),
	},
	ShapeEvent: {
		"Name":       value((*Event).Name),
		"name":       value((*Event).LowerName),
		"FullName":   value((*Event).FullName),
		"Attributes": value((*Event).Attributes),
		"DocComment": ref((*Event).DocComment),
		"Type":       ref((*Event).Type),
	},
	ShapeMethod: {
		"Name":           value((*Method).Name),
		"name":           value((*Method).LowerName),
		"FullName":       value((*Method).FullName),
		"AssemblyName":   value((*Method).AssemblyName),
		"IsAbstract":     value((*Method).IsAbstract),
		"IsGeneric":      value((*Method).IsGeneric),
		"Attributes":     value((*Method).Attributes),
		"DocComment":     ref((*Method).DocComment),
		"Parameters":     value((*Method).Parameters),
		"TypeParameters": value((*Method).TypeParameters),
		"Type":           ref((*Method).Type),
	},
	ShapeParameter: {
		"Name":            value((*Parameter).Name),
		"name":            value((*Parameter).LowerName),
		"FullName":        value((*Parameter).FullName),
		"AssemblyName":    value((*Parameter).AssemblyName),
		"HasDefaultValue": value((*Parameter).HasDefaultValue),
		"DefaultValue":    value((*Parameter).DefaultValue),
		"Attributes":      value((*Parameter).Attributes),
		"Type":            ref((*Parameter).Type),
	},
	ShapeTypeParameter: {
		"Name":     value((*TypeParameter).Name),
		"name":     value((*TypeParameter).LowerName),
		"FullName": value((*TypeParameter).FullName),
	},
	ShapeType: {
		"Name":                 value((*Type).Name),
		"name":                 value((*Type).LowerName),
		"OriginalName":         value((*Type).OriginalName),
		"FullName":             value((*Type).FullName),
		"Namespace":            value((*Type).Namespace),
		"AssemblyName":         value((*Type).AssemblyName),
		"IsAbstract":           value((*Type).IsAbstract),
		"IsDate":               value((*Type).IsDate),
		"IsDefined":            value((*Type).IsDefined),
		"IsDictionary":         value((*Type).IsDictionary),
		"IsDynamic":            value((*Type).IsDynamic),
		"IsEnum":               value((*Type).IsEnum),
		"IsEnumerable":         value((*Type).IsEnumerable),
		"IsGeneric":            value((*Type).IsGeneric),
		"IsGuid":               value((*Type).IsGuid),
		"IsNullable":           value((*Type).IsNullable),
		"IsPrimitive":          value((*Type).IsPrimitive),
		"IsTask":               value((*Type).IsTask),
		"IsTimeSpan":           value((*Type).IsTimeSpan),
		"IsValueTuple":         value((*Type).IsValueTuple),
		"DefaultValue":         value((*Type).DefaultValue),
		"TupleElements":        value((*Type).TupleElements),
		"Attributes":           value((*Type).Attributes),
		"DocComment":           ref((*Type).DocComment),
		"BaseClass":            ref((*Type).BaseClass),
		"ContainingClass":      ref((*Type).ContainingClass),
		"Constants":            value((*Type).Constants),
		"Delegates":            value((*Type).Delegates),
		"Events":               value((*Type).Events),
		"Fields":               value((*Type).Fields),
		"Interfaces":           value((*Type).Interfaces),
		"Methods":              value((*Type).Methods),
		"Properties":           value((*Type).Properties),
		"StaticReadOnlyFields": value((*Type).StaticReadOnlyFields),
		"NestedClasses":        value((*Type).NestedClasses),
		"NestedEnums":          value((*Type).NestedEnums),
		"NestedInterfaces":     value((*Type).NestedInterfaces),
		"TypeParameters":       value((*Type).TypeParameters),
		"TypeArguments":        value((*Type).TypeArguments),
	},
	ShapeAttribute: {
		"Name":      value((*Attribute).Name),
		"name":      value((*Attribute).LowerName),
		"FullName":  value((*Attribute).FullName),
		"Value":     value((*Attribute).Value),
		"Arguments": value((*Attribute).Arguments),
	},
	ShapeAttributeArgument: {
		"Name":      value((*AttributeArgument).Name),
		"Type":      ref((*AttributeArgument).Type),
		"TypeValue": ref((*AttributeArgument).TypeValue),
		"Value":     value((*AttributeArgument).Value),
	},
	ShapeDocComment: {
		"Summary":    value((*DocComment).Summary),
		"Returns":    value((*DocComment).Returns),
		"Parameters": value((*DocComment).Parameters),
	},
	ShapeParameterComment: {
		"Name":        value((*ParameterComment).Name),
		"Description": value((*ParameterComment).Description),
	},
})

func withParent(tables map[string]map[string]Accessor) map[string]map[string]Accessor {
	for _, t := range tables {
		t["Parent"] = func(it Item) any {
			if p := it.Parent(); p != nil {
				return p
			}
			return nil
		}
	}
	return tables
}

// value binds an accessor whose result is never a nil reference.
func value[T Item, R any](f func(T) R) Accessor {
	return func(it Item) any { return f(it.(T)) }
}

// ref binds an accessor returning a pointer that may be nil.
func ref[T Item, R comparable](f func(T) R) Accessor {
	return func(it Item) any {
		var zero R
		if v := f(it.(T)); v != zero {
			return v
		}
		return nil
	}
}
