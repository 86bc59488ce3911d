package metadata

import (
	"path/filepath"
	"strings"
)

type fileFacts struct {
	spec *FileSpec
}

func (f *fileFacts) Name() string     { return filepath.Base(f.spec.Path) }
func (f *fileFacts) FullName() string { return f.spec.Path }

func (f *fileFacts) Classes() []ClassFacts {
	out := make([]ClassFacts, 0, len(f.spec.Classes))
	for _, d := range f.spec.Classes {
		out = append(out, &declFacts{spec: d})
	}
	return out
}

func (f *fileFacts) Records() []RecordFacts {
	out := make([]RecordFacts, 0, len(f.spec.Records))
	for _, d := range f.spec.Records {
		out = append(out, &declFacts{spec: d})
	}
	return out
}

func (f *fileFacts) Delegates() []DelegateFacts { return delegates(f.spec.Delegates) }
func (f *fileFacts) Enums() []EnumFacts         { return enums(f.spec.Enums) }
func (f *fileFacts) Interfaces() []InterfaceFacts {
	return interfaces(f.spec.Interfaces)
}

// declFacts serves every declaration kind and every type usage. Methods that
// do not apply to the spec's kind return zero values.
type declFacts struct {
	spec *DeclSpec
}

func (d *declFacts) Name() string {
	if d.spec.Name != "" {
		return d.spec.Name
	}
	if d.spec.target != nil {
		return (&declFacts{spec: d.spec.target}).Name()
	}
	full := d.spec.fullName()
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}

func (d *declFacts) FullName() string   { return d.spec.fullName() }
func (d *declFacts) DocComment() string { return d.spec.structure().Doc }

func (d *declFacts) Attributes() []AttributeFacts {
	return attributes(d.spec.structure().Attributes)
}

func (d *declFacts) FileLocations() []string { return d.spec.structure().Locations }

func (d *declFacts) Namespace() string {
	if d.spec.Namespace != "" {
		return d.spec.Namespace
	}
	return d.spec.structure().Namespace
}

func (d *declFacts) AssemblyName() string {
	if d.spec.Assembly != "" {
		return d.spec.Assembly
	}
	return d.spec.structure().Assembly
}

func (d *declFacts) IsAbstract() bool { return d.spec.structure().Abstract }

func (d *declFacts) IsGeneric() bool {
	return d.spec.Generic || len(d.spec.TypeArguments) > 0 || len(d.spec.structure().TypeParameters) > 0
}

// Type returns the declaration viewed as a type, or the return type for a
// delegate.
func (d *declFacts) Type() TypeFacts {
	if d.spec.structure().Kind == KindDelegate {
		return typeOrNil(d.spec.structure().Returns)
	}
	return d
}

func (d *declFacts) BaseClass() ClassFacts {
	if b := d.spec.structure().Base; b != nil {
		return &declFacts{spec: b}
	}
	return nil
}

func (d *declFacts) ContainingClass() ClassFacts {
	if c := d.spec.structure().Containing; c != nil {
		return &declFacts{spec: c}
	}
	return nil
}

func (d *declFacts) BaseRecord() RecordFacts {
	if b := d.spec.structure().Base; b != nil {
		return &declFacts{spec: b}
	}
	return nil
}

func (d *declFacts) ContainingRecord() RecordFacts {
	if c := d.spec.structure().Containing; c != nil {
		return &declFacts{spec: c}
	}
	return nil
}

func (d *declFacts) Constants() []ConstantFacts {
	list := d.spec.structure().Constants
	out := make([]ConstantFacts, 0, len(list))
	for _, m := range list {
		out = append(out, &memberFacts{spec: m})
	}
	return out
}

func (d *declFacts) Delegates() []DelegateFacts { return delegates(d.spec.structure().Delegates) }

func (d *declFacts) Events() []EventFacts {
	list := d.spec.structure().Events
	out := make([]EventFacts, 0, len(list))
	for _, m := range list {
		out = append(out, &memberFacts{spec: m})
	}
	return out
}

func (d *declFacts) Fields() []FieldFacts { return fields(d.spec.structure().Fields) }

func (d *declFacts) Interfaces() []InterfaceFacts {
	return interfaces(d.spec.structure().Interfaces)
}

func (d *declFacts) Methods() []MethodFacts {
	list := d.spec.structure().Methods
	out := make([]MethodFacts, 0, len(list))
	for _, m := range list {
		out = append(out, &memberFacts{spec: m})
	}
	return out
}

func (d *declFacts) Properties() []PropertyFacts {
	list := d.spec.structure().Properties
	out := make([]PropertyFacts, 0, len(list))
	for _, m := range list {
		out = append(out, &memberFacts{spec: m})
	}
	return out
}

func (d *declFacts) StaticReadOnlyFields() []StaticReadOnlyFieldFacts {
	list := d.spec.structure().StaticReadOnlyFields
	out := make([]StaticReadOnlyFieldFacts, 0, len(list))
	for _, m := range list {
		out = append(out, &memberFacts{spec: m})
	}
	return out
}

func (d *declFacts) TypeParameters() []TypeParameterFacts {
	return typeParameters(d.spec.structure().TypeParameters)
}

func (d *declFacts) TypeArguments() []TypeFacts {
	out := make([]TypeFacts, 0, len(d.spec.TypeArguments))
	for _, a := range d.spec.TypeArguments {
		out = append(out, &declFacts{spec: a})
	}
	return out
}

func (d *declFacts) NestedClasses() []ClassFacts {
	list := d.spec.structure().NestedClasses
	out := make([]ClassFacts, 0, len(list))
	for _, n := range list {
		out = append(out, &declFacts{spec: n})
	}
	return out
}

func (d *declFacts) NestedEnums() []EnumFacts { return enums(d.spec.structure().NestedEnums) }

func (d *declFacts) NestedInterfaces() []InterfaceFacts {
	return interfaces(d.spec.structure().NestedInterfaces)
}

func (d *declFacts) IsDictionary() bool { return d.spec.Dictionary }
func (d *declFacts) IsDynamic() bool    { return d.spec.Dynamic }
func (d *declFacts) IsEnumerable() bool { return d.spec.Enumerable }
func (d *declFacts) IsNullable() bool   { return d.spec.Nullable }
func (d *declFacts) IsTask() bool       { return d.spec.Task }
func (d *declFacts) IsValueTuple() bool { return d.spec.ValueTuple }

func (d *declFacts) IsEnum() bool {
	return d.spec.Enum || d.spec.structure().Kind == KindEnum
}

func (d *declFacts) IsDefined() bool {
	return d.spec.Defined || d.spec.target != nil || d.spec.Kind != ""
}

func (d *declFacts) TupleElements() []FieldFacts { return fields(d.spec.TupleElements) }
func (d *declFacts) DefaultValue() string        { return d.spec.DefaultValue }

func (d *declFacts) Values() []EnumValueFacts {
	list := d.spec.structure().Values
	out := make([]EnumValueFacts, 0, len(list))
	for _, v := range list {
		out = append(out, &enumValueFacts{spec: v, owner: d.FullName()})
	}
	return out
}

func (d *declFacts) Parameters() []ParameterFacts {
	return parameters(d.spec.structure().Parameters)
}

// memberFacts serves properties, fields, constants, events, methods and
// parameters.
type memberFacts struct {
	spec *MemberSpec
}

func (m *memberFacts) Name() string { return m.spec.Name }

func (m *memberFacts) FullName() string {
	if m.spec.FullName != "" {
		return m.spec.FullName
	}
	return m.spec.Name
}

func (m *memberFacts) DocComment() string           { return m.spec.Doc }
func (m *memberFacts) Attributes() []AttributeFacts { return attributes(m.spec.Attributes) }
func (m *memberFacts) FileLocations() []string      { return m.spec.Locations }
func (m *memberFacts) AssemblyName() string         { return m.spec.Assembly }
func (m *memberFacts) Type() TypeFacts              { return typeOrNil(m.spec.Type) }
func (m *memberFacts) IsAbstract() bool             { return m.spec.Abstract }
func (m *memberFacts) IsVirtual() bool              { return m.spec.Virtual }
func (m *memberFacts) HasGetter() bool              { return !m.spec.WriteOnly }
func (m *memberFacts) HasSetter() bool              { return !m.spec.ReadOnly }
func (m *memberFacts) Value() string                { return m.spec.Value }
func (m *memberFacts) HasDefaultValue() bool        { return m.spec.HasDefault }
func (m *memberFacts) DefaultValue() string         { return m.spec.Default }

func (m *memberFacts) IsGeneric() bool {
	return m.spec.Generic || len(m.spec.TypeParameters) > 0
}

func (m *memberFacts) Parameters() []ParameterFacts { return parameters(m.spec.Parameters) }

func (m *memberFacts) TypeParameters() []TypeParameterFacts {
	return typeParameters(m.spec.TypeParameters)
}

type enumValueFacts struct {
	spec  *EnumValueSpec
	owner string
}

func (v *enumValueFacts) Name() string { return v.spec.Name }

func (v *enumValueFacts) FullName() string {
	if v.spec.FullName != "" {
		return v.spec.FullName
	}
	if v.owner != "" {
		return v.owner + "." + v.spec.Name
	}
	return v.spec.Name
}

func (v *enumValueFacts) DocComment() string           { return v.spec.Doc }
func (v *enumValueFacts) Attributes() []AttributeFacts { return attributes(v.spec.Attributes) }
func (v *enumValueFacts) Value() int64                 { return v.spec.Value }

type attributeFacts struct {
	spec *AttributeSpec
}

func (a *attributeFacts) Name() string { return a.spec.Name }

func (a *attributeFacts) FullName() string {
	if a.spec.FullName != "" {
		return a.spec.FullName
	}
	return a.spec.Name
}

func (a *attributeFacts) Arguments() []AttributeArgumentFacts {
	out := make([]AttributeArgumentFacts, 0, len(a.spec.Arguments))
	for _, arg := range a.spec.Arguments {
		out = append(out, &argumentFacts{spec: arg})
	}
	return out
}

type argumentFacts struct {
	spec *ArgumentSpec
}

func (a *argumentFacts) Name() string         { return a.spec.Name }
func (a *argumentFacts) Type() TypeFacts      { return typeOrNil(a.spec.Type) }
func (a *argumentFacts) TypeValue() TypeFacts { return typeOrNil(a.spec.TypeValue) }
func (a *argumentFacts) Value() any           { return a.spec.Value }

type typeParameterFacts string

func (t typeParameterFacts) Name() string { return string(t) }

// typeOrNil keeps a nil spec from turning into a non-nil interface value.
func typeOrNil(d *DeclSpec) TypeFacts {
	if d == nil {
		return nil
	}
	return &declFacts{spec: d}
}

func attributes(list []*AttributeSpec) []AttributeFacts {
	out := make([]AttributeFacts, 0, len(list))
	for _, a := range list {
		out = append(out, &attributeFacts{spec: a})
	}
	return out
}

func delegates(list []*DeclSpec) []DelegateFacts {
	out := make([]DelegateFacts, 0, len(list))
	for _, d := range list {
		out = append(out, &declFacts{spec: d})
	}
	return out
}

func enums(list []*DeclSpec) []EnumFacts {
	out := make([]EnumFacts, 0, len(list))
	for _, d := range list {
		out = append(out, &declFacts{spec: d})
	}
	return out
}

func interfaces(list []*DeclSpec) []InterfaceFacts {
	out := make([]InterfaceFacts, 0, len(list))
	for _, d := range list {
		out = append(out, &declFacts{spec: d})
	}
	return out
}

func fields(list []*MemberSpec) []FieldFacts {
	out := make([]FieldFacts, 0, len(list))
	for _, m := range list {
		out = append(out, &memberFacts{spec: m})
	}
	return out
}

func parameters(list []*MemberSpec) []ParameterFacts {
	out := make([]ParameterFacts, 0, len(list))
	for _, m := range list {
		out = append(out, &memberFacts{spec: m})
	}
	return out
}

func typeParameters(names []string) []TypeParameterFacts {
	out := make([]TypeParameterFacts, 0, len(names))
	for _, n := range names {
		out = append(out, typeParameterFacts(n))
	}
	return out
}
