package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownReference is returned when a type reference names a declaration
// the snapshot does not contain.
var ErrUnknownReference = errors.New("unknown type reference")

// Declaration kinds used in a snapshot document.
const (
	KindClass     = "class"
	KindInterface = "interface"
	KindRecord    = "record"
	KindEnum      = "enum"
	KindDelegate  = "delegate"
)

// Snapshot is a serializable set of facts: source files plus an index of
// shared type declarations. It implements the fact interfaces directly, so a
// snapshot written by hand, by the Go adapter or by any other extractor can
// feed the code model.
type Snapshot struct {
	Sources []*FileSpec `yaml:"files" json:"files"`
	Types   []*DeclSpec `yaml:"types,omitempty" json:"types,omitempty"`

	index map[string]*DeclSpec
}

// FileSpec is one source unit of a snapshot.
type FileSpec struct {
	Path       string      `yaml:"path" json:"path"`
	Classes    []*DeclSpec `yaml:"classes,omitempty" json:"classes,omitempty"`
	Records    []*DeclSpec `yaml:"records,omitempty" json:"records,omitempty"`
	Delegates  []*DeclSpec `yaml:"delegates,omitempty" json:"delegates,omitempty"`
	Enums      []*DeclSpec `yaml:"enums,omitempty" json:"enums,omitempty"`
	Interfaces []*DeclSpec `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
}

// DeclSpec describes either a declaration (class, interface, record, enum,
// delegate) or a usage of a type. A usage may set Ref to the full name of an
// indexed declaration; structural children then come from that declaration
// while the usage keeps its own flags and type arguments.
type DeclSpec struct {
	Name      string `yaml:"name,omitempty" json:"name,omitempty"`
	FullName  string `yaml:"fullName,omitempty" json:"fullName,omitempty"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Assembly  string `yaml:"assembly,omitempty" json:"assembly,omitempty"`
	Doc       string `yaml:"doc,omitempty" json:"doc,omitempty"`
	Kind      string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Ref       string `yaml:"ref,omitempty" json:"ref,omitempty"`

	Abstract   bool `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Generic    bool `yaml:"generic,omitempty" json:"generic,omitempty"`
	Defined    bool `yaml:"defined,omitempty" json:"defined,omitempty"`
	Nullable   bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Enumerable bool `yaml:"enumerable,omitempty" json:"enumerable,omitempty"`
	Dictionary bool `yaml:"dictionary,omitempty" json:"dictionary,omitempty"`
	Dynamic    bool `yaml:"dynamic,omitempty" json:"dynamic,omitempty"`
	Enum       bool `yaml:"enum,omitempty" json:"enum,omitempty"`
	Task       bool `yaml:"task,omitempty" json:"task,omitempty"`
	ValueTuple bool `yaml:"valueTuple,omitempty" json:"valueTuple,omitempty"`

	DefaultValue string   `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Locations    []string `yaml:"locations,omitempty" json:"locations,omitempty"`

	Attributes     []*AttributeSpec `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Base           *DeclSpec        `yaml:"base,omitempty" json:"base,omitempty"`
	Containing     *DeclSpec        `yaml:"containing,omitempty" json:"containing,omitempty"`
	Interfaces     []*DeclSpec      `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	TypeArguments  []*DeclSpec      `yaml:"typeArguments,omitempty" json:"typeArguments,omitempty"`
	TypeParameters []string         `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty"`
	TupleElements  []*MemberSpec    `yaml:"tupleElements,omitempty" json:"tupleElements,omitempty"`

	Constants            []*MemberSpec `yaml:"constants,omitempty" json:"constants,omitempty"`
	Fields               []*MemberSpec `yaml:"fields,omitempty" json:"fields,omitempty"`
	Properties           []*MemberSpec `yaml:"properties,omitempty" json:"properties,omitempty"`
	Methods              []*MemberSpec `yaml:"methods,omitempty" json:"methods,omitempty"`
	Events               []*MemberSpec `yaml:"events,omitempty" json:"events,omitempty"`
	StaticReadOnlyFields []*MemberSpec `yaml:"staticReadOnlyFields,omitempty" json:"staticReadOnlyFields,omitempty"`
	Delegates            []*DeclSpec   `yaml:"delegates,omitempty" json:"delegates,omitempty"`

	NestedClasses    []*DeclSpec `yaml:"nestedClasses,omitempty" json:"nestedClasses,omitempty"`
	NestedEnums      []*DeclSpec `yaml:"nestedEnums,omitempty" json:"nestedEnums,omitempty"`
	NestedInterfaces []*DeclSpec `yaml:"nestedInterfaces,omitempty" json:"nestedInterfaces,omitempty"`

	Values     []*EnumValueSpec `yaml:"values,omitempty" json:"values,omitempty"`
	Parameters []*MemberSpec    `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Returns    *DeclSpec        `yaml:"returns,omitempty" json:"returns,omitempty"`

	target *DeclSpec
}

// MemberSpec describes a property, field, constant, event, method or
// parameter.
type MemberSpec struct {
	Name       string           `yaml:"name" json:"name"`
	FullName   string           `yaml:"fullName,omitempty" json:"fullName,omitempty"`
	Assembly   string           `yaml:"assembly,omitempty" json:"assembly,omitempty"`
	Doc        string           `yaml:"doc,omitempty" json:"doc,omitempty"`
	Type       *DeclSpec        `yaml:"type,omitempty" json:"type,omitempty"`
	Attributes []*AttributeSpec `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Locations  []string         `yaml:"locations,omitempty" json:"locations,omitempty"`

	Abstract  bool `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Virtual   bool `yaml:"virtual,omitempty" json:"virtual,omitempty"`
	Generic   bool `yaml:"generic,omitempty" json:"generic,omitempty"`
	ReadOnly  bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly bool `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`

	Value          string        `yaml:"value,omitempty" json:"value,omitempty"`
	Parameters     []*MemberSpec `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	TypeParameters []string      `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty"`
	HasDefault     bool          `yaml:"hasDefault,omitempty" json:"hasDefault,omitempty"`
	Default        string        `yaml:"default,omitempty" json:"default,omitempty"`
}

// EnumValueSpec describes one enum member.
type EnumValueSpec struct {
	Name       string           `yaml:"name" json:"name"`
	FullName   string           `yaml:"fullName,omitempty" json:"fullName,omitempty"`
	Doc        string           `yaml:"doc,omitempty" json:"doc,omitempty"`
	Value      int64            `yaml:"value" json:"value"`
	Attributes []*AttributeSpec `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// AttributeSpec describes one attribute application.
type AttributeSpec struct {
	Name      string          `yaml:"name" json:"name"`
	FullName  string          `yaml:"fullName,omitempty" json:"fullName,omitempty"`
	Arguments []*ArgumentSpec `yaml:"arguments,omitempty" json:"arguments,omitempty"`
}

// ArgumentSpec describes one attribute argument. TypeValue is set for
// arguments that name a type, such as typeof(User).
type ArgumentSpec struct {
	Name      string    `yaml:"name,omitempty" json:"name,omitempty"`
	Type      *DeclSpec `yaml:"type,omitempty" json:"type,omitempty"`
	TypeValue *DeclSpec `yaml:"typeValue,omitempty" json:"typeValue,omitempty"`
	Value     any       `yaml:"value,omitempty" json:"value,omitempty"`
}

// LoadSnapshot reads a snapshot document (YAML or JSON based on extension)
// and links its type references.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}

	var s Snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(err, "parsing JSON snapshot")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(err, "parsing YAML snapshot")
		}
	default:
		if err := decode(data, &s); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	}

	if err := s.Link(); err != nil {
		return nil, errors.Wrapf(err, "linking %s", path)
	}
	return &s, nil
}

// ParseSnapshot decodes and links a snapshot document held in memory.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := decode(data, &s); err != nil {
		return nil, err
	}
	if err := s.Link(); err != nil {
		return nil, err
	}
	return &s, nil
}

func decode(data []byte, s *Snapshot) error {
	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, s); err != nil {
		if jerr := json.Unmarshal(data, s); jerr != nil {
			return errors.New("unable to parse snapshot as YAML or JSON")
		}
	}
	return nil
}

// Link indexes every named declaration and resolves Ref fields. It must be
// called after the snapshot is assembled and before it is read.
func (s *Snapshot) Link() error {
	s.index = make(map[string]*DeclSpec)
	for _, d := range s.Types {
		s.indexDecl(d)
	}
	for _, f := range s.Sources {
		for _, list := range [][]*DeclSpec{f.Classes, f.Records, f.Delegates, f.Enums, f.Interfaces} {
			for _, d := range list {
				s.indexDecl(d)
			}
		}
	}

	var unresolved []string
	visit := func(d *DeclSpec) {
		if d.Ref == "" {
			return
		}
		target, ok := s.index[d.Ref]
		if !ok {
			unresolved = append(unresolved, d.Ref)
			return
		}
		if target != d {
			d.target = target
		}
	}
	for _, d := range s.Types {
		walkDecl(d, visit)
	}
	for _, f := range s.Sources {
		for _, list := range [][]*DeclSpec{f.Classes, f.Records, f.Delegates, f.Enums, f.Interfaces} {
			for _, d := range list {
				walkDecl(d, visit)
			}
		}
	}

	if len(unresolved) > 0 {
		return errors.Wrapf(ErrUnknownReference, "%s", strings.Join(unresolved, ", "))
	}
	return nil
}

// indexDecl registers a declaration and its nested declarations by full name.
// The first declaration of a name wins.
func (s *Snapshot) indexDecl(d *DeclSpec) {
	if d == nil {
		return
	}
	if name := d.fullName(); name != "" {
		if _, exists := s.index[name]; !exists {
			s.index[name] = d
		}
	}
	for _, list := range [][]*DeclSpec{d.NestedClasses, d.NestedEnums, d.NestedInterfaces, d.Delegates} {
		for _, n := range list {
			s.indexDecl(n)
		}
	}
}

// walkDecl calls fn for d and every type spec reachable from it.
func walkDecl(d *DeclSpec, fn func(*DeclSpec)) {
	if d == nil {
		return
	}
	fn(d)
	for _, list := range [][]*DeclSpec{
		d.Interfaces, d.TypeArguments, d.Delegates,
		d.NestedClasses, d.NestedEnums, d.NestedInterfaces,
	} {
		for _, n := range list {
			walkDecl(n, fn)
		}
	}
	walkDecl(d.Base, fn)
	walkDecl(d.Containing, fn)
	walkDecl(d.Returns, fn)
	for _, a := range d.Attributes {
		walkAttribute(a, fn)
	}
	for _, list := range [][]*MemberSpec{
		d.TupleElements, d.Constants, d.Fields, d.Properties,
		d.Methods, d.Events, d.StaticReadOnlyFields, d.Parameters,
	} {
		for _, m := range list {
			walkMember(m, fn)
		}
	}
	for _, v := range d.Values {
		for _, a := range v.Attributes {
			walkAttribute(a, fn)
		}
	}
}

func walkMember(m *MemberSpec, fn func(*DeclSpec)) {
	if m == nil {
		return
	}
	walkDecl(m.Type, fn)
	for _, a := range m.Attributes {
		walkAttribute(a, fn)
	}
	for _, p := range m.Parameters {
		walkMember(p, fn)
	}
}

func walkAttribute(a *AttributeSpec, fn func(*DeclSpec)) {
	for _, arg := range a.Arguments {
		walkDecl(arg.Type, fn)
		walkDecl(arg.TypeValue, fn)
	}
}

// Files returns the facts of every source unit in document order.
func (s *Snapshot) Files() []FileFacts {
	files := make([]FileFacts, 0, len(s.Sources))
	for _, f := range s.Sources {
		files = append(files, &fileFacts{spec: f})
	}
	return files
}

// File returns the facts of the source unit with the given path.
func (s *Snapshot) File(path string) (FileFacts, bool) {
	for _, f := range s.Sources {
		if f.Path == path || filepath.Clean(f.Path) == filepath.Clean(path) {
			return &fileFacts{spec: f}, true
		}
	}
	return nil, false
}

// Lookup returns the indexed declaration with the given full name.
func (s *Snapshot) Lookup(fullName string) (TypeFacts, bool) {
	d, ok := s.index[fullName]
	if !ok {
		return nil, false
	}
	return &declFacts{spec: d}, true
}

// fullName returns the declared full name, falling back to the referenced
// declaration and then to namespace plus name.
func (d *DeclSpec) fullName() string {
	switch {
	case d.FullName != "":
		return d.FullName
	case d.target != nil:
		return d.target.fullName()
	case d.Ref != "":
		return d.Ref
	case d.Namespace != "" && d.Name != "":
		return d.Namespace + "." + d.Name
	}
	return d.Name
}

// structure returns the spec that carries members for this usage.
func (d *DeclSpec) structure() *DeclSpec {
	if d.target != nil {
		return d.target
	}
	return d
}
