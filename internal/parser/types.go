package parser

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"codewriter/internal/metadata"
)

// builtinTypes maps Go predeclared types to canonical full names.
var builtinTypes = map[string]string{
	"string":     "System.String",
	"bool":       "System.Boolean",
	"int":        "System.Int64",
	"int64":      "System.Int64",
	"int32":      "System.Int32",
	"rune":       "System.Int32",
	"int16":      "System.Int16",
	"int8":       "System.SByte",
	"uint":       "System.UInt64",
	"uint64":     "System.UInt64",
	"uint32":     "System.UInt32",
	"uint16":     "System.UInt16",
	"uint8":      "System.Byte",
	"byte":       "System.Byte",
	"uintptr":    "System.UInt64",
	"float32":    "System.Single",
	"float64":    "System.Double",
	"complex64":  "System.Object",
	"complex128": "System.Object",
	"any":        "System.Object",
	"error":      "System.String",
}

// externalTypes maps well-known imported types to canonical full names.
var externalTypes = map[string]string{
	"time.Time":                   "System.DateTime",
	"time.Duration":               "System.TimeSpan",
	"github.com/google/uuid.UUID": "System.Guid",
	"github.com/gofrs/uuid.UUID":  "System.Guid",
}

var integerTypes = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"byte": true, "rune": true, "uintptr": true,
}

func named(fullName string) *metadata.DeclSpec {
	name := fullName
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		name = fullName[i+1:]
	}
	return &metadata.DeclSpec{Name: name, FullName: fullName}
}

func object() *metadata.DeclSpec { return named("System.Object") }

// typeOf maps a type expression of file f to a type usage. params holds the
// type parameters in scope.
func (b *builder) typeOf(f *sourceFile, expr ast.Expr, params map[string]bool) *metadata.DeclSpec {
	return b.typeOfDepth(f, expr, params, 0)
}

func (b *builder) typeOfDepth(f *sourceFile, expr ast.Expr, params map[string]bool, depth int) *metadata.DeclSpec {
	if depth > 32 {
		return object()
	}
	depth++

	switch t := expr.(type) {
	case *ast.Ident:
		if params[t.Name] {
			return &metadata.DeclSpec{Name: t.Name, FullName: t.Name}
		}
		if d := b.decls[t.Name]; d != nil {
			if d.kind != "" && d.exported() {
				return &metadata.DeclSpec{Ref: b.fullName(d.name)}
			}
			if d.kind == "" {
				// A named type stands for its underlying type
				return b.typeOfDepth(d.file, d.spec.Type, d.params, depth)
			}
			return named(b.fullName(d.name))
		}
		if full, ok := builtinTypes[t.Name]; ok {
			return named(full)
		}
		return named(t.Name)

	case *ast.SelectorExpr:
		pkg := ""
		if ident, ok := t.X.(*ast.Ident); ok {
			pkg = ident.Name
			if path, ok := f.imports[pkg]; ok {
				pkg = path
			}
		}
		full := pkg + "." + t.Sel.Name
		if mapped, ok := externalTypes[full]; ok {
			return named(mapped)
		}
		return &metadata.DeclSpec{Name: t.Sel.Name, FullName: full}

	case *ast.StarExpr:
		inner := *b.typeOfDepth(f, t.X, params, depth)
		inner.Nullable = true
		return &inner

	case *ast.ArrayType:
		if ident, ok := t.Elt.(*ast.Ident); ok && (ident.Name == "byte" || ident.Name == "uint8") {
			return named("System.String")
		}
		return list(b.typeOfDepth(f, t.Elt, params, depth))

	case *ast.Ellipsis:
		return list(b.typeOfDepth(f, t.Elt, params, depth))

	case *ast.MapType:
		return &metadata.DeclSpec{
			Name:       "Dictionary",
			FullName:   "System.Collections.Generic.Dictionary",
			Dictionary: true,
			TypeArguments: []*metadata.DeclSpec{
				b.typeOfDepth(f, t.Key, params, depth),
				b.typeOfDepth(f, t.Value, params, depth),
			},
		}

	case *ast.IndexExpr:
		base := *b.typeOfDepth(f, t.X, params, depth)
		base.TypeArguments = []*metadata.DeclSpec{b.typeOfDepth(f, t.Index, params, depth)}
		return &base

	case *ast.IndexListExpr:
		base := *b.typeOfDepth(f, t.X, params, depth)
		base.TypeArguments = nil
		for _, index := range t.Indices {
			base.TypeArguments = append(base.TypeArguments, b.typeOfDepth(f, index, params, depth))
		}
		return &base

	case *ast.ParenExpr:
		return b.typeOfDepth(f, t.X, params, depth)
	}

	// Interfaces, anonymous structs, funcs and channels
	return object()
}

func list(elem *metadata.DeclSpec) *metadata.DeclSpec {
	return &metadata.DeclSpec{
		Name:          "List",
		FullName:      "System.Collections.Generic.List",
		Enumerable:    true,
		TypeArguments: []*metadata.DeclSpec{elem},
	}
}

func withoutNullable(d *metadata.DeclSpec) *metadata.DeclSpec {
	if !d.Nullable {
		return d
	}
	c := *d
	c.Nullable = false
	return &c
}

// parseTag turns each key of a struct tag into an attribute whose single
// argument is the tag value: `json:"id,omitempty"` becomes json("id,omitempty").
func parseTag(lit *ast.BasicLit) []*metadata.AttributeSpec {
	if lit == nil {
		return nil
	}
	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		raw = strings.Trim(lit.Value, "`")
	}
	tag := reflect.StructTag(raw)

	var attrs []*metadata.AttributeSpec
	for _, key := range tagKeys(raw) {
		value, ok := tag.Lookup(key)
		if !ok {
			continue
		}
		attrs = append(attrs, &metadata.AttributeSpec{
			Name:      key,
			FullName:  key,
			Arguments: []*metadata.ArgumentSpec{{Value: value}},
		})
	}
	return attrs
}

// tagKeys lists the keys of a conventional struct tag in order.
func tagKeys(tag string) []string {
	var keys []string
	for {
		tag = strings.TrimLeft(tag, " ")
		i := strings.IndexByte(tag, ':')
		if i <= 0 || i+1 >= len(tag) || tag[i+1] != '"' {
			return keys
		}
		key := tag[:i]

		j := i + 2
		for j < len(tag) && tag[j] != '"' {
			if tag[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(tag) {
			return keys
		}
		keys = append(keys, key)
		tag = tag[j+1:]
	}
}
