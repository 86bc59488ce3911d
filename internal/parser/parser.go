// Package parser reads Go source files into metadata snapshots. Structs
// become classes, interfaces stay interfaces, integer types with a typed
// const block become enums and func types become delegates. Only exported
// identifiers are surfaced.
package parser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"codewriter/internal/metadata"
)

// Parser parses Go source files and extracts their type declarations.
type Parser struct {
	fset   *token.FileSet
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger parse progress is reported to.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// New creates a new Parser.
func New(opts ...Option) *Parser {
	p := &Parser{fset: token.NewFileSet()}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// ParsePackage parses every non-test .go file of the package in dir.
func (p *Parser) ParsePackage(dir string) (*metadata.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading package %s", dir)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	if len(paths) == 0 {
		return nil, errors.Newf("no Go files in %s", dir)
	}
	return p.ParseFiles(paths...)
}

// ParseFiles parses files that belong to one package and returns a linked
// snapshot with one file entry per path, in the given order.
func (p *Parser) ParseFiles(paths ...string) (*metadata.Snapshot, error) {
	b := &builder{decls: make(map[string]*decl)}

	for _, path := range paths {
		file, err := parser.ParseFile(p.fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		if b.pkg == "" {
			b.pkg = file.Name.Name
		} else if file.Name.Name != b.pkg {
			p.logger.Warn("file belongs to another package",
				zap.String("path", path),
				zap.String("package", file.Name.Name),
				zap.String("expected", b.pkg),
			)
		}
		b.files = append(b.files, &sourceFile{
			path:    filepath.ToSlash(path),
			ast:     file,
			imports: extractImports(file),
			spec:    &metadata.FileSpec{Path: filepath.ToSlash(path)},
		})
	}

	b.collectTypes()
	b.collectConsts()
	b.collectMethods()
	snap := b.build()

	if err := snap.Link(); err != nil {
		return nil, errors.Wrap(err, "linking parsed package")
	}
	p.logger.Debug("parsed package",
		zap.String("package", b.pkg),
		zap.Int("files", len(b.files)),
		zap.Int("types", len(b.order)),
	)
	return snap, nil
}

// sourceFile is one parsed file of the package.
type sourceFile struct {
	path    string
	ast     *ast.File
	imports map[string]string // local name -> import path
	spec    *metadata.FileSpec
}

// decl is a type declared in the package.
type decl struct {
	name   string
	kind   string // a metadata kind, or "" for a named type that stands for its underlying type
	spec   *ast.TypeSpec
	doc    *ast.CommentGroup
	file   *sourceFile
	params map[string]bool

	// integer reports an integer underlying type, which a typed const block
	// turns into an enum.
	integer bool
	flags   bool
	values  []*metadata.EnumValueSpec
	methods []*metadata.MemberSpec

	// files lists the declaring file first, then the files that add methods.
	files []*sourceFile
	out   *metadata.DeclSpec
}

func (d *decl) exported() bool { return ast.IsExported(d.name) }

func (d *decl) addFile(f *sourceFile) {
	for _, existing := range d.files {
		if existing == f {
			return
		}
	}
	d.files = append(d.files, f)
}

type builder struct {
	pkg   string
	files []*sourceFile
	decls map[string]*decl
	order []*decl
}

func (b *builder) fullName(name string) string {
	return b.pkg + "." + name
}

// collectTypes records every type spec of the package.
func (b *builder) collectTypes() {
	for _, f := range b.files {
		for _, d := range f.ast.Decls {
			genDecl, ok := d.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, s := range genDecl.Specs {
				typeSpec, ok := s.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil && len(genDecl.Specs) == 1 {
					doc = genDecl.Doc
				}
				t := &decl{
					name:   typeSpec.Name.Name,
					spec:   typeSpec,
					doc:    doc,
					file:   f,
					params: typeParams(typeSpec.TypeParams),
					files:  []*sourceFile{f},
				}
				switch typeExpr := typeSpec.Type.(type) {
				case *ast.StructType:
					t.kind = metadata.KindClass
				case *ast.InterfaceType:
					t.kind = metadata.KindInterface
				case *ast.FuncType:
					t.kind = metadata.KindDelegate
				case *ast.Ident:
					t.integer = !typeSpec.Assign.IsValid() && integerTypes[typeExpr.Name]
				}
				b.decls[t.name] = t
				b.order = append(b.order, t)
			}
		}
	}
}

// collectConsts turns typed const blocks over integer types into enum
// values. Specs without a type or value repeat the previous ones, as in Go.
func (b *builder) collectConsts() {
	for _, f := range b.files {
		for _, d := range f.ast.Decls {
			genDecl, ok := d.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.CONST {
				continue
			}

			var (
				typeName string
				values   []ast.Expr
			)
			for iota, s := range genDecl.Specs {
				spec, ok := s.(*ast.ValueSpec)
				if !ok {
					continue
				}
				if spec.Type != nil || len(spec.Values) > 0 {
					typeName, values = "", spec.Values
					if ident, ok := spec.Type.(*ast.Ident); ok {
						typeName = ident.Name
					}
				}

				t := b.decls[typeName]
				if t == nil || !t.integer {
					continue
				}
				for i, name := range spec.Names {
					if !ast.IsExported(name.Name) {
						continue
					}
					var expr ast.Expr
					if i < len(values) {
						expr = values[i]
					}
					value, shift, ok := constValue(expr, int64(iota))
					if !ok {
						value = int64(iota)
					}
					t.flags = t.flags || shift
					t.values = append(t.values, &metadata.EnumValueSpec{
						Name:     name.Name,
						FullName: b.fullName(t.name) + "." + name.Name,
						Doc:      commentText(spec.Doc, spec.Comment),
						Value:    value,
					})
				}
			}
		}
	}

	for _, t := range b.order {
		if t.integer && len(t.values) > 0 {
			t.kind = metadata.KindEnum
		}
	}
}

// collectMethods attaches exported methods to their receiver's class and
// records the file each one is declared in.
func (b *builder) collectMethods() {
	for _, f := range b.files {
		for _, d := range f.ast.Decls {
			fn, ok := d.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 || !fn.Name.IsExported() {
				continue
			}
			name, params := receiver(fn.Recv.List[0].Type)
			t := b.decls[name]
			if t == nil || t.kind != metadata.KindClass || !t.exported() {
				continue
			}
			if len(params) == 0 {
				params = t.params
			}

			m := b.method(f, fn.Name.Name, fn.Type, params)
			m.FullName = b.fullName(t.name) + "." + fn.Name.Name
			m.Doc = commentText(fn.Doc)
			m.Locations = []string{f.path}
			t.methods = append(t.methods, m)
			t.addFile(f)
		}
	}
}

// build assembles the snapshot. A type whose methods span several files is
// listed in each of them.
func (b *builder) build() *metadata.Snapshot {
	for _, t := range b.order {
		if t.kind == "" || !t.exported() {
			continue
		}
		t.out = b.declSpec(t)
	}

	snap := &metadata.Snapshot{}
	for _, f := range b.files {
		snap.Sources = append(snap.Sources, f.spec)
	}
	for _, t := range b.order {
		if t.out == nil {
			continue
		}
		for _, f := range t.files {
			switch t.kind {
			case metadata.KindClass:
				f.spec.Classes = append(f.spec.Classes, t.out)
			case metadata.KindInterface:
				f.spec.Interfaces = append(f.spec.Interfaces, t.out)
			case metadata.KindEnum:
				f.spec.Enums = append(f.spec.Enums, t.out)
			case metadata.KindDelegate:
				f.spec.Delegates = append(f.spec.Delegates, t.out)
			}
		}
	}
	return snap
}

func (b *builder) declSpec(t *decl) *metadata.DeclSpec {
	d := &metadata.DeclSpec{
		Name:      t.name,
		FullName:  b.fullName(t.name),
		Namespace: b.pkg,
		Kind:      t.kind,
		Doc:       commentText(t.doc),
		Defined:   true,
	}
	for _, f := range t.files {
		d.Locations = append(d.Locations, f.path)
	}
	if t.spec.TypeParams != nil {
		for _, field := range t.spec.TypeParams.List {
			for _, name := range field.Names {
				d.TypeParameters = append(d.TypeParameters, name.Name)
			}
		}
	}

	switch typeExpr := t.spec.Type.(type) {
	case *ast.StructType:
		b.structMembers(t, typeExpr, d)
		d.Methods = t.methods
	case *ast.InterfaceType:
		b.interfaceMembers(t, typeExpr, d)
	case *ast.FuncType:
		m := b.method(t.file, t.name, typeExpr, t.params)
		d.Parameters = m.Parameters
		d.Returns = m.Type
	default:
		d.Values = t.values
		if t.flags {
			d.Attributes = []*metadata.AttributeSpec{{Name: "Flags", FullName: "System.FlagsAttribute"}}
		}
	}
	return d
}

// structMembers maps the fields of a struct. The first embedded struct of
// the package becomes the base class; other embedded types become
// interfaces.
func (b *builder) structMembers(t *decl, st *ast.StructType, d *metadata.DeclSpec) {
	if st.Fields == nil {
		return
	}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			name, _ := receiver(f.Type)
			if !ast.IsExported(name) {
				continue
			}
			embedded := b.typeOf(t.file, f.Type, t.params)
			embedded = withoutNullable(embedded)
			if base := b.decls[name]; d.Base == nil && base != nil && base.kind == metadata.KindClass {
				d.Base = embedded
			} else {
				d.Interfaces = append(d.Interfaces, embedded)
			}
			continue
		}

		attrs := parseTag(f.Tag)
		for _, name := range f.Names {
			if !name.IsExported() {
				continue
			}
			d.Properties = append(d.Properties, &metadata.MemberSpec{
				Name:       name.Name,
				FullName:   b.fullName(t.name) + "." + name.Name,
				Doc:        commentText(f.Doc, f.Comment),
				Type:       b.typeOf(t.file, f.Type, t.params),
				Attributes: attrs,
				Locations:  []string{t.file.path},
			})
		}
	}
}

// interfaceMembers maps interface methods and embedded interfaces. Type
// constraint terms are ignored.
func (b *builder) interfaceMembers(t *decl, it *ast.InterfaceType, d *metadata.DeclSpec) {
	if it.Methods == nil {
		return
	}
	for _, f := range it.Methods.List {
		if len(f.Names) == 0 {
			switch f.Type.(type) {
			case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
				d.Interfaces = append(d.Interfaces, b.typeOf(t.file, f.Type, t.params))
			}
			continue
		}
		ft, ok := f.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, name := range f.Names {
			if !name.IsExported() {
				continue
			}
			m := b.method(t.file, name.Name, ft, t.params)
			m.FullName = b.fullName(t.name) + "." + name.Name
			m.Doc = commentText(f.Doc, f.Comment)
			d.Methods = append(d.Methods, m)
		}
	}
}

// method maps a func signature. Error results are dropped; no result is
// void, one is the return type and several become a value tuple.
func (b *builder) method(f *sourceFile, name string, ft *ast.FuncType, params map[string]bool) *metadata.MemberSpec {
	m := &metadata.MemberSpec{Name: name}

	if ft.Params != nil {
		i := 0
		for _, field := range ft.Params.List {
			typ := b.typeOf(f, field.Type, params)
			if len(field.Names) == 0 {
				m.Parameters = append(m.Parameters, &metadata.MemberSpec{Name: "arg" + strconv.Itoa(i), Type: typ})
				i++
				continue
			}
			for _, n := range field.Names {
				m.Parameters = append(m.Parameters, &metadata.MemberSpec{Name: n.Name, Type: typ})
				i++
			}
		}
	}

	var results []*metadata.MemberSpec
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			if ident, ok := field.Type.(*ast.Ident); ok && ident.Name == "error" {
				continue
			}
			typ := b.typeOf(f, field.Type, params)
			if len(field.Names) == 0 {
				results = append(results, &metadata.MemberSpec{Type: typ})
				continue
			}
			for _, n := range field.Names {
				results = append(results, &metadata.MemberSpec{Name: n.Name, Type: typ})
			}
		}
	}

	switch len(results) {
	case 0:
		m.Type = &metadata.DeclSpec{Name: "Void", FullName: "System.Void"}
	case 1:
		m.Type = results[0].Type
	default:
		for i, r := range results {
			if r.Name == "" {
				r.Name = "item" + strconv.Itoa(i+1)
			}
		}
		m.Type = &metadata.DeclSpec{
			Name:          "ValueTuple",
			FullName:      "System.ValueTuple",
			ValueTuple:    true,
			TupleElements: results,
		}
	}
	return m
}

// extractImports maps the local name of every import to its path.
func extractImports(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		name := filepath.Base(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		imports[name] = path
	}
	return imports
}

// receiver returns the type name of a receiver or embedded field and the
// type parameter names it binds.
func receiver(expr ast.Expr) (string, map[string]bool) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiver(t.X)
	case *ast.Ident:
		return t.Name, nil
	case *ast.SelectorExpr:
		return t.Sel.Name, nil
	case *ast.IndexExpr:
		name, _ := receiver(t.X)
		return name, identSet(t.Index)
	case *ast.IndexListExpr:
		name, _ := receiver(t.X)
		return name, identSet(t.Indices...)
	}
	return "", nil
}

func identSet(exprs ...ast.Expr) map[string]bool {
	set := make(map[string]bool)
	for _, e := range exprs {
		if ident, ok := e.(*ast.Ident); ok {
			set[ident.Name] = true
		}
	}
	return set
}

func typeParams(list *ast.FieldList) map[string]bool {
	if list == nil {
		return nil
	}
	set := make(map[string]bool)
	for _, f := range list.List {
		for _, name := range f.Names {
			set[name.Name] = true
		}
	}
	return set
}

// constValue evaluates the integer constant expressions enums are written
// with. shift reports a 1 << iota style value.
func constValue(expr ast.Expr, iota int64) (value int64, shift, ok bool) {
	switch e := expr.(type) {
	case nil:
		return iota, false, true
	case *ast.Ident:
		if e.Name == "iota" {
			return iota, false, true
		}
	case *ast.BasicLit:
		if e.Kind == token.INT {
			v, err := strconv.ParseInt(e.Value, 0, 64)
			return v, false, err == nil
		}
	case *ast.ParenExpr:
		return constValue(e.X, iota)
	case *ast.UnaryExpr:
		v, s, ok := constValue(e.X, iota)
		if e.Op == token.SUB {
			v = -v
		}
		return v, s, ok
	case *ast.BinaryExpr:
		l, ls, lok := constValue(e.X, iota)
		r, rs, rok := constValue(e.Y, iota)
		if !lok || !rok {
			return 0, false, false
		}
		shift = ls || rs
		switch e.Op {
		case token.ADD:
			return l + r, shift, true
		case token.SUB:
			return l - r, shift, true
		case token.MUL:
			return l * r, shift, true
		case token.OR:
			return l | r, shift, true
		case token.SHL:
			return l << uint64(r), true, true
		}
	}
	return 0, false, false
}

// commentText returns the text of the first non-empty comment group.
func commentText(groups ...*ast.CommentGroup) string {
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		if text := strings.TrimSpace(cg.Text()); text != "" {
			return text
		}
	}
	return ""
}
