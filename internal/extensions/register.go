package extensions

import (
	"github.com/cockroachdb/errors"

	"codewriter/internal/codemodel"
	"codewriter/internal/filter"
	"codewriter/internal/render"
)

// Register adds the built-in extensions and predicates to r.
func Register(r *render.Registry) {
	r.Extension(codemodel.ShapeType, "Default", onType(func(t *codemodel.Type) any { return Default(t) }))
	r.Extension(codemodel.ShapeType, "ClassName", onType(func(t *codemodel.Type) any { return ClassName(t) }))
	r.Extension(codemodel.ShapeType, "Unwrap", onType(func(t *codemodel.Type) any { return Unwrap(t) }))

	r.Extension(render.AnyShape, "PascalName", onName(PascalCase))
	r.Extension(render.AnyShape, "SnakeName", onName(SnakeCase))
	r.Extension(render.AnyShape, "KebabName", onName(KebabCase))

	r.Extension(codemodel.ShapeDocComment, "JSDoc", func(ctx any) (any, error) {
		doc, ok := ctx.(*codemodel.DocComment)
		if !ok {
			return nil, errors.Newf("JSDoc: unexpected context %T", ctx)
		}
		return DocCommentJSDoc(doc), nil
	})

	r.Predicate("IsDocumented", IsDocumented)
}

// NewRegistry returns a model registry with the built-in extensions.
func NewRegistry() *render.Registry {
	r := render.NewModelRegistry()
	Register(r)
	return r
}

func onType(fn func(*codemodel.Type) any) render.Func {
	return func(ctx any) (any, error) {
		t, ok := ctx.(*codemodel.Type)
		if !ok {
			return nil, errors.Newf("unexpected context %T, want a type", ctx)
		}
		return fn(t), nil
	}
}

func onName(fn func(string) string) render.Func {
	return func(ctx any) (any, error) {
		switch v := ctx.(type) {
		case interface{ Name() string }:
			return fn(v.Name()), nil
		case codemodel.Item:
			return fn(v.DisplayString()), nil
		}
		return nil, errors.Newf("unexpected context %T, want a named item", ctx)
	}
}

// DocCommentJSDoc renders a parsed doc comment as a JSDoc block with its
// @param and @returns tags.
func DocCommentJSDoc(doc *codemodel.DocComment) string {
	if doc == nil {
		return ""
	}
	text := doc.Summary()
	for _, p := range doc.Parameters().All() {
		text += "\n@param " + p.Name() + " " + p.Description()
	}
	if doc.Returns() != "" {
		text += "\n@returns " + doc.Returns()
	}
	return JSDoc(text)
}

// IsDocumented keeps items whose doc comment has a summary.
func IsDocumented(item any) (bool, error) {
	d, ok := item.(interface{ DocComment() *codemodel.DocComment })
	if !ok {
		return false, nil
	}
	doc := d.DocComment()
	return doc != nil && doc.Summary() != "", nil
}

// HasAttribute returns a predicate keeping items that carry the attribute
// name, with or without its "Attribute" suffix.
func HasAttribute(name string) render.PredicateFunc {
	return FilterPredicate(filter.MustCompile("["+name+"]"), nil)
}

// FilterPredicate turns a compiled filter into a predicate, so a filter
// expression can be registered under a name and reused as $name. lookup
// resolves boolean member terms; without one every term matches names.
func FilterPredicate(f *filter.Filter, lookup filter.BoolLookup) render.PredicateFunc {
	return func(item any) (bool, error) {
		return f.Match(item, lookup), nil
	}
}

// RegisterFilter compiles expr and registers it as the predicate name.
// Boolean members in expr are tested through r, as they are inline.
func RegisterFilter(r *render.Registry, name, expr string) error {
	f, err := filter.Compile(expr)
	if err != nil {
		return errors.Wrapf(err, "predicate %s", name)
	}
	r.Predicate(name, FilterPredicate(f, r.BoolLookup()))
	return nil
}
