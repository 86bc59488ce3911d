// Package filter implements the expression language used inside the
// parentheses of a collection directive, as in $Classes(*Model|[Table]).
//
// An expression is a list of alternatives separated by "|". An item survives
// when any alternative matches. Each alternative is one of:
//
//	Name       glob over the item name or full name ("*" matches any run)
//	[Attr]     the item carries an attribute with that name or full name
//	:Base      the item inherits from or implements a type with that name
//	IsPublic   a boolean accessor of the item that returns true
//
// A leading "!" negates an alternative. Matching ignores case.
package filter

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidExpression is returned for expressions that cannot be parsed.
var ErrInvalidExpression = errors.New("invalid filter expression")

// Named items match name globs.
type Named interface {
	Name() string
	FullName() string
}

// Attributed items match [Attr] terms.
type Attributed interface {
	AttributeNames() []string
}

// Inheriting items match :Base terms.
type Inheriting interface {
	InheritedNames() []string
}

// BoolLookup resolves an identifier to a boolean accessor of item. ok is
// false when item has no such boolean.
type BoolLookup func(item any, name string) (value, ok bool)

type termKind int

const (
	termName termKind = iota
	termAttribute
	termInherits
)

type term struct {
	kind    termKind
	pattern string
	negate  bool
}

// Filter is a compiled expression.
type Filter struct {
	expr  string
	terms []term
}

// Compile parses expr. An empty expression compiles to a filter that keeps
// every item.
func Compile(expr string) (*Filter, error) {
	f := &Filter{expr: expr}
	if strings.TrimSpace(expr) == "" {
		return f, nil
	}

	for _, part := range strings.Split(expr, "|") {
		t, err := parseTerm(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "%q", expr)
		}
		f.terms = append(f.terms, t)
	}
	return f, nil
}

func parseTerm(s string) (term, error) {
	var t term
	if strings.HasPrefix(s, "!") {
		t.negate = true
		s = strings.TrimSpace(s[1:])
	}

	switch {
	case s == "":
		return t, errors.Wrap(ErrInvalidExpression, "empty alternative")
	case strings.HasPrefix(s, "["):
		if !strings.HasSuffix(s, "]") {
			return t, errors.Wrapf(ErrInvalidExpression, "unclosed attribute term %q", s)
		}
		t.kind = termAttribute
		t.pattern = strings.TrimSpace(s[1 : len(s)-1])
	case strings.HasPrefix(s, ":"):
		t.kind = termInherits
		t.pattern = strings.TrimSpace(s[1:])
	default:
		t.kind = termName
		t.pattern = s
	}

	if t.pattern == "" {
		return t, errors.Wrapf(ErrInvalidExpression, "empty pattern in %q", s)
	}
	if _, err := path.Match(strings.ToLower(t.pattern), ""); err != nil {
		return t, errors.Wrapf(ErrInvalidExpression, "bad pattern %q", t.pattern)
	}
	return t, nil
}

// MustCompile is like Compile but panics on an invalid expression.
func MustCompile(expr string) *Filter {
	f, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Match reports whether item passes the filter. lookup may be nil.
func (f *Filter) Match(item any, lookup BoolLookup) bool {
	if len(f.terms) == 0 {
		return true
	}
	for _, t := range f.terms {
		if t.match(item, lookup) != t.negate {
			return true
		}
	}
	return false
}

func (t term) match(item any, lookup BoolLookup) bool {
	switch t.kind {
	case termAttribute:
		if a, ok := item.(Attributed); ok {
			return matchAny(t.pattern, a.AttributeNames(), true)
		}
		return false
	case termInherits:
		if i, ok := item.(Inheriting); ok {
			return matchAny(t.pattern, i.InheritedNames(), false)
		}
		return false
	}

	if lookup != nil && isIdentifier(t.pattern) {
		if v, ok := lookup(item, t.pattern); ok {
			return v
		}
	}
	if n, ok := item.(Named); ok {
		return matchAny(t.pattern, []string{n.Name(), n.FullName()}, false)
	}
	return false
}

// matchAny globs pattern against names. Attribute names also match without
// their "Attribute" suffix.
func matchAny(pattern string, names []string, attribute bool) bool {
	pattern = strings.ToLower(pattern)
	for _, n := range names {
		n = strings.ToLower(n)
		if glob(pattern, n) {
			return true
		}
		if attribute && strings.HasSuffix(n, "attribute") && glob(pattern, strings.TrimSuffix(n, "attribute")) {
			return true
		}
	}
	return false
}

func glob(pattern, name string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == name
	}
	ok, _ := path.Match(pattern, name)
	if !ok && strings.Contains(name, "/") {
		// Full names from Go sources carry the import path.
		ok, _ = path.Match(pattern, name[strings.LastIndex(name, "/")+1:])
	}
	return ok
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

// Apply returns the items that pass expr, in order. matched reports whether
// any item survived. An empty expression keeps every item.
func Apply[T any](items []T, expr string, lookup BoolLookup) (out []T, matched bool, err error) {
	f, err := Compile(expr)
	if err != nil {
		return nil, false, err
	}
	out = Select(f, items, lookup)
	return out, len(out) > 0, nil
}

// Select is Apply with a compiled filter.
func Select[T any](f *Filter, items []T, lookup BoolLookup) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Match(it, lookup) {
			out = append(out, it)
		}
	}
	return out
}
