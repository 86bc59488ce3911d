package render

import (
	"sort"
	"sync"

	"codewriter/internal/codemodel"
	"codewriter/internal/filter"
)

// AnyShape registers an extension for every item shape.
const AnyShape = "*"

// Func computes the value of an identifier for a context.
type Func func(ctx any) (any, error)

// PredicateFunc decides whether an item survives a $name filter.
type PredicateFunc func(item any) (bool, error)

// Registry maps identifiers to accessors per context shape. Members are the
// zero-argument accessors of a shape; extensions are functions registered
// on top of them. Lookup tries members first.
type Registry struct {
	members    map[string]map[string]Func
	extensions map[string]map[string]Func
	predicates map[string]PredicateFunc
	mutex      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		members:    make(map[string]map[string]Func),
		extensions: make(map[string]map[string]Func),
		predicates: make(map[string]PredicateFunc),
	}
}

// NewModelRegistry creates a registry holding the member accessors of
// every code model shape.
func NewModelRegistry() *Registry {
	r := NewRegistry()
	for shape, table := range codemodel.Accessors() {
		for name, acc := range table {
			r.Member(shape, name, memberFunc(acc))
		}
	}
	return r
}

func memberFunc(acc codemodel.Accessor) Func {
	return func(ctx any) (any, error) {
		return acc(ctx.(codemodel.Item)), nil
	}
}

// Member registers a member accessor of a shape, replacing any previous one.
func (r *Registry) Member(shape, name string, fn Func) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	put(r.members, shape, name, fn)
}

// Extension registers an extension function for a shape, or for every item
// shape when shape is AnyShape.
func (r *Registry) Extension(shape, name string, fn Func) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	put(r.extensions, shape, name, fn)
}

// Predicate registers a function usable as $name inside a filter clause.
func (r *Registry) Predicate(name string, fn PredicateFunc) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.predicates[name] = fn
}

// Lookup resolves an identifier for a shape: a member of the shape, then an
// extension of the shape, then an extension registered for every shape.
func (r *Registry) Lookup(shape, name string) (Func, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if fn, ok := r.members[shape][name]; ok {
		return fn, true
	}
	if fn, ok := r.extensions[shape][name]; ok {
		return fn, true
	}
	if shape != "" {
		if fn, ok := r.extensions[AnyShape][name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// LookupPredicate returns the predicate registered under name.
func (r *Registry) LookupPredicate(name string) (PredicateFunc, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	fn, ok := r.predicates[name]
	return fn, ok
}

// Identifiers lists the identifiers available for a shape, sorted.
func (r *Registry) Identifiers(shape string) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seen := make(map[string]bool)
	for _, table := range []map[string]Func{r.members[shape], r.extensions[shape], r.extensions[AnyShape]} {
		for name := range table {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func put(tables map[string]map[string]Func, shape, name string, fn Func) {
	table, ok := tables[shape]
	if !ok {
		table = make(map[string]Func)
		tables[shape] = table
	}
	table[name] = fn
}

// BoolLookup resolves boolean identifiers of items through the registry,
// for filters evaluated outside a render. An accessor that fails reads as
// false.
func (r *Registry) BoolLookup() filter.BoolLookup {
	return func(item any, name string) (bool, bool) {
		fn, ok := r.Lookup(shapeOf(item), name)
		if !ok {
			return false, false
		}
		v, err := call(fn, item)
		if err != nil {
			return false, true
		}
		b, isBool := v.(bool)
		return b, isBool
	}
}

// shapeOf returns the lookup shape of a context, or "" for plain values.
func shapeOf(ctx any) string {
	if s, ok := ctx.(interface{ Shape() string }); ok {
		return s.Shape()
	}
	return ""
}
