package codemodel

// Collection is an ordered, filterable list of items.
type Collection interface {
	Items() []Item
	Len() int
	// DisplayString is the text emitted when the collection is used without
	// a filter or block. It equals TypeName unless the collection defines
	// its own display.
	DisplayString() string
	TypeName() string
	Shape() string
}

// List is the Collection implementation for one item kind.
type List[T Item] struct {
	kind    string
	items   []T
	display func([]T) string
}

func newList[T Item](kind string, items []T) *List[T] {
	return &List[T]{kind: kind, items: items}
}

// All returns the typed items.
func (l *List[T]) All() []T { return l.items }

// Items returns the items as Item values.
func (l *List[T]) Items() []Item {
	out := make([]Item, len(l.items))
	for i, it := range l.items {
		out[i] = it
	}
	return out
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the item at index i.
func (l *List[T]) At(i int) T { return l.items[i] }

// TypeName names the collection type.
func (l *List[T]) TypeName() string { return "codemodel." + l.kind + "Collection" }

// Shape names the collection for identifier lookup.
func (l *List[T]) Shape() string { return l.kind + "Collection" }

func (l *List[T]) DisplayString() string {
	if l.display != nil {
		return l.display(l.items)
	}
	return l.TypeName()
}
