// Package codemodel wraps metadata facts in a lazily built, memoized object
// graph. All nodes of one render live in a single Model arena and refer to
// their parent by index. Nodes are computed on first read and never
// invalidated, so a Model must serve exactly one render and must not be
// shared between goroutines.
package codemodel

import (
	"codewriter/internal/config"
	"codewriter/internal/metadata"
)

// Item is implemented by every code model node.
type Item interface {
	// Parent returns the node this one was reached from, or nil for a root.
	Parent() Item
	// DisplayString is the text a directive emits for the node.
	DisplayString() string
	// Shape names the node kind for identifier lookup.
	Shape() string
}

// Model is the per-render arena.
type Model struct {
	settings *config.Settings
	nodes    []Item
}

// NewModel creates an empty arena. A nil settings value uses defaults.
func NewModel(settings *config.Settings) *Model {
	if settings == nil {
		settings = config.New()
	}
	return &Model{settings: settings}
}

// Settings returns the settings every node of the arena projects with.
func (m *Model) Settings() *config.Settings { return m.settings }

// Len returns the number of nodes materialized so far.
func (m *Model) Len() int { return len(m.nodes) }

// NewFile creates a fresh arena and returns the root for one source file.
func NewFile(facts metadata.FileFacts, settings *config.Settings) *File {
	return NewModel(settings).File(facts)
}

// NewFiles builds one root per source file. The roots share settings but
// each gets its own arena.
func NewFiles(facts []metadata.FileFacts, settings *config.Settings) []*File {
	if settings == nil {
		settings = config.New()
	}
	files := make([]*File, 0, len(facts))
	for _, f := range facts {
		files = append(files, NewFile(f, settings))
	}
	return files
}

// File adds a file root to the arena.
func (m *Model) File(facts metadata.FileFacts) *File {
	f := &File{facts: facts}
	m.attach(&f.node, f, nil)
	return f
}

// node is embedded by every Item implementation.
type node struct {
	model  *Model
	index  int
	parent int
}

func (n *node) Parent() Item {
	if n.parent < 0 {
		return nil
	}
	return n.model.nodes[n.parent]
}

func (n *node) nodeIndex() int { return n.index }

func (n *node) settings() *config.Settings { return n.model.settings }

// attach registers it in the arena with the given parent.
func (m *Model) attach(n *node, it Item, parent Item) {
	n.model = m
	n.parent = -1
	if p, ok := parent.(interface{ nodeIndex() int }); ok {
		n.parent = p.nodeIndex()
	}
	n.index = len(m.nodes)
	m.nodes = append(m.nodes, it)
}

// memo caches the result of the first get.
type memo[T any] struct {
	done bool
	v    T
}

func (m *memo[T]) get(f func() T) T {
	if !m.done {
		m.v = f()
		m.done = true
	}
	return m.v
}
