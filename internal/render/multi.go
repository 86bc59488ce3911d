package render

import (
	"strings"

	"codewriter/internal/codemodel"
)

// multiTemplate renders the top level of a template against every root.
// Blocks below the top level render against a single context as usual.
func (r *run) multiTemplate(out *strings.Builder, text string, roots []*codemodel.File) {
	s := newStream(text)
	for s.advance() {
		if s.current() == '$' && r.multiDirective(out, s, roots) {
			continue
		}
		out.WriteRune(s.current())
	}
}

// multiDirective evaluates one top-level directive once per root. Each root
// reads the clauses from its own fork of the stream; the stream then moves
// past the furthest clause any root consumed. A directive no root resolves
// stays literal text, as does the rest of the template after a clause that
// is never closed.
func (r *run) multiDirective(out *strings.Builder, s *stream, roots []*codemodel.File) bool {
	identifier := s.word(1)
	if identifier == "" {
		return false
	}
	dollar := s.pos
	start := s.pos + len([]rune(identifier))
	end := -1

	for i, root := range roots {
		fn, ok := r.engine.registry.Lookup(root.Shape(), identifier)
		if !ok {
			continue
		}
		r.source = root.FullName()
		rs := s.fork()
		rs.pos = start

		value, err := call(fn, root)
		if err != nil {
			r.fail(identifier, "Error rendering template. Cannot get identifier '"+identifier+"'.", err)
			skipClauses(rs)
			if rs.dangling {
				out.WriteString(rs.rest(dollar))
			}
		} else if c, isCollection := value.(codemodel.Collection); isCollection {
			r.rootCollection(out, rs, dollar, identifier, c, roots, i)
		} else {
			r.value(out, rs, dollar, identifier, value, root)
		}
		if rs.dangling {
			s.pos = rs.pos
			return true
		}

		if rs.pos > end {
			end = rs.pos
		}
	}

	if end < 0 {
		return false
	}
	s.pos = end
	return true
}

// rootCollection writes one root's items of a collection directive, then
// the separator when a later root yields items for the same directive.
func (r *run) rootCollection(out *strings.Builder, s *stream, start int, identifier string, c codemodel.Collection, roots []*codemodel.File, index int) {
	expr, hasFilter := s.block('(', ')')
	item, hasItem := s.block('[', ']')
	separator, hasSeparator := s.block('[', ']')
	if s.dangling {
		out.WriteString(s.rest(start))
		return
	}
	if !hasFilter && !hasItem && !hasSeparator {
		out.WriteString(collectionText(c, identifier))
		return
	}

	root := roots[index]
	r.join(out, r.filter(c, expr, identifier, false), item, separator, root)

	for _, next := range roots[index+1:] {
		if r.yields(next, identifier, expr) {
			r.template(out, separator, root)
			break
		}
	}
}

// yields reports whether a root's collection for identifier keeps any item
// after the filter.
func (r *run) yields(root *codemodel.File, identifier, expr string) bool {
	fn, ok := r.engine.registry.Lookup(root.Shape(), identifier)
	if !ok {
		return false
	}
	value, err := call(fn, root)
	if err != nil {
		return false
	}
	c, ok := value.(codemodel.Collection)
	if !ok {
		return false
	}
	return len(r.filter(c, expr, identifier, true)) > 0
}
