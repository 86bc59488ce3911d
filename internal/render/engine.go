// Package render implements the template interpreter. A template is literal
// text with $identifier directives that are resolved against a code model
// context:
//
//	$Name                      the display string of a value
//	$IsAbstract[yes][no]       one of two blocks, by a boolean
//	$Type[$Name]               a block rendered with the value as context
//	$Properties(filter)[item][separator]
//	                           a block per item of a filtered collection
//
// Directives that do not resolve are copied to the output unchanged. A
// directive whose clause is opened but never closed is copied together with
// the rest of the template.
package render

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"codewriter/internal/codemodel"
	"codewriter/internal/filter"
)

// Engine renders templates against code model roots. An Engine can be
// shared; each render keeps its own state.
type Engine struct {
	registry *Registry
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the identifier registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithLogger sets the logger recovered failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine. Without options it resolves code model members only
// and discards logs.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewModelRegistry()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Registry returns the registry identifiers resolve through.
func (e *Engine) Registry() *Registry { return e.registry }

// Result is the outcome of one render.
type Result struct {
	Output string
	// Success is false when any failure was recovered during the render.
	// The output should not be persisted then.
	Success bool
	// MatchFound reports whether any filtered collection yielded an item.
	MatchFound bool
	Errors     []error
}

// Render renders template against one context.
func (e *Engine) Render(ctx any, template string) (string, bool) {
	res := e.Execute(ctx, template)
	return res.Output, res.Success
}

// RenderFiles renders template once against an ordered list of roots and
// returns the concatenated output.
func (e *Engine) RenderFiles(files []*codemodel.File, template string) (string, bool) {
	res := e.ExecuteFiles(files, template)
	return res.Output, res.Success
}

// Execute renders template against one context.
func (e *Engine) Execute(ctx any, template string) Result {
	r := &run{engine: e, source: sourceOf(ctx)}
	var out strings.Builder
	r.guard(func() { r.template(&out, template, ctx) })
	return r.result(out.String())
}

// ExecuteFiles renders template against several roots at once. Top-level
// directives are evaluated per root in order; a collection separator is
// written after a root's items when a later root also yields items.
func (e *Engine) ExecuteFiles(files []*codemodel.File, template string) Result {
	r := &run{engine: e}
	var out strings.Builder
	r.guard(func() { r.multiTemplate(&out, template, files) })
	return r.result(out.String())
}

// run is the state of one render.
type run struct {
	engine     *Engine
	source     string
	matchFound bool
	hasError   bool
	errs       []error
}

func (r *run) result(output string) Result {
	return Result{
		Output:     output,
		Success:    !r.hasError,
		MatchFound: r.matchFound,
		Errors:     r.errs,
	}
}

// guard keeps a structural failure from escaping the render.
func (r *run) guard(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			r.fail("", "Error rendering template.", errors.Newf("panic: %v", p))
		}
	}()
	fn()
}

// fail records a recovered failure.
func (r *run) fail(identifier, message string, err error) {
	r.hasError = true
	err = errors.WithDetailf(errors.Wrap(err, message), "source path: %s", r.source)
	r.errs = append(r.errs, err)
	r.engine.logger.Error(message,
		zap.String("identifier", identifier),
		zap.String("source", r.source),
		zap.Error(err),
	)
}

// template renders text against one context.
func (r *run) template(out *strings.Builder, text string, ctx any) {
	s := newStream(text)
	for s.advance() {
		if s.current() == '$' && r.directive(out, s, ctx) {
			continue
		}
		out.WriteRune(s.current())
	}
}

// directive evaluates the directive starting at the current "$". It reports
// false when the identifier does not resolve, leaving the stream unmoved.
func (r *run) directive(out *strings.Builder, s *stream, ctx any) bool {
	identifier := s.word(1)
	if identifier == "" {
		return false
	}
	fn, ok := r.engine.registry.Lookup(shapeOf(ctx), identifier)
	if !ok {
		return false
	}
	start := s.pos
	s.pos += len([]rune(identifier))

	value, err := call(fn, ctx)
	if err != nil {
		r.fail(identifier, fmt.Sprintf("Error rendering template. Cannot get identifier '%s'.", identifier), err)
		skipClauses(s)
		if s.dangling {
			out.WriteString(s.rest(start))
		}
		return true
	}
	r.value(out, s, start, identifier, value, ctx)
	return true
}

// value writes a resolved identifier, reading the clauses that follow it.
// start is the position of the directive's "$".
func (r *run) value(out *strings.Builder, s *stream, start int, identifier string, value, ctx any) {
	switch v := value.(type) {
	case codemodel.Collection:
		expr, hasFilter := s.block('(', ')')
		item, hasItem := s.block('[', ']')
		separator, hasSeparator := s.block('[', ']')
		if s.dangling {
			out.WriteString(s.rest(start))
			return
		}
		if !hasFilter && !hasItem && !hasSeparator {
			out.WriteString(collectionText(v, identifier))
			return
		}
		items := r.filter(v, expr, identifier, false)
		r.join(out, items, item, separator, ctx)

	case bool:
		whenTrue, _ := s.block('[', ']')
		whenFalse, _ := s.block('[', ']')
		if s.dangling {
			out.WriteString(s.rest(start))
			return
		}
		if v {
			r.template(out, whenTrue, ctx)
		} else {
			r.template(out, whenFalse, ctx)
		}

	default:
		block, hasBlock := s.block('[', ']')
		if s.dangling {
			out.WriteString(s.rest(start))
			return
		}
		if value == nil {
			return
		}
		if hasBlock {
			r.template(out, block, value)
			return
		}
		out.WriteString(display(value))
	}
}

// join renders item once per element and separator, with the outer
// context, between them.
func (r *run) join(out *strings.Builder, items []codemodel.Item, item, separator string, ctx any) {
	if len(items) == 0 {
		return
	}
	var sep strings.Builder
	r.template(&sep, separator, ctx)
	for i, it := range items {
		if i > 0 {
			out.WriteString(sep.String())
		}
		r.template(out, item, it)
	}
}

// filter applies a filter clause. A clause starting with "$" names a
// registered predicate; anything else is a filter expression. A probe only
// asks whether items would survive and records nothing.
func (r *run) filter(c codemodel.Collection, expr, identifier string, probe bool) []codemodel.Item {
	items := c.Items()
	var (
		out []codemodel.Item
		err error
	)

	if name, ok := strings.CutPrefix(expr, "$"); ok {
		pred, found := r.engine.registry.LookupPredicate(name)
		if !found {
			return nil
		}
		out, err = applyPredicate(pred, items)
	} else {
		out, _, err = filter.Apply(items, expr, r.boolLookup(probe))
	}

	if err != nil {
		if !probe {
			r.fail(identifier, fmt.Sprintf("Error rendering template. Cannot apply filter to identifier '%s'.", identifier), err)
		}
		return nil
	}
	if !probe && len(out) > 0 {
		r.matchFound = true
	}
	return out
}

func applyPredicate(pred PredicateFunc, items []codemodel.Item) (out []codemodel.Item, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, errors.Newf("predicate panicked: %v", p)
		}
	}()
	for _, it := range items {
		keep, err := pred(it)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, it)
		}
	}
	return out, nil
}

// boolLookup lets filter expressions test boolean members by name.
func (r *run) boolLookup(probe bool) filter.BoolLookup {
	return func(item any, name string) (bool, bool) {
		fn, ok := r.engine.registry.Lookup(shapeOf(item), name)
		if !ok {
			return false, false
		}
		v, err := call(fn, item)
		if err != nil {
			if !probe {
				r.fail(name, fmt.Sprintf("Error rendering template. Cannot get identifier '%s'.", name), err)
			}
			return false, true
		}
		b, isBool := v.(bool)
		return b, isBool
	}
}

// call invokes fn, turning a panic into an error.
func call(fn Func, ctx any) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, errors.Newf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

// skipClauses consumes the filter and blocks of a directive whose value
// could not be read.
func skipClauses(s *stream) {
	s.block('(', ')')
	s.block('[', ']')
	s.block('[', ']')
}

// collectionText is what a bare collection directive writes: the custom
// display of the collection, or the directive itself when there is none.
func collectionText(c codemodel.Collection, identifier string) string {
	if text := c.DisplayString(); text != c.TypeName() {
		return text
	}
	return "$" + identifier
}

// display returns the output text of a value.
func display(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case interface{ DisplayString() string }:
		return x.DisplayString()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func sourceOf(ctx any) string {
	if f, ok := ctx.(interface{ FullName() string }); ok {
		return f.FullName()
	}
	return ""
}
