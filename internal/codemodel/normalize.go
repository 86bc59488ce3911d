package codemodel

import (
	"strings"

	"codewriter/internal/metadata"
)

// Wrapper type names unwrapped at construction.
const (
	nullableName = "System.Nullable"
	taskName     = "System.Threading.Tasks.Task"
	voidName     = "System.Void"
)

// normalize unwraps Nullable<T> into T with nullability set and Task<T> into
// T with the task flag set. A non-generic Task becomes void. Nullable types
// get a "?" suffix on both names.
func normalize(f metadata.TypeFacts) metadata.TypeFacts {
	full := strings.TrimSuffix(f.FullName(), "?")
	args := f.TypeArguments()

	switch {
	case isWrapper(full, nullableName) && len(args) == 1:
		inner := normalize(args[0])
		return withFlags(inner, true, inner.IsTask())
	case isWrapper(full, taskName) && len(args) == 1:
		inner := normalize(args[0])
		return withFlags(inner, inner.IsNullable(), true)
	case isWrapper(full, taskName) && len(args) == 0:
		return &voidTask{TypeFacts: f}
	}

	if f.IsNullable() {
		return withFlags(f, true, f.IsTask())
	}
	return f
}

// isWrapper matches a full name against a generic wrapper, with or without
// an arity or argument list suffix.
func isWrapper(full, wrapper string) bool {
	if !strings.HasPrefix(full, wrapper) {
		return false
	}
	rest := full[len(wrapper):]
	return rest == "" || rest[0] == '<' || rest[0] == '`'
}

func withFlags(f metadata.TypeFacts, nullable, task bool) metadata.TypeFacts {
	if n, ok := f.(*normalizedType); ok {
		f = n.TypeFacts
	}
	if !nullable && !task {
		return f
	}
	return &normalizedType{TypeFacts: f, nullable: nullable, task: task}
}

// normalizedType overrides the flags and names of an unwrapped type.
type normalizedType struct {
	metadata.TypeFacts
	nullable bool
	task     bool
}

func (n *normalizedType) IsNullable() bool { return n.nullable }
func (n *normalizedType) IsTask() bool     { return n.task }

func (n *normalizedType) Name() string {
	return nullableSuffix(n.TypeFacts.Name(), n.nullable)
}

func (n *normalizedType) FullName() string {
	return nullableSuffix(n.TypeFacts.FullName(), n.nullable)
}

func nullableSuffix(name string, nullable bool) string {
	if nullable && !strings.HasSuffix(name, "?") {
		return name + "?"
	}
	return name
}

// voidTask is what a non-generic Task resolves to.
type voidTask struct {
	metadata.TypeFacts
}

func (voidTask) Name() string                        { return "Void" }
func (voidTask) FullName() string                    { return voidName }
func (voidTask) Namespace() string                   { return "System" }
func (voidTask) IsTask() bool                        { return true }
func (voidTask) IsGeneric() bool                     { return false }
func (voidTask) IsNullable() bool                    { return false }
func (voidTask) IsDefined() bool                     { return false }
func (voidTask) TypeArguments() []metadata.TypeFacts { return nil }
func (voidTask) DefaultValue() string                { return "void(0)" }
