package codemodel

import "codewriter/internal/metadata"

// File is the root item for one source unit.
type File struct {
	node
	facts metadata.FileFacts

	classes    memo[*List[*Class]]
	records    memo[*List[*Record]]
	delegates  memo[*List[*Delegate]]
	enums      memo[*List[*Enum]]
	interfaces memo[*List[*Interface]]
}

// Name returns the file name without directories.
func (f *File) Name() string { return f.facts.Name() }

// FullName returns the path of the file.
func (f *File) FullName() string { return f.facts.FullName() }

// Classes returns the top-level classes declared in the file.
func (f *File) Classes() *List[*Class] {
	return f.classes.get(func() *List[*Class] {
		return f.model.classes(f.facts.Classes(), f, f.FullName())
	})
}

// Records returns the top-level records declared in the file.
func (f *File) Records() *List[*Record] {
	return f.records.get(func() *List[*Record] {
		return f.model.records(f.facts.Records(), f, f.FullName())
	})
}

func (f *File) Delegates() *List[*Delegate] {
	return f.delegates.get(func() *List[*Delegate] {
		return f.model.delegates(f.facts.Delegates(), f)
	})
}

func (f *File) Enums() *List[*Enum] {
	return f.enums.get(func() *List[*Enum] {
		return f.model.enums(f.facts.Enums(), f)
	})
}

func (f *File) Interfaces() *List[*Interface] {
	return f.interfaces.get(func() *List[*Interface] {
		return f.model.interfaces(f.facts.Interfaces(), f)
	})
}

// Model returns the arena the file was built in.
func (f *File) Model() *Model { return f.model }

func (f *File) DisplayString() string { return f.Name() }
func (f *File) Shape() string         { return ShapeFile }
