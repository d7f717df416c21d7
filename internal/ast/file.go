package ast

import "arkc/internal/source"

// File is the root of one compilation unit's tree. An empty Items list is a
// valid program.
type File struct {
	nodeBase
	Name  string
	Items []Item
}

func (*File) Kind() Kind { return KindFile }

func NewFile(sp source.Span, name string, items []Item) *File {
	f := &File{nodeBase: nodeBase{span: sp}, Name: name, Items: items}
	adoptAll(f, items)
	return f
}

// Decls returns the declarations among the top-level items.
func (f *File) Decls() []Decl {
	out := make([]Decl, 0, len(f.Items))
	for _, it := range f.Items {
		if d, ok := it.(Decl); ok {
			out = append(out, d)
		}
	}
	return out
}
