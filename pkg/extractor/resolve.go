package extractor

import (
	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// UnsupportedExpr records an expression shape the resolver or compiler
// skipped. It contributes nothing to the output.
type UnsupportedExpr struct {
	Kind string
	Span types.Offsets
}

// FreeVars is an insertion-ordered set of identifier names.
type FreeVars struct {
	names       []string
	seen        map[string]struct{}
	Unsupported []UnsupportedExpr
}

// NewFreeVars returns an empty set.
func NewFreeVars() *FreeVars {
	return &FreeVars{seen: make(map[string]struct{})}
}

// Add appends name unless it is already present.
func (f *FreeVars) Add(name string) {
	if _, ok := f.seen[name]; ok {
		return
	}
	f.seen[name] = struct{}{}
	f.names = append(f.names, name)
}

// Merge adds every name of other, in order, and carries over its
// unsupported records.
func (f *FreeVars) Merge(other *FreeVars) {
	for _, name := range other.names {
		f.Add(name)
	}
	f.Unsupported = append(f.Unsupported, other.Unsupported...)
}

// Has reports whether name is in the set.
func (f *FreeVars) Has(name string) bool {
	_, ok := f.seen[name]
	return ok
}

// Len returns the number of names.
func (f *FreeVars) Len() int {
	return len(f.names)
}

// Names returns the names in first-seen order.
func (f *FreeVars) Names() []string {
	return append([]string(nil), f.names...)
}

// Without returns the names in order, dropping any listed in exclude.
// The result is never nil.
func (f *FreeVars) Without(exclude []string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}
	out := make([]string, 0, len(f.names))
	for _, name := range f.names {
		if _, ok := skip[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

func (f *FreeVars) unsupported(e syntax.Expr, kind string) {
	f.record(kind, e.Span())
}

func (f *FreeVars) record(kind string, span types.Offsets) {
	f.Unsupported = append(f.Unsupported, UnsupportedExpr{Kind: kind, Span: span})
}

// Resolve adds the free identifiers referenced by expr to free.
//
// Only the test of a conditional is inspected: its branches are the style
// values being selected, not inputs. Object literals contribute their spread
// sources only.
func Resolve(expr syntax.Expr, free *FreeVars) {
	switch e := expr.(type) {
	case nil:
	case *syntax.Ident:
		free.Add(e.Name)
	case *syntax.Member:
		Resolve(e.Object, free)
		if e.Computed {
			Resolve(e.Property, free)
		}
	case *syntax.Call:
		Resolve(e.Callee, free)
		for _, arg := range e.Args {
			Resolve(arg, free)
		}
	case *syntax.Spread:
		Resolve(e.Arg, free)
	case *syntax.Object:
		for _, prop := range e.Props {
			if prop.Spread {
				Resolve(prop.Value, free)
			}
		}
	case *syntax.Conditional:
		Resolve(e.Test, free)
	case *syntax.Logical:
		Resolve(e.Left, free)
		Resolve(e.Right, free)
	case *syntax.Template:
		for _, sub := range e.Exprs {
			Resolve(sub, free)
		}
	case *syntax.StringLit, *syntax.NumberLit, *syntax.BoolLit:
	case *syntax.Unsupported:
		free.unsupported(e, e.Kind)
	default:
		free.unsupported(expr, "unknown")
	}
}
