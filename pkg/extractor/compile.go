package extractor

import (
	"strings"

	"github.com/praetorian-inc/tsce/pkg/syntax"
)

// Compile renders a style attribute value as the body of a
// tailwind-styled-components template literal. Free identifiers the value
// depends on are added to free; they become the prop names of the
// extracted component.
//
// A nil attribute, or one without a value, compiles to "".
func Compile(attr *syntax.Attribute, src []byte, free *FreeVars) string {
	if attr == nil || attr.Value == nil {
		return ""
	}
	switch v := attr.Value.(type) {
	case *syntax.StringValue:
		return strings.TrimSpace(v.Value)
	case *syntax.ExprValue:
		if v.Expr == nil {
			return ""
		}
		return compileExpr(v.Expr, src, free)
	default:
		free.record("element", attr.Value.ValueSpan())
		return ""
	}
}

func compileExpr(expr syntax.Expr, src []byte, free *FreeVars) string {
	switch e := expr.(type) {
	case *syntax.StringLit:
		return strings.TrimSpace(e.Value)
	case *syntax.Ident:
		free.Add(e.Name)
		return ""
	case *syntax.Conditional, *syntax.Logical, *syntax.Member, *syntax.Call:
		return closure(expr, src, free)
	case *syntax.Template:
		return compileTemplate(e, src, free)
	case *syntax.NumberLit, *syntax.BoolLit:
	case *syntax.Unsupported:
		free.unsupported(e, e.Kind)
	default:
		free.unsupported(expr, "unknown")
	}
	return ""
}

// closure renders expr verbatim inside an interpolation that destructures
// its free identifiers from the component props.
func closure(expr syntax.Expr, src []byte, free *FreeVars) string {
	local := NewFreeVars()
	Resolve(expr, local)
	free.Merge(local)

	body := expr.Span().Slice(src)
	if local.Len() == 0 {
		return "${() => " + body + "}"
	}
	return "${({ " + strings.Join(local.names, ", ") + " }) => " + body + "}"
}

// compileTemplate emits conditional and logical interpolations first, then
// the static class text.
func compileTemplate(tmpl *syntax.Template, src []byte, free *FreeVars) string {
	var parts []string
	for _, sub := range tmpl.Exprs {
		switch e := sub.(type) {
		case *syntax.Conditional, *syntax.Logical:
			parts = append(parts, closure(sub, src, free))
		case *syntax.Ident:
			free.Add(e.Name)
		case *syntax.Unsupported:
			free.unsupported(e, e.Kind)
		default:
			free.unsupported(sub, "template_substitution")
		}
	}
	for _, q := range tmpl.Quasis {
		if text := strings.TrimSpace(q.Raw); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
