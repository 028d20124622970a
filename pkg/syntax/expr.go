package syntax

import (
	"github.com/praetorian-inc/tsce/pkg/types"
)

// Expr is the closed set of expression shapes the extractor understands.
// Anything else is carried as *Unsupported so callers can report it.
type Expr interface {
	Span() types.Offsets
	sealed()
}

type exprBase struct {
	span types.Offsets
}

func (b exprBase) Span() types.Offsets { return b.span }
func (exprBase) sealed()               {}

// Ident is a reference to a name.
type Ident struct {
	exprBase
	Name string
}

// Member is a.b, a?.b or a[b]. Property is set only when Computed.
type Member struct {
	exprBase
	Object       Expr
	Property     Expr
	PropertyName string
	Computed     bool
	Optional     bool
}

// Call is callee(args...). Spread arguments appear as *Spread.
type Call struct {
	exprBase
	Callee   Expr
	Args     []Expr
	Optional bool
}

// Spread is ...arg inside call arguments or object literals.
type Spread struct {
	exprBase
	Arg Expr
}

// ObjectProp is one entry of an object literal. Spread entries carry the
// spread source in Value.
type ObjectProp struct {
	Spread bool
	Key    string
	Value  Expr
}

// Object is an object literal.
type Object struct {
	exprBase
	Props []ObjectProp
}

// Conditional is test ? consequent : alternate.
type Conditional struct {
	exprBase
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

// Logical is a short-circuit operator: &&, || or ??.
type Logical struct {
	exprBase
	Op    string
	Left  Expr
	Right Expr
}

// Quasi is a literal chunk of a template, raw text between interpolations.
type Quasi struct {
	Span types.Offsets
	Raw  string
}

// Template is a backtick string. len(Quasis) == len(Exprs)+1.
type Template struct {
	exprBase
	Quasis []Quasi
	Exprs  []Expr
}

// StringLit is a quoted string. Value is the raw text between the quotes.
type StringLit struct {
	exprBase
	Value string
}

type NumberLit struct {
	exprBase
	Raw string
}

type BoolLit struct {
	exprBase
	Value bool
}

// Unsupported is any expression outside the shapes above.
type Unsupported struct {
	exprBase
	Kind string
}

var logicalOperators = map[string]bool{"&&": true, "||": true, "??": true}

// ExprFromNode converts a tree-sitter expression node. Parentheses are
// transparent: the inner expression is returned with its own span.
func ExprFromNode(n *Node) Expr {
	base := exprBase{span: n.Span()}

	switch n.Kind() {
	case "parenthesized_expression":
		if inner := n.FirstNamedChild(); inner != nil {
			return ExprFromNode(inner)
		}
	case "identifier", "undefined":
		return &Ident{exprBase: base, Name: n.Text()}
	case "member_expression":
		member := &Member{
			exprBase: base,
			Optional: n.HasChildKind("optional_chain"),
		}
		if object := n.ChildByFieldName("object"); object != nil {
			member.Object = ExprFromNode(object)
		}
		if property := n.ChildByFieldName("property"); property != nil {
			member.PropertyName = property.Text()
		}
		if member.Object != nil {
			return member
		}
	case "subscript_expression":
		object := n.ChildByFieldName("object")
		index := n.ChildByFieldName("index")
		if object != nil && index != nil {
			return &Member{
				exprBase: base,
				Object:   ExprFromNode(object),
				Property: ExprFromNode(index),
				Computed: true,
				Optional: n.HasChildKind("optional_chain"),
			}
		}
	case "call_expression":
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		// A template in the arguments slot is a tagged template.
		if fn == nil || args == nil || args.Kind() != "arguments" {
			break
		}
		call := &Call{
			exprBase: base,
			Callee:   ExprFromNode(fn),
			Optional: n.HasChildKind("optional_chain"),
		}
		for _, arg := range args.NamedChildren() {
			call.Args = append(call.Args, ExprFromNode(arg))
		}
		return call
	case "spread_element":
		if arg := n.FirstNamedChild(); arg != nil {
			return &Spread{exprBase: base, Arg: ExprFromNode(arg)}
		}
	case "object":
		object := &Object{exprBase: base}
		for _, child := range n.NamedChildren() {
			object.Props = append(object.Props, objectProp(child))
		}
		return object
	case "ternary_expression":
		test := n.ChildByFieldName("condition")
		consequent := n.ChildByFieldName("consequence")
		alternate := n.ChildByFieldName("alternative")
		if test != nil && consequent != nil && alternate != nil {
			return &Conditional{
				exprBase:   base,
				Test:       ExprFromNode(test),
				Consequent: ExprFromNode(consequent),
				Alternate:  ExprFromNode(alternate),
			}
		}
	case "binary_expression":
		op := n.ChildByFieldName("operator")
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if op != nil && left != nil && right != nil && logicalOperators[op.Text()] {
			return &Logical{
				exprBase: base,
				Op:       op.Text(),
				Left:     ExprFromNode(left),
				Right:    ExprFromNode(right),
			}
		}
	case "template_string":
		return templateFromNode(n)
	case "string":
		return &StringLit{exprBase: base, Value: innerText(n)}
	case "number":
		return &NumberLit{exprBase: base, Raw: n.Text()}
	case "true", "false":
		return &BoolLit{exprBase: base, Value: n.Kind() == "true"}
	}

	return &Unsupported{exprBase: base, Kind: n.Kind()}
}

func objectProp(n *Node) ObjectProp {
	switch n.Kind() {
	case "spread_element":
		if arg := n.FirstNamedChild(); arg != nil {
			return ObjectProp{Spread: true, Value: ExprFromNode(arg)}
		}
	case "pair":
		prop := ObjectProp{}
		if key := n.ChildByFieldName("key"); key != nil {
			prop.Key = key.Text()
		}
		if value := n.ChildByFieldName("value"); value != nil {
			prop.Value = ExprFromNode(value)
		}
		return prop
	case "shorthand_property_identifier":
		return ObjectProp{
			Key:   n.Text(),
			Value: &Ident{exprBase: exprBase{span: n.Span()}, Name: n.Text()},
		}
	}
	key := ""
	if name := n.ChildByFieldName("name"); name != nil {
		key = name.Text()
	}
	return ObjectProp{Key: key}
}

// templateFromNode splits a template string into the raw text between its
// backticks and substitutions.
func templateFromNode(n *Node) *Template {
	span := n.Span()
	tmpl := &Template{exprBase: exprBase{span: span}}

	cursor := span.Start + 1
	for _, child := range n.NamedChildren() {
		if child.Kind() != "template_substitution" {
			continue
		}
		sub := child.Span()
		tmpl.Quasis = append(tmpl.Quasis, quasi(n.source, cursor, sub.Start))
		if inner := child.FirstNamedChild(); inner != nil {
			tmpl.Exprs = append(tmpl.Exprs, ExprFromNode(inner))
		} else {
			tmpl.Exprs = append(tmpl.Exprs, &Unsupported{exprBase: exprBase{span: sub}, Kind: "template_substitution"})
		}
		cursor = sub.End
	}
	end := span.End - 1
	if end < cursor {
		end = cursor
	}
	tmpl.Quasis = append(tmpl.Quasis, quasi(n.source, cursor, end))
	return tmpl
}

func quasi(src []byte, start, end int) Quasi {
	o := types.Offsets{Start: start, End: end}
	return Quasi{Span: o, Raw: o.Slice(src)}
}

// innerText returns a quoted node's text without its delimiters.
func innerText(n *Node) string {
	text := n.Text()
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return ""
}
