package syntax

import (
	"github.com/praetorian-inc/tsce/pkg/types"
)

// NameKind classifies a JSX tag name.
type NameKind int

const (
	// NameFragment is the empty name of <>...</>.
	NameFragment NameKind = iota
	// NameIdentifier is a plain name such as div or Card.
	NameIdentifier
	// NameMember is a dotted name such as motion.div.
	NameMember
	// NameNamespace is a namespaced name such as svg:rect.
	NameNamespace
)

// Element is one JSX element: its tags, name and attributes.
type Element struct {
	Name     string
	NameKind NameKind
	NameSpan types.Offsets

	Attributes  []Attribute
	SelfClosing bool

	// Span covers the whole element including children.
	Span            types.Offsets
	OpeningSpan     types.Offsets
	ClosingSpan     *types.Offsets
	ClosingNameSpan *types.Offsets
}

// Attribute returns the first attribute with the given name.
func (e *Element) Attribute(name string) (Attribute, bool) {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// AttributeNames returns the names of all named attributes in order.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.Attributes))
	for _, attr := range e.Attributes {
		if attr.Name != "" {
			names = append(names, attr.Name)
		}
	}
	return names
}

// Attribute is name=value on an opening tag. Spread attributes have an
// empty Name and a nil Value.
type Attribute struct {
	Name  string
	Span  types.Offsets
	Value AttrValue
}

// AttrValue is one of *StringValue, *ExprValue or *ElementValue.
type AttrValue interface {
	ValueSpan() types.Offsets
	attrValue()
}

// StringValue is a quoted attribute value; Value excludes the quotes.
type StringValue struct {
	Span  types.Offsets
	Value string
}

// ExprValue is a {expression} container. Expr is nil for an empty container.
type ExprValue struct {
	Span types.Offsets
	Expr Expr
}

// ElementValue is markup used directly as an attribute value.
type ElementValue struct {
	Span types.Offsets
}

func (v *StringValue) ValueSpan() types.Offsets  { return v.Span }
func (v *ExprValue) ValueSpan() types.Offsets    { return v.Span }
func (v *ElementValue) ValueSpan() types.Offsets { return v.Span }

func (*StringValue) attrValue()  {}
func (*ExprValue) attrValue()    {}
func (*ElementValue) attrValue() {}

// IsTag reports whether n is an opening, closing or self-closing tag.
func IsTag(n *Node) bool {
	switch n.Kind() {
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		return true
	}
	return false
}

// ElementAt builds the element owning the tag at p. It accepts a
// self-closing element, a full element, or the opening or closing tag of
// one; anything else returns false.
func ElementAt(p *Path) (*Element, bool) {
	switch p.Node.Kind() {
	case "jsx_self_closing_element", "jsx_element":
		return ElementFromNode(p.Node)
	case "jsx_opening_element", "jsx_closing_element":
		if p.Parent != nil {
			return ElementFromNode(p.Parent.Node)
		}
	}
	return nil, false
}

// ElementFromNode builds an Element from a jsx_element or
// jsx_self_closing_element node.
func ElementFromNode(n *Node) (*Element, bool) {
	switch n.Kind() {
	case "jsx_self_closing_element":
		el := &Element{SelfClosing: true, Span: n.Span(), OpeningSpan: n.Span()}
		fillOpening(el, n)
		return el, true
	case "jsx_element":
		open := n.ChildByFieldName("open_tag")
		if open == nil {
			return nil, false
		}
		el := &Element{Span: n.Span(), OpeningSpan: open.Span()}
		fillOpening(el, open)
		if closing := n.ChildByFieldName("close_tag"); closing != nil {
			span := closing.Span()
			el.ClosingSpan = &span
			if name := closing.ChildByFieldName("name"); name != nil {
				nameSpan := name.Span()
				el.ClosingNameSpan = &nameSpan
			}
		}
		return el, true
	}
	return nil, false
}

func fillOpening(el *Element, tag *Node) {
	if name := tag.ChildByFieldName("name"); name != nil {
		el.Name = name.Text()
		el.NameSpan = name.Span()
		switch name.Kind() {
		case "identifier":
			el.NameKind = NameIdentifier
		case "jsx_namespace_name":
			el.NameKind = NameNamespace
		default:
			el.NameKind = NameMember
		}
	} else {
		el.NameSpan = types.Offsets{Start: tag.Span().Start + 1, End: tag.Span().Start + 1}
	}

	for _, child := range tag.NamedChildren() {
		switch child.Kind() {
		case "jsx_attribute":
			el.Attributes = append(el.Attributes, attributeFromNode(child))
		case "jsx_expression":
			// {...props}
			el.Attributes = append(el.Attributes, Attribute{Span: child.Span()})
		}
	}
}

func attributeFromNode(n *Node) Attribute {
	attr := Attribute{Span: n.Span()}
	children := n.NamedChildren()
	if len(children) == 0 {
		return attr
	}
	attr.Name = children[0].Text()
	if len(children) < 2 {
		return attr
	}

	value := children[1]
	switch value.Kind() {
	case "string":
		attr.Value = &StringValue{Span: value.Span(), Value: innerText(value)}
	case "jsx_expression":
		container := &ExprValue{Span: value.Span()}
		if inner := value.FirstNamedChild(); inner != nil {
			container.Expr = ExprFromNode(inner)
		}
		attr.Value = container
	default:
		attr.Value = &ElementValue{Span: value.Span()}
	}
	return attr
}
