package syntax

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// Tree is a parsed source snapshot together with its lexical scopes.
type Tree struct {
	inner  *sitter.Tree
	source []byte
	root   *Scope
	scopes map[uintptr]*Scope
}

// RootNode returns the program node.
func (t *Tree) RootNode() *Node {
	return &Node{inner: t.inner.RootNode(), source: t.source}
}

// Source returns the text the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.inner.Close()
}

// Node wraps a tree-sitter node with the source it indexes into.
type Node struct {
	inner  *sitter.Node
	source []byte
}

func (n *Node) wrap(inner *sitter.Node) *Node {
	if inner == nil {
		return nil
	}
	return &Node{inner: inner, source: n.source}
}

// Kind returns the grammar node type, e.g. "jsx_opening_element".
func (n *Node) Kind() string {
	return n.inner.Kind()
}

// Span returns the node's byte range.
func (n *Node) Span() types.Offsets {
	return types.Offsets{Start: int(n.inner.StartByte()), End: int(n.inner.EndByte())}
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	return n.inner.Utf8Text(n.source)
}

// ChildByFieldName returns the child stored under a grammar field, or nil.
func (n *Node) ChildByFieldName(name string) *Node {
	return n.wrap(n.inner.ChildByFieldName(name))
}

// NamedChildren returns all named children, skipping comments.
func (n *Node) NamedChildren() []*Node {
	count := n.inner.NamedChildCount()
	children := make([]*Node, 0, count)
	for i := uint(0); i < count; i++ {
		child := n.inner.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		children = append(children, n.wrap(child))
	}
	return children
}

// FirstNamedChild returns the first non-comment named child, or nil.
func (n *Node) FirstNamedChild() *Node {
	count := n.inner.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.inner.NamedChild(i)
		if child != nil && child.Kind() != "comment" {
			return n.wrap(child)
		}
	}
	return nil
}

// HasChildKind reports whether any direct child, named or not, has kind.
func (n *Node) HasChildKind(kind string) bool {
	count := n.inner.ChildCount()
	for i := uint(0); i < count; i++ {
		if child := n.inner.Child(i); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

func (n *Node) id() uintptr {
	return n.inner.Id()
}

// WalkAction tells Walk how to continue after visiting a node.
type WalkAction int

const (
	// Continue descends into the node's children.
	Continue WalkAction = iota
	// SkipChildren moves on to the next sibling.
	SkipChildren
	// Stop ends the traversal.
	Stop
)

// Path is a node in the context of a traversal.
type Path struct {
	Node   *Node
	Parent *Path
	// Scope is the innermost lexical scope in effect at Node.
	Scope *Scope
}

// Visitor is called for every named node in pre-order.
type Visitor func(p *Path) WalkAction

// Walk visits every named node, parents before children. It returns true
// when the visitor stopped the traversal early.
func (t *Tree) Walk(visit Visitor) bool {
	return t.walk(&Path{Node: t.RootNode(), Scope: t.root}, visit)
}

func (t *Tree) walk(p *Path, visit Visitor) bool {
	switch visit(p) {
	case Stop:
		return true
	case SkipChildren:
		return false
	}
	for _, child := range p.Node.NamedChildren() {
		scope := p.Scope
		if own, ok := t.scopes[child.id()]; ok {
			scope = own
		}
		if t.walk(&Path{Node: child, Parent: p, Scope: scope}, visit) {
			return true
		}
	}
	return false
}
