package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exprOf parses `x = <src>` and returns the right-hand side.
func exprOf(t *testing.T, src string) Expr {
	t.Helper()
	tree := mustParse(t, "x = "+src+"\n")
	p := findPath(t, tree, "assignment_expression", "")
	right := p.Node.ChildByFieldName("right")
	require.NotNil(t, right)
	return ExprFromNode(right)
}

func TestExprFromNode_Shapes(t *testing.T) {
	t.Run("identifier", func(t *testing.T) {
		id, ok := exprOf(t, "abc").(*Ident)
		require.True(t, ok)
		assert.Equal(t, "abc", id.Name)
		assert.Equal(t, 4, id.Span().Start)
		assert.Equal(t, 7, id.Span().End)
	})

	t.Run("parentheses are transparent", func(t *testing.T) {
		id, ok := exprOf(t, "((abc))").(*Ident)
		require.True(t, ok)
		assert.Equal(t, "abc", id.Name)
		assert.Equal(t, 6, id.Span().Start)
	})

	t.Run("optional member", func(t *testing.T) {
		m, ok := exprOf(t, "a?.e").(*Member)
		require.True(t, ok)
		assert.True(t, m.Optional)
		assert.False(t, m.Computed)
		assert.Equal(t, "e", m.PropertyName)
		assert.Nil(t, m.Property)
		assert.IsType(t, &Ident{}, m.Object)
	})

	t.Run("computed member", func(t *testing.T) {
		m, ok := exprOf(t, "a[b]").(*Member)
		require.True(t, ok)
		assert.True(t, m.Computed)
		require.IsType(t, &Ident{}, m.Property)
		assert.Equal(t, "b", m.Property.(*Ident).Name)
	})

	t.Run("call with spread", func(t *testing.T) {
		c, ok := exprOf(t, "f(a, ...b)").(*Call)
		require.True(t, ok)
		require.Len(t, c.Args, 2)
		assert.IsType(t, &Ident{}, c.Args[0])
		spread, ok := c.Args[1].(*Spread)
		require.True(t, ok)
		assert.Equal(t, "b", spread.Arg.(*Ident).Name)
	})

	t.Run("object", func(t *testing.T) {
		o, ok := exprOf(t, "({ k: v, s, ...rest })").(*Object)
		require.True(t, ok)
		require.Len(t, o.Props, 3)
		assert.Equal(t, "k", o.Props[0].Key)
		assert.False(t, o.Props[0].Spread)
		assert.Equal(t, "s", o.Props[1].Key)
		assert.True(t, o.Props[2].Spread)
		assert.Equal(t, "rest", o.Props[2].Value.(*Ident).Name)
	})

	t.Run("conditional", func(t *testing.T) {
		c, ok := exprOf(t, `a ? "x" : "y"`).(*Conditional)
		require.True(t, ok)
		assert.IsType(t, &Ident{}, c.Test)
		assert.Equal(t, "x", c.Consequent.(*StringLit).Value)
		assert.Equal(t, "y", c.Alternate.(*StringLit).Value)
	})

	t.Run("logical operators", func(t *testing.T) {
		for _, op := range []string{"&&", "||", "??"} {
			l, ok := exprOf(t, "a "+op+" b").(*Logical)
			require.True(t, ok, op)
			assert.Equal(t, op, l.Op)
		}
	})

	t.Run("arithmetic is unsupported", func(t *testing.T) {
		u, ok := exprOf(t, "a + b").(*Unsupported)
		require.True(t, ok)
		assert.Equal(t, "binary_expression", u.Kind)
	})

	t.Run("template", func(t *testing.T) {
		tmpl, ok := exprOf(t, "`flex ${a} p-2 ${b && c}`").(*Template)
		require.True(t, ok)
		require.Len(t, tmpl.Quasis, 3)
		require.Len(t, tmpl.Exprs, 2)
		assert.Equal(t, "flex ", tmpl.Quasis[0].Raw)
		assert.Equal(t, " p-2 ", tmpl.Quasis[1].Raw)
		assert.Equal(t, "", tmpl.Quasis[2].Raw)
		assert.IsType(t, &Ident{}, tmpl.Exprs[0])
		assert.IsType(t, &Logical{}, tmpl.Exprs[1])
	})

	t.Run("literals", func(t *testing.T) {
		assert.Equal(t, "12", exprOf(t, "12").(*NumberLit).Raw)
		assert.True(t, exprOf(t, "true").(*BoolLit).Value)
		assert.False(t, exprOf(t, "false").(*BoolLit).Value)
		assert.Equal(t, "a b", exprOf(t, "'a b'").(*StringLit).Value)
	})

	t.Run("tagged template is unsupported", func(t *testing.T) {
		u, ok := exprOf(t, "css`flex`").(*Unsupported)
		require.True(t, ok)
		assert.Equal(t, "call_expression", u.Kind)
	})
}
