package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Tree {
	t.Helper()
	tree, err := Parse([]byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

// findPath returns the path to the first node of kind whose text is text
// (any text when empty).
func findPath(t *testing.T, tree *Tree, kind, text string) *Path {
	t.Helper()
	var found *Path
	tree.Walk(func(p *Path) WalkAction {
		if p.Node.Kind() == kind && (text == "" || p.Node.Text() == text) {
			found = p
			return Stop
		}
		return Continue
	})
	require.NotNil(t, found, "no %s node %q", kind, text)
	return found
}

func TestParse_Valid(t *testing.T) {
	tree := mustParse(t, `import React from "react"
export const App = () => <div className="flex"><Card /></div>
`)
	assert.Equal(t, "program", tree.RootNode().Kind())
	assert.NotEmpty(t, tree.Source())
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unclosed element", src: "const a = <div>\n"},
		{name: "mismatched closing tag", src: "const a = <Abc></Def>\n"},
		{name: "garbage", src: "const = = ;\n"},
		{name: "fragment closed by named tag", src: "const a = <></Abc>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.ErrorIs(t, err, ErrSyntax)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.GreaterOrEqual(t, syntaxErr.Line, 1)
			assert.GreaterOrEqual(t, syntaxErr.Column, 1)
			assert.LessOrEqual(t, syntaxErr.Offset, len(tt.src))
		})
	}
}

func TestParse_MismatchedTagMessage(t *testing.T) {
	src := "const a = (\n  <Abc>\n  </Def>\n)\n"
	_, err := Parse([]byte(src))
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "Expected corresponding JSX closing tag for <Abc>", syntaxErr.Message)
	assert.Equal(t, 22, syntaxErr.Offset)
	assert.Equal(t, 3, syntaxErr.Line)
	assert.Equal(t, 3, syntaxErr.Column)
	assert.Equal(t, "Expected corresponding JSX closing tag for <Abc> (3:3)", err.Error())
}

func TestSyntaxError_Is(t *testing.T) {
	err := &SyntaxError{Message: "Unexpected token", Offset: 4, Line: 1, Column: 5}
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.False(t, errors.Is(err, ErrParseFailed))
	assert.Equal(t, "Unexpected token (1:5)", err.Error())
}

func TestWalk_StopAndSkip(t *testing.T) {
	tree := mustParse(t, "const a = <A><B /></A>\nconst b = <C />\n")

	var visited []string
	stopped := tree.Walk(func(p *Path) WalkAction {
		if p.Node.Kind() == "identifier" {
			visited = append(visited, p.Node.Text())
		}
		if p.Node.Kind() == "jsx_self_closing_element" {
			return Stop
		}
		return Continue
	})
	assert.True(t, stopped)
	assert.Equal(t, []string{"a", "A"}, visited)

	visited = nil
	stopped = tree.Walk(func(p *Path) WalkAction {
		if p.Node.Kind() == "jsx_element" {
			return SkipChildren
		}
		if p.Node.Kind() == "identifier" {
			visited = append(visited, p.Node.Text())
		}
		return Continue
	})
	assert.False(t, stopped)
	assert.Equal(t, []string{"a", "b", "C"}, visited)
}

func TestWalk_ParentChain(t *testing.T) {
	tree := mustParse(t, "const a = <A><B /></A>\n")
	p := findPath(t, tree, "jsx_self_closing_element", "")
	require.NotNil(t, p.Parent)
	assert.Equal(t, "jsx_element", p.Parent.Node.Kind())

	depth := 0
	for q := p; q != nil; q = q.Parent {
		depth++
	}
	assert.Greater(t, depth, 3)
}
