package tsce

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `import React from "react"

export const Card = ({ big }) => (
  <Frame className={big ? "p-4" : "p-2"}>
    <Title css="text-xl">Hello</Title>
  </Frame>
)
`

func TestNew(t *testing.T) {
	engine := New()
	require.NotNil(t, engine)

	components, err := engine.CollectUnbound(source)
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, "Frame", components[0].Name)
	assert.Equal(t, `${({ big }) => big ? "p-4" : "p-2"}`, components[0].ClassName)
	assert.Equal(t, "Title", components[1].Name)
	assert.Empty(t, components[1].ClassName)
}

func TestWithStyleAttribute(t *testing.T) {
	engine := New(WithStyleAttribute("css"))

	components, err := engine.CollectUnbound(source)
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Empty(t, components[0].ClassName)
	assert.Equal(t, "text-xl", components[1].ClassName)
}

func TestHasUnboundAndIsInJSX(t *testing.T) {
	engine := New()

	has, err := engine.HasUnbound(source)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = engine.HasUnbound("const a = <div />\n")
	require.NoError(t, err)
	assert.False(t, has)

	in, err := engine.IsInJSX(source, strings.Index(source, "<Frame")+1)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = engine.IsInJSX(source, 0)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestLocateAndDeclarations(t *testing.T) {
	engine := New(WithConstructor("styled", "my-styled"))

	component, err := engine.Locate(source, strings.Index(source, "Title"))
	require.NoError(t, err)
	require.NotNil(t, component)
	assert.Equal(t, "Title", component.Type)
	require.NotNil(t, component.ClosingTagOffsets)

	component.Name = "Heading"
	assert.Equal(t, "export const Heading = styled(Title)``", engine.GenerateComponentDeclarations(true, *component))

	unbound := []UnboundComponent{{Name: "Box", ClassName: "m-1"}}
	assert.Equal(t, "const Box = styled.div`m-1`", engine.GenerateDeclarations(false, unbound...))
}

func TestExtract(t *testing.T) {
	engine := New(WithReadFile(func(string) ([]byte, error) { return nil, errors.New("unused") }))

	plan, err := engine.Extract(Request{Mode: ExportedUnboundToClipboard, Text: source})
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Count)
	assert.True(t, strings.HasPrefix(plan.Output, "import tw from \"tailwind-styled-components\"\n"))
	assert.Contains(t, plan.Output, "export const Title = tw.div``")

	_, err = engine.Extract(Request{Mode: CurrentToSameFile, Text: source, Offset: 0, Name: "X"})
	assert.ErrorIs(t, err, ErrNoComponent)
}

func TestSyntaxError(t *testing.T) {
	_, err := New().CollectUnbound("const a = <A></B>\n")
	require.ErrorIs(t, err, ErrSyntax)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Line)
}

func TestConcurrentUse(t *testing.T) {
	engine := New()
	done := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := engine.CollectUnbound(source)
			done <- err
		}()
	}
	for range 8 {
		assert.NoError(t, <-done)
	}
}
