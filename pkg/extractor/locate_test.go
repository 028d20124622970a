package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

func TestLocate_ElementWithClosingTag(t *testing.T) {
	component, err := Locate([]byte(locateFixture), 140)
	require.NoError(t, err)
	require.NotNil(t, component)

	assert.Equal(t, &types.Component{
		UnboundComponent: types.UnboundComponent{
			Name:             "",
			PropNames:        []string{},
			ClassName:        "flex flex-col",
			ClassNameOffsets: offsets(124, 149),
			TagOffsets:       types.Offsets{Start: 120, End: 123},
		},
		Type:              "Abc",
		SelfClosing:       false,
		OpeningTagOffsets: types.Offsets{Start: 120, End: 123},
		ClosingTagOffsets: offsets(527, 530),
	}, component)
}

func TestLocate_SelfClosing(t *testing.T) {
	component, err := Locate([]byte(locateFixture), 380)
	require.NoError(t, err)
	require.NotNil(t, component)

	assert.Equal(t, "", component.Name)
	assert.Equal(t, "Efg", component.Type)
	assert.Equal(t, "justify-center", component.ClassName)
	assert.Equal(t, offsets(356, 382), component.ClassNameOffsets)
	assert.Equal(t, types.Offsets{Start: 352, End: 355}, component.OpeningTagOffsets)
	assert.True(t, component.SelfClosing)
	assert.Nil(t, component.ClosingTagOffsets)
}

func TestLocate_ClosingTagAndBoundElements(t *testing.T) {
	// 430 sits in </Def>; Def is bound but still locatable.
	component, err := Locate([]byte(locateFixture), 430)
	require.NoError(t, err)
	require.NotNil(t, component)
	assert.Equal(t, "Def", component.Type)
	assert.Nil(t, component.ClassNameOffsets)

	component, err = Locate([]byte(locateFixture), 420)
	require.NoError(t, err)
	require.NotNil(t, component)
	assert.Equal(t, "section", component.Type)
}

func TestLocate_Outside(t *testing.T) {
	component, err := Locate([]byte(locateFixture), 100)
	require.NoError(t, err)
	assert.Nil(t, component)
}

func TestLocate_Innermost(t *testing.T) {
	src := "const a = <Outer icon=<Inner className=\"w-4\" />>x</Outer>\n"
	offset := len("const a = <Outer icon=<In")
	component, err := Locate([]byte(src), offset)
	require.NoError(t, err)
	require.NotNil(t, component)
	assert.Equal(t, "Inner", component.Type)
	assert.Equal(t, "w-4", component.ClassName)

	component, err = Locate([]byte(src), len("const a = <Ou"))
	require.NoError(t, err)
	require.NotNil(t, component)
	assert.Equal(t, "Outer", component.Type)
}

func TestLocate_FragmentIgnored(t *testing.T) {
	component, err := Locate([]byte("const a = <><b /></>\n"), 11)
	require.NoError(t, err)
	assert.Nil(t, component)
}

func TestLocate_SyntaxError(t *testing.T) {
	_, err := Locate([]byte(mismatchedFixture), 10)
	assert.ErrorIs(t, err, syntax.ErrSyntax)
}

func TestIsInMarkup(t *testing.T) {
	src := []byte(locateFixture)
	for _, offset := range []int{119, 120, 129, 140, 149, 150, 190, 400, 420, 421, 430} {
		in, err := IsInMarkup(src, offset)
		require.NoError(t, err)
		assert.True(t, in, "offset %d", offset)
	}
	for _, offset := range []int{13, 100, 151} {
		in, err := IsInMarkup(src, offset)
		require.NoError(t, err)
		assert.False(t, in, "offset %d", offset)
	}
}
