package refactor

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/tsce/pkg/config"
	"github.com/praetorian-inc/tsce/pkg/syntax"
)

const cardSource = `import React from "react"

export const Card = () => (
  <Wrapper className="flex p-2">
    <Title className={big ? "text-xl" : "text-sm"}>Hi</Title>
    <span className="m-1">x</span>
  </Wrapper>
)
`

const cardStripped = `import React from "react"

export const Card = () => (
  <Wrapper>
    <Title>Hi</Title>
    <span className="m-1">x</span>
  </Wrapper>
)
`

const styledImport = "import tw from \"tailwind-styled-components\"\n"

const reactImport = "import React from \"react\"\n"

// withNamedImport adds the styles-file import after the react import.
func withNamedImport(source, statement string) string {
	return strings.Replace(source, reactImport, reactImport+statement, 1)
}

const cardDeclarations = "const Wrapper = tw.div`flex p-2`\n\n" +
	"const Title = tw.div`${({ big }) => big ? \"text-xl\" : \"text-sm\"}`"

const cardExportedDeclarations = "export const Wrapper = tw.div`flex p-2`\n\n" +
	"export const Title = tw.div`${({ big }) => big ? \"text-xl\" : \"text-sm\"}`"

// memFS serves styles files from a map; absent keys do not exist.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(content), nil
}

func newRefactorer(files memFS) *Refactorer {
	return New(config.Default(), WithReadFile(files.ReadFile))
}

func TestPlan_UnboundToSameFile(t *testing.T) {
	plan, err := newRefactorer(nil).Plan(Request{Mode: UnboundToSameFile, Path: "/app/Card.tsx", Text: cardSource})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Count)
	assert.Equal(t, cardDeclarations, plan.Declarations)
	assert.Empty(t, plan.Output)
	require.Len(t, plan.Files, 1)
	assert.Equal(t, "/app/Card.tsx", plan.Files[0].Path)
	assert.Equal(t, styledImport+cardStripped+"\n"+cardDeclarations+"\n", plan.Files[0].Content)
}

func TestPlan_UnboundToSeparateFile(t *testing.T) {
	plan, err := newRefactorer(memFS{}).Plan(Request{Mode: UnboundToSeparateFile, Path: "/app/Card.tsx", Text: cardSource})
	require.NoError(t, err)

	require.Len(t, plan.Files, 2)
	source, styles := plan.Files[0], plan.Files[1]

	assert.Equal(t, "/app/Card.tsx", source.Path)
	assert.Equal(t, withNamedImport(cardStripped, "import { Wrapper, Title } from \"./Card.styles\"\n"), source.Content)
	assert.False(t, source.Created)

	assert.Equal(t, "/app/Card.styles.tsx", styles.Path)
	assert.True(t, styles.Created)
	assert.Equal(t, styledImport+cardExportedDeclarations+"\n", styles.Content)
}

func TestPlan_SeparateFileExtendsExisting(t *testing.T) {
	existing := styledImport + "\nexport const Old = tw.div``\n"
	files := memFS{"/app/Card.styles.tsx": existing}
	text := "import { Old } from \"./Card.styles\"\n\nexport const A = () => <New className=\"p-1\" />\n"

	plan, err := newRefactorer(files).Plan(Request{Mode: UnboundToSeparateFile, Path: "/app/Card.tsx", Text: text})
	require.NoError(t, err)
	require.Len(t, plan.Files, 2)

	assert.Equal(t, "import { Old, New } from \"./Card.styles\"\n\nexport const A = () => <New />\n", plan.Files[0].Content)
	assert.False(t, plan.Files[1].Created)
	assert.Equal(t, existing+"\nexport const New = tw.div`p-1`\n", plan.Files[1].Content)
}

func TestPlan_SeparateFileReadError(t *testing.T) {
	failing := func(string) ([]byte, error) { return nil, errors.New("disk on fire") }
	r := New(nil, WithReadFile(failing))

	_, err := r.Plan(Request{Mode: UnboundToSeparateFile, Path: "/app/Card.tsx", Text: cardSource})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestPlan_CurrentToSameFile(t *testing.T) {
	offset := strings.Index(cardSource, "<span") + 2
	plan, err := newRefactorer(nil).Plan(Request{Mode: CurrentToSameFile, Path: "/app/Card.tsx", Text: cardSource, Offset: offset, Name: "label"})
	require.NoError(t, err)

	want := strings.Replace(cardSource, `<span className="m-1">x</span>`, `<Label>x</Label>`, 1)
	assert.Equal(t, 1, plan.Count)
	assert.Equal(t, "const Label = tw.span`m-1`", plan.Declarations)
	require.Len(t, plan.Files, 1)
	assert.Equal(t, styledImport+want+"\nconst Label = tw.span`m-1`\n", plan.Files[0].Content)
}

func TestPlan_CurrentToSeparateFile(t *testing.T) {
	offset := strings.Index(cardSource, "</Title>") + 3
	plan, err := newRefactorer(memFS{}).Plan(Request{Mode: CurrentToSeparateFile, Path: "/app/Card.tsx", Text: cardSource, Offset: offset, Name: "big-title"})
	require.NoError(t, err)
	require.Len(t, plan.Files, 2)

	want := strings.Replace(cardSource,
		`<Title className={big ? "text-xl" : "text-sm"}>Hi</Title>`,
		`<BigTitle>Hi</BigTitle>`, 1)
	assert.Equal(t, withNamedImport(want, "import { BigTitle } from \"./Card.styles\"\n"), plan.Files[0].Content)

	decl := "export const BigTitle = tw(Title)`${({ big }) => big ? \"text-xl\" : \"text-sm\"}`"
	assert.Equal(t, decl, plan.Declarations)
	assert.Equal(t, styledImport+decl+"\n", plan.Files[1].Content)
}

func TestPlan_Clipboard(t *testing.T) {
	r := newRefactorer(nil)

	plan, err := r.Plan(Request{Mode: UnboundToClipboard, Text: cardSource})
	require.NoError(t, err)
	assert.Empty(t, plan.Files)
	assert.Equal(t, 2, plan.Count)
	assert.Equal(t, styledImport+cardDeclarations, plan.Output)

	plan, err = r.Plan(Request{Mode: ExportedUnboundToClipboard, Text: cardSource})
	require.NoError(t, err)
	assert.Equal(t, styledImport+cardExportedDeclarations, plan.Output)

	plan, err = r.Plan(Request{Mode: UnboundToClipboard, Text: styledImport + cardSource})
	require.NoError(t, err)
	assert.Equal(t, cardDeclarations, plan.Output)

	cfg := config.Default()
	cfg.AddImportStatement = false
	plan, err = New(cfg).Plan(Request{Mode: UnboundToClipboard, Text: cardSource})
	require.NoError(t, err)
	assert.Equal(t, cardDeclarations, plan.Output)
}

func TestPlan_CustomConstructor(t *testing.T) {
	cfg := config.Default()
	cfg.Constructor = "styled"
	cfg.ImportPath = "my-styled"

	plan, err := New(cfg).Plan(Request{Mode: UnboundToClipboard, Text: "const a = <Box className=\"m-1\" />\n"})
	require.NoError(t, err)
	assert.Equal(t, "import styled from \"my-styled\"\nconst Box = styled.div`m-1`", plan.Output)
}

func TestPlan_Errors(t *testing.T) {
	r := newRefactorer(memFS{})

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "no component", req: Request{Mode: CurrentToSameFile, Text: cardSource, Offset: 3, Name: "X"}, want: ErrNoComponent},
		{name: "no name", req: Request{Mode: CurrentToSameFile, Text: cardSource, Offset: strings.Index(cardSource, "<span") + 1, Name: " - "}, want: ErrNameRequired},
		{name: "no unbound", req: Request{Mode: UnboundToSameFile, Text: "const a = <div />\n"}, want: ErrNoUnbound},
		{name: "unsupported file", req: Request{Mode: UnboundToSameFile, Path: "/app/style.css", Text: cardSource}, want: ErrUnsupportedFile},
		{name: "syntax error", req: Request{Mode: UnboundToClipboard, Text: "const a = <A></B>\n"}, want: syntax.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Plan(tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlan_FileNotMatched(t *testing.T) {
	cfg := config.Default()
	cfg.InputFileRegex = `^/lib/(?<name>.*)\.tsx$`

	_, err := New(cfg).Plan(Request{Mode: UnboundToSeparateFile, Path: "/app/Card.tsx", Text: cardSource})
	assert.ErrorIs(t, err, ErrFileNotMatched)

	_, err = New(cfg).Plan(Request{Mode: UnboundToSeparateFile, Text: cardSource})
	assert.Error(t, err)
}

func TestMode(t *testing.T) {
	exported := map[Mode]bool{
		CurrentToSameFile:          false,
		CurrentToSeparateFile:      true,
		UnboundToClipboard:         false,
		ExportedUnboundToClipboard: true,
		UnboundToSameFile:          false,
		UnboundToSeparateFile:      true,
	}
	for mode, want := range exported {
		assert.Equal(t, want, mode.Exported(), string(mode))

		parsed, err := ParseMode(mode.ShortName())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)

		parsed, err = ParseMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	assert.Len(t, Modes, 6)

	_, err := ParseMode("bogus")
	assert.Error(t, err)
}
