package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
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

const cardDeclarations = "const Wrapper = tw.div`flex p-2`\n\n" +
	"const Title = tw.div`${({ big }) => big ? \"text-xl\" : \"text-sm\"}`"

// writeProject creates files under a fresh temporary directory.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func resetGlobalFlags() {
	verbose = false
	quiet = false
	configPath = ""
}
