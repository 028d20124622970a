// Package imports computes where to add import statements to a source file.
package imports

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

const (
	// DefaultStyledName is the default import name of the styled constructor.
	DefaultStyledName = "tw"
	// DefaultStyledPath is the package the styled constructor comes from.
	DefaultStyledPath = "tailwind-styled-components"
)

// importStatement matches one top-level import when the source does not
// parse. The module specifier is the first string literal after `import`.
var importStatement = regexp2.MustCompile(`^import\b[^"']*["'][^"'\n]*["'][ \t]*;?`, regexp2.ECMAScript|regexp2.Multiline)

// NamedImports returns the insertion that makes names importable from
// importPath. An existing `import { ... } from "importPath"` is extended
// after its last name; otherwise a new statement goes on the line after
// the last top-level import, or at the top of a file without imports.
func NamedImports(text, importPath string, names []string) (types.Insertion, error) {
	existing, err := regexp2.Compile(
		`(import {[^}]*?)[\s\n]+} from "`+regexp2.Escape(importPath)+`"[;]?`,
		regexp2.ECMAScript|regexp2.Multiline,
	)
	if err != nil {
		return types.Insertion{}, fmt.Errorf("compiling import pattern: %w", err)
	}

	match, err := existing.FindStringMatch(text)
	if err != nil {
		return types.Insertion{}, fmt.Errorf("matching existing import: %w", err)
	}
	if match != nil {
		head := match.GroupByNumber(1).String()
		return types.Insertion{
			Offset: byteOffset(text, match.Index) + len(head),
			Text:   ", " + strings.Join(names, ", "),
		}, nil
	}

	statement := fmt.Sprintf("import { %s } from %q\n", strings.Join(names, ", "), importPath)
	end, err := lastImportEnd(text)
	if err != nil {
		return types.Insertion{}, err
	}
	if end < 0 {
		return types.Insertion{Offset: 0, Text: statement}, nil
	}

	if text[end-1] == '\n' {
		return types.Insertion{Offset: end, Text: statement}, nil
	}
	rest := text[end:]
	newline := strings.IndexByte(rest, '\n')
	if newline < 0 {
		return types.Insertion{Offset: len(text), Text: "\n" + statement}, nil
	}
	if strings.TrimSpace(rest[:newline]) != "" {
		// Code shares the line with the import.
		return types.Insertion{Offset: end, Text: "\n" + statement}, nil
	}
	return types.Insertion{Offset: end + newline + 1, Text: statement}, nil
}

// lastImportEnd returns the byte offset just past the last top-level import
// statement of text, or -1 when there is none.
func lastImportEnd(text string) (int, error) {
	if tree, err := syntax.Parse([]byte(text)); err == nil {
		defer tree.Close()
		end := -1
		for _, n := range tree.RootNode().NamedChildren() {
			if n.Kind() == "import_statement" {
				end = n.Span().End
			}
		}
		return end, nil
	}

	end := -1
	match, err := importStatement.FindStringMatch(text)
	for match != nil && err == nil {
		end = byteOffset(text, match.Index+match.Length)
		match, err = importStatement.FindNextMatch(match)
	}
	if err != nil {
		return -1, fmt.Errorf("locating imports: %w", err)
	}
	return end, nil
}

// StyledImport returns the insertion adding `import name from "path"` at
// the top of text, or nil when a default import of name from path (either
// quote style) is already present.
func StyledImport(text, name, path string) (*types.Insertion, error) {
	present, err := regexp2.Compile(
		`import.*\b`+regexp2.Escape(name)+`\b.*\bfrom\b.*["']`+regexp2.Escape(path)+`["'][;]?`,
		regexp2.ECMAScript,
	)
	if err != nil {
		return nil, fmt.Errorf("compiling styled import pattern: %w", err)
	}

	found, err := present.MatchString(text)
	if err != nil {
		return nil, fmt.Errorf("matching styled import: %w", err)
	}
	if found {
		return nil, nil
	}
	return &types.Insertion{
		Offset: 0,
		Text:   fmt.Sprintf("import %s from %q\n", name, path),
	}, nil
}

// byteOffset converts a regexp2 rune index into a byte offset of s.
func byteOffset(s string, runeIndex int) int {
	offset := 0
	for i := 0; i < runeIndex && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}
