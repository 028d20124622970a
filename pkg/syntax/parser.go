package syntax

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// tsx parses .js, .jsx, .ts and .tsx alike; the TSX grammar accepts all four.
var tsx = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())

// Parse parses src as TSX and builds its scope table. The caller must Close
// the returned tree. Any syntax error fails the whole parse.
func Parse(src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsx); err != nil {
		return nil, fmt.Errorf("setting TSX language: %w", err)
	}

	inner := parser.Parse(src, nil)
	if inner == nil {
		return nil, ErrParseFailed
	}

	root := inner.RootNode()
	if err := checkSyntax(root, src); err != nil {
		inner.Close()
		return nil, err
	}

	tree := &Tree{inner: inner, source: src}
	tree.root, tree.scopes = buildScopes(root, src)
	return tree, nil
}

func newSyntaxError(src []byte, offset int, format string, args ...any) *SyntaxError {
	line, column := types.ComputeLineColumn(src, offset)
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    line,
		Column:  column,
	}
}

// checkSyntax reports the first error or missing node in document order,
// then the first JSX element whose closing tag does not match its opening
// tag. tree-sitter recovers from the latter silently.
func checkSyntax(root *sitter.Node, src []byte) error {
	if root.HasError() {
		if err := firstErrorNode(root, src); err != nil {
			return err
		}
	}
	if err := firstMismatchedTag(root, src); err != nil {
		return err
	}
	return nil
}

func firstErrorNode(n *sitter.Node, src []byte) *SyntaxError {
	if n.IsMissing() {
		return newSyntaxError(src, int(n.StartByte()), "Unexpected token, expected %q", n.Kind())
	}
	if n.IsError() {
		return newSyntaxError(src, int(n.StartByte()), "Unexpected token")
	}
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if err := firstErrorNode(child, src); err != nil {
			return err
		}
	}
	return nil
}

func firstMismatchedTag(n *sitter.Node, src []byte) *SyntaxError {
	if n.Kind() == "jsx_element" {
		open := n.ChildByFieldName("open_tag")
		closing := n.ChildByFieldName("close_tag")
		if open != nil && closing != nil {
			openName := tagNameText(open, src)
			closeName := tagNameText(closing, src)
			if openName != closeName {
				if openName == "" {
					return newSyntaxError(src, int(closing.StartByte()),
						"Expected corresponding closing tag for JSX fragment")
				}
				return newSyntaxError(src, int(closing.StartByte()),
					"Expected corresponding JSX closing tag for <%s>", openName)
			}
		}
	}
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := n.NamedChild(i); child != nil {
			if err := firstMismatchedTag(child, src); err != nil {
				return err
			}
		}
	}
	return nil
}

func tagNameText(tag *sitter.Node, src []byte) string {
	name := tag.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Utf8Text(src)
}
