package extractor

import (
	"strings"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// DefaultConstructor is the default import name of tailwind-styled-components.
const DefaultConstructor = "tw"

// DeclarationOptions controls GenerateDeclarations output.
type DeclarationOptions struct {
	// Export prefixes every declaration with "export ".
	Export bool
	// Constructor is the styled constructor identifier. Empty means
	// DefaultConstructor.
	Constructor string
}

// GenerateDeclarations renders one styled declaration per component, in
// input order, separated by a blank line.
//
// A component without a type, or with a built-in tag type, uses the
// constructor's tag form (tw.div, tw.span); any other type is wrapped
// (tw(Card)).
func GenerateDeclarations[C types.Declarable](opts DeclarationOptions, components ...C) string {
	constructor := opts.Constructor
	if constructor == "" {
		constructor = DefaultConstructor
	}

	declarations := make([]string, 0, len(components))
	for _, c := range components {
		declarations = append(declarations, declaration(opts.Export, constructor, c))
	}
	return strings.Join(declarations, "\n\n")
}

func declaration(export bool, constructor string, c types.Declarable) string {
	var b strings.Builder
	if export {
		b.WriteString("export ")
	}
	b.WriteString("const ")
	b.WriteString(c.DeclarationName())
	b.WriteString(" = ")

	switch typ := c.DeclarationType(); {
	case typ == "":
		b.WriteString(constructor + ".div")
	case IsBuiltinTag(typ):
		b.WriteString(constructor + "." + typ)
	default:
		b.WriteString(constructor + "(" + typ + ")")
	}

	b.WriteString("`")
	b.WriteString(c.DeclarationStyle())
	b.WriteString("`")
	return b.String()
}
