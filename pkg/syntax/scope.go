package syntax

import (
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ScopeKind distinguishes the function-level scopes that receive hoisted
// var declarations from nested block scopes.
type ScopeKind int

const (
	ProgramScope ScopeKind = iota
	FunctionScope
	BlockScope
)

// Scope is one level of the lexical environment.
type Scope struct {
	Kind     ScopeKind
	parent   *Scope
	bindings map[string]struct{}
}

func newScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, parent: parent, bindings: make(map[string]struct{})}
}

// Parent returns the enclosing scope, or nil for the program scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// HasBinding reports whether name is declared in this scope or any
// enclosing one. Built-in globals such as Array or undefined count as bound.
func (s *Scope) HasBinding(name string) bool {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.bindings[name]; ok {
			return true
		}
	}
	return IsGlobal(name)
}

// HasOwnBinding reports whether name is declared directly in this scope.
func (s *Scope) HasOwnBinding(name string) bool {
	_, ok := s.bindings[name]
	return ok
}

// Bindings returns the names declared directly in this scope, sorted.
func (s *Scope) Bindings() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scope) declare(names ...string) {
	for _, name := range names {
		if name != "" {
			s.bindings[name] = struct{}{}
		}
	}
}

// hoistTarget returns the nearest function or program scope.
func (s *Scope) hoistTarget() *Scope {
	scope := s
	for scope.Kind == BlockScope && scope.parent != nil {
		scope = scope.parent
	}
	return scope
}

var functionKinds = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function_expression":            true,
	"function":                       true,
	"generator_function":             true,
	"arrow_function":                 true,
	"method_definition":              true,
}

var blockKinds = map[string]bool{
	"statement_block":            true,
	"for_statement":              true,
	"for_in_statement":           true,
	"catch_clause":               true,
	"switch_body":                true,
	"class_declaration":          true,
	"class":                      true,
	"abstract_class_declaration": true,
}

type scopeBuilder struct {
	source []byte
	scopes map[uintptr]*Scope
}

// buildScopes declares every binding in the tree up front so lookups made
// during a walk see hoisted names regardless of source order.
func buildScopes(root *sitter.Node, source []byte) (*Scope, map[uintptr]*Scope) {
	b := &scopeBuilder{source: source, scopes: make(map[uintptr]*Scope)}
	program := newScope(ProgramScope, nil)
	b.scopes[root.Id()] = program
	b.visitChildren(root, program)
	return program, b.scopes
}

func (b *scopeBuilder) text(n *sitter.Node) string {
	return n.Utf8Text(b.source)
}

func (b *scopeBuilder) visitChildren(n *sitter.Node, current *Scope) {
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := n.NamedChild(i); child != nil {
			b.visit(child, current)
		}
	}
}

func (b *scopeBuilder) visit(n *sitter.Node, current *Scope) {
	kind := n.Kind()

	switch kind {
	case "variable_declaration":
		b.declareDeclarators(n, current.hoistTarget())
	case "lexical_declaration":
		b.declareDeclarators(n, current)
	case "import_statement":
		b.declareImports(n, current)
	case "function_declaration", "generator_function_declaration", "function_signature",
		"class_declaration", "abstract_class_declaration", "enum_declaration",
		"internal_module", "module":
		if name := n.ChildByFieldName("name"); name != nil && isIdentifierKind(name.Kind()) {
			current.declare(b.text(name))
		}
	}

	scope := current
	switch {
	case functionKinds[kind]:
		scope = newScope(FunctionScope, current)
		b.scopes[n.Id()] = scope
		b.declareParams(n, scope)
		if kind == "function_expression" || kind == "function" || kind == "generator_function" {
			if name := n.ChildByFieldName("name"); name != nil {
				scope.declare(b.text(name))
			}
		}
	case blockKinds[kind]:
		scope = newScope(BlockScope, current)
		b.scopes[n.Id()] = scope
		switch kind {
		case "class":
			if name := n.ChildByFieldName("name"); name != nil {
				scope.declare(b.text(name))
			}
		case "catch_clause":
			if param := n.ChildByFieldName("parameter"); param != nil {
				scope.declare(b.patternNames(param)...)
			}
		case "for_in_statement":
			b.declareForHead(n, scope)
		}
	}

	b.visitChildren(n, scope)
}

func (b *scopeBuilder) declareDeclarators(n *sitter.Node, target *Scope) {
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil {
			target.declare(b.patternNames(name)...)
		}
	}
}

func (b *scopeBuilder) declareForHead(n *sitter.Node, scope *Scope) {
	left := n.ChildByFieldName("left")
	declKind := n.ChildByFieldName("kind")
	if left == nil || declKind == nil {
		return
	}
	target := scope
	if b.text(declKind) == "var" {
		target = scope.hoistTarget()
	}
	target.declare(b.patternNames(left)...)
}

func (b *scopeBuilder) declareParams(n *sitter.Node, scope *Scope) {
	if param := n.ChildByFieldName("parameter"); param != nil {
		scope.declare(b.patternNames(param)...)
	}
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	count := params.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := params.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "required_parameter", "optional_parameter":
			if pattern := child.ChildByFieldName("pattern"); pattern != nil {
				scope.declare(b.patternNames(pattern)...)
			}
		default:
			scope.declare(b.patternNames(child)...)
		}
	}
}

func (b *scopeBuilder) declareImports(n *sitter.Node, scope *Scope) {
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		clause := n.NamedChild(i)
		if clause == nil || clause.Kind() != "import_clause" {
			continue
		}
		clauseCount := clause.NamedChildCount()
		for j := uint(0); j < clauseCount; j++ {
			part := clause.NamedChild(j)
			if part == nil {
				continue
			}
			switch part.Kind() {
			case "identifier":
				scope.declare(b.text(part))
			case "namespace_import":
				if id := firstNamedOfKind(part, "identifier"); id != nil {
					scope.declare(b.text(id))
				}
			case "named_imports":
				specCount := part.NamedChildCount()
				for k := uint(0); k < specCount; k++ {
					spec := part.NamedChild(k)
					if spec == nil || spec.Kind() != "import_specifier" {
						continue
					}
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					if local != nil {
						scope.declare(b.text(local))
					}
				}
			}
		}
	}
}

// patternNames returns the identifiers a binding pattern introduces.
// Default values and type annotations are not bindings and are skipped.
func (b *scopeBuilder) patternNames(n *sitter.Node) []string {
	switch n.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{b.text(n)}
	case "assignment_pattern", "object_assignment_pattern":
		if left := n.ChildByFieldName("left"); left != nil {
			return b.patternNames(left)
		}
	case "pair_pattern":
		if value := n.ChildByFieldName("value"); value != nil {
			return b.patternNames(value)
		}
	case "rest_pattern":
		if inner := n.NamedChild(0); inner != nil {
			return b.patternNames(inner)
		}
	case "required_parameter", "optional_parameter":
		if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			return b.patternNames(pattern)
		}
	case "object_pattern", "array_pattern":
		var names []string
		count := n.NamedChildCount()
		for i := uint(0); i < count; i++ {
			if child := n.NamedChild(i); child != nil {
				names = append(names, b.patternNames(child)...)
			}
		}
		return names
	}
	return nil
}

func isIdentifierKind(kind string) bool {
	return kind == "identifier" || kind == "type_identifier"
}

func firstNamedOfKind(n *sitter.Node, kind string) *sitter.Node {
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := n.NamedChild(i); child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
