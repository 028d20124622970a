package extractor

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// CollectUnbound returns one descriptor per distinct unbound component use
// in src, in source order. A syntax error fails the whole scan.
func CollectUnbound(src []byte) ([]types.UnboundComponent, error) {
	return defaultExtractor.CollectUnbound(src)
}

// HasUnbound reports whether src contains at least one unbound component.
func HasUnbound(src []byte) (bool, error) {
	return defaultExtractor.HasUnbound(src)
}

// CollectUnbound returns the unbound components of src. Uses with the same
// name and the same style attribute range (or, without an attribute, the
// same compiled style) collapse to the first.
func (e *Extractor) CollectUnbound(src []byte) ([]types.UnboundComponent, error) {
	tree, err := syntax.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("collecting unbound components: %w", err)
	}
	defer tree.Close()

	var components []types.UnboundComponent
	seen := make(map[string]struct{})

	tree.Walk(func(p *syntax.Path) syntax.WalkAction {
		el, ok := unboundElement(p)
		if !ok {
			return syntax.Continue
		}
		component := e.describe(el, src)
		key := dedupKey(component)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			components = append(components, component)
		}
		return syntax.Continue
	})

	if components == nil {
		components = []types.UnboundComponent{}
	}
	return components, nil
}

// HasUnbound stops at the first unbound component.
func (e *Extractor) HasUnbound(src []byte) (bool, error) {
	tree, err := syntax.Parse(src)
	if err != nil {
		return false, fmt.Errorf("checking for unbound components: %w", err)
	}
	defer tree.Close()

	found := tree.Walk(func(p *syntax.Path) syntax.WalkAction {
		if _, ok := unboundElement(p); ok {
			return syntax.Stop
		}
		return syntax.Continue
	})
	return found, nil
}

// unboundElement returns the element opened at p when its tag is a plain
// identifier that is neither a built-in tag nor bound in scope. Hyphenated
// names are custom elements.
func unboundElement(p *syntax.Path) (*syntax.Element, bool) {
	kind := p.Node.Kind()
	if kind != "jsx_opening_element" && kind != "jsx_self_closing_element" {
		return nil, false
	}
	el, ok := syntax.ElementAt(p)
	if !ok || el.NameKind != syntax.NameIdentifier {
		return nil, false
	}
	if IsBuiltinTag(el.Name) || strings.Contains(el.Name, "-") || p.Scope.HasBinding(el.Name) {
		return nil, false
	}
	return el, true
}

func dedupKey(c types.UnboundComponent) string {
	if c.ClassNameOffsets != nil {
		return fmt.Sprintf("%s@%d:%d", c.Name, c.ClassNameOffsets.Start, c.ClassNameOffsets.End)
	}
	return c.Name + "=" + c.ClassName
}
