package extractor

import (
	"fmt"

	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// Locate returns the element whose opening, closing or self-closing tag
// contains offset, or nil when the offset is outside every tag.
func Locate(src []byte, offset int) (*types.Component, error) {
	return defaultExtractor.Locate(src, offset)
}

// IsInMarkup reports whether offset lies inside a tag of src.
func IsInMarkup(src []byte, offset int) (bool, error) {
	return defaultExtractor.IsInMarkup(src, offset)
}

// Locate finds the innermost tag containing offset, both ends inclusive,
// and describes the element it belongs to. Binding status is irrelevant
// here: any named element can be extracted. The descriptor's Name is left
// empty for the caller to choose.
func (e *Extractor) Locate(src []byte, offset int) (*types.Component, error) {
	tree, err := syntax.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("locating component: %w", err)
	}
	defer tree.Close()

	el := innermostTag(tree, offset)
	if el == nil {
		return nil, nil
	}

	component := &types.Component{
		UnboundComponent:  e.describe(el, src),
		Type:              el.Name,
		SelfClosing:       el.SelfClosing,
		OpeningTagOffsets: el.NameSpan,
		ClosingTagOffsets: el.ClosingNameSpan,
	}
	component.Name = ""
	return component, nil
}

// IsInMarkup is Locate without building the descriptor.
func (e *Extractor) IsInMarkup(src []byte, offset int) (bool, error) {
	tree, err := syntax.Parse(src)
	if err != nil {
		return false, fmt.Errorf("checking markup position: %w", err)
	}
	defer tree.Close()

	return innermostTag(tree, offset) != nil, nil
}

func innermostTag(tree *syntax.Tree, offset int) *syntax.Element {
	var best *syntax.Element
	var bestSpan types.Offsets

	tree.Walk(func(p *syntax.Path) syntax.WalkAction {
		span := p.Node.Span()
		if !span.Contains(offset) {
			return syntax.SkipChildren
		}
		if !syntax.IsTag(p.Node) {
			return syntax.Continue
		}
		el, ok := syntax.ElementAt(p)
		if !ok || el.NameKind == syntax.NameFragment {
			return syntax.Continue
		}
		// Adjacent siblings can both touch offset; only a tag nested inside
		// the current best replaces it.
		if best == nil || (span.Start >= bestSpan.Start && span.End <= bestSpan.End) {
			best = el
			bestSpan = span
		}
		return syntax.Continue
	})
	return best
}
