// Package extractor finds unbound JSX components and turns their style
// attributes into tailwind-styled-components declarations.
//
// Every entry point takes the current source text and parses it afresh.
// Offsets in the returned descriptors index into exactly that text.
package extractor

import (
	"log/slog"

	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// DefaultStyleAttribute is the attribute holding utility classes.
const DefaultStyleAttribute = "className"

// Config configures an Extractor.
type Config struct {
	// StyleAttribute is the attribute compiled into declarations.
	// Empty means DefaultStyleAttribute.
	StyleAttribute string
	// Logger receives debug records for skipped expression shapes.
	// Nil discards them.
	Logger *slog.Logger
}

// Extractor runs the scanner and locator. It holds no per-source state and
// is safe for concurrent use.
type Extractor struct {
	styleAttribute string
	logger         *slog.Logger
}

// New creates an Extractor.
func New(cfg Config) *Extractor {
	e := &Extractor{
		styleAttribute: cfg.StyleAttribute,
		logger:         cfg.Logger,
	}
	if e.styleAttribute == "" {
		e.styleAttribute = DefaultStyleAttribute
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

var defaultExtractor = New(Config{})

// StyleAttribute returns the attribute name this extractor compiles.
func (e *Extractor) StyleAttribute() string {
	return e.styleAttribute
}

// describe builds the descriptor shared by the scanner and the locator.
func (e *Extractor) describe(el *syntax.Element, src []byte) types.UnboundComponent {
	free := NewFreeVars()

	var styleAttr *syntax.Attribute
	var others []string
	for i := range el.Attributes {
		attr := &el.Attributes[i]
		if attr.Name == e.styleAttribute && styleAttr == nil {
			styleAttr = attr
			continue
		}
		if attr.Name != "" {
			others = append(others, attr.Name)
		}
	}

	component := types.UnboundComponent{
		Name:       el.Name,
		ClassName:  Compile(styleAttr, src, free),
		TagOffsets: el.NameSpan,
	}
	if styleAttr != nil {
		span := styleAttr.Span
		component.ClassNameOffsets = &span
	}
	component.PropNames = free.Without(others)

	for _, u := range free.Unsupported {
		e.logger.Debug("skipping unsupported expression",
			"component", el.Name,
			"kind", u.Kind,
			"start", u.Span.Start,
			"end", u.Span.End,
		)
	}
	return component
}
