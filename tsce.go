// Package tsce finds JSX/TSX elements whose tag names have no binding in
// scope and turns their className attributes into tailwind-styled-components
// declarations.
//
// # Basic Usage
//
// Collect the unbound components of a source file and render them:
//
//	engine := tsce.New()
//
//	components, err := engine.CollectUnbound(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(engine.GenerateDeclarations(false, components...))
//
// # Refactoring
//
// Plan one of the editor workflows and write the resulting files:
//
//	plan, err := engine.Extract(tsce.Request{
//	    Mode: tsce.UnboundToSeparateFile,
//	    Path: "src/Card.tsx",
//	    Text: source,
//	})
//	for _, f := range plan.Files {
//	    os.WriteFile(f.Path, []byte(f.Content), 0644)
//	}
package tsce

import (
	"log/slog"

	"github.com/praetorian-inc/tsce/pkg/config"
	"github.com/praetorian-inc/tsce/pkg/extractor"
	"github.com/praetorian-inc/tsce/pkg/refactor"
	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/tsce" without subpackages.
type (
	// UnboundComponent is one occurrence of a tag with no binding in scope.
	UnboundComponent = types.UnboundComponent

	// Component is the element located under a cursor.
	Component = types.Component

	// Offsets is a half-open byte range into the scanned text.
	Offsets = types.Offsets

	// Config is the effective configuration.
	Config = config.Config

	// Mode selects an extraction workflow.
	Mode = refactor.Mode

	// Request is one extraction invocation.
	Request = refactor.Request

	// Plan is the outcome of a workflow.
	Plan = refactor.Plan

	// FileChange is the new content of one file.
	FileChange = refactor.FileChange

	// SyntaxError describes why a source failed to parse.
	SyntaxError = syntax.SyntaxError
)

// Re-export workflow modes.
const (
	CurrentToSameFile          = refactor.CurrentToSameFile
	CurrentToSeparateFile      = refactor.CurrentToSeparateFile
	UnboundToClipboard         = refactor.UnboundToClipboard
	ExportedUnboundToClipboard = refactor.ExportedUnboundToClipboard
	UnboundToSameFile          = refactor.UnboundToSameFile
	UnboundToSeparateFile      = refactor.UnboundToSeparateFile
)

// Re-export sentinel errors.
var (
	ErrSyntax          = syntax.ErrSyntax
	ErrNoComponent     = refactor.ErrNoComponent
	ErrNoUnbound       = refactor.ErrNoUnbound
	ErrNameRequired    = refactor.ErrNameRequired
	ErrUnsupportedFile = refactor.ErrUnsupportedFile
	ErrFileNotMatched  = refactor.ErrFileNotMatched
)

// Engine runs the extractor and the workflows under one configuration. It
// is safe for concurrent use.
type Engine struct {
	cfg        *config.Config
	extractor  *extractor.Extractor
	refactorer *refactor.Refactorer
}

// engineConfig holds engine options.
type engineConfig struct {
	cfg      *config.Config
	logger   *slog.Logger
	readFile refactor.ReadFileFunc
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(c *engineConfig) {
		c.cfg = cfg
	}
}

// WithStyleAttribute compiles attr instead of className.
func WithStyleAttribute(attr string) Option {
	return func(c *engineConfig) {
		c.cfg.StyleAttribute = attr
	}
}

// WithConstructor sets the styled constructor identifier and the package it
// is imported from.
func WithConstructor(name, importPath string) Option {
	return func(c *engineConfig) {
		c.cfg.Constructor = name
		c.cfg.ImportPath = importPath
	}
}

// WithLogger sets the logger receiving debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithReadFile replaces os.ReadFile for loading existing styles files.
func WithReadFile(fn func(path string) ([]byte, error)) Option {
	return func(c *engineConfig) {
		c.readFile = fn
	}
}

// New creates an Engine.
//
// By default, the engine:
//   - Compiles the className attribute
//   - Declares components with tw from tailwind-styled-components
//   - Writes styles files next to their source as $name.styles
func New(opts ...Option) *Engine {
	c := &engineConfig{cfg: config.Default()}
	for _, opt := range opts {
		opt(c)
	}

	var refactorOpts []refactor.Option
	if c.logger != nil {
		refactorOpts = append(refactorOpts, refactor.WithLogger(c.logger))
	}
	if c.readFile != nil {
		refactorOpts = append(refactorOpts, refactor.WithReadFile(c.readFile))
	}

	return &Engine{
		cfg:        c.cfg,
		extractor:  extractor.New(extractor.Config{StyleAttribute: c.cfg.StyleAttribute, Logger: c.logger}),
		refactorer: refactor.New(c.cfg, refactorOpts...),
	}
}

// CollectUnbound returns every unbound component of text in source order.
func (e *Engine) CollectUnbound(text string) ([]UnboundComponent, error) {
	return e.extractor.CollectUnbound([]byte(text))
}

// HasUnbound reports whether text holds at least one unbound component.
func (e *Engine) HasUnbound(text string) (bool, error) {
	return e.extractor.HasUnbound([]byte(text))
}

// Locate returns the innermost element whose tag contains offset, or nil.
func (e *Engine) Locate(text string, offset int) (*Component, error) {
	return e.extractor.Locate([]byte(text), offset)
}

// IsInJSX reports whether offset lies within an element's tag.
func (e *Engine) IsInJSX(text string, offset int) (bool, error) {
	return e.extractor.IsInMarkup([]byte(text), offset)
}

// GenerateDeclarations renders one declaration per component.
func (e *Engine) GenerateDeclarations(export bool, components ...UnboundComponent) string {
	return extractor.GenerateDeclarations(extractor.DeclarationOptions{Export: export, Constructor: e.cfg.Constructor}, components...)
}

// GenerateComponentDeclarations renders located components, wrapping their
// tag types.
func (e *Engine) GenerateComponentDeclarations(export bool, components ...Component) string {
	return extractor.GenerateDeclarations(extractor.DeclarationOptions{Export: export, Constructor: e.cfg.Constructor}, components...)
}

// Extract plans one workflow without touching the filesystem.
func (e *Engine) Extract(req Request) (*Plan, error) {
	return e.refactorer.Plan(req)
}
