// Package refactor plans the extraction workflows: it computes the new
// contents of the source and styles files, or the clipboard text, without
// touching the filesystem.
package refactor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/praetorian-inc/tsce/pkg/config"
	"github.com/praetorian-inc/tsce/pkg/edit"
	"github.com/praetorian-inc/tsce/pkg/extractor"
	"github.com/praetorian-inc/tsce/pkg/imports"
	"github.com/praetorian-inc/tsce/pkg/paths"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// Request is one extraction invocation.
type Request struct {
	Mode Mode
	// Path is the source file path. Required for separate-file modes.
	Path string
	// Text is the current source content.
	Text string
	// Offset is the cursor position for current-element modes.
	Offset int
	// Name is the user's component name, normalized before use.
	Name string
}

// FileChange is the full new content of one file.
type FileChange struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Created bool   `json:"created,omitempty"`
}

// Plan is the outcome of a workflow.
type Plan struct {
	Mode  Mode         `json:"mode"`
	Files []FileChange `json:"files,omitempty"`
	// Output is the clipboard text of clipboard modes.
	Output string `json:"output,omitempty"`
	// Count is the number of extracted components.
	Count int `json:"count"`
	// Declarations is the generated declarations block.
	Declarations string `json:"declarations"`
}

// ReadFileFunc reads an existing file. A missing file must be reported
// with an error matching fs.ErrNotExist.
type ReadFileFunc func(path string) ([]byte, error)

// Refactorer runs workflows under one configuration.
type Refactorer struct {
	cfg       *config.Config
	extractor *extractor.Extractor
	readFile  ReadFileFunc
	logger    *slog.Logger
}

// Option configures a Refactorer.
type Option func(*Refactorer)

// WithReadFile replaces os.ReadFile for loading existing styles files.
func WithReadFile(fn ReadFileFunc) Option {
	return func(r *Refactorer) {
		r.readFile = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Refactorer) {
		r.logger = logger
	}
}

// New creates a Refactorer. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) *Refactorer {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Refactorer{
		cfg:      cfg,
		readFile: os.ReadFile,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.extractor = extractor.New(extractor.Config{
		StyleAttribute: cfg.StyleAttribute,
		Logger:         r.logger,
	})
	return r
}

// Plan runs the workflow selected by req.Mode.
func (r *Refactorer) Plan(req Request) (*Plan, error) {
	if req.Path != "" && !paths.IsSupported(req.Path) {
		return nil, fmt.Errorf("%s: %w", req.Path, ErrUnsupportedFile)
	}
	if req.Mode.SeparateFile() && req.Path == "" {
		return nil, fmt.Errorf("%s needs a source path", req.Mode)
	}

	r.logger.Debug("planning extraction", "mode", string(req.Mode), "path", req.Path, "offset", req.Offset)

	switch {
	case req.Mode.Current():
		return r.extractCurrent(req)
	case req.Mode.Clipboard(), req.Mode == UnboundToSameFile, req.Mode == UnboundToSeparateFile:
		return r.extractUnbound(req)
	}
	return nil, fmt.Errorf("unknown extraction mode %q", req.Mode)
}

func (r *Refactorer) declarationOptions(mode Mode) extractor.DeclarationOptions {
	return extractor.DeclarationOptions{Export: mode.Exported(), Constructor: r.cfg.Constructor}
}

func (r *Refactorer) extractCurrent(req Request) (*Plan, error) {
	src := []byte(req.Text)
	component, err := r.extractor.Locate(src, req.Offset)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, ErrNoComponent
	}

	name := paths.NormalizeComponentName(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	component.Name = name

	declarations := extractor.GenerateDeclarations(r.declarationOptions(req.Mode), *component)

	var styleFile string
	if req.Mode.SeparateFile() {
		if styleFile, err = r.styleFile(req.Path); err != nil {
			return nil, err
		}
	}

	edits := []types.Edit{types.Replacement(component.OpeningTagOffsets, name)}
	if component.ClosingTagOffsets != nil {
		edits = append(edits, types.Replacement(*component.ClosingTagOffsets, name))
	}
	if component.ClassNameOffsets != nil {
		edits = append(edits, types.Deletion(attributeRemoval(src, *component.ClassNameOffsets)))
	}

	source := edit.NewBuffer(req.Text)
	if err := source.Apply(edits...); err != nil {
		return nil, fmt.Errorf("rewriting %s: %w", component.Type, err)
	}

	plan := &Plan{Mode: req.Mode, Count: 1, Declarations: declarations}
	if req.Mode.SeparateFile() {
		return r.finishSeparate(plan, req.Path, source, styleFile, []string{name})
	}
	if err := r.finishSame(source, declarations); err != nil {
		return nil, err
	}
	plan.Files = []FileChange{{Path: req.Path, Content: source.String()}}
	return plan, nil
}

func (r *Refactorer) extractUnbound(req Request) (*Plan, error) {
	components, err := r.extractor.CollectUnbound([]byte(req.Text))
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, ErrNoUnbound
	}

	declarations := extractor.GenerateDeclarations(r.declarationOptions(req.Mode), components...)
	plan := &Plan{Mode: req.Mode, Count: len(components), Declarations: declarations}

	if req.Mode.Clipboard() {
		plan.Output = declarations
		if r.cfg.AddImportStatement {
			ins, err := imports.StyledImport(req.Text, r.cfg.Constructor, r.cfg.ImportPath)
			if err != nil {
				return nil, err
			}
			if ins != nil {
				plan.Output = ins.Text + declarations
			}
		}
		return plan, nil
	}

	var styleFile string
	if req.Mode.SeparateFile() {
		if styleFile, err = r.styleFile(req.Path); err != nil {
			return nil, err
		}
	}

	src := []byte(req.Text)
	var edits []types.Edit
	for _, o := range extractor.ClassNameOffsets(components) {
		edits = append(edits, types.Deletion(attributeRemoval(src, o)))
	}
	source := edit.NewBuffer(req.Text)
	if err := source.Apply(edits...); err != nil {
		return nil, fmt.Errorf("removing style attributes: %w", err)
	}

	if req.Mode.SeparateFile() {
		return r.finishSeparate(plan, req.Path, source, styleFile, extractor.ComponentNames(components))
	}
	if err := r.finishSame(source, declarations); err != nil {
		return nil, err
	}
	plan.Files = []FileChange{{Path: req.Path, Content: source.String()}}
	return plan, nil
}

func (r *Refactorer) styleFile(source string) (string, error) {
	styleFile, err := paths.StyleFile(source, r.cfg.OutputFile, r.cfg.InputFileRegex)
	if err != nil {
		return "", fmt.Errorf("resolving styles file: %w", err)
	}
	return styleFile, nil
}

// finishSame appends the declarations to the source and makes sure it
// imports the styled constructor.
func (r *Refactorer) finishSame(source *edit.Buffer, declarations string) error {
	source.AppendBlock(declarations)
	return r.ensureStyledImport(source)
}

// finishSeparate imports names into the source from the styles file and
// appends the declarations to the styles file.
func (r *Refactorer) finishSeparate(plan *Plan, sourcePath string, source *edit.Buffer, styleFile string, names []string) (*Plan, error) {
	ins, err := imports.NamedImports(source.String(), paths.RelativeImportPath(sourcePath, styleFile), names)
	if err != nil {
		return nil, err
	}
	if err := source.Apply(types.Insert(ins)); err != nil {
		return nil, fmt.Errorf("adding import to %s: %w", sourcePath, err)
	}

	existing, err := r.readFile(styleFile)
	created := false
	switch {
	case errors.Is(err, fs.ErrNotExist):
		created = true
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", styleFile, err)
	}

	styles := edit.NewBuffer(string(existing))
	styles.AppendBlock(plan.Declarations)
	if err := r.ensureStyledImport(styles); err != nil {
		return nil, err
	}

	plan.Files = []FileChange{
		{Path: sourcePath, Content: source.String()},
		{Path: styleFile, Content: styles.String(), Created: created},
	}
	return plan, nil
}

func (r *Refactorer) ensureStyledImport(b *edit.Buffer) error {
	ins, err := imports.StyledImport(b.String(), r.cfg.Constructor, r.cfg.ImportPath)
	if err != nil {
		return err
	}
	if ins == nil {
		return nil
	}
	return b.Apply(types.Insert(*ins))
}

// attributeRemoval widens an attribute range over the blanks before it so
// that removing it leaves no gap in the tag.
func attributeRemoval(src []byte, o types.Offsets) types.Offsets {
	for o.Start > 0 && (src[o.Start-1] == ' ' || src[o.Start-1] == '\t') {
		o.Start--
	}
	return o
}
