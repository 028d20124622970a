// Package scanner ties the extraction engine, the workflows and the
// datastore together behind one handle shared by the CLI and the server.
package scanner

import (
	"fmt"
	"log/slog"

	"github.com/praetorian-inc/tsce/pkg/config"
	"github.com/praetorian-inc/tsce/pkg/extractor"
	"github.com/praetorian-inc/tsce/pkg/prefilter"
	"github.com/praetorian-inc/tsce/pkg/refactor"
	"github.com/praetorian-inc/tsce/pkg/store"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// Options configures a Core.
type Options struct {
	// Config is the effective configuration. Nil means config.Default().
	Config *config.Config
	// Store receives scan results. Nil means a private in-memory store.
	Store store.Store
	// Incremental skips snapshots the store already holds.
	Incremental bool
	// ReadFile overrides how workflows read existing styles files.
	ReadFile refactor.ReadFileFunc
	Logger   *slog.Logger
}

// Core wraps the extractor, refactorer and store.
type Core struct {
	cfg         *config.Config
	extractor   *extractor.Extractor
	refactorer  *refactor.Refactorer
	prefilter   *prefilter.Prefilter
	store       store.Store
	ownsStore   bool
	incremental bool
	logger      *slog.Logger
}

// NewCore creates a Core.
func NewCore(opts Options) (*Core, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Core{
		cfg:         cfg,
		extractor:   extractor.New(extractor.Config{StyleAttribute: cfg.StyleAttribute, Logger: logger}),
		prefilter:   prefilter.Default(cfg.ImportPath),
		store:       opts.Store,
		incremental: opts.Incremental,
		logger:      logger,
	}

	refactorOpts := []refactor.Option{refactor.WithLogger(logger)}
	if opts.ReadFile != nil {
		refactorOpts = append(refactorOpts, refactor.WithReadFile(opts.ReadFile))
	}
	c.refactorer = refactor.New(cfg, refactorOpts...)

	if c.store == nil {
		s, err := store.New(store.Config{Path: store.MemoryPath})
		if err != nil {
			return nil, fmt.Errorf("creating store: %w", err)
		}
		c.store = s
		c.ownsStore = true
	}

	logger.Debug("scanner core ready", "styleAttribute", c.extractor.StyleAttribute(), "incremental", c.incremental)
	return c, nil
}

// Config returns the effective configuration.
func (c *Core) Config() *config.Config {
	return c.cfg
}

// Store returns the store scan results go to.
func (c *Core) Store() store.Store {
	return c.store
}

// Context evaluates the editor menu predicates for text at offset. Both are
// recomputed from scratch on every call.
func (c *Core) Context(text string, offset int) (*ContextResult, error) {
	src := []byte(text)

	hasUnbound := false
	if c.prefilter.MayContainMarkup(src) {
		var err error
		if hasUnbound, err = c.extractor.HasUnbound(src); err != nil {
			return nil, err
		}
	}

	inJSX, err := c.extractor.IsInMarkup(src, offset)
	if err != nil {
		return nil, err
	}
	return &ContextResult{HasUnboundComponents: hasUnbound, IsInJSX: inJSX}, nil
}

// Collect returns the unbound components of text.
func (c *Core) Collect(text string) ([]types.UnboundComponent, error) {
	return c.extractor.CollectUnbound([]byte(text))
}

// Locate returns the element under offset, or nil.
func (c *Core) Locate(text string, offset int) (*types.Component, error) {
	return c.extractor.Locate([]byte(text), offset)
}

// Declarations renders components with the configured constructor.
func (c *Core) Declarations(export bool, components ...types.Component) string {
	opts := extractor.DeclarationOptions{Export: export, Constructor: c.cfg.Constructor}
	return extractor.GenerateDeclarations(opts, components...)
}

// Extract plans one workflow.
func (c *Core) Extract(req refactor.Request) (*refactor.Plan, error) {
	return c.refactorer.Plan(req)
}

// Scan collects the unbound components of one snapshot and stores them.
func (c *Core) Scan(content []byte, prov types.Provenance) (*ScanResult, error) {
	id := types.ComputeContentID(content)
	result := &ScanResult{Source: prov.Path(), ContentID: id, Components: []*types.Record{}}

	if c.incremental {
		exists, err := c.store.BlobExists(id)
		if err != nil {
			return nil, err
		}
		if exists {
			if err := c.store.AddProvenance(id, prov); err != nil {
				return nil, err
			}
			records, err := c.store.GetComponents(id)
			if err != nil {
				return nil, err
			}
			result.Components, err = c.rehome(records, prov.Path())
			if err != nil {
				return nil, err
			}
			result.Skipped = true
			c.logger.Debug("skipping known snapshot", "path", prov.Path(), "contentId", id.Hex())
			return result, nil
		}
	}

	var components []types.UnboundComponent
	if c.prefilter.MayContainMarkup(content) {
		var err error
		components, err = c.extractor.CollectUnbound(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", prov.Path(), err)
		}
	} else {
		result.Skipped = true
	}

	if err := c.store.AddBlob(id, int64(len(content))); err != nil {
		return nil, err
	}
	if err := c.store.AddProvenance(id, prov); err != nil {
		return nil, err
	}

	opts := extractor.DeclarationOptions{Constructor: c.cfg.Constructor}
	for _, component := range components {
		rec := types.NewRecord(id, prov.Path(), content, component, extractor.GenerateDeclarations(opts, component))
		if err := c.store.AddComponent(rec); err != nil {
			return nil, err
		}
		result.Components = append(result.Components, rec)
	}

	c.logger.Debug("scanned", "path", prov.Path(), "components", len(result.Components))
	return result, nil
}

// rehome returns the stored records of path. A snapshot first seen under
// another path gets copies of that path's records.
func (c *Core) rehome(records []*types.Record, path string) ([]*types.Record, error) {
	mine := []*types.Record{}
	for _, r := range records {
		if r.Path == path {
			mine = append(mine, r)
		}
	}
	if len(mine) > 0 || len(records) == 0 {
		return mine, nil
	}

	origin := records[0].Path
	for _, r := range records {
		if r.Path != origin {
			continue
		}
		copied := *r
		copied.Path = path
		if err := c.store.AddComponent(&copied); err != nil {
			return nil, err
		}
		mine = append(mine, &copied)
	}
	return mine, nil
}

// Close releases the store when the core created it.
func (c *Core) Close() error {
	if c.ownsStore {
		return c.store.Close()
	}
	return nil
}
