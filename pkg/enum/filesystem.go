package enum

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/tsce/pkg/paths"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
}

// FilesystemEnumerator enumerates supported source files under a directory.
type FilesystemEnumerator struct {
	config  Config
	exclude []glob.Glob
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) (*FilesystemEnumerator, error) {
	exclude, err := CompileGlobs(config.Exclude)
	if err != nil {
		return nil, err
	}
	return &FilesystemEnumerator{config: config, exclude: exclude}, nil
}

// CompileGlobs compiles slash-separated exclude patterns.
func CompileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// MatchAny reports whether rel, a slash-separated relative path, or its
// base name matches one of globs.
func MatchAny(globs []glob.Glob, rel string) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// Enumerate walks the filesystem and yields supported source files.
// Phase 1: Walk directory tree and collect eligible file paths (fast, sequential).
// Phase 2: Read files and invoke callback in parallel.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	info, err := os.Stat(e.config.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return e.processFile(ctx, e.config.Root, callback)
	}

	var ignore *gitignore.GitIgnore
	gitignorePath := filepath.Join(e.config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}

	var files []string
	err = filepath.WalkDir(e.config.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == e.config.Root {
			return nil
		}

		relPath, err := filepath.Rel(e.config.Root, path)
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] || (!e.config.IncludeHidden && isHidden(d.Name())) || MatchAny(e.exclude, rel) {
				return filepath.SkipDir
			}
			if ignore != nil && ignore.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !paths.IsSupported(path) {
			return nil
		}

		if !e.config.IncludeHidden && isHidden(d.Name()) {
			return nil
		}

		if MatchAny(e.exclude, rel) {
			return nil
		}

		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}

		if e.config.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.Size() > e.config.MaxFileSize {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}

	numReaders := e.config.Workers
	if numReaders < 1 {
		numReaders = runtime.NumCPU()
	}

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	pathsCh := make(chan string, numReaders*2)

	g.Go(func() error {
		defer close(pathsCh)
		for _, f := range files {
			select {
			case pathsCh <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < numReaders; i++ {
		g.Go(func() error {
			for path := range pathsCh {
				if err := e.processFile(ctx, path, callback); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// If the caller's context was cancelled but all goroutines finished
	// before noticing, propagate the cancellation.
	return origCtx.Err()
}

// processFile reads a single file and invokes the callback.
func (e *FilesystemEnumerator) processFile(ctx context.Context, path string, callback Callback) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return callback(content, types.ComputeContentID(content), types.FileProvenance{FilePath: path})
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
