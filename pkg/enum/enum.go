// Package enum discovers the source files a scan visits.
package enum

import (
	"context"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// Callback receives the content of one file, its content ID and where it
// came from. It may be invoked from several goroutines at once.
type Callback func(content []byte, id types.ContentID, prov types.Provenance) error

// Enumerator discovers content to scan from a source.
type Enumerator interface {
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration. A file root yields just
	// that file.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// Exclude holds glob patterns matched against the slash-separated path
	// relative to Root, and against the base name.
	Exclude []string

	// Workers bounds the number of parallel readers (0 = one per CPU).
	Workers int
}
