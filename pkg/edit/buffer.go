// Package edit applies offset-addressed edits to an in-memory snapshot of a
// file, the way an editor applies a workspace edit.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/praetorian-inc/tsce/pkg/extractor"
	"github.com/praetorian-inc/tsce/pkg/types"
)

var (
	// ErrOutOfBounds is returned for an edit range outside the buffer.
	ErrOutOfBounds = errors.New("edit range out of bounds")
	// ErrOverlap is returned when two edits of one transaction overlap.
	ErrOverlap = errors.New("overlapping edits")
)

// Buffer is the text of one file. Edits are addressed against the text as
// it was when the transaction started.
type Buffer struct {
	text string
}

// NewBuffer creates a buffer holding text.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// String returns the current text.
func (b *Buffer) String() string {
	return b.text
}

// Bytes returns the current text.
func (b *Buffer) Bytes() []byte {
	return []byte(b.text)
}

// Len returns the current text length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Apply validates all edits against the current text, then applies them
// back to front as one transaction. On error the buffer is unchanged.
// Insertions at the same offset land in the order given.
func (b *Buffer) Apply(edits ...types.Edit) error {
	if len(edits) == 0 {
		return nil
	}

	for _, e := range edits {
		if !e.Offsets.Valid(len(b.text)) {
			return fmt.Errorf("%s in text of length %d: %w", e.Offsets, len(b.text), ErrOutOfBounds)
		}
	}

	// Reverse input order first so the stable sort leaves same-offset
	// insertions reversed in application, which restores their given
	// order in the result.
	reversed := make([]types.Edit, len(edits))
	for i, e := range edits {
		reversed[len(edits)-1-i] = e
	}
	ordered := extractor.SortEdits(reversed)

	for i := 1; i < len(ordered); i++ {
		later, earlier := ordered[i-1], ordered[i]
		if earlier.Offsets.End > later.Offsets.Start {
			return fmt.Errorf("%s and %s: %w", earlier.Offsets, later.Offsets, ErrOverlap)
		}
	}

	text := b.text
	for _, e := range ordered {
		text = text[:e.Offsets.Start] + e.Text + text[e.Offsets.End:]
	}
	b.text = text
	return nil
}

// Append adds text at the end of the buffer.
func (b *Buffer) Append(text string) {
	b.text += text
}

// AppendBlock appends block separated from existing content by one blank
// line. An empty buffer receives the block alone.
func (b *Buffer) AppendBlock(block string) {
	if strings.TrimSpace(b.text) == "" {
		b.text = block + "\n"
		return
	}
	b.text = strings.TrimRight(b.text, "\n") + "\n\n" + block + "\n"
}
