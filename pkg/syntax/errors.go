package syntax

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every *SyntaxError via errors.Is.
	ErrSyntax = errors.New("syntax error")

	// ErrParseFailed indicates the parser returned no tree at all.
	ErrParseFailed = errors.New("parse failed")
)

// SyntaxError reports malformed source text. A tree that fails to parse is
// never partially analyzed.
type SyntaxError struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
}

// Is makes errors.Is(err, ErrSyntax) true for any SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
