package types

import "fmt"

// Offsets is a byte range [Start, End) - half-open interval into the exact
// source text a tree was parsed from.
type Offsets struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns End - Start.
func (o Offsets) Len() int {
	return o.End - o.Start
}

// Contains reports whether offset lies within the range, both ends inclusive.
// Editors place the cursor on either side of a token, so the closing
// boundary counts as inside.
func (o Offsets) Contains(offset int) bool {
	return o.Start <= offset && offset <= o.End
}

// Valid reports whether the range is well formed for a text of length n.
func (o Offsets) Valid(n int) bool {
	return 0 <= o.Start && o.Start <= o.End && o.End <= n
}

// Slice returns the source text covered by the range.
func (o Offsets) Slice(src []byte) string {
	return string(src[o.Start:o.End])
}

func (o Offsets) String() string {
	return fmt.Sprintf("[%d,%d)", o.Start, o.End)
}

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceSpan is start-end line:column range.
type SourceSpan struct {
	Start SourcePoint `json:"start"`
	End   SourcePoint `json:"end"`
}

// Location combines byte offsets and source positions.
type Location struct {
	Offset Offsets    `json:"offset"`
	Source SourceSpan `json:"source"`
}

// LocationOf computes the line/column span of o within content.
func LocationOf(content []byte, o Offsets) Location {
	startLine, startCol := ComputeLineColumn(content, o.Start)
	endLine, endCol := ComputeLineColumn(content, o.End)
	return Location{
		Offset: o,
		Source: SourceSpan{
			Start: SourcePoint{Line: startLine, Column: startCol},
			End:   SourcePoint{Line: endLine, Column: endCol},
		},
	}
}
