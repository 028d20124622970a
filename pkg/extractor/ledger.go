package extractor

import (
	"slices"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// Edits against one snapshot are applied back to front: an edit at a later
// offset never shifts the offsets of an earlier one.

// SortOffsets returns a copy of offsets ordered by start descending, ties by
// end descending. Equal ranges keep their input order.
func SortOffsets(offsets []types.Offsets) []types.Offsets {
	sorted := slices.Clone(offsets)
	slices.SortStableFunc(sorted, compareDescending)
	return sorted
}

// SortEdits orders edits the same way SortOffsets orders ranges.
func SortEdits(edits []types.Edit) []types.Edit {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b types.Edit) int {
		return compareDescending(a.Offsets, b.Offsets)
	})
	return sorted
}

func compareDescending(a, b types.Offsets) int {
	switch {
	case a.Start != b.Start:
		return b.Start - a.Start
	default:
		return b.End - a.End
	}
}

// ClassNameOffsets returns the style attribute ranges of components that
// have one, in ledger order.
func ClassNameOffsets[C types.Declarable](components []C) []types.Offsets {
	var offsets []types.Offsets
	for _, c := range components {
		if o := c.StyleOffsets(); o != nil {
			offsets = append(offsets, *o)
		}
	}
	return SortOffsets(offsets)
}

// ComponentNames returns the component names in input order.
func ComponentNames[C types.Declarable](components []C) []string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.DeclarationName())
	}
	return names
}
