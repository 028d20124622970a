package scanner

import "github.com/praetorian-inc/tsce/pkg/types"

// ContextResult carries the two editor menu predicates for one cursor
// position.
type ContextResult struct {
	HasUnboundComponents bool `json:"hasUnboundComponents"`
	IsInJSX              bool `json:"isInJSX"`
}

// ScanResult represents the scan of one snapshot.
type ScanResult struct {
	Source    string          `json:"source"`
	ContentID types.ContentID `json:"contentId"`
	// Skipped is set when the prefilter ruled out markup, or the snapshot
	// was already stored by an earlier incremental scan.
	Skipped    bool            `json:"skipped,omitempty"`
	Components []*types.Record `json:"components"`
}
