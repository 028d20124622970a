package types

// Record is one unbound component found in a scanned snapshot.
type Record struct {
	ContentID ContentID `json:"contentId"`
	// Path is the provenance path of the snapshot at scan time.
	Path      string           `json:"path"`
	Component UnboundComponent `json:"component"`
	// Location is the tag-name position, with line/column resolved against
	// the snapshot.
	Location Location `json:"location"`
	// Declaration is the proposed styled declaration, without export.
	Declaration string `json:"declaration"`
}

// NewRecord resolves c's tag location within content.
func NewRecord(id ContentID, path string, content []byte, c UnboundComponent, declaration string) *Record {
	return &Record{
		ContentID:   id,
		Path:        path,
		Component:   c,
		Location:    LocationOf(content, c.TagOffsets),
		Declaration: declaration,
	}
}
