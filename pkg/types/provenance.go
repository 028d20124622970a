package types

// Provenance tracks where a scanned snapshot came from.
type Provenance interface {
	Kind() string
	// Path returns displayable path (if applicable)
	Path() string
}

// FileProvenance for files read from disk.
type FileProvenance struct {
	FilePath string
}

// Kind returns "file".
func (f FileProvenance) Kind() string {
	return "file"
}

// Path returns the file path.
func (f FileProvenance) Path() string {
	return f.FilePath
}

// BufferProvenance for text handed over by an editor or stdin, which may not
// correspond to the file on disk.
type BufferProvenance struct {
	// Name is the buffer's file name, or "-" for stdin.
	Name string
}

// Kind returns "buffer".
func (b BufferProvenance) Kind() string {
	return "buffer"
}

// Path returns the buffer name.
func (b BufferProvenance) Path() string {
	return b.Name
}
