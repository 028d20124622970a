package refactor

import (
	"fmt"
	"strings"
)

// Mode selects one of the extraction workflows.
type Mode string

const (
	CurrentToSameFile          Mode = "extractCurrentToSameFile"
	CurrentToSeparateFile      Mode = "extractCurrentToSeparateFile"
	UnboundToClipboard         Mode = "extractUnboundToClipboard"
	ExportedUnboundToClipboard Mode = "extractExportedUnboundToClipboard"
	UnboundToSameFile          Mode = "extractUnboundToSameFile"
	UnboundToSeparateFile      Mode = "extractUnboundToSeparateFile"
)

// Modes lists every workflow in menu order.
var Modes = []Mode{
	CurrentToSameFile,
	CurrentToSeparateFile,
	UnboundToClipboard,
	ExportedUnboundToClipboard,
	UnboundToSameFile,
	UnboundToSeparateFile,
}

var shortNames = map[string]Mode{
	"current-same":       CurrentToSameFile,
	"current-separate":   CurrentToSeparateFile,
	"unbound-clipboard":  UnboundToClipboard,
	"exported-clipboard": ExportedUnboundToClipboard,
	"unbound-same":       UnboundToSameFile,
	"unbound-separate":   UnboundToSeparateFile,
}

// ParseMode accepts a workflow identifier or its short CLI name.
func ParseMode(s string) (Mode, error) {
	if mode, ok := shortNames[strings.ToLower(s)]; ok {
		return mode, nil
	}
	for _, mode := range Modes {
		if string(mode) == s {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown extraction mode %q", s)
}

// ShortName returns the CLI spelling of m.
func (m Mode) ShortName() string {
	for short, mode := range shortNames {
		if mode == m {
			return short
		}
	}
	return string(m)
}

// Exported reports whether declarations are emitted with export.
// Declarations that leave the file must be importable.
func (m Mode) Exported() bool {
	switch m {
	case CurrentToSeparateFile, ExportedUnboundToClipboard, UnboundToSeparateFile:
		return true
	}
	return false
}

// Current reports whether m extracts the element under the cursor rather
// than every unbound component.
func (m Mode) Current() bool {
	return m == CurrentToSameFile || m == CurrentToSeparateFile
}

// SeparateFile reports whether m writes a styles file.
func (m Mode) SeparateFile() bool {
	return m == CurrentToSeparateFile || m == UnboundToSeparateFile
}

// Clipboard reports whether m only produces text.
func (m Mode) Clipboard() bool {
	return m == UnboundToClipboard || m == ExportedUnboundToClipboard
}
