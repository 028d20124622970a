package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "context" | "collect" | "locate" | "declarations" | "extract" | "close"
	Payload json.RawMessage `json:"payload"`
}

// TextPayload is the payload for "collect" requests
type TextPayload struct {
	Text string `json:"text"`
}

// PositionPayload is the payload for "context" and "locate" requests
type PositionPayload struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// DeclarationsPayload is the payload for "declarations" requests. Components
// without a type render with the constructor's div form.
type DeclarationsPayload struct {
	Components []types.Component `json:"components"`
	Export     bool              `json:"export"`
}

// ExtractPayload is the payload for "extract" requests
type ExtractPayload struct {
	Mode   string `json:"mode"`
	Path   string `json:"path"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Name   string `json:"name"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	// ErrorKind classifies failures: "syntax", "no_component",
	// "no_unbound", "name_required", "unsupported_file", "file_not_matched",
	// "request" or "internal".
	ErrorKind string `json:"errorKind,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string   `json:"version"`
	Modes   []string `json:"modes"`
}

// CollectData is the data field for "collect" responses. Besides the
// descriptor fields each component carries "tagOffsets", the span of the
// opening tag's name, as an extension that clients may ignore.
type CollectData struct {
	Components []types.UnboundComponent `json:"components"`
}

// LocateData is the data field for "locate" responses. Component is null
// when the offset is not inside a tag.
type LocateData struct {
	Component *types.Component `json:"component"`
}

// DeclarationsData is the data field for "declarations" responses
type DeclarationsData struct {
	Declarations string `json:"declarations"`
}
