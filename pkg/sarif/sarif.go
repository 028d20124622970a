// Package sarif renders stored scan results as a SARIF 2.1.0 log.
package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "tsce"

	// UnboundRuleID is the only rule the scanner reports.
	UnboundRuleID = "tsce.unbound-component"
)

// ToolVersion is reported in the driver section. The CLI overrides it with
// its build version.
var ToolVersion = "0.1.0"

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule represents a reported rule
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
	HelpURI          string           `json:"helpUri,omitempty"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single unbound component
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
	// Properties carries the proposed declaration.
	Properties map[string]string `json:"properties,omitempty"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range
type Region struct {
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Snippet     *Snippet `json:"snippet,omitempty"`
}

// Snippet contains the tag name text
type Snippet struct {
	Text string `json:"text"`
}

// NewReport creates a report declaring the unbound-component rule.
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules: []Rule{
							{
								ID:   UnboundRuleID,
								Name: "UnboundComponent",
								ShortDescription: ShortDescription{
									Text: "Markup tag with no binding in scope that can be extracted into a styled component",
								},
							},
						},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddResult adds one stored component as a note at its tag name.
func (r *Report) AddResult(rec *types.Record) {
	loc := rec.Location.Source
	result := Result{
		RuleID: UnboundRuleID,
		Level:  "note",
		Message: Message{
			Text: fmt.Sprintf("<%s> is not defined; extract it as: %s", rec.Component.Name, rec.Declaration),
		},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{
						URI: formatFileURI(rec.Path),
					},
					Region: Region{
						StartLine:   loc.Start.Line,
						StartColumn: loc.Start.Column,
						EndLine:     loc.End.Line,
						EndColumn:   loc.End.Column,
						Snippet:     &Snippet{Text: rec.Component.Name},
					},
				},
			},
		},
		Properties: map[string]string{"declaration": rec.Declaration},
	}

	r.Runs[0].Results = append(r.Runs[0].Results, result)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
