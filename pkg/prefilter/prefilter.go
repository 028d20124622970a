// Package prefilter decides cheaply whether a file can contain markup
// before it is handed to the parser.
package prefilter

import (
	"github.com/cloudflare/ahocorasick"
)

// Signal is a named group of keywords. A signal fires when any of its
// keywords occurs; a signal without keywords always fires.
type Signal struct {
	Name     string
	Keywords []string
}

// Markup fires on every file holding a JSX element: each element closes
// with either "</" or "/>".
var Markup = Signal{Name: "markup", Keywords: []string{"</", "/>"}}

// StyledImport fires on files that mention the styled-components package.
func StyledImport(importPath string) Signal {
	return Signal{Name: "styled-import", Keywords: []string{importPath}}
}

// Prefilter uses Aho-Corasick for efficient keyword matching.
type Prefilter struct {
	matcher          *ahocorasick.Matcher
	keywords         []string            // keyword at each index
	keywordSignals   map[string][]string // keyword -> signals needing it
	noKeywordSignals []string            // signals without keywords (always fire)
}

// New creates a prefilter from signals.
func New(signals []Signal) *Prefilter {
	pf := &Prefilter{
		keywordSignals:   make(map[string][]string),
		noKeywordSignals: make([]string, 0),
	}

	keywordSet := make(map[string]bool)
	for _, signal := range signals {
		if len(signal.Keywords) == 0 {
			pf.noKeywordSignals = append(pf.noKeywordSignals, signal.Name)
			continue
		}
		for _, keyword := range signal.Keywords {
			if !keywordSet[keyword] {
				keywordSet[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordSignals[keyword] = append(pf.keywordSignals[keyword], signal.Name)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Default returns a prefilter for the markup and styled-import signals.
func Default(importPath string) *Prefilter {
	return New([]Signal{Markup, StyledImport(importPath)})
}

// Filter returns the names of the signals that fire on content, keyword-less
// signals first, each at most once.
func (pf *Prefilter) Filter(content []byte) []string {
	result := make([]string, 0, len(pf.noKeywordSignals))
	result = append(result, pf.noKeywordSignals...)

	if pf.matcher == nil {
		return result
	}

	hits := pf.matcher.Match(content)

	seen := make(map[string]bool)
	for _, name := range pf.noKeywordSignals {
		seen[name] = true
	}

	for _, hit := range hits {
		keyword := pf.keywords[hit]
		for _, name := range pf.keywordSignals[keyword] {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}

	return result
}

// Fires reports whether the named signal fires on content.
func (pf *Prefilter) Fires(content []byte, name string) bool {
	for _, fired := range pf.Filter(content) {
		if fired == name {
			return true
		}
	}
	return false
}

// MayContainMarkup reports whether content can hold a JSX element.
func (pf *Prefilter) MayContainMarkup(content []byte) bool {
	return pf.Fires(content, Markup.Name)
}
