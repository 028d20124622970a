package refactor

import (
	"errors"

	"github.com/praetorian-inc/tsce/pkg/paths"
)

var (
	// ErrNoComponent means the offset is not inside any tag.
	ErrNoComponent = errors.New("nothing to extract: there is no underlying component")
	// ErrNoUnbound means the file has no unbound components.
	ErrNoUnbound = errors.New("nothing to extract: there are no unbound components")
	// ErrNameRequired means a current-element mode got an empty name.
	ErrNameRequired = errors.New("component name is required")
	// ErrUnsupportedFile means the path is not .js, .jsx, .ts or .tsx.
	ErrUnsupportedFile = errors.New("only .js, .ts, .jsx and .tsx files are supported")
	// ErrFileNotMatched means the source does not match inputFileRegex.
	ErrFileNotMatched = paths.ErrFileNotMatched
)
