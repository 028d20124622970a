// Package config loads .tsce.yaml project settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/tsce/pkg/extractor"
	"github.com/praetorian-inc/tsce/pkg/imports"
	"github.com/praetorian-inc/tsce/pkg/paths"
)

// FileName is the per-project configuration file.
const FileName = ".tsce.yaml"

// DefaultMaxFileSize skips files larger than 10 MiB during scans.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Config holds every setting the extraction workflows and scanner read.
type Config struct {
	// OutputFile is the styles file pattern, see paths.StyleFile.
	OutputFile string
	// InputFileRegex restricts which sources get a styles file.
	InputFileRegex string
	// AddImportStatement prefixes clipboard output with the styled import.
	AddImportStatement bool

	StyleAttribute string
	Constructor    string
	ImportPath     string

	Exclude       []string
	IncludeHidden bool
	MaxFileSize   int64

	// Path is the file the settings were read from, empty for defaults.
	Path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutputFile:         paths.DefaultOutputPattern,
		AddImportStatement: true,
		StyleAttribute:     extractor.DefaultStyleAttribute,
		Constructor:        extractor.DefaultConstructor,
		ImportPath:         imports.DefaultStyledPath,
		MaxFileSize:        DefaultMaxFileSize,
	}
}

// Parse reads settings from YAML bytes on top of the defaults.
func Parse(data []byte) (*Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := Default()
	if raw.SeparateFile.OutputFile != "" {
		cfg.OutputFile = raw.SeparateFile.OutputFile
	}
	cfg.InputFileRegex = raw.SeparateFile.Advanced.InputFileRegex
	if raw.AddImportStatement != nil {
		cfg.AddImportStatement = *raw.AddImportStatement
	}
	if raw.StyleAttribute != "" {
		cfg.StyleAttribute = raw.StyleAttribute
	}
	if raw.Constructor != "" {
		cfg.Constructor = raw.Constructor
	}
	if raw.ImportPath != "" {
		cfg.ImportPath = raw.ImportPath
	}
	cfg.Exclude = raw.Scan.Exclude
	if raw.Scan.IncludeHidden != nil {
		cfg.IncludeHidden = *raw.Scan.IncludeHidden
	}
	if raw.Scan.MaxFileSize != nil {
		cfg.MaxFileSize = *raw.Scan.MaxFileSize
	}
	return cfg, nil
}

// LoadFile reads settings from a YAML file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Find looks for FileName in dir and each of its parents. It returns "" when
// no file exists up to the filesystem root.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load returns the settings for files under dir. An explicit path wins;
// otherwise the nearest FileName upward from dir is used, falling back to
// the defaults.
func Load(dir, explicit string) (*Config, error) {
	if explicit != "" {
		return LoadFile(explicit)
	}
	found, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return Default(), nil
	}
	return LoadFile(found)
}
