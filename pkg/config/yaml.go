package config

// yamlConfig mirrors the .tsce.yaml layout. Pointer fields distinguish
// "unset" from the zero value so defaults survive partial files.
type yamlConfig struct {
	SeparateFile struct {
		OutputFile string `yaml:"outputFile,omitempty"`
		Advanced   struct {
			InputFileRegex string `yaml:"inputFileRegex,omitempty"`
		} `yaml:"advanced,omitempty"`
	} `yaml:"separateFile,omitempty"`
	AddImportStatement *bool  `yaml:"addImportStatement,omitempty"`
	StyleAttribute     string `yaml:"styleAttribute,omitempty"`
	Constructor        string `yaml:"constructor,omitempty"`
	ImportPath         string `yaml:"importPath,omitempty"`
	Scan               struct {
		Exclude       []string `yaml:"exclude,omitempty"`
		IncludeHidden *bool    `yaml:"includeHidden,omitempty"`
		MaxFileSize   *int64   `yaml:"maxFileSize,omitempty"`
	} `yaml:"scan,omitempty"`
}
