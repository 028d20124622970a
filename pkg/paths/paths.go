// Package paths maps source files to their styles files and import
// specifiers. Paths are slash-separated, as editors and bundlers use them.
package paths

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// ErrFileNotMatched is returned when a source path does not match the
// configured input pattern.
var ErrFileNotMatched = errors.New("file does not match input pattern")

// DefaultOutputPattern names the styles file after the source file.
const DefaultOutputPattern = "$name.styles"

// DefaultInputPattern captures the directory, base name and extension of a
// supported source file.
const DefaultInputPattern = `^(?<path>.*/)?(?<name>[^/]+?)\.(?<ext>[jt]sx?)$`

var supportedExtension = regexp.MustCompile(`\.[jt]sx?$`)

// IsSupported reports whether p has a .js, .jsx, .ts or .tsx extension.
func IsSupported(p string) bool {
	return supportedExtension.MatchString(p)
}

// Extension returns the extension of p including the dot, or "".
func Extension(p string) string {
	return path.Ext(p)
}

// StripExtension removes the final extension of p.
func StripExtension(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

// RelativeImportPath returns the import specifier that resolves to file
// `to` from inside file `from`: relative to from's directory, always
// starting with "." and without extension.
func RelativeImportPath(from, to string) string {
	rel := relative(path.Dir(from), to)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return StripExtension(rel)
}

// relative is path/filepath.Rel for slash paths that are both absolute or
// both relative.
func relative(base, target string) string {
	base = path.Clean(base)
	target = path.Clean(target)
	if base == "." {
		base = ""
	}

	baseParts := splitPath(base)
	targetParts := splitPath(target)

	common := 0
	for common < len(baseParts) && common < len(targetParts) && baseParts[common] == targetParts[common] {
		common++
	}

	parts := make([]string, 0, len(baseParts)-common+len(targetParts)-common)
	for range baseParts[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	return strings.Join(parts, "/")
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

// StyleFile returns the styles file for source.
//
// inputPattern is an ECMAScript regular expression matched against the
// whole source path; empty means DefaultInputPattern. Every named group
// $group in outputPattern (conventionally $name, $path and $ext) is
// replaced by its capture. The result lives next to the source, unless the
// pattern places it explicitly through $path, and takes the source
// extension unless outputPattern already ends in one.
func StyleFile(source, outputPattern, inputPattern string) (string, error) {
	if outputPattern == "" {
		outputPattern = DefaultOutputPattern
	}
	if inputPattern == "" {
		inputPattern = DefaultInputPattern
	}

	re, err := regexp2.Compile(inputPattern, regexp2.ECMAScript)
	if err != nil {
		return "", fmt.Errorf("compiling input pattern %q: %w", inputPattern, err)
	}
	match, err := re.FindStringMatch(source)
	if err != nil {
		return "", fmt.Errorf("matching input pattern: %w", err)
	}
	if match == nil {
		return "", fmt.Errorf("%s: %w", source, ErrFileNotMatched)
	}

	captures := make(map[string]string)
	for _, group := range match.Groups() {
		if group.Name == "" || unicode.IsDigit(firstRune(group.Name)) {
			continue
		}
		captures[group.Name] = group.String()
	}
	if _, ok := captures["name"]; !ok {
		captures["name"] = StripExtension(path.Base(source))
	}

	name := substitute(outputPattern, captures)
	if !IsSupported(name) {
		name += Extension(source)
	}
	if strings.Contains(outputPattern, "$path") {
		return path.Clean(name), nil
	}
	return path.Join(path.Dir(source), name), nil
}

var placeholder = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// substitute replaces $group placeholders, longest names first so that
// $names is not read as $name followed by "s" when both groups exist.
// Unknown placeholders are left as written.
func substitute(pattern string, captures map[string]string) string {
	return placeholder.ReplaceAllStringFunc(pattern, func(token string) string {
		word := token[1:]
		for end := len(word); end > 0; end-- {
			if value, ok := captures[word[:end]]; ok {
				return value + word[end:]
			}
		}
		return token
	})
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// NormalizeComponentName turns user input into a component identifier:
// the input is split on whitespace, hyphens and underscores and each part
// is capitalized ("my-card title" becomes "MyCardTitle").
func NormalizeComponentName(input string) string {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
	var b strings.Builder
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}
