package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateOutputPath validates the configured DOT output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not end in a path separator (it names a file, not a directory)
//
// Absolute paths and parent references are allowed: the path comes from the
// local user, not from an untrusted request.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// formatRegex matches Graphviz output format names such as png, svg or
// png:cairo.
var formatRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(:[a-z0-9]+)*$`)

// ValidateFormat validates an external renderer output format. The value is
// passed to the renderer as -T<format>, so it must not smuggle extra flags.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !formatRegex.MatchString(format) {
		return New(ErrCodeInvalidFormat, "invalid format: %q", format)
	}
	return nil
}

// ValidateBinary validates the external renderer executable name or path.
func ValidateBinary(binary string) error {
	if strings.TrimSpace(binary) == "" {
		return New(ErrCodeInvalidInput, "renderer binary cannot be empty")
	}
	if strings.HasPrefix(binary, "-") {
		return New(ErrCodeInvalidInput, "renderer binary cannot start with '-': %q", binary)
	}
	for _, r := range binary {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "renderer binary contains invalid characters")
		}
	}
	return nil
}
