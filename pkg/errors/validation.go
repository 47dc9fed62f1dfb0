package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// metricNameRegex matches identifiers usable as metric references in descriptors.
var metricNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// ValidateMetricName validates a metric name declared in a report descriptor.
// Names are referenced by panels and derivation rules, so they must be plain
// identifiers of at most 64 characters.
func ValidateMetricName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMetric, "metric name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidMetric, "metric name %q too long (max 64 characters)", name)
	}
	if !metricNameRegex.MatchString(name) {
		return New(ErrCodeInvalidMetric, "invalid metric name: %q", name)
	}
	return nil
}

// ValidateText validates free text that ends up in the rendered document
// (titles, labels). Control characters other than tab are rejected.
func ValidateText(field, s string) error {
	if len(s) > 256 {
		return New(ErrCodeInvalidInput, "%s too long (max 256 characters)", field)
	}
	for _, r := range s {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateOutputPath validates a path the document will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}
