package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a file path within a repository for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//   - No trailing slash (must name a file)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}

// ValidateBranch validates a branch name against the subset of git ref rules
// that matter when the name is spliced into an API URL.
func ValidateBranch(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "branch name cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidInput, "branch name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "branch name contains whitespace or control characters")
		}
	}

	for _, pattern := range []string{"..", "~", "^", ":", "?", "*", "[", "\\", "@{", "//"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "branch name contains invalid sequence: %q", pattern)
		}
	}

	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") ||
		strings.HasPrefix(name, "-") || strings.HasSuffix(name, ".lock") || strings.HasSuffix(name, ".") {
		return New(ErrCodeInvalidInput, "invalid branch name: %q", name)
	}

	return nil
}

// ValidateRepoName validates an owner or repository name segment.
func ValidateRepoName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "repository name cannot be empty")
	}
	if len(name) > 100 {
		return New(ErrCodeInvalidInput, "repository name too long (max 100 characters)")
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.') {
			return New(ErrCodeInvalidInput, "repository name contains invalid character: %q", r)
		}
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidInput, "invalid repository name: %q", name)
	}
	return nil
}
