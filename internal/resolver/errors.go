package resolver

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a path segment matches no child.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("remote path %q not found", e.Path)
}

// AmbiguousNameError is returned under the Strict policy when a segment
// name matches more than one child. Drive does not enforce name uniqueness.
type AmbiguousNameError struct {
	Path string

	// IDs holds the IDs of all matching files, sorted lexicographically.
	IDs []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("remote path %q is ambiguous, matches file IDs %s", e.Path, strings.Join(e.IDs, ", "))
}

// NotADirectoryError is returned when an intermediate path segment
// resolves to a regular file.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("remote path %q is a file, not a folder", e.Path)
}
