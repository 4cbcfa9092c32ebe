package scaffold

import "fmt"

// ResolutionError reports a template reference that could not be located or
// fetched. It aborts the run before any file is written.
type ResolutionError struct {
	Ref string
	Err error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot resolve template %q: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("cannot resolve template %q", e.Ref)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ConflictError reports a destination file or top-level directory that
// already exists. Generation never silently replaces existing files.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists; scaffolding into an existing directory won't replace conflicting files", e.Path)
}

// ConfigurationError reports an invalid run configuration, such as an unknown
// strategy or an import path that cannot be derived from any search root.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }

// ValidationError reports an illegal package name. It is raised before any
// directory is created.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}
