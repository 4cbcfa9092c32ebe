// Package stencil holds shared metadata for the Stencil CLI.
package stencil

// Version is the current Stencil release. Rendered templates can reference
// it through the stencil_version context key.
const Version = "0.3.0"

// DocsVersion is the documentation series matching this release, used in
// generated links (docs_version context key).
const DocsVersion = "0.3"
