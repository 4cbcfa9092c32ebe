// Package scaffold implements the template-instantiation engine behind the
// stencil CLI.
//
// A run is a single-threaded pipeline: validate the name, create or verify
// the top-level directory, build the substitution context, resolve the
// template source to a local directory, walk it while rendering or copying
// each file, then clean up temporary paths. There is no rollback; a failed
// run leaves its partial output on disk, and the per-file conflict check
// guarantees an existing file is never replaced.
package scaffold
