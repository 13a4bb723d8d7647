// Package diag defines the diagnostic model shared by every stage of the
// documentation compiler and the engine that routes diagnostics to consumers.
//
// # Data model
//
// Diagnostic is a pure value describing one issue:
//
//   - Source – path or URL of the documentation source, empty when unknown.
//   - Severity – Error, Warning, Information or Hint (Error is most severe).
//   - Range – optional line/column span inside Source.
//   - Identifier – reverse-DNS string, stable across releases (see codes.go).
//   - Summary / Explanation – short and long human text.
//   - Notes – secondary locations, e.g. "first occurrence is here".
//
// Problem pairs a Diagnostic with possible Solutions; each Solution carries
// Replacements (fix-its) that tools can apply mechanically.
//
// Offset on Diagnostic and Problem returns a shifted copy; used when a doc
// comment is validated on its own and later embedded in a containing file.
//
// # Engine
//
// Engine filters and re-prioritises problems, keeps an append-only log and
// delivers accepted batches to consumers on a per-engine FIFO worker. Emit
// never blocks on consumers; Flush waits for delivery and flushes every
// consumer. Rendering lives in internal/diagfmt.
package diag
