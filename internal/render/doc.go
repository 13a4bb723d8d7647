// Package render defines the serialisable values produced by section
// translators: declaration tokens, rendered content, page sections and the
// per-trait variant collections that wrap them.
//
// Every value here is a plain struct so it encodes the same way to JSON (the
// render output) and to msgpack (the on-disk render cache).
package render
