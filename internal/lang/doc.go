// Package lang identifies the programming languages documentation is written for.
//
// A Language is a compact handle. A handful of well-known languages (Swift,
// Objective-C with its C/C++ aliases, Data, JavaScript and Metal) carry fixed
// handles 0..4 and need no registry. Every other language is interned into a
// Registry owned by the compilation session; identical (name, id, aliases,
// link disambiguation id) tuples always resolve to the same handle within one
// registry, regardless of call order or concurrency.
//
// Handles are a single byte, so at most 256 distinct languages are
// representable in one session. Interning past that limit panics: it means a
// caller is minting languages from unbounded input, which is a programming error.
package lang
