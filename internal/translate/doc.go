// Package translate turns a symbol's documentation parts into render sections.
//
// Each translator is a stateless value. Translate returns nil when the symbol
// has nothing for that section; otherwise the result holds the primary
// language's section as the default and one override per other language.
// Cross-references met along the way are added to the Context's collector.
package translate
