// Package diagfmt renders diagnostics for people and tools.
//
// ConsoleWriter prints one line per diagnostic in the conventional
// `path:line:col: severity: summary` shape. FileWriter serialises everything
// it received into a versioned JSON document on Flush. ReadFile and Merge load
// such documents back, refusing files written with a different major version.
package diagfmt
