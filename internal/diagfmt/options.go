package diagfmt

import "doccomp/internal/source"

// ConsoleOptions configures ConsoleWriter output.
type ConsoleOptions struct {
	// FixIts prints one `fixit:` line per replacement.
	FixIts bool
	Color  bool
	// Sources enables a source line with a caret underline after each
	// diagnostic whose source is present in the set.
	Sources *source.FileSet
}
