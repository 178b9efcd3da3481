package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	Max       int // cap on printed diagnostics, 0 means no cap
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col alongside byte offsets
	IncludeNotes     bool
	Max              int // output truncation only, the Bag is untouched
}
