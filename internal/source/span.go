package source

import "fmt"

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// NoFile marks a span that has no backing file (synthesized declarations).
const NoFile FileID = ^FileID(0)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// NoSpan is the zero-information span used for synthesized declarations.
var NoSpan = Span{File: NoFile}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Valid() bool {
	return s.File != NoFile
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	if !s.Valid() {
		return "<no location>"
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends the span to include other. Spans from different files are
// left unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// LineCol is a human-readable 1-based position in a source file.
type LineCol struct {
	Line uint32
	Col  uint32
}
