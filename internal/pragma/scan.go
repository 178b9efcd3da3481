package pragma

import (
	"bytes"
	"fmt"

	"slate/internal/diag"
	"slate/internal/source"
)

var directive = []byte("#pragma")

// ScanFile walks a file line by line and records every pragma directive it
// finds. Lines that do not start with `#pragma` (after leading whitespace)
// are skipped; malformed directives produce a diagnostic and are dropped.
func ScanFile(f *source.File, rec *Recorder, sink diag.Reporter) {
	if f == nil {
		return
	}
	content := f.Content
	lineStart := 0
	for lineStart <= len(content) {
		lineEnd := lineStart
		for lineEnd < len(content) && content[lineEnd] != '\n' {
			lineEnd++
		}
		scanLine(f.ID, content[lineStart:lineEnd], lineStart, rec, sink)
		lineStart = lineEnd + 1
	}
}

func scanLine(file source.FileID, line []byte, base int, rec *Recorder, sink diag.Reporter) {
	i := skipSpace(line, 0)
	if !bytes.HasPrefix(line[i:], directive) {
		return
	}
	directiveStart := i
	i += len(directive)
	// `#pragmafoo` is not a pragma directive.
	if i < len(line) && !isSpace(line[i]) {
		return
	}
	i = skipSpace(line, i)

	nameStart := i
	for i < len(line) && isIdentByte(line[i], i > nameStart) {
		i++
	}
	if i == nameStart {
		diag.ReportError(sink, diag.PragmaMalformed,
			lineSpan(file, base, directiveStart, len(line)),
			"expected pragma name after '#pragma'")
		return
	}
	name := string(line[nameStart:i])

	j := skipSpace(line, i)
	if j >= len(line) {
		rec.Record(Pragma{Name: name, Span: lineSpan(file, base, directiveStart, j)})
		return
	}
	if line[j] != '(' {
		diag.ReportError(sink, diag.PragmaMalformed,
			lineSpan(file, base, j, len(line)),
			fmt.Sprintf("unexpected token after pragma '%s'", name))
		return
	}
	close := bytes.LastIndexByte(line, ')')
	if close < j {
		diag.ReportError(sink, diag.PragmaUnterminated,
			lineSpan(file, base, j, len(line)),
			fmt.Sprintf("missing ')' in pragma '%s'", name))
		return
	}
	value := string(bytes.TrimSpace(line[j+1 : close]))
	rec.Record(Pragma{Name: name, Value: value, Span: lineSpan(file, base, directiveStart, close+1)})
}

func lineSpan(file source.FileID, base, start, end int) source.Span {
	return source.Span{
		File:  file,
		Start: uint32(base + start), // #nosec G115 -- offsets bounded by file size
		End:   uint32(base + end),   // #nosec G115
	}
}

func skipSpace(b []byte, i int) int {
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isIdentByte(c byte, notFirst bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return notFirst
	default:
		return false
	}
}
