package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"slate/internal/diag"
	"slate/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	locColor     = color.New(color.Bold)
)

// Pretty writes diagnostics in a human-readable form, one per line:
//
//	<path>:<line>:<col>: <severity>[<code>]: <message>
//
// followed by indented notes when ShowNotes is set. The bag is expected to
// be sorted beforehand.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	for i := 0; i < maxItems; i++ {
		d := items[i]
		fmt.Fprintf(w, "%s: %s[%s]: %s\n",
			formatLoc(fs, d.Primary, opts.Color),
			severityLabel(d.Severity, opts.Color),
			d.Code, d.Message)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s: note: %s\n", formatLoc(fs, n.Span, opts.Color), n.Msg)
			}
		}
	}
	if dropped := len(items) - maxItems; dropped > 0 {
		fmt.Fprintf(w, "... and %d more\n", dropped)
	}
}

func formatLoc(fs *source.FileSet, sp source.Span, colorize bool) string {
	path, lc := fs.Position(sp)
	if path == "" {
		return "<unknown>"
	}
	s := fmt.Sprintf("%s:%d:%d", path, lc.Line, lc.Col)
	if colorize {
		return locColor.Sprint(s)
	}
	return s
}

func severityLabel(sev diag.Severity, colorize bool) string {
	label := strings.ToLower(sev.String())
	if !colorize {
		return label
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(label)
	case diag.SevWarning:
		return warningColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}
