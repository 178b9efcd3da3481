package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slate/internal/diag"
	"slate/internal/diagfmt"
	"slate/internal/pragma"
	"slate/internal/source"
)

var pragmasCmd = &cobra.Command{
	Use:   "pragmas [flags] file.sl...",
	Short: "List the pragmas recorded in kernel sources",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPragmas,
}

func init() {
	pragmasCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type pragmaJSON struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	File  string `json:"file"`
	Line  uint32 `json:"line"`
}

func runPragmas(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics(cmd))
	rec := pragma.NewRecorder()
	for _, path := range args {
		id, err := fs.Load(path)
		if err != nil {
			return err
		}
		pragma.ScanFile(fs.Get(id), rec, diag.BagReporter{Bag: bag})
	}

	if bag.HasErrors() || bag.HasWarnings() {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
			Max:   maxDiagnostics(cmd),
		})
	}

	switch format {
	case "pretty":
		for _, p := range rec.All() {
			path, lc := fs.Position(p.Span)
			if p.Value != "" {
				fmt.Fprintf(os.Stdout, "%s:%d: %s = %q\n", path, lc.Line, p.Name, p.Value)
			} else {
				fmt.Fprintf(os.Stdout, "%s:%d: %s\n", path, lc.Line, p.Name)
			}
		}
		return nil
	case "json":
		out := make([]pragmaJSON, 0, rec.Len())
		for _, p := range rec.All() {
			path, lc := fs.Position(p.Span)
			out = append(out, pragmaJSON{Name: p.Name, Value: p.Value, File: path, Line: lc.Line})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
