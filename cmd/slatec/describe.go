package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slate/internal/diagfmt"
	"slate/internal/driver"
)

var describeCmd = &cobra.Command{
	Use:   "describe [flags] unit.toml...",
	Short: "Describe the export surface of compilation units",
	Long:  `Describe processes unit manifests and dumps every exported type: shape, machine type, sizes, and field offsets`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	describeCmd.Flags().Int("jobs", 0, "number of units processed in parallel (0 = all CPUs)")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	results, err := driver.ProcessUnits(context.Background(), args, maxDiagnostics(cmd), jobs)
	if err != nil {
		return err
	}

	sawErrors := false
	for _, res := range results {
		if err := reportDiagnostics(cmd, res); err != nil {
			return err
		}
		if res.Bag.HasErrors() {
			sawErrors = true
		}

		entries := make([]diagfmt.ExportEntry, 0, len(res.Vars))
		for _, v := range res.Vars {
			entries = append(entries, diagfmt.ExportEntry{Name: v.Name, Type: v.Type})
		}

		switch format {
		case "pretty":
			quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
			if !quiet {
				fmt.Fprintf(os.Stdout, "unit %s (%s)\n", res.Name, res.Target.Triple)
			}
			if err := diagfmt.DumpExportsPretty(os.Stdout, entries, useColor(cmd, os.Stdout)); err != nil {
				return err
			}
		case "json":
			if err := diagfmt.DumpExportsJSON(os.Stdout, entries); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	if sawErrors {
		return fmt.Errorf("export failed with errors")
	}
	return nil
}

// reportDiagnostics prints a unit's collected diagnostics to stderr.
func reportDiagnostics(cmd *cobra.Command, res *driver.UnitResult) error {
	if !res.Bag.HasErrors() && !res.Bag.HasWarnings() {
		return nil
	}
	res.Bag.Sort()
	diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
		Max:       maxDiagnostics(cmd),
	})
	return nil
}
