package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"slate/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "slatec",
	Short: "Slate kernel compiler type-export tooling",
	Long:  `slatec inspects the export surface of Slate compilation units`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(specCmd)
	rootCmd.AddCommand(pragmasCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the persistent --color flag against the stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil || n <= 0 {
		return 100
	}
	return n
}
