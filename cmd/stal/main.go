package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stal/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stal",
	Short: "Stylometric authorship attribution",
	Long:  `stal trains token-frequency models on labeled corpora and attributes text to its most likely author`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|phase|detail|debug)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to a stal.toml tuning file")
	rootCmd.PersistentFlags().Int("jobs", 1, "number of training files processed concurrently")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
