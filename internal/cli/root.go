// Package cli provides the Cobra command structure for regexmatch.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmatch/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root regexmatch command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "regexmatch",
		Short: "Test regular expressions against sample text",
		Long: `regexmatch checks regex test documents: plain-text files that pair a
JavaScript regex literal with the lines it should be tried against.

  /[0-9]+a+/gm
  ---
  123aaa
  b2507ab
  ---

Every block is compiled with ECMAScript semantics and its matches are
reported with document offsets. Tests can also live in fenced code blocks
of Markdown files. A block can be bound to a regex literal in source code
so that an edited pattern is written back where it came from.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newNewCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
