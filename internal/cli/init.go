package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmatch/internal/configloader"
	"github.com/yaklabco/regexmatch/internal/logging"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/fsutil"
)

// defaultConfigFile is the file name written by init.
const defaultConfigFile = ".regexmatch.yml"

const configHeader = `# regexmatch configuration.
# Project files named .regexmatch.yml are found by searching upward from the
# working directory. REGEXMATCH_* environment variables override these values.`

// initHeader returns the config header followed by the supported
// environment variables.
func initHeader() string {
	var builder strings.Builder
	builder.WriteString(configHeader + "\n#\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&builder, "#   %-32s %s\n", v.Name, v.Description)
	}
	return builder.String()
}

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new regexmatch configuration file",
		Long: `Create a new .regexmatch.yml configuration file in the current directory
with the default settings: the extensions of test documents, the Markdown
fence languages and the highlight colors.

Examples:
  regexmatch init                      Create .regexmatch.yml
  regexmatch init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")
	ctx := commandContext(cmd)

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.NewConfig().ToYAMLWithHeader(initHeader())
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
